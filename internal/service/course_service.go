package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"tlms_backend/internal/model"
	"tlms_backend/internal/repository"
	"tlms_backend/internal/util"
	"tlms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnrollmentStore 报名与进度读写，*repository.EnrollmentRepository 实现
type EnrollmentStore interface {
	Create(e *model.Enrollment) error
	FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error)
	HasCompleted(enrollmentID, lessonID uint) (bool, error)
	CompleteLesson(e *model.Enrollment, lessonID uint) error
	ListByUser(userID uint) ([]model.Enrollment, error)
}

// CourseService 学员侧课程目录、报名与学习进度
type CourseService struct {
	Courses     *repository.CourseRepository
	Enrollments EnrollmentStore
	Payments    *repository.PaymentRepository
	RDB         *redis.Client
}

func NewCourseService(courses *repository.CourseRepository, enrollments EnrollmentStore, payments *repository.PaymentRepository, rdb *redis.Client) *CourseService {
	return &CourseService{Courses: courses, Enrollments: enrollments, Payments: payments, RDB: rdb}
}

const catalogCacheTTL = time.Minute

type CatalogPage struct {
	Items []model.Course `json:"items"`
	Total int64          `json:"total"`
}

// ListPublished 已发布课程目录，带一分钟 Redis 缓存
func (s *CourseService) ListPublished(ctx context.Context, category, search string, page, limit int) (*CatalogPage, error) {
	cacheKey := fmt.Sprintf("catalog:%s:%s:%d:%d", category, search, page, limit)

	if s.RDB != nil {
		if data, err := s.RDB.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached CatalogPage
			if json.Unmarshal(data, &cached) == nil {
				return &cached, nil
			}
		}
	}

	courses, total, err := s.Courses.ListPublished(category, search, page, limit)
	if err != nil {
		return nil, err
	}
	result := &CatalogPage{Items: courses, Total: total}

	if s.RDB != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.RDB.Set(ctx, cacheKey, data, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache catalog page", zap.Error(err))
			}
		}
	}
	return result, nil
}

// GetCourseDetail 课程详情（含模块/课时树）；未发布课程仅讲师本人和管理员可见
func (s *CourseService) GetCourseDetail(id uint, viewer *util.Claims) (*model.Course, error) {
	course, err := s.Courses.FindTreeByID(id)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if course.Status != model.CoursePublished {
		if viewer == nil || (viewer.Role != model.Admin && viewer.UserID != course.EducatorID) {
			return nil, util.ErrCourseNotFound
		}
	}
	return course, nil
}

// Enroll 报名：免费课程直接报名，付费课程要求已验证的支付订单
func (s *CourseService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil || course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotFound
	}

	if existing, err := s.Enrollments.FindByUserAndCourse(userID, courseID); err == nil && existing != nil {
		return nil, util.ErrAlreadyEnrolled
	}

	pricePaid := 0.0
	if course.Price > 0 {
		order, err := s.Payments.FindPaidOrder(userID, courseID)
		if err != nil || order == nil {
			return nil, util.ErrPaymentRequired
		}
		pricePaid = order.Amount
	}

	total, err := s.Courses.CountLessons(courseID)
	if err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		PricePaid:    pricePaid,
		TotalLessons: int(total),
	}
	if err := s.Enrollments.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// CompleteLesson 标记课时完成并推进进度，重复标记是幂等的
func (s *CourseService) CompleteLesson(userID, courseID, lessonID uint) (*model.Enrollment, error) {
	enrollment, err := s.Enrollments.FindByUserAndCourse(userID, courseID)
	if err != nil || enrollment == nil {
		return nil, util.ErrCourseNotFound
	}

	done, err := s.Enrollments.HasCompleted(enrollment.ID, lessonID)
	if err != nil {
		return nil, err
	}
	if done {
		return enrollment, nil
	}

	if err := s.Enrollments.CompleteLesson(enrollment, lessonID); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *CourseService) MyEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.Enrollments.ListByUser(userID)
}

func (s *CourseService) EducatorCourses(educatorID uint) ([]model.Course, error) {
	return s.Courses.ListByEducator(educatorID)
}

// IsEnrolled 学员是否已报名该课程
func (s *CourseService) IsEnrolled(userID, courseID uint) (bool, error) {
	_, err := s.Enrollments.FindByUserAndCourse(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
