package service

import (
	"strings"

	"tlms_backend/internal/model"
	"tlms_backend/internal/util"
	"tlms_backend/pkg/logger"

	"go.uber.org/zap"
)

// Notifier 审核动作触发的外发通知，尽力而为
type Notifier interface {
	SendCourseRemovalNotification(toEmail, toName, courseTitle, reason string) error
	SendCourseReviewResult(toEmail, toName, courseTitle string, approved bool, reason string) error
	SendEducatorApprovalResult(toEmail, toName string, approved bool) error
}

// EducatorApprovalStore 审核所需的用户侧读写，*repository.UserRepository 实现
type EducatorApprovalStore interface {
	FindByID(id uint) (*model.User, error)
	ListPendingEducators(page, limit int) ([]model.User, int64, error)
	UpdateApprovalStatus(userID uint, status model.ApprovalStatus) error
}

// CourseReviewStore 审核所需的课程侧读写，*repository.CourseRepository 实现
type CourseReviewStore interface {
	FindByID(id uint) (*model.Course, error)
	ListByStatus(status model.CourseStatus, page, limit int) ([]model.Course, int64, error)
	UpdateStatus(id uint, status model.CourseStatus, reason string) error
}

// ModerationService 管理端审核：讲师账号审批与课程审核/下架。
// 每个动作是单次状态转换，数据库写入为权威；
// 通知邮件异步发送，失败不回滚也不上报给用户。
type ModerationService struct {
	Users    EducatorApprovalStore
	Courses  CourseReviewStore
	Notifier Notifier
}

func NewModerationService(users EducatorApprovalStore, courses CourseReviewStore, notifier Notifier) *ModerationService {
	return &ModerationService{Users: users, Courses: courses, Notifier: notifier}
}

func (s *ModerationService) PendingEducators(page, limit int) ([]model.User, int64, error) {
	return s.Users.ListPendingEducators(page, limit)
}

func (s *ModerationService) PendingCourses(page, limit int) ([]model.Course, int64, error) {
	return s.Courses.ListByStatus(model.CoursePendingReview, page, limit)
}

// ApproveEducator 审批通过讲师账号
func (s *ModerationService) ApproveEducator(userID uint) error {
	return s.resolveEducator(userID, true)
}

// RejectEducator 驳回讲师账号申请
func (s *ModerationService) RejectEducator(userID uint) error {
	return s.resolveEducator(userID, false)
}

func (s *ModerationService) resolveEducator(userID uint, approved bool) error {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}
	if user.Role != model.Educator || user.ApprovalStatus != model.ApprovalPending {
		return util.ErrPermissionDenied
	}

	status := model.ApprovalRejected
	if approved {
		status = model.ApprovalApproved
	}
	if err := s.Users.UpdateApprovalStatus(userID, status); err != nil {
		return err
	}

	s.notify(func() error {
		return s.Notifier.SendEducatorApprovalResult(user.Email, user.Name, approved)
	})
	return nil
}

// ApproveCourse 课程审核通过：pending_review -> published
func (s *ModerationService) ApproveCourse(courseID uint) error {
	return s.reviewCourse(courseID, true, "")
}

// RejectCourse 课程审核驳回：pending_review -> rejected
func (s *ModerationService) RejectCourse(courseID uint, reason string) error {
	return s.reviewCourse(courseID, false, reason)
}

func (s *ModerationService) reviewCourse(courseID uint, approved bool, reason string) error {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return util.ErrCourseNotFound
	}

	next := model.CourseRejected
	if approved {
		next = model.CoursePublished
	}
	if !course.CanTransitionTo(next) {
		return util.ErrInvalidStatusTransition
	}
	if err := s.Courses.UpdateStatus(courseID, next, ""); err != nil {
		return err
	}

	if course.Educator != nil {
		educator := course.Educator
		s.notify(func() error {
			return s.Notifier.SendCourseReviewResult(educator.Email, educator.Name, course.Title, approved, reason)
		})
	}
	return nil
}

// RemoveCourse 下架已发布课程：published -> removed，必须给出原因。
// 通知只是附带动作，其成败不影响课程下架本身。
func (s *ModerationService) RemoveCourse(courseID uint, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return util.ErrRemovalReasonRequired
	}

	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return util.ErrCourseNotFound
	}
	if !course.CanTransitionTo(model.CourseRemoved) {
		return util.ErrInvalidStatusTransition
	}
	if err := s.Courses.UpdateStatus(courseID, model.CourseRemoved, reason); err != nil {
		return err
	}

	if course.Educator != nil {
		educator := course.Educator
		s.notify(func() error {
			return s.Notifier.SendCourseRemovalNotification(educator.Email, educator.Name, course.Title, reason)
		})
	}
	return nil
}

func (s *ModerationService) notify(fn func() error) {
	if s.Notifier == nil {
		return
	}
	go func() {
		if err := fn(); err != nil {
			logger.Log.Error("Failed to send moderation notification", zap.Error(err))
		}
	}()
}
