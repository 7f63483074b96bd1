package service

import (
	"tlms_backend/internal/model"
	"tlms_backend/internal/repository"
	"tlms_backend/internal/util"
)

// ReviewService 课程评价：学员打分评论，管理端可隐藏不当评价
type ReviewService struct {
	Reviews     *repository.ReviewRepository
	Courses     *repository.CourseRepository
	Enrollments *repository.EnrollmentRepository
}

func NewReviewService(reviews *repository.ReviewRepository, courses *repository.CourseRepository, enrollments *repository.EnrollmentRepository) *ReviewService {
	return &ReviewService{Reviews: reviews, Courses: courses, Enrollments: enrollments}
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// AddReview 已报名学员才能评价，每人每课一条
func (s *ReviewService) AddReview(userID, courseID uint, req ReviewRequest) (*model.Review, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil || course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotFound
	}

	if _, err := s.Enrollments.FindByUserAndCourse(userID, courseID); err != nil {
		return nil, util.ErrPermissionDenied
	}

	if existing, _ := s.Reviews.FindByUserAndCourse(userID, courseID); existing != nil {
		return nil, util.ErrAlreadyReviewed
	}

	review := &model.Review{
		CourseID: courseID,
		UserID:   userID,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Visible:  true,
	}
	if err := s.Reviews.Create(review); err != nil {
		return nil, err
	}

	if err := s.refreshCourseRating(courseID); err != nil {
		return nil, err
	}
	return review, nil
}

type ReviewFilter struct {
	VisibleOnly bool
	MinRating   int
	Sort        string // newest | rating_asc | rating_desc
	Page        int
	Limit       int
}

func (s *ReviewService) ListReviews(courseID uint, f ReviewFilter) ([]model.Review, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	return s.Reviews.ListByCourse(courseID, f.VisibleOnly, f.MinRating, f.Sort, f.Page, f.Limit)
}

// SetVisibility 管理端切换评价可见性，课程评分随之重算
func (s *ReviewService) SetVisibility(reviewID uint, visible bool) error {
	review, err := s.Reviews.FindByID(reviewID)
	if err != nil {
		return util.ErrPermissionDenied
	}
	if err := s.Reviews.SetVisibility(reviewID, visible); err != nil {
		return err
	}
	return s.refreshCourseRating(review.CourseID)
}

func (s *ReviewService) refreshCourseRating(courseID uint) error {
	avg, count, err := s.Reviews.AggregateRating(courseID)
	if err != nil {
		return err
	}
	return s.Courses.UpdateRating(courseID, avg, int(count))
}
