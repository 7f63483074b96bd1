package util

import "errors"

var (
	ErrUserNotFound            = errors.New("用户不存在")
	ErrEmailRegistered         = errors.New("该邮箱已被注册")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrCourseNotFound          = errors.New("course not found")
	ErrModuleNotFound          = errors.New("module not found")
	ErrLessonNotFound          = errors.New("lesson not found")
	ErrQuestionNotFound        = errors.New("question not found")
	ErrDraftNotFound           = errors.New("draft not found")
	ErrCourseInfoIncomplete    = errors.New("course title and category are required")
	ErrCourseNotSubmittable    = errors.New("course needs at least one module with one lesson")
	ErrInvalidQuiz             = errors.New("quiz contains invalid questions")
	ErrInvalidStatusTransition = errors.New("invalid course status transition")
	ErrRemovalReasonRequired   = errors.New("removal reason is required")
	ErrAlreadyEnrolled         = errors.New("already enrolled in this course")
	ErrPaymentRequired         = errors.New("verified payment required for paid course")
	ErrPaymentNotVerified      = errors.New("payment signature verification failed")
	ErrEducatorNotApproved     = errors.New("educator account is not approved yet")
	ErrAlreadyReviewed         = errors.New("course already reviewed by this user")
)
