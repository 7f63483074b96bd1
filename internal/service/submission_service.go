package service

import (
	"context"
	"encoding/json"
	"tlms_backend/internal/model"
	"tlms_backend/internal/util"
	"tlms_backend/pkg/monitoring"
)

// CourseWriter 提交落库的最小依赖，*repository.CourseRepository 实现
type CourseWriter interface {
	CreateTree(course *model.Course) error
}

// SubmissionService 把完整的课程草稿序列化为课程记录并落库。
// 存草稿 / 送审 是两种终态提交：成功后本地草稿即被丢弃，
// 失败则草稿原样保留，由讲师手动重试，不做自动重试。
type SubmissionService struct {
	Courses   CourseWriter
	Authoring *AuthoringService
}

func NewSubmissionService(courses CourseWriter, authoring *AuthoringService) *SubmissionService {
	return &SubmissionService{Courses: courses, Authoring: authoring}
}

// SaveDraft 以 draft 状态保存课程，只要求课程信息完整
func (s *SubmissionService) SaveDraft(ctx context.Context, educator *model.User) (uint, error) {
	return s.submit(ctx, educator, model.CourseDraftStatus)
}

// SubmitForReview 送审：额外要求可预览且所有测验题目有效
func (s *SubmissionService) SubmitForReview(ctx context.Context, educator *model.User) (uint, error) {
	return s.submit(ctx, educator, model.CoursePendingReview)
}

func (s *SubmissionService) submit(ctx context.Context, educator *model.User, status model.CourseStatus) (uint, error) {
	if !educator.IsApprovedEducator() {
		return 0, util.ErrEducatorNotApproved
	}

	draft := s.Authoring.GetDraft(ctx, educator.ID)
	if !draft.IsCourseInfoValid() {
		return 0, util.ErrCourseInfoIncomplete
	}
	if status == model.CoursePendingReview {
		if !draft.IsPreviewReachable() {
			return 0, util.ErrCourseNotSubmittable
		}
		for mi := range draft.Modules {
			for li := range draft.Modules[mi].Lessons {
				l := &draft.Modules[mi].Lessons[li]
				if l.ContentType == model.ContentQuiz && !l.IsQuizValid() {
					return 0, util.ErrInvalidQuiz
				}
			}
		}
	}

	course := buildCourse(draft, educator.ID, status)
	if err := s.Courses.CreateTree(course); err != nil {
		return 0, err
	}

	kind := "draft"
	if status == model.CoursePendingReview {
		kind = "review"
	}
	monitoring.CourseSubmissionCounter.WithLabelValues(kind).Inc()

	// 提交成功后本地草稿不再是权威状态，直接丢弃
	s.Authoring.Discard(ctx, educator.ID)
	return course.ID, nil
}

// buildCourse 把草稿树翻译为课程服务期望的持久化结构
func buildCourse(draft *model.CourseDraft, educatorID uint, status model.CourseStatus) *model.Course {
	course := &model.Course{
		EducatorID:  educatorID,
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Price:       draft.Price,
		Status:      status,
	}

	for mi := range draft.Modules {
		dm := &draft.Modules[mi]
		cm := model.CourseModule{
			Title:       dm.Title,
			Description: dm.Description,
			Position:    mi,
		}
		for li := range dm.Lessons {
			dl := &dm.Lessons[li]
			lesson := model.Lesson{
				Title:           dl.Title,
				ContentType:     dl.ContentType,
				TextBody:        dl.TextBody,
				FileURL:         dl.FileURL,
				FileNote:        dl.FileNote,
				DurationSeconds: dl.DurationSeconds,
				Position:        li,
			}
			for qi := range dl.Questions {
				dq := &dl.Questions[qi]
				options, _ := json.Marshal(dq.Options)
				indices, _ := json.Marshal(dq.CorrectAnswerIndices)
				lesson.Questions = append(lesson.Questions, model.QuizQuestion{
					Type:                  dq.Type,
					Text:                  dq.Text,
					Options:               options,
					CorrectAnswerIndices:  indices,
					Points:                dq.Points,
					CharacterLimit:        dq.CharacterLimit,
					RequiresManualGrading: dq.RequiresManualGrading,
					Position:              qi,
				})
			}
			cm.Lessons = append(cm.Lessons, lesson)
		}
		course.Modules = append(course.Modules, cm)
	}

	return course
}
