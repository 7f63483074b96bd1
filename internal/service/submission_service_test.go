package service

import (
	"context"
	"testing"

	"tlms_backend/internal/model"
	"tlms_backend/internal/util"
)

func approvedEducator(id uint) *model.User {
	u := &model.User{Role: model.Educator, ApprovalStatus: model.ApprovalApproved}
	u.ID = id
	return u
}

func TestSubmitRequiresApprovedEducator(t *testing.T) {
	s := NewSubmissionService(nil, newTestAuthoring())

	pending := &model.User{Role: model.Educator, ApprovalStatus: model.ApprovalPending}
	pending.ID = 7
	if _, err := s.SubmitForReview(context.Background(), pending); err != util.ErrEducatorNotApproved {
		t.Errorf("err = %v, want ErrEducatorNotApproved", err)
	}

	learner := &model.User{Role: model.Learner}
	learner.ID = 8
	if _, err := s.SaveDraft(context.Background(), learner); err != util.ErrEducatorNotApproved {
		t.Errorf("err = %v, want ErrEducatorNotApproved", err)
	}
}

func TestSubmitValidationGates(t *testing.T) {
	s := NewSubmissionService(nil, newTestAuthoring())
	ctx := context.Background()
	educator := approvedEducator(9)

	// 课程信息不完整：存草稿和送审都被拒绝
	if _, err := s.SaveDraft(ctx, educator); err != util.ErrCourseInfoIncomplete {
		t.Errorf("err = %v, want ErrCourseInfoIncomplete", err)
	}

	s.Authoring.UpdateCourseInfo(ctx, educator.ID, CourseInfoRequest{Title: "Go", Category: "编程"})

	// 信息完整但不可预览：只拦送审
	if _, err := s.SubmitForReview(ctx, educator); err != util.ErrCourseNotSubmittable {
		t.Errorf("err = %v, want ErrCourseNotSubmittable", err)
	}

	m := s.Authoring.AddModule(ctx, educator.ID)
	quiz, _ := s.Authoring.AddLesson(ctx, educator.ID, AddLessonRequest{ModuleID: m.ID, Title: "测验", ContentType: model.ContentQuiz})

	// 空测验课时：送审被拒，草稿原样保留
	if _, err := s.SubmitForReview(ctx, educator); err != util.ErrInvalidQuiz {
		t.Errorf("err = %v, want ErrInvalidQuiz", err)
	}
	d := s.Authoring.GetDraft(ctx, educator.ID)
	if d.Title != "Go" || len(d.Modules) != 1 {
		t.Errorf("failed submission must leave the draft untouched: %+v", d)
	}
	_ = quiz
}

// fakeCourseWriter 记录落库的课程树并分配自增 ID
type fakeCourseWriter struct {
	created []*model.Course
	nextID  uint
	err     error
}

func (f *fakeCourseWriter) CreateTree(course *model.Course) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	course.ID = f.nextID
	f.created = append(f.created, course)
	return nil
}

func TestSubmitForReviewPersistsAndDiscardsDraft(t *testing.T) {
	writer := &fakeCourseWriter{nextID: 100}
	s := NewSubmissionService(writer, newTestAuthoring())
	ctx := context.Background()
	educator := approvedEducator(9)

	s.Authoring.UpdateCourseInfo(ctx, educator.ID, CourseInfoRequest{Title: "Go 入门", Category: "编程", Price: 50})
	m := s.Authoring.AddModule(ctx, educator.ID)
	if _, err := s.Authoring.AddLesson(ctx, educator.ID, AddLessonRequest{ModuleID: m.ID, Title: "阅读"}); err != nil {
		t.Fatal(err)
	}

	id, err := s.SubmitForReview(ctx, educator)
	if err != nil {
		t.Fatal(err)
	}
	if id != 101 {
		t.Errorf("course ID = %d, want 101", id)
	}

	if len(writer.created) != 1 {
		t.Fatalf("len(created) = %d, want 1", len(writer.created))
	}
	course := writer.created[0]
	if course.Status != model.CoursePendingReview || course.EducatorID != educator.ID || course.Title != "Go 入门" {
		t.Errorf("persisted course = %+v", course)
	}

	// 提交成功后本地草稿被丢弃，讲师回到空白草稿
	d := s.Authoring.GetDraft(ctx, educator.ID)
	if d.Title != "" || len(d.Modules) != 0 {
		t.Errorf("draft must be discarded after a successful submission: %+v", d)
	}
}

func TestSaveDraftPersistsWithDraftStatus(t *testing.T) {
	writer := &fakeCourseWriter{}
	s := NewSubmissionService(writer, newTestAuthoring())
	ctx := context.Background()
	educator := approvedEducator(10)

	// 存草稿只要求课程信息完整，不要求可预览
	s.Authoring.UpdateCourseInfo(ctx, educator.ID, CourseInfoRequest{Title: "草稿", Category: "编程"})

	if _, err := s.SaveDraft(ctx, educator); err != nil {
		t.Fatal(err)
	}
	if len(writer.created) != 1 || writer.created[0].Status != model.CourseDraftStatus {
		t.Errorf("created = %+v", writer.created)
	}
}

func TestBuildCourse(t *testing.T) {
	draft := &model.CourseDraft{
		Title:    "Go 入门",
		Category: "编程",
		Price:    50,
		Modules: []model.DraftModule{
			{
				ID:    "m1",
				Title: "基础",
				Lessons: []model.DraftLesson{
					{ID: "l1", Title: "阅读", ContentType: model.ContentText, TextBody: "正文"},
					{
						ID: "l2", Title: "小测", ContentType: model.ContentQuiz,
						Questions: []model.DraftQuestion{
							{ID: "q1", Type: model.SingleChoice, Text: "选", Options: []string{"A", "B"}, CorrectAnswerIndices: []int{1}, Points: 3},
						},
					},
				},
			},
			{ID: "m2", Title: "进阶"},
		},
	}

	course := buildCourse(draft, 5, model.CoursePendingReview)

	if course.EducatorID != 5 || course.Status != model.CoursePendingReview || course.Price != 50 {
		t.Errorf("course header = %+v", course)
	}
	if len(course.Modules) != 2 {
		t.Fatalf("len(Modules) = %d, want 2", len(course.Modules))
	}
	if course.Modules[0].Position != 0 || course.Modules[1].Position != 1 {
		t.Error("module positions must follow draft order")
	}
	lessons := course.Modules[0].Lessons
	if len(lessons) != 2 || lessons[1].Position != 1 {
		t.Fatalf("lessons = %+v", lessons)
	}
	qs := lessons[1].Questions
	if len(qs) != 1 || qs[0].Points != 3 {
		t.Fatalf("questions = %+v", qs)
	}
	if string(qs[0].Options) != `["A","B"]` || string(qs[0].CorrectAnswerIndices) != `[1]` {
		t.Errorf("options = %s, indices = %s", qs[0].Options, qs[0].CorrectAnswerIndices)
	}
}
