package service

import (
	"context"
	"reflect"
	"testing"

	"tlms_backend/internal/model"
	"tlms_backend/internal/util"
)

const testEducator uint = 42

func newTestAuthoring() *AuthoringService {
	return NewAuthoringService(nil)
}

func TestAddAndDeleteModule(t *testing.T) {
	s := newTestAuthoring()
	ctx := context.Background()

	m1 := s.AddModule(ctx, testEducator)
	m2 := s.AddModule(ctx, testEducator)
	if m1.ID == "" || m1.ID == m2.ID {
		t.Fatalf("module IDs must be unique and non-empty: %q %q", m1.ID, m2.ID)
	}

	d := s.GetDraft(ctx, testEducator)
	if len(d.Modules) != 2 {
		t.Fatalf("len(Modules) = %d, want 2", len(d.Modules))
	}

	s.DeleteModule(ctx, testEducator, 0)
	d = s.GetDraft(ctx, testEducator)
	if len(d.Modules) != 1 || d.Modules[0].ID != m2.ID {
		t.Errorf("delete at 0 should keep %q, got %+v", m2.ID, d.Modules)
	}

	// 越界删除静默忽略
	s.DeleteModule(ctx, testEducator, 5)
	s.DeleteModule(ctx, testEducator, -1)
	if len(s.GetDraft(ctx, testEducator).Modules) != 1 {
		t.Error("out-of-range delete must be a no-op")
	}
}

func TestUpdateModuleKeepsLessons(t *testing.T) {
	s := newTestAuthoring()
	ctx := context.Background()

	m := s.AddModule(ctx, testEducator)
	if _, err := s.AddLesson(ctx, testEducator, AddLessonRequest{ModuleID: m.ID, Title: "第一课"}); err != nil {
		t.Fatal(err)
	}

	m.Title = "新标题"
	m.Lessons = nil
	if err := s.UpdateModule(ctx, testEducator, m); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetDraft(ctx, testEducator).FindModule(m.ID)
	if got.Title != "新标题" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Lessons) != 1 {
		t.Error("updating module metadata must not touch its lessons")
	}

	if err := s.UpdateModule(ctx, testEducator, model.DraftModule{ID: "missing"}); err != util.ErrModuleNotFound {
		t.Errorf("err = %v, want ErrModuleNotFound", err)
	}
}

func TestMoveLessonIsPurePermutation(t *testing.T) {
	s := newTestAuthoring()
	ctx := context.Background()

	m := s.AddModule(ctx, testEducator)
	var ids []string
	for _, title := range []string{"a", "b", "c", "d"} {
		l, err := s.AddLesson(ctx, testEducator, AddLessonRequest{ModuleID: m.ID, Title: title})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, l.ID)
	}

	s.MoveLesson(ctx, testEducator, m.ID, 0, 2)

	got, _ := s.GetDraft(ctx, testEducator).FindModule(m.ID)
	var order []string
	for _, l := range got.Lessons {
		order = append(order, l.ID)
	}
	want := []string{ids[1], ids[2], ids[0], ids[3]}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	// 越界或原地移动不改变顺序
	s.MoveLesson(ctx, testEducator, m.ID, 1, 1)
	s.MoveLesson(ctx, testEducator, m.ID, -1, 0)
	s.MoveLesson(ctx, testEducator, m.ID, 0, 9)
	got, _ = s.GetDraft(ctx, testEducator).FindModule(m.ID)
	order = order[:0]
	for _, l := range got.Lessons {
		order = append(order, l.ID)
	}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("invalid moves must not reorder: %v", order)
	}
}

func TestUpdateLessonTypeSwitchClearsPayload(t *testing.T) {
	s := newTestAuthoring()
	ctx := context.Background()

	m := s.AddModule(ctx, testEducator)
	l, err := s.AddLesson(ctx, testEducator, AddLessonRequest{ModuleID: m.ID, Title: "讲解", ContentType: model.ContentVideo})
	if err != nil {
		t.Fatal(err)
	}

	l.FileURL = "/uploads/a.mp4"
	l.DurationSeconds = 60
	if err := s.UpdateLesson(ctx, testEducator, m.ID, l); err != nil {
		t.Fatal(err)
	}

	// 切到 quiz：媒体字段必须清空，题目列表初始化为空
	l.ContentType = model.ContentQuiz
	if err := s.UpdateLesson(ctx, testEducator, m.ID, l); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetDraft(ctx, testEducator).FindLesson(m.ID, l.ID)
	if got.FileURL != "" || got.DurationSeconds != 0 {
		t.Errorf("media payload must be cleared: %+v", got)
	}
	if got.ContentType != model.ContentQuiz || got.Questions == nil || len(got.Questions) != 0 {
		t.Errorf("quiz lesson should start with an empty question list: %+v", got)
	}
}

func TestQuestionLifecycle(t *testing.T) {
	s := newTestAuthoring()
	ctx := context.Background()

	m := s.AddModule(ctx, testEducator)
	quiz, err := s.AddLesson(ctx, testEducator, AddLessonRequest{ModuleID: m.ID, Title: "小测", ContentType: model.ContentQuiz})
	if err != nil {
		t.Fatal(err)
	}

	q, err := s.AddQuestionToLesson(ctx, testEducator, QuestionRequest{
		ModuleID: m.ID,
		LessonID: quiz.ID,
		Question: model.DraftQuestion{Type: model.SingleChoice, Text: "1+1=?", Options: []string{"1", "2"}, Points: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	if q.ID == "" {
		t.Fatal("question ID must be generated server side")
	}

	// 单选切换答案是替换语义
	if err := s.ToggleCorrectAnswer(ctx, testEducator, m.ID, quiz.ID, q.ID, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleCorrectAnswer(ctx, testEducator, m.ID, quiz.ID, q.ID, 1); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetDraft(ctx, testEducator).FindLesson(m.ID, quiz.ID)
	if !reflect.DeepEqual(got.Questions[0].CorrectAnswerIndices, []int{1}) {
		t.Errorf("indices = %v, want [1]", got.Questions[0].CorrectAnswerIndices)
	}

	// 切换题型为简答：选项清空，手动评分，字数上限 = 分值×100
	q.Type = model.Descriptive
	q.Points = 5
	if err := s.UpdateQuestionInLesson(ctx, testEducator, QuestionRequest{ModuleID: m.ID, LessonID: quiz.ID, Question: q}); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetDraft(ctx, testEducator).FindLesson(m.ID, quiz.ID)
	dq := got.Questions[0]
	if len(dq.Options) != 0 || len(dq.CorrectAnswerIndices) != 0 {
		t.Errorf("descriptive question must drop options: %+v", dq)
	}
	if !dq.RequiresManualGrading || dq.CharacterLimit != 500 {
		t.Errorf("RequiresManualGrading=%v CharacterLimit=%d, want true/500", dq.RequiresManualGrading, dq.CharacterLimit)
	}

	s.DeleteQuestionFromLesson(ctx, testEducator, m.ID, quiz.ID, 0)
	got, _ = s.GetDraft(ctx, testEducator).FindLesson(m.ID, quiz.ID)
	if len(got.Questions) != 0 {
		t.Errorf("len(Questions) = %d, want 0", len(got.Questions))
	}
}

func TestAddQuestionRequiresQuizLesson(t *testing.T) {
	s := newTestAuthoring()
	ctx := context.Background()

	m := s.AddModule(ctx, testEducator)
	text, _ := s.AddLesson(ctx, testEducator, AddLessonRequest{ModuleID: m.ID, Title: "阅读"})

	_, err := s.AddQuestionToLesson(ctx, testEducator, QuestionRequest{
		ModuleID: m.ID,
		LessonID: text.ID,
		Question: model.DraftQuestion{Type: model.SingleChoice, Text: "?"},
	})
	if err != util.ErrLessonNotFound {
		t.Errorf("err = %v, want ErrLessonNotFound", err)
	}
}

func TestValidity(t *testing.T) {
	s := newTestAuthoring()
	ctx := context.Background()

	v := s.Validity(ctx, testEducator)
	if v.CourseInfoValid || v.PreviewReachable || !v.QuizzesValid {
		t.Errorf("empty draft validity = %+v", v)
	}

	// 标题/分类去空白后非空才有效
	s.UpdateCourseInfo(ctx, testEducator, CourseInfoRequest{Title: "  ", Category: "编程"})
	if s.Validity(ctx, testEducator).CourseInfoValid {
		t.Error("whitespace-only title must not be valid")
	}
	s.UpdateCourseInfo(ctx, testEducator, CourseInfoRequest{Title: "Go 入门", Category: "编程"})
	if !s.Validity(ctx, testEducator).CourseInfoValid {
		t.Error("course info should be valid")
	}

	m := s.AddModule(ctx, testEducator)
	if s.Validity(ctx, testEducator).PreviewReachable {
		t.Error("module without lessons is not previewable")
	}
	quiz, _ := s.AddLesson(ctx, testEducator, AddLessonRequest{ModuleID: m.ID, Title: "测验", ContentType: model.ContentQuiz})
	v = s.Validity(ctx, testEducator)
	if !v.PreviewReachable {
		t.Error("one lesson should make the draft previewable")
	}
	if v.QuizzesValid {
		t.Error("empty quiz lesson is invalid")
	}

	if _, err := s.AddQuestionToLesson(ctx, testEducator, QuestionRequest{
		ModuleID: m.ID,
		LessonID: quiz.ID,
		Question: model.DraftQuestion{Type: model.Descriptive, Text: "简述 goroutine", Points: 2},
	}); err != nil {
		t.Fatal(err)
	}
	if !s.Validity(ctx, testEducator).QuizzesValid {
		t.Error("quiz with one valid question should be valid")
	}
}

func TestRevisionAndSubscribe(t *testing.T) {
	s := newTestAuthoring()
	ctx := context.Background()

	var seen []int64
	s.Subscribe(ctx, testEducator, func(rev int64) { seen = append(seen, rev) })

	before := s.Revision(ctx, testEducator)
	s.AddModule(ctx, testEducator)
	s.UpdateCourseInfo(ctx, testEducator, CourseInfoRequest{Title: "t", Category: "c"})

	if got := s.Revision(ctx, testEducator); got != before+2 {
		t.Errorf("revision = %d, want %d", got, before+2)
	}
	if !reflect.DeepEqual(seen, []int64{before + 1, before + 2}) {
		t.Errorf("listener saw %v", seen)
	}
}

func TestGetDraftReturnsIndependentSnapshot(t *testing.T) {
	s := newTestAuthoring()
	ctx := context.Background()

	m := s.AddModule(ctx, testEducator)
	quiz, _ := s.AddLesson(ctx, testEducator, AddLessonRequest{ModuleID: m.ID, Title: "测验", ContentType: model.ContentQuiz})
	if _, err := s.AddQuestionToLesson(ctx, testEducator, QuestionRequest{
		ModuleID: m.ID,
		LessonID: quiz.ID,
		Question: model.DraftQuestion{Type: model.MultipleChoice, Text: "?", Options: []string{"a", "b"}, CorrectAnswerIndices: []int{0}},
	}); err != nil {
		t.Fatal(err)
	}

	snap := s.GetDraft(ctx, testEducator)

	// 快照之后的编辑不得透写进已发出的快照
	m.Title = "快照后改名"
	if err := s.UpdateModule(ctx, testEducator, m); err != nil {
		t.Fatal(err)
	}
	s.ToggleCorrectAnswer(ctx, testEducator, m.ID, quiz.ID, snap.Modules[0].Lessons[0].Questions[0].ID, 1)

	if snap.Modules[0].Title == "快照后改名" {
		t.Error("snapshot module title changed after a later edit")
	}
	if got := snap.Modules[0].Lessons[0].Questions[0].CorrectAnswerIndices; !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("snapshot answer indices = %v, want [0]", got)
	}

	// 反向同理：改写快照不得影响会话内的树
	snap.Modules[0].Lessons[0].Questions[0].Options[0] = "改"
	live, _ := s.GetDraft(ctx, testEducator).FindLesson(m.ID, quiz.ID)
	if live.Questions[0].Options[0] != "a" {
		t.Error("mutating a snapshot leaked into the live draft")
	}
}

func TestDraftsAreIsolatedPerEducator(t *testing.T) {
	s := newTestAuthoring()
	ctx := context.Background()

	s.AddModule(ctx, 1)
	s.AddModule(ctx, 1)
	s.AddModule(ctx, 2)

	if n := len(s.GetDraft(ctx, 1).Modules); n != 2 {
		t.Errorf("educator 1 modules = %d, want 2", n)
	}
	if n := len(s.GetDraft(ctx, 2).Modules); n != 1 {
		t.Errorf("educator 2 modules = %d, want 1", n)
	}
}
