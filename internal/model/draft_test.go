package model

import (
	"reflect"
	"testing"
)

func sampleDraft() CourseDraft {
	return CourseDraft{
		Title:    "Go 入门",
		Category: "编程",
		Modules: []DraftModule{
			{
				ID:    "m1",
				Title: "基础",
				Lessons: []DraftLesson{
					{ID: "l1", Title: "变量", ContentType: ContentText, TextBody: "正文"},
					{ID: "l2", Title: "测验", ContentType: ContentQuiz, Questions: []DraftQuestion{}},
				},
			},
			{ID: "m2", Title: "进阶"},
		},
	}
}

func TestFindModule(t *testing.T) {
	d := sampleDraft()

	m, ok := d.FindModule("m2")
	if !ok || m.Title != "进阶" {
		t.Errorf("FindModule(m2) = %v, %v", m, ok)
	}

	if _, ok := d.FindModule("missing"); ok {
		t.Error("FindModule(missing) should report not found")
	}

	// 返回的是树内指针，修改应生效
	m.Title = "高级"
	if d.Modules[1].Title != "高级" {
		t.Error("FindModule should return a pointer into the tree")
	}
}

func TestFindLesson(t *testing.T) {
	d := sampleDraft()

	l, ok := d.FindLesson("m1", "l2")
	if !ok || l.ContentType != ContentQuiz {
		t.Errorf("FindLesson(m1, l2) = %v, %v", l, ok)
	}

	if _, ok := d.FindLesson("m2", "l1"); ok {
		t.Error("lesson lookup must be scoped to its owning module")
	}
}

func TestIsCourseInfoValid(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		category string
		want     bool
	}{
		{name: "both set", title: "Go", category: "编程", want: true},
		{name: "empty title", title: "", category: "编程", want: false},
		{name: "whitespace title", title: "   ", category: "编程", want: false},
		{name: "whitespace category", title: "Go", category: "\t\n", want: false},
		{name: "both empty", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CourseDraft{Title: tt.title, Category: tt.category}
			if got := d.IsCourseInfoValid(); got != tt.want {
				t.Errorf("IsCourseInfoValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPreviewReachable(t *testing.T) {
	d := CourseDraft{}
	if d.IsPreviewReachable() {
		t.Error("empty draft should not be previewable")
	}

	d.Modules = []DraftModule{{ID: "m1"}}
	if d.IsPreviewReachable() {
		t.Error("module without lessons should not be previewable")
	}

	d.Modules[0].Lessons = []DraftLesson{{ID: "l1"}}
	if !d.IsPreviewReachable() {
		t.Error("one module with one lesson should be previewable")
	}
}

func TestSetContentTypeClearsIncompatiblePayload(t *testing.T) {
	l := DraftLesson{
		ID:          "l1",
		ContentType: ContentVideo,
		FileURL:     "/uploads/a.mp4",
		FileNote:    "第一讲",
		DurationSeconds: 120,
	}

	l.SetContentType(ContentQuiz)
	if l.FileURL != "" || l.FileNote != "" || l.DurationSeconds != 0 {
		t.Errorf("switching to quiz must drop media payload: %+v", l)
	}
	if l.Questions == nil {
		t.Error("switching to quiz should initialize the question list")
	}

	l.Questions = append(l.Questions, DraftQuestion{ID: "q1", Type: SingleChoice})
	l.SetContentType(ContentText)
	if l.Questions != nil {
		t.Error("switching away from quiz must drop questions")
	}

	// 幂等：同类型重复设置不清内容
	l.TextBody = "正文"
	l.SetContentType(ContentText)
	if l.TextBody != "正文" {
		t.Error("setting the same type must not clear content")
	}
}

func TestNormalizeDescriptive(t *testing.T) {
	q := DraftQuestion{
		ID:                   "q1",
		Type:                 Descriptive,
		Text:                 "简述接口",
		Options:              []string{"a", "b"},
		CorrectAnswerIndices: []int{0},
		Points:               5,
	}

	q.Normalize()

	if len(q.Options) != 0 || len(q.CorrectAnswerIndices) != 0 {
		t.Errorf("descriptive question must not keep options: %+v", q)
	}
	if !q.RequiresManualGrading {
		t.Error("descriptive question requires manual grading")
	}
	if q.CharacterLimit != 500 {
		t.Errorf("CharacterLimit = %d, want 500", q.CharacterLimit)
	}

	// 幂等
	before := q
	q.Normalize()
	if !reflect.DeepEqual(before, q) {
		t.Errorf("Normalize must be idempotent: %+v vs %+v", before, q)
	}
}

func TestNormalizePointsClamp(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{points: 0, want: 1},
		{points: -3, want: 1},
		{points: 1, want: 1},
		{points: 10, want: 10},
		{points: 11, want: 10},
	}
	for _, tt := range tests {
		q := DraftQuestion{Type: SingleChoice, Points: tt.points}
		q.Normalize()
		if q.Points != tt.want {
			t.Errorf("Normalize points %d = %d, want %d", tt.points, q.Points, tt.want)
		}
	}
}

func TestNormalizeSingleChoiceTruncatesAnswers(t *testing.T) {
	q := DraftQuestion{
		Type:                 SingleChoice,
		Points:               2,
		CorrectAnswerIndices: []int{2, 0, 1},
		CharacterLimit:       300,
	}
	q.Normalize()

	if !reflect.DeepEqual(q.CorrectAnswerIndices, []int{2}) {
		t.Errorf("CorrectAnswerIndices = %v, want [2]", q.CorrectAnswerIndices)
	}
	if q.CharacterLimit != 0 || q.RequiresManualGrading {
		t.Errorf("choice question must not carry descriptive fields: %+v", q)
	}
}

func TestToggleCorrectAnswer(t *testing.T) {
	opts := []string{"A", "B", "C"}

	t.Run("single choice replaces", func(t *testing.T) {
		q := DraftQuestion{Type: SingleChoice, Options: opts, CorrectAnswerIndices: []int{0}}
		q.ToggleCorrectAnswer(2)
		if !reflect.DeepEqual(q.CorrectAnswerIndices, []int{2}) {
			t.Errorf("indices = %v, want [2]", q.CorrectAnswerIndices)
		}
	})

	t.Run("multiple choice toggles membership", func(t *testing.T) {
		q := DraftQuestion{Type: MultipleChoice, Options: opts}
		q.ToggleCorrectAnswer(1)
		q.ToggleCorrectAnswer(2)
		if !reflect.DeepEqual(q.CorrectAnswerIndices, []int{1, 2}) {
			t.Errorf("indices = %v, want [1 2]", q.CorrectAnswerIndices)
		}
		q.ToggleCorrectAnswer(1)
		if !reflect.DeepEqual(q.CorrectAnswerIndices, []int{2}) {
			t.Errorf("indices after untoggle = %v, want [2]", q.CorrectAnswerIndices)
		}
	})

	t.Run("out of range is a no-op", func(t *testing.T) {
		q := DraftQuestion{Type: MultipleChoice, Options: opts, CorrectAnswerIndices: []int{0}}
		q.ToggleCorrectAnswer(-1)
		q.ToggleCorrectAnswer(3)
		if !reflect.DeepEqual(q.CorrectAnswerIndices, []int{0}) {
			t.Errorf("indices = %v, want [0]", q.CorrectAnswerIndices)
		}
	})
}

func TestQuestionIsValid(t *testing.T) {
	tests := []struct {
		name string
		q    DraftQuestion
		want bool
	}{
		{name: "empty text", q: DraftQuestion{Type: SingleChoice, Text: " "}, want: false},
		{name: "descriptive with text", q: DraftQuestion{Type: Descriptive, Text: "简述"}, want: true},
		{name: "choice without options", q: DraftQuestion{Type: SingleChoice, Text: "选"}, want: false},
		{name: "choice without answer", q: DraftQuestion{Type: SingleChoice, Text: "选", Options: []string{"A"}}, want: false},
		{name: "blank option", q: DraftQuestion{Type: MultipleChoice, Text: "选", Options: []string{"A", "  "}, CorrectAnswerIndices: []int{0}}, want: false},
		{name: "valid choice", q: DraftQuestion{Type: SingleChoice, Text: "选", Options: []string{"A", "B"}, CorrectAnswerIndices: []int{1}}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsQuizValid(t *testing.T) {
	valid := DraftQuestion{Type: SingleChoice, Text: "选", Options: []string{"A", "B"}, CorrectAnswerIndices: []int{0}}

	l := DraftLesson{ContentType: ContentQuiz}
	if l.IsQuizValid() {
		t.Error("quiz without questions is invalid")
	}

	l.Questions = []DraftQuestion{valid, {Type: SingleChoice, Text: ""}}
	if l.IsQuizValid() {
		t.Error("one invalid question invalidates the quiz")
	}

	l.Questions = []DraftQuestion{valid}
	if !l.IsQuizValid() {
		t.Error("quiz with one valid question is valid")
	}

	l.ContentType = ContentText
	if l.IsQuizValid() {
		t.Error("non-quiz lesson can never be a valid quiz")
	}
}

func TestCourseStatusTransitions(t *testing.T) {
	tests := []struct {
		from CourseStatus
		to   CourseStatus
		want bool
	}{
		{CourseDraftStatus, CoursePendingReview, true},
		{CourseDraftStatus, CoursePublished, false},
		{CoursePendingReview, CoursePublished, true},
		{CoursePendingReview, CourseRejected, true},
		{CoursePendingReview, CourseRemoved, false},
		{CoursePublished, CourseRemoved, true},
		{CoursePublished, CourseDraftStatus, false},
		{CourseRejected, CoursePendingReview, true},
		{CourseRemoved, CoursePublished, false},
	}
	for _, tt := range tests {
		c := Course{Status: tt.from}
		if got := c.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
