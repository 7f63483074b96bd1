package service

import (
	"errors"
	"testing"

	"tlms_backend/internal/model"

	"gorm.io/gorm"
)

// fakeEnrollmentStore 以 (用户, 课程) 为键的内存报名表
type fakeEnrollmentStore struct {
	enrollments map[[2]uint]*model.Enrollment
	completed   map[[2]uint]bool
	findErr     error
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		enrollments: map[[2]uint]*model.Enrollment{},
		completed:   map[[2]uint]bool{},
	}
}

func (f *fakeEnrollmentStore) Create(e *model.Enrollment) error {
	e.ID = uint(len(f.enrollments) + 1)
	f.enrollments[[2]uint{e.UserID, e.CourseID}] = e
	return nil
}

func (f *fakeEnrollmentStore) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	e, ok := f.enrollments[[2]uint{userID, courseID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeEnrollmentStore) HasCompleted(enrollmentID, lessonID uint) (bool, error) {
	return f.completed[[2]uint{enrollmentID, lessonID}], nil
}

func (f *fakeEnrollmentStore) CompleteLesson(e *model.Enrollment, lessonID uint) error {
	f.completed[[2]uint{e.ID, lessonID}] = true
	e.CompletedLessons++
	return nil
}

func (f *fakeEnrollmentStore) ListByUser(userID uint) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for key, e := range f.enrollments {
		if key[0] == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func TestIsEnrolled(t *testing.T) {
	store := newFakeEnrollmentStore()
	s := NewCourseService(nil, store, nil, nil)

	if err := store.Create(&model.Enrollment{UserID: 1, CourseID: 10}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name             string
		userID, courseID uint
		want             bool
	}{
		{"enrolled", 1, 10, true},
		{"other course", 1, 11, false},
		{"other user", 2, 10, false},
	}
	for _, tt := range tests {
		got, err := s.IsEnrolled(tt.userID, tt.courseID)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: IsEnrolled = %v, want %v", tt.name, got, tt.want)
		}
	}

	// 查询失败时错误原样上抛，不当成未报名
	store.findErr = errors.New("connection refused")
	if _, err := s.IsEnrolled(1, 10); err == nil {
		t.Error("store failure must surface as an error")
	}
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	store := newFakeEnrollmentStore()
	s := NewCourseService(nil, store, nil, nil)

	if err := store.Create(&model.Enrollment{UserID: 1, CourseID: 10, TotalLessons: 3}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.CompleteLesson(1, 10, 7); err != nil {
			t.Fatal(err)
		}
	}
	e, _ := store.FindByUserAndCourse(1, 10)
	if e.CompletedLessons != 1 {
		t.Errorf("CompletedLessons = %d, want 1 after repeated marks", e.CompletedLessons)
	}

	if _, err := s.CompleteLesson(2, 10, 7); err == nil {
		t.Error("completing a lesson without an enrollment must fail")
	}
}
