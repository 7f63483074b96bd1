package service

import (
	"errors"
	"testing"
	"time"

	"tlms_backend/internal/model"
	"tlms_backend/internal/util"
	"tlms_backend/pkg/logger"

	"go.uber.org/zap"
)

// fakeApprovalStore 内存用户表，记录审批状态写入
type fakeApprovalStore struct {
	users   map[uint]*model.User
	updated map[uint]model.ApprovalStatus
}

func (f *fakeApprovalStore) FindByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (f *fakeApprovalStore) ListPendingEducators(page, limit int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Role == model.Educator && u.ApprovalStatus == model.ApprovalPending {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeApprovalStore) UpdateApprovalStatus(userID uint, status model.ApprovalStatus) error {
	if f.updated == nil {
		f.updated = make(map[uint]model.ApprovalStatus)
	}
	f.updated[userID] = status
	return nil
}

// fakeCourseStore 内存课程表，记录状态转换写入
type fakeCourseStore struct {
	courses    map[uint]*model.Course
	lastStatus model.CourseStatus
	lastReason string
	statusErr  error
}

func (f *fakeCourseStore) FindByID(id uint) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (f *fakeCourseStore) ListByStatus(status model.CourseStatus, page, limit int) ([]model.Course, int64, error) {
	var out []model.Course
	for _, c := range f.courses {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourseStore) UpdateStatus(id uint, status model.CourseStatus, reason string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.lastStatus = status
	f.lastReason = reason
	if c, ok := f.courses[id]; ok {
		c.Status = status
		c.RemovalReason = reason
	}
	return nil
}

// fakeModNotifier 记录通知调用，done 信号用于等待异步发送
type fakeModNotifier struct {
	err      error
	done     chan string
	lastArgs []string
}

func newFakeModNotifier() *fakeModNotifier {
	return &fakeModNotifier{done: make(chan string, 4)}
}

func (f *fakeModNotifier) SendCourseRemovalNotification(toEmail, toName, courseTitle, reason string) error {
	f.lastArgs = []string{toEmail, courseTitle, reason}
	f.done <- "removal"
	return f.err
}

func (f *fakeModNotifier) SendCourseReviewResult(toEmail, toName, courseTitle string, approved bool, reason string) error {
	f.done <- "review"
	return f.err
}

func (f *fakeModNotifier) SendEducatorApprovalResult(toEmail, toName string, approved bool) error {
	f.done <- "educator"
	return f.err
}

func (f *fakeModNotifier) wait(t *testing.T, want string) {
	t.Helper()
	select {
	case got := <-f.done:
		if got != want {
			t.Fatalf("notification = %q, want %q", got, want)
		}
	case <-time.After(time.Second):
		t.Fatalf("no %q notification sent", want)
	}
}

func pendingEducatorUser(id uint) *model.User {
	u := &model.User{Name: "王讲师", Email: "wang@example.com", Role: model.Educator, ApprovalStatus: model.ApprovalPending}
	u.ID = id
	return u
}

func publishedCourse(id uint, educator *model.User) *model.Course {
	c := &model.Course{Title: "Go 入门", Status: model.CoursePublished, Educator: educator}
	c.ID = id
	if educator != nil {
		c.EducatorID = educator.ID
	}
	return c
}

func newModerationFixture(notifier Notifier) (*ModerationService, *fakeApprovalStore, *fakeCourseStore) {
	users := &fakeApprovalStore{users: map[uint]*model.User{}}
	courses := &fakeCourseStore{courses: map[uint]*model.Course{}}
	return NewModerationService(users, courses, notifier), users, courses
}

func TestRemovePublishedCourse(t *testing.T) {
	notifier := newFakeModNotifier()
	s, _, courses := newModerationFixture(notifier)
	courses.courses[3] = publishedCourse(3, pendingEducatorUser(5))

	if err := s.RemoveCourse(3, "版权投诉"); err != nil {
		t.Fatal(err)
	}
	if courses.lastStatus != model.CourseRemoved || courses.lastReason != "版权投诉" {
		t.Errorf("status = %q reason = %q", courses.lastStatus, courses.lastReason)
	}

	notifier.wait(t, "removal")
	if got := notifier.lastArgs; got[0] != "wang@example.com" || got[2] != "版权投诉" {
		t.Errorf("notification args = %v", got)
	}
}

func TestRemoveCourseRequiresReason(t *testing.T) {
	s, _, courses := newModerationFixture(nil)
	courses.courses[3] = publishedCourse(3, nil)

	for _, reason := range []string{"", "   "} {
		if err := s.RemoveCourse(3, reason); err != util.ErrRemovalReasonRequired {
			t.Errorf("reason %q: err = %v, want ErrRemovalReasonRequired", reason, err)
		}
	}
	if courses.lastStatus != "" {
		t.Error("rejected removal must not touch the course")
	}
}

func TestRemoveCourseNotificationFailureDoesNotBlock(t *testing.T) {
	prev := logger.Log
	logger.Log = zap.NewNop()
	defer func() { logger.Log = prev }()

	notifier := newFakeModNotifier()
	notifier.err = errors.New("smtp unavailable")
	s, _, courses := newModerationFixture(notifier)
	courses.courses[3] = publishedCourse(3, pendingEducatorUser(5))

	// 通知失败只记日志，下架本身必须成功
	if err := s.RemoveCourse(3, "投诉"); err != nil {
		t.Fatalf("removal must succeed even when the notifier fails: %v", err)
	}
	if courses.courses[3].Status != model.CourseRemoved {
		t.Errorf("status = %q, want removed", courses.courses[3].Status)
	}
	notifier.wait(t, "removal")
}

func TestCourseReviewTransitionGuards(t *testing.T) {
	s, _, courses := newModerationFixture(nil)

	tests := []struct {
		name string
		from model.CourseStatus
		call func() error
	}{
		{"approve published", model.CoursePublished, func() error { return s.ApproveCourse(1) }},
		{"reject draft", model.CourseDraftStatus, func() error { return s.RejectCourse(1, "理由") }},
		{"remove pending", model.CoursePendingReview, func() error { return s.RemoveCourse(1, "理由") }},
		{"remove removed", model.CourseRemoved, func() error { return s.RemoveCourse(1, "理由") }},
	}
	for _, tt := range tests {
		c := publishedCourse(1, nil)
		c.Status = tt.from
		courses.courses[1] = c
		courses.lastStatus = ""
		if err := tt.call(); err != util.ErrInvalidStatusTransition {
			t.Errorf("%s: err = %v, want ErrInvalidStatusTransition", tt.name, err)
		}
		if courses.lastStatus != "" {
			t.Errorf("%s: guarded transition must not write", tt.name)
		}
	}

	if err := s.ApproveCourse(99); err != util.ErrCourseNotFound {
		t.Errorf("missing course: err = %v, want ErrCourseNotFound", err)
	}
}

func TestApproveCourseNotifiesEducator(t *testing.T) {
	notifier := newFakeModNotifier()
	s, _, courses := newModerationFixture(notifier)
	c := publishedCourse(2, pendingEducatorUser(5))
	c.Status = model.CoursePendingReview
	courses.courses[2] = c

	if err := s.ApproveCourse(2); err != nil {
		t.Fatal(err)
	}
	if courses.lastStatus != model.CoursePublished {
		t.Errorf("status = %q, want published", courses.lastStatus)
	}
	notifier.wait(t, "review")
}

func TestResolveEducator(t *testing.T) {
	notifier := newFakeModNotifier()
	s, users, _ := newModerationFixture(notifier)
	users.users[5] = pendingEducatorUser(5)

	if err := s.ApproveEducator(5); err != nil {
		t.Fatal(err)
	}
	if users.updated[5] != model.ApprovalApproved {
		t.Errorf("approval = %q, want approved", users.updated[5])
	}
	notifier.wait(t, "educator")

	// 已审批过或非讲师账号不能再走审批
	approved := pendingEducatorUser(6)
	approved.ApprovalStatus = model.ApprovalApproved
	users.users[6] = approved
	if err := s.RejectEducator(6); err != util.ErrPermissionDenied {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}

	learner := &model.User{Role: model.Learner, ApprovalStatus: model.ApprovalPending}
	learner.ID = 7
	users.users[7] = learner
	if err := s.ApproveEducator(7); err != util.ErrPermissionDenied {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}

	if err := s.ApproveEducator(99); err != util.ErrUserNotFound {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
