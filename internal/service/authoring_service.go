package service

import (
	"context"
	"sync"
	"tlms_backend/internal/model"
	"tlms_backend/internal/repository"
	"tlms_backend/internal/util"
	"tlms_backend/pkg/logger"

	"go.uber.org/zap"
)

// AuthoringService 管理讲师的课程草稿编辑会话。
// 每位讲师同一时刻只有一份草稿，由唯一会话独占修改；
// 每次变更自增版本号并通知订阅者，同时把快照写入 Redis。
type AuthoringService struct {
	Drafts *repository.DraftRepository

	mu       sync.Mutex
	sessions map[uint]*draftSession
}

type draftSession struct {
	mu        sync.Mutex
	draft     *model.CourseDraft
	revision  int64
	listeners []func(revision int64)
}

func NewAuthoringService(drafts *repository.DraftRepository) *AuthoringService {
	return &AuthoringService{
		Drafts:   drafts,
		sessions: make(map[uint]*draftSession),
	}
}

// session 获取或创建讲师的编辑会话，冷启动时从 Redis 恢复快照
func (s *AuthoringService) session(ctx context.Context, educatorID uint) *draftSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[educatorID]; ok {
		return sess
	}

	sess := &draftSession{draft: &model.CourseDraft{Modules: []model.DraftModule{}}}
	if s.Drafts != nil {
		if saved, err := s.Drafts.Load(ctx, educatorID); err != nil {
			logger.Log.Error("Failed to load draft snapshot", zap.Uint("educator", educatorID), zap.Error(err))
		} else if saved != nil {
			sess.draft = saved
		}
	}
	s.sessions[educatorID] = sess
	return sess
}

// mutate 在会话锁内执行变更，然后递增版本号、通知订阅者并持久化快照。
// 快照写入失败只记日志：内存中的草稿仍是编辑期间的权威状态。
func (s *AuthoringService) mutate(ctx context.Context, educatorID uint, fn func(d *model.CourseDraft)) {
	sess := s.session(ctx, educatorID)
	sess.mu.Lock()
	fn(sess.draft)
	sess.revision++
	rev := sess.revision
	listeners := sess.listeners
	snapshot := sess.draft.Clone()
	sess.mu.Unlock()

	for _, l := range listeners {
		l(rev)
	}

	if s.Drafts != nil {
		if err := s.Drafts.Save(ctx, educatorID, snapshot); err != nil {
			logger.Log.Error("Failed to persist draft snapshot", zap.Uint("educator", educatorID), zap.Error(err))
		}
	}
}

// Subscribe 注册状态变更回调，与具体渲染层解耦
func (s *AuthoringService) Subscribe(ctx context.Context, educatorID uint, fn func(revision int64)) {
	sess := s.session(ctx, educatorID)
	sess.mu.Lock()
	sess.listeners = append(sess.listeners, fn)
	sess.mu.Unlock()
}

func (s *AuthoringService) Revision(ctx context.Context, educatorID uint) int64 {
	sess := s.session(ctx, educatorID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.revision
}

func (s *AuthoringService) GetDraft(ctx context.Context, educatorID uint) *model.CourseDraft {
	sess := s.session(ctx, educatorID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.draft.Clone()
}

// StartDraft 开始新草稿，丢弃已有内容
func (s *AuthoringService) StartDraft(ctx context.Context, educatorID uint) {
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		*d = model.CourseDraft{Modules: []model.DraftModule{}}
	})
}

// Discard 提交成功后丢弃本地草稿
func (s *AuthoringService) Discard(ctx context.Context, educatorID uint) {
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		*d = model.CourseDraft{Modules: []model.DraftModule{}}
	})
	if s.Drafts != nil {
		if err := s.Drafts.Delete(ctx, educatorID); err != nil {
			logger.Log.Error("Failed to delete draft snapshot", zap.Uint("educator", educatorID), zap.Error(err))
		}
	}
}

type CourseInfoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

func (s *AuthoringService) UpdateCourseInfo(ctx context.Context, educatorID uint, req CourseInfoRequest) {
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		d.Title = req.Title
		d.Description = req.Description
		d.Category = req.Category
		if req.Price >= 0 {
			d.Price = req.Price
		}
	})
}

// AddModule 追加空模块，ID 服务端生成且不复用
func (s *AuthoringService) AddModule(ctx context.Context, educatorID uint) model.DraftModule {
	m := model.DraftModule{
		ID:      model.GenerateUUID(),
		Lessons: []model.DraftLesson{},
	}
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		d.Modules = append(d.Modules, m)
	})
	return m
}

// UpdateModule 按 ID 整体替换模块的标题/描述，课时列表不受影响
func (s *AuthoringService) UpdateModule(ctx context.Context, educatorID uint, module model.DraftModule) error {
	err := util.ErrModuleNotFound
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		if m, ok := d.FindModule(module.ID); ok {
			m.Title = module.Title
			m.Description = module.Description
			err = nil
		}
	})
	return err
}

// DeleteModule 按位置删除模块，级联删除其下课时；越界则静默忽略
func (s *AuthoringService) DeleteModule(ctx context.Context, educatorID uint, index int) {
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		if index < 0 || index >= len(d.Modules) {
			return
		}
		d.Modules = append(d.Modules[:index], d.Modules[index+1:]...)
	})
}

type AddLessonRequest struct {
	ModuleID    string            `json:"moduleId" binding:"required"`
	Title       string            `json:"title"`
	ContentType model.ContentType `json:"contentType"`
}

func (s *AuthoringService) AddLesson(ctx context.Context, educatorID uint, req AddLessonRequest) (model.DraftLesson, error) {
	if req.ContentType == "" {
		req.ContentType = model.ContentText
	}
	l := model.DraftLesson{
		ID:          model.GenerateUUID(),
		Title:       req.Title,
		ContentType: req.ContentType,
	}
	if req.ContentType == model.ContentQuiz {
		l.Questions = []model.DraftQuestion{}
	}

	err := util.ErrModuleNotFound
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		if m, ok := d.FindModule(req.ModuleID); ok {
			m.Lessons = append(m.Lessons, l)
			err = nil
		}
	})
	return l, err
}

// UpdateLesson 按 ID 整体替换课时。内容类型切换时清除不兼容的
// 内容字段（切到 quiz 丢弃媒体字段，切离 quiz 丢弃题目）。
func (s *AuthoringService) UpdateLesson(ctx context.Context, educatorID uint, moduleID string, lesson model.DraftLesson) error {
	err := util.ErrLessonNotFound
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		m, ok := d.FindModule(moduleID)
		if !ok {
			err = util.ErrModuleNotFound
			return
		}
		for i := range m.Lessons {
			if m.Lessons[i].ID != lesson.ID {
				continue
			}
			prev := m.Lessons[i].ContentType
			if prev != lesson.ContentType {
				// 先保留原课时，按新类型清场，再并入兼容字段
				kept := m.Lessons[i]
				kept.SetContentType(lesson.ContentType)
				kept.Title = lesson.Title
				switch lesson.ContentType {
				case model.ContentText:
					kept.TextBody = lesson.TextBody
				case model.ContentVideo, model.ContentPDF, model.ContentPresentation:
					kept.FileURL = lesson.FileURL
					kept.FileNote = lesson.FileNote
					kept.DurationSeconds = lesson.DurationSeconds
				case model.ContentQuiz:
					// 题目只能通过题目级操作添加
				}
				m.Lessons[i] = kept
			} else {
				if lesson.Questions == nil {
					lesson.Questions = m.Lessons[i].Questions
				}
				for qi := range lesson.Questions {
					lesson.Questions[qi].Normalize()
				}
				m.Lessons[i] = lesson
			}
			err = nil
			return
		}
	})
	return err
}

// DeleteLesson 按位置删除课时；越界则静默忽略
func (s *AuthoringService) DeleteLesson(ctx context.Context, educatorID uint, moduleID string, index int) {
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		m, ok := d.FindModule(moduleID)
		if !ok {
			return
		}
		if index < 0 || index >= len(m.Lessons) {
			return
		}
		m.Lessons = append(m.Lessons[:index], m.Lessons[index+1:]...)
	})
}

// MoveLesson 课时重排：纯置换，不丢失、不改写任何课时内容
func (s *AuthoringService) MoveLesson(ctx context.Context, educatorID uint, moduleID string, from, to int) {
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		m, ok := d.FindModule(moduleID)
		if !ok {
			return
		}
		n := len(m.Lessons)
		if from < 0 || from >= n || to < 0 || to >= n || from == to {
			return
		}
		lesson := m.Lessons[from]
		rest := append(m.Lessons[:from:from], m.Lessons[from+1:]...)
		m.Lessons = append(rest[:to:to], append([]model.DraftLesson{lesson}, rest[to:]...)...)
	})
}

type QuestionRequest struct {
	ModuleID string              `json:"moduleId" binding:"required"`
	LessonID string              `json:"lessonId" binding:"required"`
	Question model.DraftQuestion `json:"question" binding:"required"`
}

// AddQuestionToLesson 向 quiz 课时追加题目，ID 服务端生成
func (s *AuthoringService) AddQuestionToLesson(ctx context.Context, educatorID uint, req QuestionRequest) (model.DraftQuestion, error) {
	q := req.Question
	q.ID = model.GenerateUUID()
	if q.Type == "" {
		q.Type = model.SingleChoice
	}
	q.Normalize()

	err := util.ErrLessonNotFound
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		if l, ok := d.FindLesson(req.ModuleID, req.LessonID); ok && l.ContentType == model.ContentQuiz {
			l.Questions = append(l.Questions, q)
			err = nil
		}
	})
	return q, err
}

// UpdateQuestionInLesson 按 ID 整体替换题目，替换后归一化派生字段
func (s *AuthoringService) UpdateQuestionInLesson(ctx context.Context, educatorID uint, req QuestionRequest) error {
	err := util.ErrQuestionNotFound
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		l, ok := d.FindLesson(req.ModuleID, req.LessonID)
		if !ok {
			err = util.ErrLessonNotFound
			return
		}
		for i := range l.Questions {
			if l.Questions[i].ID == req.Question.ID {
				q := req.Question
				q.Normalize()
				l.Questions[i] = q
				err = nil
				return
			}
		}
	})
	return err
}

// DeleteQuestionFromLesson 按位置删除题目；越界则静默忽略
func (s *AuthoringService) DeleteQuestionFromLesson(ctx context.Context, educatorID uint, moduleID, lessonID string, index int) {
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		l, ok := d.FindLesson(moduleID, lessonID)
		if !ok {
			return
		}
		if index < 0 || index >= len(l.Questions) {
			return
		}
		l.Questions = append(l.Questions[:index], l.Questions[index+1:]...)
	})
}

// ToggleCorrectAnswer 切换题目正确选项：单选替换，多选增删
func (s *AuthoringService) ToggleCorrectAnswer(ctx context.Context, educatorID uint, moduleID, lessonID, questionID string, optionIndex int) error {
	err := util.ErrQuestionNotFound
	s.mutate(ctx, educatorID, func(d *model.CourseDraft) {
		l, ok := d.FindLesson(moduleID, lessonID)
		if !ok {
			err = util.ErrLessonNotFound
			return
		}
		for i := range l.Questions {
			if l.Questions[i].ID == questionID {
				l.Questions[i].ToggleCorrectAnswer(optionIndex)
				err = nil
				return
			}
		}
	})
	return err
}

type DraftValidity struct {
	CourseInfoValid  bool `json:"courseInfoValid"`
	PreviewReachable bool `json:"previewReachable"`
	QuizzesValid     bool `json:"quizzesValid"`
}

// Validity 当前草稿的校验状态，供前端决定哪些操作可用
func (s *AuthoringService) Validity(ctx context.Context, educatorID uint) DraftValidity {
	d := s.GetDraft(ctx, educatorID)

	quizzesValid := true
	for mi := range d.Modules {
		for li := range d.Modules[mi].Lessons {
			l := &d.Modules[mi].Lessons[li]
			if l.ContentType == model.ContentQuiz && !l.IsQuizValid() {
				quizzesValid = false
			}
		}
	}

	return DraftValidity{
		CourseInfoValid:  d.IsCourseInfoValid(),
		PreviewReachable: d.IsPreviewReachable(),
		QuizzesValid:     quizzesValid,
	}
}
