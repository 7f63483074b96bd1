package model

import "strings"

// CourseDraft 讲师本地编辑中的课程树，提交前不落库。
// 严格树形所有权：草稿独占模块，模块独占课时，课时独占题目。
// swagger:model CourseDraft
type CourseDraft struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Price       float64       `json:"price"`
	Modules     []DraftModule `json:"modules"`
}

// swagger:model DraftModule
type DraftModule struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Lessons     []DraftLesson `json:"lessons"`
}

// swagger:model DraftLesson
type DraftLesson struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	ContentType ContentType `json:"contentType"`
	TextBody    string      `json:"textBody,omitempty"`
	FileURL     string      `json:"fileUrl,omitempty"`
	FileNote    string      `json:"fileNote,omitempty"`
	// 视频时长（秒），上传时探测
	DurationSeconds float64         `json:"durationSeconds,omitempty"`
	Questions       []DraftQuestion `json:"questions,omitempty"`
}

// swagger:model DraftQuestion
type DraftQuestion struct {
	ID                   string       `json:"id"`
	Type                 QuestionType `json:"type"`
	Text                 string       `json:"text"`
	Options              []string     `json:"options"`
	CorrectAnswerIndices []int        `json:"correctAnswerIndices"`
	Points               int          `json:"points"` // 1-10
	// 简答题字数上限 = Points × 100，其余题型为 0
	CharacterLimit        int  `json:"characterLimit"`
	RequiresManualGrading bool `json:"requiresManualGrading"`
}

// Clone 深拷贝整棵草稿树。会话锁外使用快照（持久化、订阅者回调、
// 提交落库）必须走这里，否则共享切片会与编辑中的树互相串改。
func (d *CourseDraft) Clone() *CourseDraft {
	out := *d
	if d.Modules != nil {
		out.Modules = make([]DraftModule, len(d.Modules))
		for i := range d.Modules {
			out.Modules[i] = d.Modules[i].clone()
		}
	}
	return &out
}

func (m *DraftModule) clone() DraftModule {
	out := *m
	if m.Lessons != nil {
		out.Lessons = make([]DraftLesson, len(m.Lessons))
		for i := range m.Lessons {
			out.Lessons[i] = m.Lessons[i].clone()
		}
	}
	return out
}

func (l *DraftLesson) clone() DraftLesson {
	out := *l
	if l.Questions != nil {
		out.Questions = make([]DraftQuestion, len(l.Questions))
		for i := range l.Questions {
			out.Questions[i] = l.Questions[i].clone()
		}
	}
	return out
}

func (q *DraftQuestion) clone() DraftQuestion {
	out := *q
	if q.Options != nil {
		out.Options = append([]string(nil), q.Options...)
	}
	if q.CorrectAnswerIndices != nil {
		out.CorrectAnswerIndices = append([]int(nil), q.CorrectAnswerIndices...)
	}
	return out
}

// FindModule 按 ID 查找模块，线性扫描
func (d *CourseDraft) FindModule(id string) (*DraftModule, bool) {
	for i := range d.Modules {
		if d.Modules[i].ID == id {
			return &d.Modules[i], true
		}
	}
	return nil, false
}

// FindLesson 按 (模块ID, 课时ID) 查找课时
func (d *CourseDraft) FindLesson(moduleID, lessonID string) (*DraftLesson, bool) {
	m, ok := d.FindModule(moduleID)
	if !ok {
		return nil, false
	}
	for i := range m.Lessons {
		if m.Lessons[i].ID == lessonID {
			return &m.Lessons[i], true
		}
	}
	return nil, false
}

// IsCourseInfoValid 标题和分类去除首尾空白后均非空才有效
func (d *CourseDraft) IsCourseInfoValid() bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.Category) != ""
}

// IsPreviewReachable 至少一个模块且其中至少一节课时才可预览
func (d *CourseDraft) IsPreviewReachable() bool {
	for i := range d.Modules {
		if len(d.Modules[i].Lessons) > 0 {
			return true
		}
	}
	return false
}

// HasContent 判断课时是否已填写与类型匹配的内容
func (l *DraftLesson) HasContent() bool {
	switch l.ContentType {
	case ContentText:
		return strings.TrimSpace(l.TextBody) != ""
	case ContentVideo, ContentPDF, ContentPresentation:
		return l.FileURL != ""
	case ContentQuiz:
		return len(l.Questions) > 0
	default:
		return false
	}
}

// SetContentType 切换课时类型并清除不兼容的内容字段。
// 切到 quiz 丢弃文本/媒体字段；切离 quiz 丢弃题目；重复切换是幂等的。
func (l *DraftLesson) SetContentType(t ContentType) {
	if l.ContentType == t {
		return
	}
	l.ContentType = t
	switch t {
	case ContentText:
		l.FileURL = ""
		l.FileNote = ""
		l.DurationSeconds = 0
		l.Questions = nil
	case ContentVideo, ContentPDF, ContentPresentation:
		l.TextBody = ""
		l.Questions = nil
	case ContentQuiz:
		l.TextBody = ""
		l.FileURL = ""
		l.FileNote = ""
		l.DurationSeconds = 0
		if l.Questions == nil {
			l.Questions = []DraftQuestion{}
		}
	}
}

// Normalize 按题型收敛派生字段，任何修改后都应调用。幂等。
func (q *DraftQuestion) Normalize() {
	if q.Points < 1 {
		q.Points = 1
	}
	if q.Points > 10 {
		q.Points = 10
	}

	switch q.Type {
	case Descriptive:
		q.Options = []string{}
		q.CorrectAnswerIndices = []int{}
		q.RequiresManualGrading = true
		q.CharacterLimit = q.Points * 100
	case SingleChoice:
		q.RequiresManualGrading = false
		q.CharacterLimit = 0
		if len(q.CorrectAnswerIndices) > 1 {
			q.CorrectAnswerIndices = q.CorrectAnswerIndices[:1]
		}
	case MultipleChoice:
		q.RequiresManualGrading = false
		q.CharacterLimit = 0
	}
}

// ToggleCorrectAnswer 切换正确选项：单选替换，多选增删
func (q *DraftQuestion) ToggleCorrectAnswer(index int) {
	if index < 0 || index >= len(q.Options) {
		return
	}
	switch q.Type {
	case SingleChoice:
		q.CorrectAnswerIndices = []int{index}
	case MultipleChoice:
		for i, v := range q.CorrectAnswerIndices {
			if v == index {
				q.CorrectAnswerIndices = append(q.CorrectAnswerIndices[:i], q.CorrectAnswerIndices[i+1:]...)
				return
			}
		}
		q.CorrectAnswerIndices = append(q.CorrectAnswerIndices, index)
	}
}

// IsValid 题干非空，且（简答题 或 所有选项非空且已选正确答案）
func (q *DraftQuestion) IsValid() bool {
	if strings.TrimSpace(q.Text) == "" {
		return false
	}
	if q.Type == Descriptive {
		return true
	}
	if len(q.Options) == 0 || len(q.CorrectAnswerIndices) == 0 {
		return false
	}
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return false
		}
	}
	return true
}

// IsQuizValid 课时内所有题目均有效（且至少一题）
func (l *DraftLesson) IsQuizValid() bool {
	if l.ContentType != ContentQuiz || len(l.Questions) == 0 {
		return false
	}
	for i := range l.Questions {
		if !l.Questions[i].IsValid() {
			return false
		}
	}
	return true
}
