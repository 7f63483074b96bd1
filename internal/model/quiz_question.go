package model

import "encoding/json"

type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	Descriptive    QuestionType = "descriptive"
)

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	LessonID uint            `gorm:"index;not null" json:"lessonId"`
	Type     QuestionType    `gorm:"type:enum('single_choice','multiple_choice','descriptive');not null" json:"type"`
	Text     string          `gorm:"type:text;not null" json:"text"`
	Options  json.RawMessage `gorm:"type:json" json:"options"` // JSON: []string
	// JSON: []int，正确选项下标
	CorrectAnswerIndices  json.RawMessage `gorm:"type:json" json:"correctAnswerIndices"`
	Points                int             `gorm:"default:1" json:"points"`
	CharacterLimit        int             `gorm:"default:0" json:"characterLimit"`
	RequiresManualGrading bool            `gorm:"default:false" json:"requiresManualGrading"`
	Position              int             `gorm:"default:0" json:"position"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
