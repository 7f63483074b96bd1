package model

type ContentType string

const (
	ContentText         ContentType = "text"
	ContentVideo        ContentType = "video"
	ContentPDF          ContentType = "pdf"
	ContentPresentation ContentType = "presentation"
	ContentQuiz         ContentType = "quiz"
)

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID    uint        `gorm:"index;not null" json:"moduleId"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	ContentType ContentType `gorm:"type:enum('text','video','pdf','presentation','quiz');default:'text'" json:"contentType"`
	TextBody    string      `gorm:"type:text" json:"textBody,omitempty"`
	FileURL     string      `gorm:"size:255" json:"fileUrl,omitempty"`
	FileNote    string      `gorm:"size:255" json:"fileNote,omitempty"`
	// 视频时长（秒），上传时由 ffmpeg 探测
	DurationSeconds float64 `gorm:"default:0" json:"durationSeconds,omitempty"`
	Position        int     `gorm:"default:0" json:"position"`

	Questions []QuizQuestion `gorm:"foreignKey:LessonID" json:"questions,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}
