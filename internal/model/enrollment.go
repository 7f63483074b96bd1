package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID   uint `gorm:"index;not null" json:"userId"`
	CourseID uint `gorm:"index;not null" json:"courseId"`
	// 报名时实付价格，免费课程为 0
	PricePaid        float64    `gorm:"default:0" json:"pricePaid"`
	Progress         float64    `gorm:"default:0" json:"progress"` // 完成百分比 0-100
	CompletedLessons int        `gorm:"default:0" json:"completedLessons"`
	TotalLessons     int        `gorm:"default:0" json:"totalLessons"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// swagger:model LessonCompletion
type LessonCompletion struct {
	BaseModel
	EnrollmentID uint `gorm:"index;not null" json:"enrollmentId"`
	LessonID     uint `gorm:"index;not null" json:"lessonId"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
