package model

type CourseStatus string

const (
	CourseDraftStatus   CourseStatus = "draft"
	CoursePendingReview CourseStatus = "pending_review"
	CoursePublished     CourseStatus = "published"
	CourseRejected      CourseStatus = "rejected"
	CourseRemoved       CourseStatus = "removed"
)

// swagger:model Course
type Course struct {
	BaseModel
	EducatorID  uint         `gorm:"index;not null" json:"educatorId"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Category    string       `gorm:"size:50;index;not null" json:"category"`
	Price       float64      `gorm:"default:0" json:"price"`
	CoverURL    string       `gorm:"size:255" json:"coverUrl"`
	Status      CourseStatus `gorm:"type:enum('draft','pending_review','published','rejected','removed');default:'draft';index" json:"status"`
	// 下架原因，仅 removed 状态使用
	RemovalReason string  `gorm:"size:255" json:"removalReason,omitempty"`
	Rating        float64 `gorm:"default:0" json:"rating"`
	RatingCount   int     `gorm:"default:0" json:"ratingCount"`

	Educator *User          `gorm:"foreignKey:EducatorID" json:"educator,omitempty"`
	Modules  []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CanTransitionTo 校验课程状态机转换是否合法
func (c *Course) CanTransitionTo(next CourseStatus) bool {
	switch c.Status {
	case CourseDraftStatus:
		return next == CoursePendingReview
	case CoursePendingReview:
		return next == CoursePublished || next == CourseRejected
	case CoursePublished:
		return next == CourseRemoved
	case CourseRejected:
		return next == CoursePendingReview
	default:
		return false
	}
}
