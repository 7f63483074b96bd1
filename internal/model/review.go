package model

// swagger:model Review
type Review struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	UserID   uint   `gorm:"index;not null" json:"userId"`
	Rating   int    `gorm:"not null" json:"rating"` // 1-5
	Comment  string `gorm:"type:text" json:"comment"`
	Visible  bool   `gorm:"default:true" json:"visible"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
