package model

import (
	"time"
)

type UserRole string

const (
	Learner  UserRole = "learner"
	Educator UserRole = "educator"
	Admin    UserRole = "admin"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('learner','educator','admin');default:'learner'" json:"role"`
	// 讲师账号需要管理员审批后才能发布课程
	ApprovalStatus ApprovalStatus `gorm:"type:enum('pending','approved','rejected');default:'approved'" json:"approvalStatus"`
	Bio            string         `gorm:"type:text" json:"bio"`
	Avatar         string         `gorm:"size:255" json:"avatar"`
	Disabled       bool           `gorm:"default:false" json:"disabled"`
	LastLogin      time.Time      `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen       time.Time      `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsApprovedEducator() bool {
	return u.Role == Educator && u.ApprovalStatus == ApprovalApproved
}
