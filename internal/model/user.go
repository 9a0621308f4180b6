package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	Student   UserRole = "student"
	Teacher   UserRole = "teacher"
	Parent    UserRole = "parent"
	Counselor UserRole = "counselor"
	Admin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case Student, Teacher, Parent, Counselor, Admin:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	FirstName      string                    `gorm:"size:50;not null" json:"firstName"`
	LastName       string                    `gorm:"size:50;not null" json:"lastName"`
	Email          string                    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password       string                    `gorm:"size:100;not null" json:"-"`
	Role           UserRole                  `gorm:"size:20;default:'student'" json:"role"`
	Gender         string                    `gorm:"size:10" json:"gender,omitempty"`
	DateOfBirth    *time.Time                `json:"dateOfBirth,omitempty"`
	PhoneNumber    string                    `gorm:"size:30" json:"phoneNumber,omitempty"`
	School         string                    `gorm:"size:150" json:"school,omitempty"`
	Grade          string                    `gorm:"size:20" json:"grade,omitempty"`
	ParentEmail    string                    `gorm:"size:100" json:"parentEmail,omitempty"`
	LinkedStudents datatypes.JSONSlice[uint] `json:"linkedStudents"` // 家长关联的学生 ID
	IsActive       bool                      `gorm:"default:true" json:"isActive"`
	LastLogin      *time.Time                `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ParentStudentLink 家长与学生的关联，按学生查家长时使用。
// User.LinkedStudents 保留同一份数据用于接口返回。
type ParentStudentLink struct {
	ParentID  uint      `gorm:"primaryKey" json:"parentId"`
	StudentID uint      `gorm:"primaryKey;index" json:"studentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ParentStudentLink) TableName() string {
	return "parent_student_links"
}
