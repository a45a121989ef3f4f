package models

import (
	"time"
)

type Role string

const (
	RoleVisitor    Role = "visitor"
	RoleSubscriber Role = "subscriber"
	RoleJournalist Role = "journalist"
	RoleEditor     Role = "editor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleVisitor, RoleSubscriber, RoleJournalist, RoleEditor:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to the newsroom rather than the readership.
func (r Role) IsStaff() bool {
	return r == RoleJournalist || r == RoleEditor
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Role      Role      `gorm:"type:varchar(32);not null;default:visitor" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Articles []Article `gorm:"foreignKey:JournalistID" json:"-"`
}

type UserResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:   u.ID,
		Name: u.Name,
		Role: u.Role,
	}
}
