package model

import (
	"time"

	"gorm.io/gorm"
)

// GrantTeam 项目团队成员
type GrantTeam struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	GrantID       uint   `json:"grant_id" gorm:"not null;index"`
	MemberAddress string `json:"member_address" gorm:"not null"`
	Role          string `json:"role" gorm:"default:'member'"` // owner, member
}
