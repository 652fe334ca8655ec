package model

import (
	"time"

	"gorm.io/gorm"
)

// Grant 受助项目模型
type Grant struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// 基本信息
	Name        string `json:"name" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`

	// 募资信息
	FundingGoal float64 `json:"funding_goal" gorm:"not null" binding:"required,min=0"`

	// 审核状态（未通过审核的项目不参与配捐，也不出现在公开列表）
	Verified bool `json:"verified" gorm:"default:false"`

	// 收款账户地址
	RecipientAddress string `json:"recipient_address" gorm:"not null"`

	// 关联
	Team           []GrantTeam    `json:"team,omitempty" gorm:"foreignKey:GrantID"`
	Contributions  []Contribution `json:"contributions,omitempty" gorm:"foreignKey:GrantID"`
	MatchingRounds []MatchingRound `json:"matching_rounds,omitempty" gorm:"many2many:matching_round_grants"`
}
