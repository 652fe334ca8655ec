package model

import (
	"time"

	"gorm.io/gorm"
)

// ContributionTarget 捐款去向
type ContributionTarget string

const (
	TargetGrant ContributionTarget = "grant" // 直接捐给项目
	TargetRound ContributionTarget = "round" // 注入配捐资金池
)

// Contribution 捐款记录（创建后不可变，仅 flagged 可更新）
type Contribution struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// 捐款人地址
	ContributorAddress string `json:"contributor_address" gorm:"not null;index"`

	// 金额信息
	Amount       float64 `json:"amount" gorm:"not null" binding:"required,gt=0"`
	Denomination string  `json:"denomination" gorm:"not null"`
	AmountUsd    float64 `json:"amount_usd" gorm:"not null"`

	// 去向：grant 和 round 二选一，由入口处解析，不做运行时类型判断
	Target          ContributionTarget `json:"target" gorm:"not null"`
	GrantID         *uint              `json:"grant_id" gorm:"index"`
	MatchingRoundID *uint              `json:"matching_round_id" gorm:"index"`

	// 风控标记（被标记的捐款不参与配捐计算）
	Flagged bool `json:"flagged" gorm:"default:false"`
}
