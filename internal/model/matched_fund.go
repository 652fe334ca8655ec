package model

import (
	"time"

	"gorm.io/gorm"
)

// MatchedFund 配捐派发凭证（转账成功后写入，不可变）
type MatchedFund struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	MatchingRoundID uint `json:"matching_round_id" gorm:"not null;index"`
	GrantID         uint `json:"grant_id" gorm:"not null;index"`

	// 金额信息
	Amount       float64 `json:"amount" gorm:"not null"`
	Denomination string  `json:"denomination" gorm:"not null"`
	AmountUsd    float64 `json:"amount_usd" gorm:"not null"`

	// 转账信息
	TxHash      string    `json:"tx_hash"`
	TransferRef string    `json:"transfer_ref" gorm:"uniqueIndex"` // 幂等键，转账发起前生成
	PayoutAt    time.Time `json:"payout_at" gorm:"not null"`

	// 关联
	Grant Grant `json:"grant,omitempty" gorm:"foreignKey:GrantID"`
}
