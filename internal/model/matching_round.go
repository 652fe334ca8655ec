package model

import (
	"time"

	"gorm.io/gorm"
)

// MatchingRound 配捐轮次（资金池）
type MatchingRound struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// 基本信息
	Name     string `json:"name" gorm:"not null" binding:"required"`
	Verified bool   `json:"verified" gorm:"default:false"`

	// 时间信息
	StartTime time.Time `json:"start_time" gorm:"not null"`
	EndTime   time.Time `json:"end_time" gorm:"not null;index"`

	// 支付标记：false→true 只发生一次，由派发任务通过条件更新翻转，
	// 翻转后该轮次永远不再重新结算
	Paid bool `json:"paid" gorm:"default:false;index"`

	// 关联
	Grants        []Grant        `json:"grants,omitempty" gorm:"many2many:matching_round_grants"`
	Contributions []Contribution `json:"contributions,omitempty" gorm:"foreignKey:MatchingRoundID"`
	MatchedFunds  []MatchedFund  `json:"matched_funds,omitempty" gorm:"foreignKey:MatchingRoundID;constraint:OnDelete:CASCADE"`
}

// RoundStatus 轮次状态
type RoundStatus string

const (
	RoundStatusActive      RoundStatus = "active"       // 进行中
	RoundStatusEndedUnpaid RoundStatus = "ended_unpaid" // 已结束待派发
	RoundStatusPaid        RoundStatus = "paid"         // 已派发（终态）
)

// Status 根据时间和支付标记推导轮次状态
func (r *MatchingRound) Status(now time.Time) RoundStatus {
	if r.Paid {
		return RoundStatusPaid
	}
	if r.EndTime.After(now) {
		return RoundStatusActive
	}
	return RoundStatusEndedUnpaid
}
