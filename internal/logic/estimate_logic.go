package logic

import (
	"github.com/supermodularxyz/simplegrants-sub000/internal/logger"
	"github.com/supermodularxyz/simplegrants-sub000/internal/qf"
	"gorm.io/gorm"
)

// EstimateLogic 配捐边际影响估算。
// 只读操作，用于捐款前预览"再捐X美元能带来多少额外配捐"。
type EstimateLogic struct {
	roundLogic *MatchingRoundLogic
}

// NewEstimateLogic 创建配捐估算逻辑
func NewEstimateLogic(db *gorm.DB) *EstimateLogic {
	return &EstimateLogic{roundLogic: NewMatchingRoundLogic(db)}
}

// EstimateMatchedAmount 估算一笔假想捐款能为项目带来的额外配捐金额。
// 面向UI的预览接口，任何异常输入或账本读取失败都降级为 0，从不报错：
//   - 金额 <= 0 返回 0
//   - 项目不在任何进行中的轮次里返回 0
//   - 轮次已结束或已派发返回 0
func (l *EstimateLogic) EstimateMatchedAmount(donationUsd float64, grantID uint) float64 {
	if donationUsd <= 0 {
		return 0
	}

	round, err := l.roundLogic.GetActiveRoundForGrant(grantID)
	if err != nil {
		logger.Error("Failed to look up active round for grant %d: %v", grantID, err)
		return 0
	}
	if round == nil {
		return 0
	}

	full, err := l.roundLogic.GetRoundWithContributions(round.ID)
	if err != nil {
		logger.Error("Failed to load round %d for estimation: %v", round.ID, err)
		return 0
	}

	agg := qf.Aggregate(full)
	matches := qf.CalculateMatches(agg)

	match, ok := matches[grantID]
	if !ok {
		// 项目未通过审核或不在该轮次中
		return 0
	}

	return qf.EstimateDelta(match, agg.SumOfQfValues, agg.TotalFunds, donationUsd)
}
