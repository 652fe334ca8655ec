// Package qf 实现二次方配捐（Quadratic Funding）的纯计算部分：
// 聚合、配捐分配和边际影响公式。不做任何 I/O。
package qf

import (
	"math"

	"github.com/supermodularxyz/simplegrants-sub000/internal/model"
)

// ContributorTotal 单个捐款人在某项目下的累计值
type ContributorTotal struct {
	AmountUsd float64 `json:"amount_usd"` // 线性累计
	QfValue   float64 `json:"qf_value"`   // 逐笔平方根累计（不是先求和再开方）
}

// RoundAggregation 一个轮次的QF聚合结果
type RoundAggregation struct {
	// Grants 每个项目按捐款人分组的累计
	Grants map[uint]map[string]ContributorTotal
	// QfValues 每个项目的QF权重：(Σ 各捐款人平方根累计)²
	QfValues map[uint]float64
	// Recipients 每个项目的收款地址
	Recipients map[uint]string
	// SumOfQfValues 所有项目QF权重之和
	SumOfQfValues float64
	// TotalFunds 资金池总额（仅统计注入池子的捐款）
	TotalFunds float64
}

// Aggregate 聚合一个轮次的全部捐款。
// 入参需要带全量关联：池子捐款、各参与项目及其捐款和收款地址。
// 规则：
//   - 被风控标记的捐款一律不参与统计
//   - 未通过审核的项目不参与配捐
//   - 同一捐款人的多笔捐款逐笔开方后累计，保证拆单不改变权重
func Aggregate(round *model.MatchingRound) *RoundAggregation {
	agg := &RoundAggregation{
		Grants:     make(map[uint]map[string]ContributorTotal),
		QfValues:   make(map[uint]float64),
		Recipients: make(map[uint]string),
	}

	if round == nil {
		return agg
	}

	// 池子总额
	for _, c := range round.Contributions {
		if c.Flagged {
			continue
		}
		agg.TotalFunds += c.AmountUsd
	}

	for _, grant := range round.Grants {
		if !grant.Verified {
			continue
		}

		contributors := make(map[string]ContributorTotal)
		for _, c := range grant.Contributions {
			if c.Flagged {
				continue
			}
			total := contributors[c.ContributorAddress]
			total.AmountUsd += c.AmountUsd
			total.QfValue += math.Sqrt(c.AmountUsd)
			contributors[c.ContributorAddress] = total
		}

		// 项目原始QF值 = 各捐款人平方根累计之和，权重取其平方
		raw := 0.0
		for _, total := range contributors {
			raw += total.QfValue
		}
		weight := raw * raw

		agg.Grants[grant.ID] = contributors
		agg.QfValues[grant.ID] = weight
		agg.Recipients[grant.ID] = grant.RecipientAddress
		agg.SumOfQfValues += weight
	}

	return agg
}
