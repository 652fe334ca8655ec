package qf

// GrantMatch 单个项目的配捐分配结果
type GrantMatch struct {
	QfValue          float64 `json:"qf_value"`
	QfAmount         float64 `json:"qf_amount"`
	RecipientAddress string  `json:"recipient_address"`
}

// CalculateMatches 把QF权重换算成实际分配金额：
// qfAmount = qfValue / sumOfQfValues * totalFunds。
// sumOfQfValues 为 0 时（轮次内没有任何有效捐款）全部分配为 0，不允许除零。
func CalculateMatches(agg *RoundAggregation) map[uint]GrantMatch {
	matches := make(map[uint]GrantMatch, len(agg.QfValues))

	for grantID, qfValue := range agg.QfValues {
		amount := 0.0
		if agg.SumOfQfValues > 0 {
			amount = qfValue / agg.SumOfQfValues * agg.TotalFunds
		}
		matches[grantID] = GrantMatch{
			QfValue:          qfValue,
			QfAmount:         amount,
			RecipientAddress: agg.Recipients[grantID],
		}
	}

	return matches
}
