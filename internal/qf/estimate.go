package qf

import "math"

// EstimateDelta 计算一笔假想新捐款给某项目带来的额外配捐金额。
// 其他项目的捐款保持不变，只把这一笔的平方根并入该项目的累计后重新分配：
//
//	newQfValue = (√qfValue + √donation)²
//	newMatched = totalFunds * newQfValue / (sumOfQfValues + newQfValue - qfValue)
//
// 返回 newMatched 与当前已分配金额的差值。donation <= 0 时返回 0。
func EstimateDelta(match GrantMatch, sumOfQfValues, totalFunds, donationUsd float64) float64 {
	if donationUsd <= 0 || totalFunds <= 0 {
		return 0
	}

	root := math.Sqrt(match.QfValue) + math.Sqrt(donationUsd)
	newQfValue := root * root

	delta := newQfValue - match.QfValue
	newDivisor := sumOfQfValues + delta
	if newDivisor <= 0 {
		return 0
	}

	newMatched := totalFunds * newQfValue / newDivisor
	additional := newMatched - match.QfAmount
	if additional < 0 {
		return 0
	}
	return additional
}
