package logic

import (
	"github.com/supermodularxyz/simplegrants-sub000/internal/model"
	"gorm.io/gorm"
)

// MatchedFundLogic 配捐派发凭证业务逻辑
type MatchedFundLogic struct {
	db *gorm.DB
}

// NewMatchedFundLogic 创建配捐派发凭证业务逻辑
func NewMatchedFundLogic(db *gorm.DB) *MatchedFundLogic {
	return &MatchedFundLogic{db: db}
}

// InsertMatchedFunds 批量写入派发凭证
func (l *MatchedFundLogic) InsertMatchedFunds(records []model.MatchedFund) error {
	if len(records) == 0 {
		return nil
	}
	return l.db.Create(&records).Error
}

// GetRoundMatchedFunds 获取某轮次的全部派发凭证
func (l *MatchedFundLogic) GetRoundMatchedFunds(roundID uint) ([]model.MatchedFund, error) {
	var funds []model.MatchedFund
	err := l.db.
		Where("matching_round_id = ?", roundID).
		Order("grant_id ASC").
		Find(&funds).Error
	if err != nil {
		return nil, err
	}
	return funds, nil
}

// GetGrantMatchedFunds 获取某项目历次获得的派发凭证
func (l *MatchedFundLogic) GetGrantMatchedFunds(grantID uint) ([]model.MatchedFund, error) {
	var funds []model.MatchedFund
	err := l.db.
		Where("grant_id = ?", grantID).
		Order("payout_at DESC").
		Find(&funds).Error
	if err != nil {
		return nil, err
	}
	return funds, nil
}
