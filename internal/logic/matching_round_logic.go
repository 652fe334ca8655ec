package logic

import (
	"errors"
	"time"

	"github.com/supermodularxyz/simplegrants-sub000/internal/model"
	"gorm.io/gorm"
)

// MatchingRoundLogic 配捐轮次业务逻辑
type MatchingRoundLogic struct {
	db *gorm.DB
}

// NewMatchingRoundLogic 创建配捐轮次业务逻辑
func NewMatchingRoundLogic(db *gorm.DB) *MatchingRoundLogic {
	return &MatchingRoundLogic{db: db}
}

// GetRounds 分页获取轮次列表（只返回已审核的轮次）
func (l *MatchingRoundLogic) GetRounds(page, pageSize int) ([]model.MatchingRound, int64, error) {
	var rounds []model.MatchingRound
	var total int64

	query := l.db.Model(&model.MatchingRound{}).Where("verified = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("end_time DESC").Offset(offset).Limit(pageSize).Find(&rounds).Error; err != nil {
		return nil, 0, err
	}

	return rounds, total, nil
}

// GetRound 获取单个轮次
func (l *MatchingRoundLogic) GetRound(id uint) (*model.MatchingRound, error) {
	var round model.MatchingRound
	if err := l.db.Preload("Grants").First(&round, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("轮次不存在")
		}
		return nil, err
	}
	return &round, nil
}

// GetRoundWithContributions 获取轮次全量数据：池子捐款、参与项目及各项目的捐款。
// 一次查询取出完整快照，配捐计算只基于这份快照进行。
func (l *MatchingRoundLogic) GetRoundWithContributions(id uint) (*model.MatchingRound, error) {
	var round model.MatchingRound
	err := l.db.
		Preload("Contributions").
		Preload("Grants").
		Preload("Grants.Contributions").
		First(&round, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("轮次不存在")
		}
		return nil, err
	}
	return &round, nil
}

// GetActiveRoundForGrant 查找某项目当前所在的进行中轮次。
// 没有命中时返回 (nil, nil)，调用方按"无可估算轮次"处理。
func (l *MatchingRoundLogic) GetActiveRoundForGrant(grantID uint) (*model.MatchingRound, error) {
	var round model.MatchingRound
	err := l.db.
		Joins("JOIN matching_round_grants ON matching_round_grants.matching_round_id = matching_rounds.id").
		Where("matching_round_grants.grant_id = ?", grantID).
		Where("matching_rounds.end_time > ?", time.Now()).
		Where("matching_rounds.paid = ?", false).
		Order("matching_rounds.end_time ASC").
		First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &round, nil
}

// GetEndedUnpaidRounds 查找已结束且未派发的轮次
func (l *MatchingRoundLogic) GetEndedUnpaidRounds(now time.Time) ([]model.MatchingRound, error) {
	var rounds []model.MatchingRound
	err := l.db.
		Where("end_time <= ?", now).
		Where("paid = ?", false).
		Order("end_time ASC").
		Find(&rounds).Error
	if err != nil {
		return nil, err
	}
	return rounds, nil
}

// MarkRoundPaid 把轮次标记为已派发。
// 条件更新只命中 paid=false 的行，返回是否真正完成了翻转；
// 两个并发调用最多只有一个返回 true，以此保证同一轮次不会被派发两次。
func (l *MatchingRoundLogic) MarkRoundPaid(id uint) (bool, error) {
	result := l.db.Model(&model.MatchingRound{}).
		Where("id = ? AND paid = ?", id, false).
		Update("paid", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
