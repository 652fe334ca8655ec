package logic

import (
	"errors"
	"time"

	"github.com/supermodularxyz/simplegrants-sub000/internal/model"
	"gorm.io/gorm"
)

// ContributionLogic 捐款业务逻辑
type ContributionLogic struct {
	db *gorm.DB
}

// NewContributionLogic 创建捐款业务逻辑
func NewContributionLogic(db *gorm.DB) *ContributionLogic {
	return &ContributionLogic{db: db}
}

// CreateContribution 创建捐款记录。
// 捐款去向在入口处已解析为带 kind 的联合体：grant 或 round 二选一。
func (l *ContributionLogic) CreateContribution(contribution *model.Contribution) error {
	if err := l.validateContribution(contribution); err != nil {
		return err
	}

	switch contribution.Target {
	case model.TargetGrant:
		var grant model.Grant
		if err := l.db.First(&grant, *contribution.GrantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("项目不存在")
			}
			return err
		}
		if !grant.Verified {
			return errors.New("项目未通过审核，无法接受捐款")
		}
	case model.TargetRound:
		var round model.MatchingRound
		if err := l.db.First(&round, *contribution.MatchingRoundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("轮次不存在")
			}
			return err
		}
		if round.Paid || !round.EndTime.After(time.Now()) {
			return errors.New("轮次已结束，无法注入配捐资金")
		}
	}

	return l.db.Create(contribution).Error
}

// FlagContribution 更新捐款的风控标记。
// 被标记的捐款保留在账本中，但不再参与配捐计算。
func (l *ContributionLogic) FlagContribution(id uint, flagged bool) error {
	result := l.db.Model(&model.Contribution{}).
		Where("id = ?", id).
		Update("flagged", flagged)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("捐款记录不存在")
	}
	return nil
}

// GetGrantContributions 分页获取项目的捐款记录
func (l *ContributionLogic) GetGrantContributions(grantID uint, page, pageSize int) ([]model.Contribution, int64, error) {
	var contributions []model.Contribution
	var total int64

	query := l.db.Model(&model.Contribution{}).
		Where("target = ? AND grant_id = ?", model.TargetGrant, grantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&contributions).Error; err != nil {
		return nil, 0, err
	}

	return contributions, total, nil
}

// validateContribution 校验捐款数据
func (l *ContributionLogic) validateContribution(c *model.Contribution) error {
	if c.ContributorAddress == "" {
		return errors.New("捐款人地址不能为空")
	}
	if c.Amount <= 0 || c.AmountUsd <= 0 {
		return errors.New("捐款金额必须大于0")
	}
	if c.Denomination == "" {
		return errors.New("币种不能为空")
	}

	switch c.Target {
	case model.TargetGrant:
		if c.GrantID == nil || c.MatchingRoundID != nil {
			return errors.New("项目捐款必须且只能指定项目ID")
		}
	case model.TargetRound:
		if c.MatchingRoundID == nil || c.GrantID != nil {
			return errors.New("配捐资金必须且只能指定轮次ID")
		}
	default:
		return errors.New("无效的捐款去向")
	}

	return nil
}
