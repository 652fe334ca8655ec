package logic

import (
	"errors"

	"github.com/supermodularxyz/simplegrants-sub000/internal/model"
	"gorm.io/gorm"
)

// GrantLogic 受助项目业务逻辑
type GrantLogic struct {
	db *gorm.DB
}

// NewGrantLogic 创建受助项目业务逻辑
func NewGrantLogic(db *gorm.DB) *GrantLogic {
	return &GrantLogic{db: db}
}

// CreateGrant 创建项目（新项目默认未审核，不参与配捐）
func (l *GrantLogic) CreateGrant(grant *model.Grant, creatorAddress string) error {
	if grant.Name == "" {
		return errors.New("项目名称不能为空")
	}
	if grant.FundingGoal <= 0 {
		return errors.New("募资目标必须大于0")
	}
	if grant.RecipientAddress == "" {
		return errors.New("收款地址不能为空")
	}
	if creatorAddress == "" {
		return errors.New("创建者地址不能为空")
	}

	grant.Verified = false
	grant.Team = []model.GrantTeam{{MemberAddress: creatorAddress, Role: "owner"}}

	return l.db.Create(grant).Error
}

// GetGrants 分页获取公开项目列表（只返回已审核的项目）
func (l *GrantLogic) GetGrants(page, pageSize int) ([]model.Grant, int64, error) {
	var grants []model.Grant
	var total int64

	query := l.db.Model(&model.Grant{}).Where("verified = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&grants).Error; err != nil {
		return nil, 0, err
	}

	return grants, total, nil
}

// GetGrant 获取单个项目
func (l *GrantLogic) GetGrant(id uint) (*model.Grant, error) {
	var grant model.Grant
	if err := l.db.Preload("Team").First(&grant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("项目不存在")
		}
		return nil, err
	}
	return &grant, nil
}

// VerifyGrant 审核通过项目
func (l *GrantLogic) VerifyGrant(id uint) error {
	result := l.db.Model(&model.Grant{}).Where("id = ?", id).Update("verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("项目不存在")
	}
	return nil
}
