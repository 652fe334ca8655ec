package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supermodularxyz/simplegrants-sub000/internal/logic"
	"github.com/supermodularxyz/simplegrants-sub000/internal/model"
	"gorm.io/gorm"
)

// ContributionHandler 捐款处理器
type ContributionHandler struct {
	contributionLogic *logic.ContributionLogic
}

// NewContributionHandler 创建捐款处理器
func NewContributionHandler(db *gorm.DB) *ContributionHandler {
	return &ContributionHandler{
		contributionLogic: logic.NewContributionLogic(db),
	}
}

// CreateContributionRequest 创建捐款请求。
// 去向在这里解析成显式的 kind 联合体，后续流程不再做类型判断。
type CreateContributionRequest struct {
	ContributorAddress string  `json:"contributor_address" binding:"required"`
	Amount             float64 `json:"amount" binding:"required,gt=0"`
	Denomination       string  `json:"denomination" binding:"required"`
	AmountUsd          float64 `json:"amount_usd" binding:"required,gt=0"`
	GrantID            *uint   `json:"grant_id"`
	MatchingRoundID    *uint   `json:"matching_round_id"`
}

// CreateContribution 创建捐款
func (h *ContributionHandler) CreateContribution(c *gin.Context) {
	var req CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var target model.ContributionTarget
	switch {
	case req.GrantID != nil && req.MatchingRoundID == nil:
		target = model.TargetGrant
	case req.MatchingRoundID != nil && req.GrantID == nil:
		target = model.TargetRound
	default:
		ErrorResponse(c, http.StatusBadRequest, "必须且只能指定项目ID或轮次ID之一")
		return
	}

	contribution := &model.Contribution{
		ContributorAddress: req.ContributorAddress,
		Amount:             req.Amount,
		Denomination:       req.Denomination,
		AmountUsd:          req.AmountUsd,
		Target:             target,
		GrantID:            req.GrantID,
		MatchingRoundID:    req.MatchingRoundID,
	}

	if err := h.contributionLogic.CreateContribution(contribution); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "捐款成功", contribution)
}

// FlagContributionRequest 风控标记请求
type FlagContributionRequest struct {
	Flagged bool `json:"flagged"`
}

// FlagContribution 更新捐款的风控标记
func (h *ContributionHandler) FlagContribution(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐款ID")
		return
	}

	var req FlagContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.contributionLogic.FlagContribution(uint(id), req.Flagged); err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "标记已更新", nil)
}
