package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supermodularxyz/simplegrants-sub000/internal/logic"
	"github.com/supermodularxyz/simplegrants-sub000/internal/model"
	"gorm.io/gorm"
)

// GrantHandler 受助项目处理器
type GrantHandler struct {
	grantLogic        *logic.GrantLogic
	contributionLogic *logic.ContributionLogic
	estimateLogic     *logic.EstimateLogic
}

// NewGrantHandler 创建受助项目处理器
func NewGrantHandler(db *gorm.DB) *GrantHandler {
	return &GrantHandler{
		grantLogic:        logic.NewGrantLogic(db),
		contributionLogic: logic.NewContributionLogic(db),
		estimateLogic:     logic.NewEstimateLogic(db),
	}
}

// CreateGrantRequest 创建项目请求
type CreateGrantRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	ImageURL         string  `json:"image_url"`
	Category         string  `json:"category"`
	FundingGoal      float64 `json:"funding_goal" binding:"required,gt=0"`
	RecipientAddress string  `json:"recipient_address" binding:"required"`
	CreatorAddress   string  `json:"creator_address" binding:"required"`
}

// CreateGrant 创建项目
func (h *GrantHandler) CreateGrant(c *gin.Context) {
	var req CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	grant := &model.Grant{
		Name:             req.Name,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		Category:         req.Category,
		FundingGoal:      req.FundingGoal,
		RecipientAddress: req.RecipientAddress,
	}

	if err := h.grantLogic.CreateGrant(grant, req.CreatorAddress); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", grant)
}

// GetGrants 获取公开项目列表
func (h *GrantHandler) GetGrants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	grants, total, err := h.grantLogic.GetGrants(page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       grants,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetGrant 获取项目详情
func (h *GrantHandler) GetGrant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	grant, err := h.grantLogic.GetGrant(uint(id))
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", grant)
}

// GetGrantContributions 获取项目捐款记录
func (h *GrantHandler) GetGrantContributions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	contributions, total, err := h.contributionLogic.GetGrantContributions(uint(id), page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       contributions,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// EstimateMatchedAmount 估算一笔假想捐款的额外配捐。
// 面向捐款预览的接口：无论输入如何都返回一个数字，不返回错误。
func (h *GrantHandler) EstimateMatchedAmount(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"estimated_match": 0.0})
		return
	}

	amount, err := strconv.ParseFloat(c.DefaultQuery("amount", "0"), 64)
	if err != nil {
		amount = 0
	}

	estimated := h.estimateLogic.EstimateMatchedAmount(amount, uint(id))
	c.JSON(http.StatusOK, gin.H{"estimated_match": estimated})
}

// VerifyGrant 审核通过项目
func (h *GrantHandler) VerifyGrant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	if err := h.grantLogic.VerifyGrant(uint(id)); err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "项目审核通过", nil)
}
