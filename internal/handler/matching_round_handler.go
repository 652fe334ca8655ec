package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supermodularxyz/simplegrants-sub000/internal/logic"
	"gorm.io/gorm"
)

// MatchingRoundHandler 配捐轮次处理器
type MatchingRoundHandler struct {
	roundLogic *logic.MatchingRoundLogic
	fundLogic  *logic.MatchedFundLogic
}

// NewMatchingRoundHandler 创建配捐轮次处理器
func NewMatchingRoundHandler(db *gorm.DB) *MatchingRoundHandler {
	return &MatchingRoundHandler{
		roundLogic: logic.NewMatchingRoundLogic(db),
		fundLogic:  logic.NewMatchedFundLogic(db),
	}
}

// GetRounds 获取轮次列表
func (h *MatchingRoundHandler) GetRounds(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	rounds, total, err := h.roundLogic.GetRounds(page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       rounds,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetRound 获取轮次详情
func (h *MatchingRoundHandler) GetRound(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的轮次ID")
		return
	}

	round, err := h.roundLogic.GetRound(uint(id))
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   round,
		"status": round.Status(time.Now()),
	})
}

// GetRoundResults 获取轮次的派发结果
func (h *MatchingRoundHandler) GetRoundResults(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的轮次ID")
		return
	}

	funds, err := h.fundLogic.GetRoundMatchedFunds(uint(id))
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", funds)
}
