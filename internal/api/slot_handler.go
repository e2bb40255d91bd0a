package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/wfunc/book-slot/internal/errors"
	"github.com/wfunc/book-slot/internal/game"
	"github.com/wfunc/book-slot/internal/middleware"
	"github.com/wfunc/book-slot/internal/repository"
	"github.com/wfunc/book-slot/internal/utils"
)

// SlotHandler 老虎机游戏处理器
type SlotHandler struct {
	gameService *game.GameService
	rounds      repository.RoundRepository
	jwtManager  *utils.JWTManager
	logger      *zap.Logger
}

// NewSlotHandler 创建老虎机处理器
func NewSlotHandler(gameService *game.GameService, rounds repository.RoundRepository, jwtManager *utils.JWTManager, logger *zap.Logger) *SlotHandler {
	return &SlotHandler{
		gameService: gameService,
		rounds:      rounds,
		jwtManager:  jwtManager,
		logger:      logger,
	}
}

// CreateSessionRequest 创建会话请求
type CreateSessionRequest struct {
	GameID  string `json:"game_id" binding:"required"`
	Balance int64  `json:"balance"`
}

// CreateSessionResponse 创建会话响应
type CreateSessionResponse struct {
	SessionID   string `json:"session_id"`
	GameID      string `json:"game_id"`
	Balance     int64  `json:"balance"`
	AccessToken string `json:"access_token"`
}

// PlayRequest 旋转请求
type PlayRequest struct {
	GameID   string `json:"game_id"`
	TotalBet int64  `json:"total_bet"`
	LineBet  int64  `json:"line_bet"`
	Lines    int    `json:"lines"`
}

// ForceGridRequest 预置盘面请求（仅开发模式）
type ForceGridRequest struct {
	Reels [][]string `json:"reels" binding:"required"`
}

// HistoryResponse 历史记录响应
type HistoryResponse struct {
	Records  interface{} `json:"records"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// CreateSession 创建游戏会话
// @Summary 创建游戏会话
// @Description 创建新会话，返回 session_id、余额与访问令牌
// @Tags Slot
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "创建会话请求"
// @Success 200 {object} CreateSessionResponse
// @Router /api/v1/slot/session [post]
func (h *SlotHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.New(apperrors.ErrInvalidParam).WithDetails(err.Error()))
		return
	}

	state, err := h.gameService.CreateSession(c.Request.Context(), req.GameID, req.Balance)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(state.SessionID, state.GameID)
	if err != nil {
		h.logger.Error("生成会话令牌失败", zap.Error(err))
		h.respondError(c, apperrors.Wrap(err, apperrors.ErrUnknown, "生成会话令牌失败"))
		return
	}

	c.JSON(http.StatusOK, CreateSessionResponse{
		SessionID:   state.SessionID,
		GameID:      state.GameID,
		Balance:     state.Balance,
		AccessToken: token,
	})
}

// Play 执行一次旋转
// @Summary 执行一次旋转
// @Description 在当前会话上执行一次普通或免费旋转
// @Tags Slot
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body PlayRequest true "旋转请求"
// @Success 200 {object} game.PlayResult
// @Router /api/v1/slot/play [post]
func (h *SlotHandler) Play(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		h.respondError(c, apperrors.New(apperrors.ErrTokenInvalid, "缺少会话令牌"))
		return
	}

	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.New(apperrors.ErrInvalidParam).WithDetails(err.Error()))
		return
	}

	result, err := h.gameService.Play(c.Request.Context(), sessionID, &game.PlayRequest{
		GameID:   req.GameID,
		TotalBet: req.TotalBet,
		LineBet:  req.LineBet,
		Lines:    req.Lines,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PlayBonus 执行一次奖金转盘
// @Summary 执行一次奖金转盘
// @Description 消耗一次奖金旋转机会并转动转盘
// @Tags Slot
// @Security Bearer
// @Produce json
// @Success 200 {object} game.PlayResult
// @Router /api/v1/slot/bonus [post]
func (h *SlotHandler) PlayBonus(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		h.respondError(c, apperrors.New(apperrors.ErrTokenInvalid, "缺少会话令牌"))
		return
	}

	result, err := h.gameService.PlayBonus(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSession 查询会话信息
// @Summary 查询会话信息
// @Tags Slot
// @Security Bearer
// @Produce json
// @Success 200 {object} game.SessionState
// @Router /api/v1/slot/session/{id} [get]
func (h *SlotHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")

	// 令牌会话与路径会话必须一致
	if tokenSession, ok := middleware.GetSessionID(c); ok && tokenSession != sessionID {
		h.respondError(c, apperrors.New(apperrors.ErrPermissionDenied, "无权访问该会话"))
		return
	}

	state, err := h.gameService.SessionInfo(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// ResetSession 重置会话
// @Summary 重置会话
// @Description 清空会话状态并恢复初始余额
// @Tags Slot
// @Security Bearer
// @Produce json
// @Success 200 {object} game.SessionState
// @Router /api/v1/slot/session/reset [post]
func (h *SlotHandler) ResetSession(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		h.respondError(c, apperrors.New(apperrors.ErrTokenInvalid, "缺少会话令牌"))
		return
	}

	state, err := h.gameService.ResetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// ForceGrid 预置下一次旋转的盘面（仅开发模式）
// @Summary 预置下一次旋转的盘面
// @Tags Slot
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body ForceGridRequest true "预置盘面请求"
// @Router /api/v1/slot/force-grid [post]
func (h *SlotHandler) ForceGrid(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		h.respondError(c, apperrors.New(apperrors.ErrTokenInvalid, "缺少会话令牌"))
		return
	}

	var req ForceGridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.New(apperrors.ErrInvalidParam).WithDetails(err.Error()))
		return
	}

	if err := h.gameService.ForceGrid(c.Request.Context(), sessionID, req.Reels); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "盘面已预置"})
}

// History 查询旋转历史
// @Summary 查询旋转历史
// @Tags Slot
// @Security Bearer
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} HistoryResponse
// @Router /api/v1/slot/history [get]
func (h *SlotHandler) History(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		h.respondError(c, apperrors.New(apperrors.ErrTokenInvalid, "缺少会话令牌"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	p := repository.NewPagination(page, pageSize)

	records, err := h.rounds.FindBySessionID(c.Request.Context(), sessionID, p)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{
		Records:  records,
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
}

// Statistics 查询会话统计
// @Summary 查询会话统计
// @Tags Slot
// @Security Bearer
// @Produce json
// @Success 200 {object} repository.SessionStatistics
// @Router /api/v1/slot/stats [get]
func (h *SlotHandler) Statistics(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		h.respondError(c, apperrors.New(apperrors.ErrTokenInvalid, "缺少会话令牌"))
		return
	}

	stats, err := h.rounds.GetSessionStatistics(c.Request.Context(), sessionID, time.Time{}, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// respondError 按错误码映射HTTP状态并返回统一错误响应
func (h *SlotHandler) respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if e, ok := err.(*apperrors.AppError); ok {
		appErr = e
	} else {
		appErr = apperrors.Wrap(err, apperrors.ErrUnknown)
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.Error("请求处理失败",
			zap.Int("code", int(appErr.Code)),
			zap.String("path", c.FullPath()),
			zap.Error(appErr),
		)
	}

	c.JSON(status, apperrors.NewErrorResponse(appErr, c.GetString("request_id")))
}
