package rgs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wfunc/book-slot/internal/config"
	"github.com/wfunc/book-slot/internal/game"
)

// Forwarder 将旋转结果上报给远端对账系统
// 实现 game.ResultForwarder 接口
type Forwarder struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

// NewForwarder 创建结果上报客户端
func NewForwarder(cfg config.RGSConfig, log *zap.Logger) *Forwarder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Forwarder{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// roundReport 上报报文
type roundReport struct {
	RoundID   string `json:"round_id"`
	SessionID string `json:"session_id"`
	GameID    string `json:"game_id"`
	Kind      string `json:"kind"`
	TotalBet  int64  `json:"total_bet"`
	Cost      int64  `json:"cost"`
	Win       int64  `json:"win"`
	Balance   int64  `json:"balance"`
	PlayedAt  string `json:"played_at"`
}

// Forward 上报单次旋转结果
func (f *Forwarder) Forward(ctx context.Context, result *game.PlayResult) error {
	report := roundReport{
		RoundID:   result.RoundID,
		SessionID: result.SessionID,
		GameID:    result.GameID,
		Kind:      string(result.Kind),
		TotalBet:  result.TotalBet,
		Cost:      result.Cost,
		Win:       result.Win,
		Balance:   result.Balance,
		PlayedAt:  result.PlayedAt.UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("序列化上报报文失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("创建上报请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if f.apiKey != "" {
		req.Header.Set("x-api-key", f.apiKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("上报请求失败: %w", err)
	}
	defer resp.Body.Close()

	// 丢弃响应体，只关心状态码
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("对账系统返回异常状态: %d", resp.StatusCode)
	}

	f.log.Debug("回合结果已上报",
		zap.String("round_id", result.RoundID),
		zap.String("session_id", result.SessionID),
	)
	return nil
}
