package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/wfunc/book-slot/internal/errors"
	"github.com/wfunc/book-slot/internal/game/slot"
	"github.com/wfunc/book-slot/internal/models"
	"go.uber.org/zap"
)

// RoundRecorder 旋转历史落库接口
type RoundRecorder interface {
	Record(ctx context.Context, round *models.GameRound) error
}

// ResultForwarder 旋转结果上报接口（远端对账系统）
type ResultForwarder interface {
	Forward(ctx context.Context, result *PlayResult) error
}

// Options 游戏服务选项
type Options struct {
	DefaultBalance int64 // 新会话初始余额（分）
	DevMode        bool  // 开发模式：允许强制网格
}

// GameService 游戏服务：会话生命周期与旋转调度。
// 所有状态修改都经由 SessionStore 的临界区完成，
// 历史落库与结果上报在临界区外异步执行。
type GameService struct {
	log       *zap.Logger
	configs   slot.ConfigProvider
	store     *SessionStore
	eval      *slot.Evaluator
	rng       slot.RandomSource
	recorder  RoundRecorder
	forwarder ResultForwarder
	opts      Options
}

// NewGameService 创建游戏服务，recorder 与 forwarder 可为 nil
func NewGameService(configs slot.ConfigProvider, store *SessionStore, recorder RoundRecorder, forwarder ResultForwarder, rng slot.RandomSource, log *zap.Logger, opts Options) *GameService {
	if log == nil {
		log = zap.NewNop()
	}
	if rng == nil {
		rng = slot.NewRandomSource()
	}
	if opts.DefaultBalance <= 0 {
		opts.DefaultBalance = 100000
	}
	return &GameService{
		log:       log,
		configs:   configs,
		store:     store,
		eval:      slot.NewEvaluator(log),
		rng:       rng,
		recorder:  recorder,
		forwarder: forwarder,
		opts:      opts,
	}
}

// CreateSession 创建新会话并绑定游戏，balance<=0 时使用默认初始余额
func (s *GameService) CreateSession(ctx context.Context, gameID string, balance int64) (*SessionState, error) {
	if _, err := s.configs.GetConfig(gameID); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrGameNotFound, gameID)
	}

	if balance <= 0 {
		balance = s.opts.DefaultBalance
	}

	state := NewSessionState(uuid.NewString(), gameID, balance)
	if err := s.store.Put(ctx, state); err != nil {
		return nil, err
	}

	s.log.Info("创建会话",
		zap.String("session_id", state.SessionID),
		zap.String("game_id", gameID),
		zap.Int64("balance", balance))
	return state.Clone(), nil
}

// Play 执行一次主路径旋转（普通或免费，由会话状态决定）
func (s *GameService) Play(ctx context.Context, sessionID string, req *PlayRequest) (*PlayResult, error) {
	var result *PlayResult
	_, err := s.store.WithSession(ctx, sessionID, func(st *SessionState) (*SessionState, error) {
		if req.GameID != "" && req.GameID != st.GameID {
			return nil, apperrors.Newf(apperrors.ErrInvalidParam,
				"会话绑定的游戏是 %s", st.GameID)
		}

		cfg, err := s.configs.GetConfig(st.GameID)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrGameNotFound, st.GameID)
		}

		next, res, err := applySpin(spinDeps{cfg: cfg, eval: s.eval, rng: s.rng}, st, req, uuid.NewString())
		if err != nil {
			return nil, err
		}
		result = res
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(result)
	return result, nil
}

// PlayBonus 执行一次奖励转盘旋转
func (s *GameService) PlayBonus(ctx context.Context, sessionID string) (*PlayResult, error) {
	var result *PlayResult
	_, err := s.store.WithSession(ctx, sessionID, func(st *SessionState) (*SessionState, error) {
		cfg, err := s.configs.GetConfig(st.GameID)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrGameNotFound, st.GameID)
		}

		next, res, err := applyBonusSpin(spinDeps{cfg: cfg, eval: s.eval, rng: s.rng}, st, uuid.NewString())
		if err != nil {
			return nil, err
		}
		result = res
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(result)
	return result, nil
}

// SessionInfo 返回会话状态快照
func (s *GameService) SessionInfo(ctx context.Context, sessionID string) (*SessionState, error) {
	return s.store.Get(ctx, sessionID)
}

// ResetSession 把会话重置为初始状态（保留会话ID与绑定的游戏）
func (s *GameService) ResetSession(ctx context.Context, sessionID string) (*SessionState, error) {
	return s.store.WithSession(ctx, sessionID, func(st *SessionState) (*SessionState, error) {
		fresh := NewSessionState(st.SessionID, st.GameID, s.opts.DefaultBalance)
		fresh.CreatedAt = st.CreatedAt
		return fresh, nil
	})
}

// ForceGrid 设置会话下一次旋转使用的网格，仅开发模式可用
func (s *GameService) ForceGrid(ctx context.Context, sessionID string, reels [][]string) error {
	if !s.opts.DevMode {
		return apperrors.New(apperrors.ErrPermissionDenied, "仅开发模式可用")
	}

	_, err := s.store.WithSession(ctx, sessionID, func(st *SessionState) (*SessionState, error) {
		cfg, err := s.configs.GetConfig(st.GameID)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrGameNotFound, st.GameID)
		}

		grid, err := buildForcedGrid(cfg, reels)
		if err != nil {
			return nil, err
		}

		next := st.Clone()
		next.ForcedGrid = grid
		next.UpdatedAt = time.Now()
		return next, nil
	})
	return err
}

// buildForcedGrid 校验并构建强制网格，按 [卷轴][行] 排列
func buildForcedGrid(cfg *slot.GameConfig, reels [][]string) (slot.Grid, error) {
	if len(reels) != cfg.Reels {
		return nil, apperrors.Newf(apperrors.ErrForcedGridRejected,
			"需要 %d 个卷轴，收到 %d 个", cfg.Reels, len(reels))
	}

	grid := make(slot.Grid, len(reels))
	for r, col := range reels {
		if len(col) != cfg.Rows {
			return nil, apperrors.Newf(apperrors.ErrForcedGridRejected,
				"卷轴 %d 需要 %d 行，收到 %d 行", r, cfg.Rows, len(col))
		}
		grid[r] = make([]slot.Symbol, len(col))
		for y, name := range col {
			sym := slot.Symbol(name)
			if _, ok := cfg.SymbolByName(sym); !ok {
				return nil, apperrors.Newf(apperrors.ErrForcedGridRejected,
					"未知符号 %q", name)
			}
			grid[r][y] = sym
		}
	}
	return grid, nil
}

// publish 异步落库并上报旋转结果，失败只记录日志
func (s *GameService) publish(result *PlayResult) {
	if s.recorder == nil && s.forwarder == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if s.recorder != nil {
			if err := s.recorder.Record(ctx, roundFromResult(result)); err != nil {
				s.log.Error("旋转历史落库失败",
					zap.String("round_id", result.RoundID),
					zap.Error(err))
			}
		}

		if s.forwarder != nil {
			if err := s.forwarder.Forward(ctx, result); err != nil {
				s.log.Warn("旋转结果上报失败",
					zap.String("round_id", result.RoundID),
					zap.Error(err))
			}
		}
	}()
}

// roundFromResult 把旋转结果转换为历史记录行
func roundFromResult(result *PlayResult) *models.GameRound {
	var payload models.JSONMap
	if data, err := json.Marshal(result); err == nil {
		_ = json.Unmarshal(data, &payload)
	}

	return &models.GameRound{
		RoundID:           result.RoundID,
		SessionID:         result.SessionID,
		GameID:            result.GameID,
		Kind:              string(result.Kind),
		BetAmount:         result.TotalBet,
		CostAmount:        result.Cost,
		WinAmount:         result.Win,
		MysteryWin:        result.MysteryWin,
		FreeSpinsAwarded:  result.FreeSpinsAwarded,
		BonusSpinsAwarded: result.BonusSpinsAwarded,
		BalanceAfter:      result.Balance,
		Result:            payload,
		PlayedAt:          result.PlayedAt,
	}
}
