package game

import (
	"time"

	apperrors "github.com/wfunc/book-slot/internal/errors"
	"github.com/wfunc/book-slot/internal/game/slot"
)

// PlayRequest 一次主路径旋转请求。
// TotalBet 与 LineBet/Lines 二选一；免费回合允许两者都缺省，
// 此时使用最低可用档位作为名义投注。
type PlayRequest struct {
	GameID   string `json:"game_id"`
	TotalBet int64  `json:"total_bet"`
	LineBet  int64  `json:"line_bet"`
	Lines    int    `json:"lines"`
}

// spinDeps 状态转换所需的无状态依赖
type spinDeps struct {
	cfg  *slot.GameConfig
	eval *slot.Evaluator
	rng  slot.RandomSource
}

// resolveBet 解析并校验本次旋转的名义总投注。
// 请求给出的金额必须与某个可用档位匹配（容差1分），否则拒绝。
func resolveBet(cfg *slot.GameConfig, req *PlayRequest, freeRound bool) (int64, error) {
	var requested int64
	switch {
	case req.TotalBet > 0:
		requested = req.TotalBet
	case req.LineBet > 0:
		lines := req.Lines
		if lines <= 0 {
			lines = len(cfg.Paylines)
		}
		requested = req.LineBet * int64(lines)
	case freeRound:
		// 免费旋转不扣投注，缺省时取最低档位作为名义投注
		return cfg.LowestBet(), nil
	default:
		return 0, apperrors.New(apperrors.ErrInvalidBet, "未指定投注金额")
	}

	bet, ok := cfg.MatchBet(requested)
	if !ok {
		return 0, apperrors.Newf(apperrors.ErrInvalidBet, "投注额 %d 不在可用档位中", requested)
	}
	return bet, nil
}

// pickFeatureSymbol 从候选集中随机抽取本回合的特色符号
func pickFeatureSymbol(cfg *slot.GameConfig, rng slot.RandomSource) slot.Symbol {
	candidates := cfg.FeatureCandidates()
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rng.Intn(len(candidates))]
}

// applySpin 执行一次主路径旋转的完整状态转换。
// 基于 prev 的副本计算，出错时调用方保留原状态。结算顺序固定：
// 扣费 → 生成网格 → 评估 → 赢取折叠 → 免费旋转记账 →
// 奖励次数记账 → 回合退出检测 → 神秘奖。
func applySpin(deps spinDeps, prev *SessionState, req *PlayRequest, roundID string) (*SessionState, *PlayResult, error) {
	cfg := deps.cfg
	next := prev.Clone()
	freeRound := prev.InFreeRound()

	totalBet, err := resolveBet(cfg, req, freeRound)
	if err != nil {
		return nil, nil, err
	}
	lineBet := totalBet / int64(len(cfg.Paylines))

	// 扣费：普通旋转扣总投注，免费旋转只扣固定小额费用并入池
	var cost int64
	if freeRound {
		cost = cfg.PennyCost
	} else {
		cost = totalBet
	}
	if next.Balance < cost {
		return nil, nil, apperrors.Newf(apperrors.ErrInsufficientFunds,
			"余额 %d 不足以支付 %d", next.Balance, cost)
	}
	next.Balance -= cost
	if freeRound {
		next.PennyPool += cost
		next.FreeSpinsLeft--
	}

	// 网格：优先使用调试强制网格，用后即弃
	var grid slot.Grid
	if next.ForcedGrid != nil {
		grid = next.ForcedGrid
		next.ForcedGrid = nil
	} else {
		grid, err = slot.GenerateGrid(cfg, deps.rng)
		if err != nil {
			return nil, nil, apperrors.Wrap(err, apperrors.ErrSpinFailed)
		}
	}

	outcome := deps.eval.Evaluate(cfg, grid, slot.EvalContext{
		TotalBet:      totalBet,
		LineBet:       lineBet,
		FreeRound:     freeRound,
		FeatureSymbol: next.FeatureSymbol,
	})

	// 赢取折叠：线赢与分散赢立即生效；奖励触发赢在免费回合内
	// 扣留到回合奖池，普通旋转立即生效；扩展赢最后累加
	win := outcome.BaseWin
	if outcome.Bonus != nil {
		if freeRound {
			next.BonusRoundWin += outcome.Bonus.Win
		} else {
			win += outcome.Bonus.Win
		}
	}
	win += outcome.ExpandedWin

	// 免费旋转记账：触发即追加固定次数；从普通旋转进入回合时抽取特色符号
	freeAwarded := 0
	if outcome.Scatter.Triggered {
		freeAwarded = cfg.FreeSpins
		next.FreeSpinsLeft += freeAwarded
		if !freeRound {
			next.FeatureSymbol = pickFeatureSymbol(cfg, deps.rng)
		}
	}

	// 奖励次数记账
	next.BonusSpinsLeft += outcome.BonusSpins

	next.Balance += win

	// 回合退出检测：本次旋转把免费次数从正数耗尽到零
	var released int64
	if freeRound && next.FreeSpinsLeft == 0 {
		next.FeatureExit = ExitFree
		next.LosingStreak = 0
		next.MysteryThreshold = 0

		released = next.BonusRoundWin
		next.Balance += released
		next.BonusRoundWin = 0
		next.FeatureSymbol = ""
	}

	// 神秘奖只在普通旋转评估
	var mystery int64
	if !freeRound {
		mystery = applyMystery(next, win, deps.rng)
	}

	now := time.Now()
	result := &PlayResult{
		RoundID:   roundID,
		SessionID: next.SessionID,
		GameID:    next.GameID,
		Kind:      SpinNormal,

		TotalBet: totalBet,
		Cost:     cost,

		Win:              win + mystery + released,
		MysteryWin:       mystery,
		ReleasedRoundWin: released,

		FreeSpinsAwarded:  freeAwarded,
		BonusSpinsAwarded: outcome.BonusSpins,

		Outcome: outcome,

		Balance:        next.Balance,
		FreeSpinsLeft:  next.FreeSpinsLeft,
		BonusSpinsLeft: next.BonusSpinsLeft,
		FeatureSymbol:  next.FeatureSymbol,
		FeatureExit:    next.FeatureExit,

		PlayedAt: now,
	}
	if freeRound {
		result.Kind = SpinFree
	}

	next.LastResult = result
	next.UpdatedAt = now
	return next, result, nil
}

// applyBonusSpin 执行一次奖励转盘旋转的状态转换。
// 转盘旋转消耗一次奖励次数与固定费用，费用进入奖励池。
func applyBonusSpin(deps spinDeps, prev *SessionState, roundID string) (*SessionState, *PlayResult, error) {
	cfg := deps.cfg
	next := prev.Clone()

	if next.BonusSpinsLeft <= 0 {
		return nil, nil, apperrors.New(apperrors.ErrNoBonusSpins, next.SessionID)
	}

	cost := cfg.BonusSpinCost
	if next.Balance < cost {
		return nil, nil, apperrors.Newf(apperrors.ErrInsufficientFunds,
			"余额 %d 不足以支付 %d", next.Balance, cost)
	}
	next.BonusSpinsLeft--
	next.Balance -= cost
	next.BonusPool += cost

	wheel := slot.DrawWheel(cfg.Wheel, deps.rng)
	next.Balance += wheel.Cash
	next.BonusSpinsLeft += wheel.Spins

	// 回合退出检测：本次旋转把奖励次数耗尽到零
	if next.BonusSpinsLeft == 0 {
		next.FeatureExit = ExitBonus
		next.LosingStreak = 0
		next.MysteryThreshold = 0
	}

	now := time.Now()
	result := &PlayResult{
		RoundID:   roundID,
		SessionID: next.SessionID,
		GameID:    next.GameID,
		Kind:      SpinBonus,

		Cost: cost,
		Win:  wheel.Cash,

		BonusSpinsAwarded: wheel.Spins,

		Wheel: &wheel,

		Balance:        next.Balance,
		FreeSpinsLeft:  next.FreeSpinsLeft,
		BonusSpinsLeft: next.BonusSpinsLeft,
		FeatureSymbol:  next.FeatureSymbol,
		FeatureExit:    next.FeatureExit,

		PlayedAt: now,
	}

	next.LastResult = result
	next.UpdatedAt = now
	return next, result, nil
}
