package slot

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Evaluator 旋转评估器。无状态，可跨会话并发使用；
// 赔付表缺项按零赔付处理并计数/记录，绝不抛错也绝不回退默认值。
type Evaluator struct {
	log          *zap.Logger
	configIssues atomic.Int64
}

// NewEvaluator 创建评估器
func NewEvaluator(log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{log: log}
}

// ConfigIssues 自启动以来观察到的赔付表缺项次数
func (e *Evaluator) ConfigIssues() int64 {
	return e.configIssues.Load()
}

// reportMissingEntry 记录赔付表缺项（配置问题，可观察但不中断旋转）
func (e *Evaluator) reportMissingEntry(cfg *GameConfig, kind string, symbol Symbol, bet int64, count int) {
	e.configIssues.Add(1)
	e.log.Warn("赔付表缺项",
		zap.String("game_id", cfg.GameID),
		zap.String("kind", kind),
		zap.String("symbol", symbol),
		zap.Int64("bet", bet),
		zap.Int("count", count))
}

// Evaluate 对一个网格执行完整评估：基础局线奖与分散奖、奖励游戏触发检测，
// 以及免费回合中的特殊符号扩展阶段。原网格在扩展时保持不变。
func (e *Evaluator) Evaluate(cfg *GameConfig, grid Grid, ctx EvalContext) *SpinOutcome {
	out := &SpinOutcome{
		Grid:          grid,
		FeatureSymbol: ctx.FeatureSymbol,
	}

	lines, lineWin, lineBonus := e.evalPaylines(cfg, grid, ctx)
	out.Lines = lines
	out.BaseWin = lineWin

	out.Scatter = e.evalScatter(cfg, grid, ctx)
	if out.Scatter.Payout > 0 {
		out.BaseWin += out.Scatter.Payout
		out.Lines = append(out.Lines, WinningLine{
			Line:   ScatterLineIndex,
			Symbol: out.Scatter.Symbol,
			Count:  out.Scatter.Count,
			Payout: out.Scatter.Payout,
		})
	}

	out.Bonus = e.detectBonusTrigger(cfg, grid, ctx)

	out.BonusSpins = lineBonus + out.Scatter.BonusSpins
	if out.Bonus != nil {
		out.BonusSpins += out.Bonus.Spins
	}

	if ctx.FreeRound && ctx.FeatureSymbol != "" {
		expanded, positions := ExpandFeature(grid, ctx.FeatureSymbol)
		if expanded != nil {
			out.ExpandedGrid = expanded
			out.ExpandedPositions = positions
			out.ExpandedWin, out.ExpandedLines = e.evalExpanded(cfg, expanded, ctx)
		}
	}

	return out
}
