package slot

// evalScatter 评估全盘分散符号：计数、赔付与免费旋转触发判定。
// 免费回合中若特殊符号正是分散/书符号，分散被并入特殊符号结算：
// 不触发续旋转，也不计基础局分散赔付。
func (e *Evaluator) evalScatter(cfg *GameConfig, grid Grid, ctx EvalContext) ScatterResult {
	scatter := cfg.ScatterName()
	result := ScatterResult{Symbol: scatter}

	for reel := range grid {
		for row := range grid[reel] {
			if grid[reel][row] == scatter {
				result.Count++
				result.Positions = append(result.Positions, Position{Reel: reel, Row: row})
			}
		}
	}

	if result.Count < 3 {
		return result
	}

	absorbed := ctx.FreeRound && ctx.FeatureSymbol == scatter
	result.Triggered = !absorbed

	if !absorbed {
		payout, ok := cfg.ScatterPayouts.Lookup(ctx.TotalBet, result.Count)
		if ok {
			result.Payout = payout
		} else if !cfg.ScatterPayouts.HasBet(ctx.TotalBet) {
			e.reportMissingEntry(cfg, "scatter", scatter, ctx.TotalBet, result.Count)
		}
	}

	if spins, ok := cfg.ScatterBonus.Lookup(ctx.TotalBet, result.Count); ok && spins > 0 {
		result.BonusSpins = spins
	}

	return result
}
