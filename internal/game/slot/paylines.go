package slot

// lineSymbols 读取一条支付线覆盖的符号序列
func lineSymbols(grid Grid, line []int) []Symbol {
	symbols := make([]Symbol, len(line))
	for reel, row := range line {
		symbols[reel] = grid[reel][row]
	}
	return symbols
}

// winningSymbol 确定一条线的中奖符号：
// 从左到右第一个非替代符号；整线均为替代符号时即替代符号本身
func winningSymbol(symbols []Symbol, substitute Symbol) Symbol {
	for _, s := range symbols {
		if s != substitute {
			return s
		}
	}
	return substitute
}

// evalPaylines 评估全部支付线，返回中奖线、线奖合计与线奖授予的奖励次数
func (e *Evaluator) evalPaylines(cfg *GameConfig, grid Grid, ctx EvalContext) ([]WinningLine, int64, int) {
	var (
		wins       []WinningLine
		totalWin   int64
		bonusSpins int
	)

	substitute := cfg.Substitute()
	// 免费回合中替代符号若正是特殊符号，则替代规则停用：
	// 特殊符号的中奖只在扩展阶段结算
	substituteActive := !(ctx.FreeRound && substitute == ctx.FeatureSymbol)

	for idx, line := range cfg.Paylines {
		symbols := lineSymbols(grid, line)
		winner := winningSymbol(symbols, substitute)

		if ctx.FreeRound && winner == ctx.FeatureSymbol {
			// 特殊符号自己的线不参与基础局
			continue
		}

		count := 0
		for _, s := range symbols {
			if s == winner || (substituteActive && s == substitute) {
				count++
				continue
			}
			break
		}
		if count < 2 {
			continue
		}

		symCfg, ok := cfg.SymbolByName(winner)
		if !ok {
			e.reportMissingEntry(cfg, "symbol", winner, ctx.TotalBet, count)
			continue
		}

		payout, ok := symCfg.Payouts.Lookup(ctx.TotalBet, count)
		if ok && payout > 0 {
			totalWin += payout
			wins = append(wins, WinningLine{
				Line:   idx,
				Symbol: winner,
				Count:  count,
				Payout: payout,
				Rows:   append([]int(nil), line...),
			})
		} else if !symCfg.Payouts.HasBet(ctx.TotalBet) {
			// 下注档位整体缺失是配置错误，该线按零赔付结算
			e.reportMissingEntry(cfg, "payline", winner, ctx.TotalBet, count)
		}

		if spins, ok := symCfg.Bonus.Lookup(ctx.TotalBet, count); ok && spins > 0 {
			bonusSpins += spins
		}
	}

	return wins, totalWin, bonusSpins
}
