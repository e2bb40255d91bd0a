package slot

// ExpandFeature 将特殊符号扩展至整条卷轴。
// 统计可见区域内包含特殊符号的不同卷轴数，不足3个则不发生扩展（返回 nil）。
// 达到3个及以上时生成新网格（原网格保持不变），
// 将符合条件的卷轴整轴改写为特殊符号，并返回所有被改写的位置。
func ExpandFeature(grid Grid, feature Symbol) (Grid, []Position) {
	var qualifying []int
	for reel := range grid {
		for _, s := range grid[reel] {
			if s == feature {
				qualifying = append(qualifying, reel)
				break
			}
		}
	}
	if len(qualifying) < 3 {
		return nil, nil
	}

	expanded := grid.Clone()
	var positions []Position
	for _, reel := range qualifying {
		for row := range expanded[reel] {
			if expanded[reel][row] != feature {
				expanded[reel][row] = feature
				positions = append(positions, Position{Reel: reel, Row: row})
			}
		}
	}
	return expanded, positions
}

// evalExpanded 计算扩展阶段的赢取：
// 统计完全被特殊符号填满的卷轴数，≥3 时查找该个数的赔付，
// 每条启用的支付线都按同一单线金额中奖。
func (e *Evaluator) evalExpanded(cfg *GameConfig, expanded Grid, ctx EvalContext) (int64, []WinningLine) {
	feature := ctx.FeatureSymbol

	fullReels := 0
	for reel := range expanded {
		full := true
		for _, s := range expanded[reel] {
			if s != feature {
				full = false
				break
			}
		}
		if full {
			fullReels++
		}
	}
	if fullReels < 3 {
		return 0, nil
	}

	symCfg, ok := cfg.SymbolByName(feature)
	if !ok {
		e.reportMissingEntry(cfg, "feature", feature, ctx.TotalBet, fullReels)
		return 0, nil
	}
	perLine, ok := symCfg.Payouts.Lookup(ctx.TotalBet, fullReels)
	if !ok {
		e.reportMissingEntry(cfg, "feature", feature, ctx.TotalBet, fullReels)
		return 0, nil
	}

	var lines []WinningLine
	for idx, line := range cfg.Paylines {
		lines = append(lines, WinningLine{
			Line:   idx,
			Symbol: feature,
			Count:  fullReels,
			Payout: perLine,
			Rows:   append([]int(nil), line...),
		})
	}
	return perLine * int64(len(cfg.Paylines)), lines
}
