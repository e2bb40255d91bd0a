package slot

// detectBonusTrigger 按全盘符号计数检测奖励游戏触发。
// 按配置顺序检查各触发定义，命中第一个后即停止（每次旋转最多触发一次）。
// 固定赢取 = 配置倍数 × 单线下注。
func (e *Evaluator) detectBonusTrigger(cfg *GameConfig, grid Grid, ctx EvalContext) *BonusTriggerResult {
	if len(cfg.Triggers) == 0 {
		return nil
	}

	counts := make(map[Symbol]int)
	for reel := range grid {
		for _, s := range grid[reel] {
			counts[s]++
		}
	}

	for _, trig := range cfg.Triggers {
		count := counts[trig.Symbol]
		if count < trig.RequiredCount {
			continue
		}
		return &BonusTriggerResult{
			Symbol: trig.Symbol,
			Count:  count,
			Win:    trig.WinMultiplier * ctx.LineBet,
			Spins:  trig.Spins,
		}
	}
	return nil
}
