package slot

// NullWheelOutcome 空转盘结果：配置为空或权重和为零时确定性返回，
// 游戏必须保持可玩，因此这不是错误
var NullWheelOutcome = WheelOutcome{Name: "none"}

// DrawWheel 执行一次加权随机转盘抽取。
// 在 [0, 权重和) 内取均匀随机整数，按配置顺序累加权重，
// 选中第一个累计权重超过随机值的结果。
func DrawWheel(outcomes []WheelOutcomeConfig, rng RandomSource) WheelOutcome {
	total := 0
	for _, o := range outcomes {
		if o.Weight > 0 {
			total += o.Weight
		}
	}
	if total <= 0 {
		return NullWheelOutcome
	}

	draw := rng.Intn(total)
	cumulative := 0
	for _, o := range outcomes {
		if o.Weight <= 0 {
			continue
		}
		cumulative += o.Weight
		if draw < cumulative {
			return WheelOutcome{Name: o.Name, Cash: o.Cash, Spins: o.Spins}
		}
	}
	return NullWheelOutcome
}
