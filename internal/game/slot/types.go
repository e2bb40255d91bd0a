package slot

// Symbol 游戏符号名称
type Symbol = string

// Grid 可见符号网格，外层为卷轴、内层为行
type Grid [][]Symbol

// Clone 深拷贝网格
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i := range g {
		out[i] = make([]Symbol, len(g[i]))
		copy(out[i], g[i])
	}
	return out
}

// Reels 卷轴数
func (g Grid) Reels() int {
	return len(g)
}

// Rows 行数
func (g Grid) Rows() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Position 网格位置
type Position struct {
	Reel int `json:"reel"` // 卷轴索引 (0-based)
	Row  int `json:"row"`  // 行索引 (0-based)
}

// ScatterLineIndex 分散奖在中奖线记录中使用的线索引
const ScatterLineIndex = -1

// WinningLine 中奖线记录
type WinningLine struct {
	Line   int    `json:"line"`   // 支付线索引，分散奖为 -1
	Symbol Symbol `json:"symbol"` // 中奖符号
	Count  int    `json:"count"`  // 连续个数
	Payout int64  `json:"payout"` // 赔付金额（分）
	Rows   []int  `json:"rows"`   // 该线完整的行序列（不按命中长度截断）
}

// ScatterResult 分散符号结果
type ScatterResult struct {
	Symbol     Symbol     `json:"symbol"`      // 分散符号
	Count      int        `json:"count"`       // 全盘出现次数
	Positions  []Position `json:"positions"`   // 出现位置
	Payout     int64      `json:"payout"`      // 分散赔付（分）
	Triggered  bool       `json:"triggered"`   // 是否触发/续触发免费旋转
	BonusSpins int        `json:"bonus_spins"` // 授予的奖励游戏次数
}

// BonusTriggerResult 奖励游戏触发结果（符号计数触发，见 GameConfig.Triggers）
type BonusTriggerResult struct {
	Symbol Symbol `json:"symbol"` // 触发符号
	Count  int    `json:"count"`  // 全盘出现次数
	Win    int64  `json:"win"`    // 固定赢取（分）
	Spins  int    `json:"spins"`  // 授予的奖励游戏次数
}

// SpinOutcome 单次旋转的评估结果，返回后不再修改
type SpinOutcome struct {
	Grid    Grid          `json:"grid"`    // 基础局网格
	BaseWin int64         `json:"base_win"` // 基础局赢取：线奖 + 分散奖（分）
	Lines   []WinningLine `json:"lines"`   // 基础局中奖线
	Scatter ScatterResult `json:"scatter"` // 分散结果

	Bonus      *BonusTriggerResult `json:"bonus,omitempty"` // 奖励游戏触发（未触发为 nil）
	BonusSpins int                 `json:"bonus_spins"`     // 本次旋转授予的奖励次数合计

	FeatureSymbol     Symbol        `json:"feature_symbol,omitempty"`     // 当前特殊符号
	ExpandedGrid      Grid          `json:"expanded_grid,omitempty"`      // 扩展后的网格（未扩展为 nil）
	ExpandedPositions []Position    `json:"expanded_positions,omitempty"` // 扩展改写的位置
	ExpandedWin       int64         `json:"expanded_win"`                 // 扩展阶段赢取（分）
	ExpandedLines     []WinningLine `json:"expanded_lines,omitempty"`     // 扩展阶段中奖线
}

// WheelOutcome 转盘抽取结果
type WheelOutcome struct {
	Name  string `json:"name"`  // 结果名称
	Cash  int64  `json:"cash"`  // 现金奖励（分）
	Spins int    `json:"spins"` // 追加的奖励次数
}

// EvalContext 单次旋转的评估上下文
type EvalContext struct {
	TotalBet      int64  // 总下注（分），必须等于配置的下注档位之一
	LineBet       int64  // 单线下注（分）
	FreeRound     bool   // 是否处于免费旋转回合
	FeatureSymbol Symbol // 免费回合的特殊符号，非免费回合为空
}
