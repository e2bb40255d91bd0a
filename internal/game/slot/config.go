package slot

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig  = errors.New("无效的游戏配置")
	ErrEmptyReelStrip = errors.New("卷轴条为空")
	ErrUnknownGame    = errors.New("未知的游戏ID")
)

// PayTable 按总下注和连续个数索引的赔付表（分）
type PayTable map[int64]map[int]int64

// BonusTable 按总下注和个数索引的奖励次数表
type BonusTable map[int64]map[int]int

// Lookup 精确查找赔付项，缺失时返回 false，绝不回退默认值
func (t PayTable) Lookup(bet int64, count int) (int64, bool) {
	byCount, ok := t[bet]
	if !ok {
		return 0, false
	}
	payout, ok := byCount[count]
	return payout, ok
}

// HasBet 该下注档位是否存在赔付条目
func (t PayTable) HasBet(bet int64) bool {
	_, ok := t[bet]
	return ok
}

// Lookup 精确查找奖励次数，缺失时返回 false
func (t BonusTable) Lookup(bet int64, count int) (int, bool) {
	byCount, ok := t[bet]
	if !ok {
		return 0, false
	}
	spins, ok := byCount[count]
	return spins, ok
}

// SymbolConfig 符号配置
type SymbolConfig struct {
	Name    Symbol     `json:"name"`    // 符号名称
	Payouts PayTable   `json:"payouts"` // 赔付表
	Bonus   BonusTable `json:"bonus"`   // 奖励次数表
}

// BonusTriggerConfig 奖励游戏触发配置（按全盘符号计数）
type BonusTriggerConfig struct {
	Symbol        Symbol `json:"symbol"`         // 触发符号
	RequiredCount int    `json:"required_count"` // 需要的符号数量
	Spins         int    `json:"spins"`          // 授予的奖励次数
	WinMultiplier int64  `json:"win_multiplier"` // 固定赢取 = 倍数 × 单线下注
}

// WheelOutcomeConfig 转盘结果配置
type WheelOutcomeConfig struct {
	Name   string `json:"name"`   // 结果名称
	Weight int    `json:"weight"` // 权重
	Cash   int64  `json:"cash"`   // 现金奖励（分）
	Spins  int    `json:"spins"`  // 追加的奖励次数
}

// GameConfig 游戏配置，按游戏ID加载一次后只读共享
type GameConfig struct {
	GameID string `json:"game_id"` // 游戏ID
	Name   string `json:"name"`    // 游戏名称

	Reels int `json:"reels"` // 卷轴数
	Rows  int `json:"rows"`  // 行数

	Symbols  []SymbolConfig `json:"symbols"`  // 符号表
	Strips   [][]Symbol     `json:"strips"`   // 卷轴条，每卷轴一条有序序列
	Paylines [][]int        `json:"paylines"` // 支付线定义，每线每卷轴一个行索引

	WildSymbol    Symbol `json:"wild_symbol"`    // 百搭符号
	ScatterSymbol Symbol `json:"scatter_symbol"` // 分散符号
	BookSymbol    Symbol `json:"book_symbol"`    // 合并百搭+分散的书符号，非书类游戏为空

	Bets      []int64 `json:"bets"`       // 接受的总下注档位（分），升序
	FreeSpins int     `json:"free_spins"` // 每次触发授予的免费旋转次数

	ScatterPayouts PayTable   `json:"scatter_payouts"` // 分散赔付表
	ScatterBonus   BonusTable `json:"scatter_bonus"`   // 分散奖励次数表

	Wheel    []WheelOutcomeConfig `json:"wheel"`    // 转盘结果及权重
	Triggers []BonusTriggerConfig `json:"triggers"` // 奖励游戏触发定义，按配置顺序检测

	CardSymbols []Symbol `json:"card_symbols"` // 牌面符号，从低到高排列

	PennyCost     int64 `json:"penny_cost"`      // 免费旋转的固定小额费用（分）
	BonusSpinCost int64 `json:"bonus_spin_cost"` // 奖励转盘的固定费用（分）
}

// UsesBook 是否使用合并百搭+分散的书符号
func (c *GameConfig) UsesBook() bool {
	return c.BookSymbol != ""
}

// Substitute 返回替代符号：书类游戏为书符号，否则为百搭
func (c *GameConfig) Substitute() Symbol {
	if c.UsesBook() {
		return c.BookSymbol
	}
	return c.WildSymbol
}

// ScatterName 返回分散符号：书类游戏为书符号
func (c *GameConfig) ScatterName() Symbol {
	if c.UsesBook() {
		return c.BookSymbol
	}
	return c.ScatterSymbol
}

// SymbolByName 按名称查找符号配置
func (c *GameConfig) SymbolByName(name Symbol) (*SymbolConfig, bool) {
	for i := range c.Symbols {
		if c.Symbols[i].Name == name {
			return &c.Symbols[i], true
		}
	}
	return nil, false
}

// LowestBet 最低下注档位
func (c *GameConfig) LowestBet() int64 {
	if len(c.Bets) == 0 {
		return 0
	}
	return c.Bets[0]
}

// MatchBet 在小误差内将下注对齐到配置的档位，未匹配时返回 false
func (c *GameConfig) MatchBet(bet int64) (int64, bool) {
	const epsilon = 1 // 分
	for _, b := range c.Bets {
		diff := bet - b
		if diff < 0 {
			diff = -diff
		}
		if diff <= epsilon {
			return b, true
		}
	}
	return 0, false
}

// FeatureCandidates 可被选为特殊符号的集合：
// 排除书符号与最低的四个牌面符号，集合为空时回退到除书以外的全部符号
func (c *GameConfig) FeatureCandidates() []Symbol {
	excluded := map[Symbol]bool{c.Substitute(): true}
	if c.UsesBook() {
		excluded[c.BookSymbol] = true
	} else {
		excluded[c.ScatterSymbol] = true
	}
	for i, card := range c.CardSymbols {
		if i >= 4 {
			break
		}
		excluded[card] = true
	}

	var candidates []Symbol
	for i := range c.Symbols {
		if !excluded[c.Symbols[i].Name] {
			candidates = append(candidates, c.Symbols[i].Name)
		}
	}
	if len(candidates) == 0 {
		for i := range c.Symbols {
			if c.Symbols[i].Name != c.Substitute() {
				candidates = append(candidates, c.Symbols[i].Name)
			}
		}
	}
	return candidates
}

// Validate 验证游戏配置
func (c *GameConfig) Validate() error {
	if c.GameID == "" {
		return fmt.Errorf("%w: 缺少游戏ID", ErrInvalidConfig)
	}
	if c.Reels < 3 {
		return fmt.Errorf("%w: 卷轴数必须不少于3, 实际 %d", ErrInvalidConfig, c.Reels)
	}
	if c.Rows < 1 {
		return fmt.Errorf("%w: 行数必须不少于1, 实际 %d", ErrInvalidConfig, c.Rows)
	}
	if len(c.Strips) != c.Reels {
		return fmt.Errorf("%w: 卷轴条数量 %d 与卷轴数 %d 不一致", ErrInvalidConfig, len(c.Strips), c.Reels)
	}
	for i, strip := range c.Strips {
		if len(strip) == 0 {
			return fmt.Errorf("%w: 卷轴 %d", ErrEmptyReelStrip, i)
		}
	}
	if len(c.Paylines) == 0 {
		return fmt.Errorf("%w: 未定义支付线", ErrInvalidConfig)
	}
	for i, line := range c.Paylines {
		if len(line) != c.Reels {
			return fmt.Errorf("%w: 支付线 %d 长度 %d 与卷轴数 %d 不一致", ErrInvalidConfig, i, len(line), c.Reels)
		}
		for _, row := range line {
			if row < 0 || row >= c.Rows {
				return fmt.Errorf("%w: 支付线 %d 行索引 %d 越界", ErrInvalidConfig, i, row)
			}
		}
	}
	if len(c.Bets) == 0 {
		return fmt.Errorf("%w: 未配置下注档位", ErrInvalidConfig)
	}
	for i := 1; i < len(c.Bets); i++ {
		if c.Bets[i] <= c.Bets[i-1] {
			return fmt.Errorf("%w: 下注档位必须严格升序", ErrInvalidConfig)
		}
	}
	if !c.UsesBook() && c.WildSymbol == "" {
		return fmt.Errorf("%w: 必须配置书符号或百搭符号", ErrInvalidConfig)
	}
	if c.FreeSpins <= 0 {
		return fmt.Errorf("%w: 免费旋转次数必须大于0", ErrInvalidConfig)
	}
	for i, trig := range c.Triggers {
		if trig.Symbol == "" || trig.RequiredCount <= 0 {
			return fmt.Errorf("%w: 奖励触发 %d 配置不完整", ErrInvalidConfig, i)
		}
	}
	return nil
}
