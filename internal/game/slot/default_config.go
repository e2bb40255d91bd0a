package slot

// 金书游戏（5卷轴×3行，10条支付线）的内置配置。
// 书符号同时充当百搭与分散，免费回合中随机选出的特殊符号可整轴扩展。

const (
	SymbolBook     Symbol = "BOOK"     // 书（百搭+分散）
	SymbolExplorer Symbol = "EXPLORER" // 探险家
	SymbolPharaoh  Symbol = "PHARAOH"  // 法老
	SymbolStatue   Symbol = "STATUE"   // 神像
	SymbolScarab   Symbol = "SCARAB"   // 圣甲虫
	SymbolAce      Symbol = "A"
	SymbolKing     Symbol = "K"
	SymbolQueen    Symbol = "Q"
	SymbolJack     Symbol = "J"
	SymbolTen      Symbol = "10"
)

// DefaultBets 默认下注档位（分）
var DefaultBets = []int64{100, 200, 500, 1000}

// 每符号按单线下注的赔付倍数（个数 → 倍数）
var defaultLineMultipliers = map[Symbol]map[int]int64{
	SymbolExplorer: {2: 10, 3: 100, 4: 1000, 5: 5000},
	SymbolPharaoh:  {2: 5, 3: 40, 4: 400, 5: 2000},
	SymbolStatue:   {3: 30, 4: 100, 5: 750},
	SymbolScarab:   {3: 30, 4: 100, 5: 750},
	SymbolAce:      {3: 5, 4: 40, 5: 150},
	SymbolKing:     {3: 5, 4: 40, 5: 150},
	SymbolQueen:    {3: 5, 4: 25, 5: 100},
	SymbolJack:     {3: 5, 4: 25, 5: 100},
	SymbolTen:      {3: 5, 4: 25, 5: 100},
	// 整线书符号按探险家最高倍付
	SymbolBook: {2: 10, 3: 100, 4: 1000, 5: 5000},
}

// 分散符号按总下注的赔付倍数
var defaultScatterMultipliers = map[int]int64{3: 2, 4: 20, 5: 200}

var defaultBaseStrip = []Symbol{
	SymbolTen, SymbolExplorer, SymbolJack, SymbolScarab, SymbolQueen,
	SymbolAce, SymbolTen, SymbolStatue, SymbolKing, SymbolJack,
	SymbolPharaoh, SymbolQueen, SymbolBook, SymbolTen, SymbolKing,
	SymbolScarab, SymbolJack, SymbolAce, SymbolStatue, SymbolQueen,
	SymbolTen, SymbolPharaoh, SymbolKing, SymbolJack, SymbolExplorer,
	SymbolQueen, SymbolAce, SymbolScarab, SymbolTen, SymbolStatue,
	SymbolKing, SymbolJack,
}

// DefaultConfig 内置金书游戏配置
func DefaultConfig() *GameConfig {
	cfg := &GameConfig{
		GameID:        "golden-book",
		Name:          "Golden Book",
		Reels:         5,
		Rows:          3,
		BookSymbol:    SymbolBook,
		ScatterSymbol: SymbolBook,
		Bets:          append([]int64(nil), DefaultBets...),
		FreeSpins:     10,
		CardSymbols:   []Symbol{SymbolTen, SymbolJack, SymbolQueen, SymbolKing, SymbolAce},
		PennyCost:     1,
		BonusSpinCost: 2,
		Paylines: [][]int{
			{1, 1, 1, 1, 1},
			{0, 0, 0, 0, 0},
			{2, 2, 2, 2, 2},
			{0, 1, 2, 1, 0},
			{2, 1, 0, 1, 2},
			{0, 0, 1, 2, 2},
			{2, 2, 1, 0, 0},
			{1, 0, 0, 0, 1},
			{1, 2, 2, 2, 1},
			{0, 1, 1, 1, 0},
		},
		Wheel: []WheelOutcomeConfig{
			{Name: "cash", Weight: 30, Cash: 500},
			{Name: "spins", Weight: 20, Spins: 5},
			{Name: "none", Weight: 50},
		},
		Triggers: []BonusTriggerConfig{
			{Symbol: SymbolScarab, RequiredCount: 6, Spins: 5, WinMultiplier: 2},
		},
	}

	lines := int64(len(cfg.Paylines))
	order := []Symbol{
		SymbolBook, SymbolExplorer, SymbolPharaoh, SymbolStatue, SymbolScarab,
		SymbolAce, SymbolKing, SymbolQueen, SymbolJack, SymbolTen,
	}
	for _, name := range order {
		sc := SymbolConfig{Name: name, Payouts: PayTable{}, Bonus: BonusTable{}}
		for _, bet := range cfg.Bets {
			lineBet := bet / lines
			byCount := map[int]int64{}
			for count, mult := range defaultLineMultipliers[name] {
				byCount[count] = mult * lineBet
			}
			sc.Payouts[bet] = byCount
			if name == SymbolExplorer {
				// 满线探险家额外授予奖励游戏次数
				sc.Bonus[bet] = map[int]int{5: 5}
			}
		}
		cfg.Symbols = append(cfg.Symbols, sc)
	}

	cfg.ScatterPayouts = PayTable{}
	cfg.ScatterBonus = BonusTable{}
	for _, bet := range cfg.Bets {
		byCount := map[int]int64{}
		for count, mult := range defaultScatterMultipliers {
			byCount[count] = mult * bet
		}
		cfg.ScatterPayouts[bet] = byCount
		cfg.ScatterBonus[bet] = map[int]int{5: 3}
	}

	cfg.Strips = make([][]Symbol, cfg.Reels)
	for reel := 0; reel < cfg.Reels; reel++ {
		// 各卷轴使用同一基准条带的不同起点，避免完全同步
		offset := reel * 7
		strip := make([]Symbol, len(defaultBaseStrip))
		for i := range defaultBaseStrip {
			strip[i] = defaultBaseStrip[(i+offset)%len(defaultBaseStrip)]
		}
		cfg.Strips[reel] = strip
	}

	return cfg
}
