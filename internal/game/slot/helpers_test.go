package slot

// newTestConfig 构造测试用的 5×3 书类游戏配置：
// 5条支付线，下注档位 1.00 / 2.00，赔付表只配置测试需要的条目
func newTestConfig() *GameConfig {
	cfg := &GameConfig{
		GameID:        "test-book",
		Name:          "Test Book",
		Reels:         5,
		Rows:          3,
		BookSymbol:    "BOOK",
		ScatterSymbol: "BOOK",
		Bets:          []int64{100, 200},
		FreeSpins:     10,
		CardSymbols:   []Symbol{"10", "J", "Q", "K", "A"},
		PennyCost:     1,
		BonusSpinCost: 2,
		Paylines: [][]int{
			{1, 1, 1, 1, 1},
			{0, 0, 0, 0, 0},
			{2, 2, 2, 2, 2},
			{0, 1, 2, 1, 0},
			{2, 1, 0, 1, 2},
		},
	}

	symbols := []struct {
		name    Symbol
		payouts map[int]int64
		bonus   map[int]int
	}{
		{"A", map[int]int64{3: 500, 4: 2000, 5: 10000}, nil},
		{"K", map[int]int64{3: 300, 4: 1000, 5: 5000}, nil},
		{"Q", map[int]int64{3: 700, 4: 1500, 5: 7000}, nil},
		{"J", map[int]int64{3: 200, 4: 800, 5: 4000}, nil},
		{"10", map[int]int64{3: 200, 4: 800, 5: 4000}, nil},
		{"PHARAOH", map[int]int64{2: 100, 3: 1000, 4: 4000, 5: 20000}, map[int]int{5: 5}},
		{"BOOK", map[int]int64{3: 1000, 4: 4000, 5: 20000}, nil},
	}
	for _, s := range symbols {
		sc := SymbolConfig{Name: s.name, Payouts: PayTable{}, Bonus: BonusTable{}}
		for _, bet := range cfg.Bets {
			scale := bet / 100
			byCount := map[int]int64{}
			for count, payout := range s.payouts {
				byCount[count] = payout * scale
			}
			sc.Payouts[bet] = byCount
			if s.bonus != nil {
				sc.Bonus[bet] = s.bonus
			}
		}
		cfg.Symbols = append(cfg.Symbols, sc)
	}

	cfg.ScatterPayouts = PayTable{}
	cfg.ScatterBonus = BonusTable{}
	for _, bet := range cfg.Bets {
		cfg.ScatterPayouts[bet] = map[int]int64{3: 2 * bet, 4: 20 * bet, 5: 200 * bet}
		cfg.ScatterBonus[bet] = map[int]int{5: 3}
	}

	cfg.Strips = make([][]Symbol, cfg.Reels)
	base := []Symbol{"10", "A", "J", "PHARAOH", "Q", "K", "BOOK", "10", "J", "A", "Q", "K"}
	for reel := 0; reel < cfg.Reels; reel++ {
		cfg.Strips[reel] = append([]Symbol(nil), base...)
	}

	cfg.Wheel = []WheelOutcomeConfig{
		{Name: "cash", Weight: 30, Cash: 500},
		{Name: "spins", Weight: 20, Spins: 5},
		{Name: "none", Weight: 50},
	}
	cfg.Triggers = []BonusTriggerConfig{
		{Symbol: "PHARAOH", RequiredCount: 6, Spins: 5, WinMultiplier: 2},
	}

	return cfg
}

// testGrid 按 [卷轴][行] 构造网格
func testGrid(reels ...[]Symbol) Grid {
	g := make(Grid, len(reels))
	for i, r := range reels {
		g[i] = r
	}
	return g
}
