package game

import (
	"github.com/wfunc/book-slot/internal/game/slot"
)

// newTestConfig 构造测试用的 5×3 书类游戏配置，
// 5条支付线，下注档位 1.00 / 2.00
func newTestConfig() *slot.GameConfig {
	cfg := &slot.GameConfig{
		GameID:        "test-book",
		Name:          "Test Book",
		Reels:         5,
		Rows:          3,
		BookSymbol:    "BOOK",
		ScatterSymbol: "BOOK",
		Bets:          []int64{100, 200},
		FreeSpins:     10,
		CardSymbols:   []slot.Symbol{"10", "J", "Q", "K", "A"},
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
		name    slot.Symbol
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
		sc := slot.SymbolConfig{Name: s.name, Payouts: slot.PayTable{}, Bonus: slot.BonusTable{}}
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

	cfg.ScatterPayouts = slot.PayTable{}
	cfg.ScatterBonus = slot.BonusTable{}
	for _, bet := range cfg.Bets {
		cfg.ScatterPayouts[bet] = map[int]int64{3: 2 * bet, 4: 20 * bet, 5: 200 * bet}
		cfg.ScatterBonus[bet] = map[int]int{5: 3}
	}

	cfg.Strips = make([][]slot.Symbol, cfg.Reels)
	base := []slot.Symbol{"10", "A", "J", "PHARAOH", "Q", "K", "BOOK", "10", "J", "A", "Q", "K"}
	for reel := 0; reel < cfg.Reels; reel++ {
		cfg.Strips[reel] = append([]slot.Symbol(nil), base...)
	}

	cfg.Wheel = []slot.WheelOutcomeConfig{
		{Name: "cash", Weight: 30, Cash: 500},
		{Name: "spins", Weight: 20, Spins: 5},
		{Name: "none", Weight: 50},
	}
	cfg.Triggers = []slot.BonusTriggerConfig{
		{Symbol: "PHARAOH", RequiredCount: 6, Spins: 5, WinMultiplier: 2},
	}

	return cfg
}

// testGrid 按 [卷轴][行] 构造网格
func testGrid(reels ...[]slot.Symbol) slot.Grid {
	g := make(slot.Grid, len(reels))
	for i, r := range reels {
		g[i] = r
	}
	return g
}

// losingGrid 无任何中奖的网格
func losingGrid() slot.Grid {
	return testGrid(
		[]slot.Symbol{"A", "10", "K"},
		[]slot.Symbol{"K", "J", "A"},
		[]slot.Symbol{"J", "Q", "10"},
		[]slot.Symbol{"Q", "K", "J"},
		[]slot.Symbol{"10", "A", "Q"},
	)
}

// winningGrid 中间线3个A，赢 500（按1.00下注）
func winningGrid() slot.Grid {
	return testGrid(
		[]slot.Symbol{"10", "A", "J"},
		[]slot.Symbol{"K", "A", "Q"},
		[]slot.Symbol{"Q", "A", "10"},
		[]slot.Symbol{"J", "10", "K"},
		[]slot.Symbol{"10", "K", "Q"},
	)
}

// scatterGrid 3个BOOK分散，无线赢
func scatterGrid() slot.Grid {
	return testGrid(
		[]slot.Symbol{"BOOK", "10", "K"},
		[]slot.Symbol{"K", "J", "A"},
		[]slot.Symbol{"J", "BOOK", "10"},
		[]slot.Symbol{"Q", "K", "J"},
		[]slot.Symbol{"10", "A", "BOOK"},
	)
}

// triggerGrid 全盘6个PHARAOH，无线赢、无分散
func triggerGrid() slot.Grid {
	return testGrid(
		[]slot.Symbol{"PHARAOH", "PHARAOH", "K"},
		[]slot.Symbol{"K", "J", "PHARAOH"},
		[]slot.Symbol{"J", "Q", "PHARAOH"},
		[]slot.Symbol{"Q", "K", "PHARAOH"},
		[]slot.Symbol{"10", "A", "PHARAOH"},
	)
}

// testDeps 构造状态转换依赖
func testDeps(cfg *slot.GameConfig, rng slot.RandomSource) spinDeps {
	if rng == nil {
		rng = slot.NewSeededSource(1)
	}
	return spinDeps{cfg: cfg, eval: slot.NewEvaluator(nil), rng: rng}
}
