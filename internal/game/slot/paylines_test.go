package slot

import "testing"

func TestEvalPaylines(t *testing.T) {
	cfg := newTestConfig()
	e := NewEvaluator(nil)

	tests := []struct {
		name      string
		grid      Grid
		ctx       EvalContext
		wantWin   int64
		wantLines int
	}{
		{
			name: "中线三个A",
			grid: testGrid(
				[]Symbol{"10", "A", "J"},
				[]Symbol{"K", "A", "Q"},
				[]Symbol{"J", "A", "K"},
				[]Symbol{"Q", "10", "J"},
				[]Symbol{"K", "J", "Q"},
			),
			ctx:       EvalContext{TotalBet: 100, LineBet: 20},
			wantWin:   500,
			wantLines: 1,
		},
		{
			name: "书符号替代补全三连",
			grid: testGrid(
				[]Symbol{"10", "A", "J"},
				[]Symbol{"K", "BOOK", "Q"},
				[]Symbol{"J", "A", "K"},
				[]Symbol{"Q", "10", "J"},
				[]Symbol{"K", "J", "Q"},
			),
			ctx:       EvalContext{TotalBet: 100, LineBet: 20},
			wantWin:   500,
			wantLines: 1,
		},
		{
			name: "两连不足起赔线",
			grid: testGrid(
				[]Symbol{"10", "A", "J"},
				[]Symbol{"K", "A", "Q"},
				[]Symbol{"J", "K", "10"},
				[]Symbol{"Q", "10", "J"},
				[]Symbol{"K", "J", "Q"},
			),
			ctx:       EvalContext{TotalBet: 100, LineBet: 20},
			wantWin:   0,
			wantLines: 0,
		},
		{
			name: "断开后不再计数",
			grid: testGrid(
				[]Symbol{"10", "A", "J"},
				[]Symbol{"K", "A", "Q"},
				[]Symbol{"J", "K", "10"},
				[]Symbol{"Q", "A", "J"},
				[]Symbol{"K", "A", "Q"},
			),
			ctx:       EvalContext{TotalBet: 100, LineBet: 20},
			wantWin:   0,
			wantLines: 0,
		},
		{
			name: "免费回合中特殊符号的线被排除",
			grid: testGrid(
				[]Symbol{"10", "Q", "J"},
				[]Symbol{"K", "Q", "J"},
				[]Symbol{"J", "Q", "K"},
				[]Symbol{"A", "10", "J"},
				[]Symbol{"K", "J", "A"},
			),
			ctx:       EvalContext{TotalBet: 100, LineBet: 20, FreeRound: true, FeatureSymbol: "Q"},
			wantWin:   0,
			wantLines: 0,
		},
		{
			name: "免费回合中非特殊符号正常结算",
			grid: testGrid(
				[]Symbol{"10", "A", "J"},
				[]Symbol{"K", "A", "Q"},
				[]Symbol{"J", "A", "K"},
				[]Symbol{"Q", "10", "J"},
				[]Symbol{"K", "J", "Q"},
			),
			ctx:       EvalContext{TotalBet: 100, LineBet: 20, FreeRound: true, FeatureSymbol: "Q"},
			wantWin:   500,
			wantLines: 1,
		},
		{
			name: "未配置的下注档位零赔付",
			grid: testGrid(
				[]Symbol{"10", "A", "J"},
				[]Symbol{"K", "A", "Q"},
				[]Symbol{"J", "A", "K"},
				[]Symbol{"Q", "10", "J"},
				[]Symbol{"K", "J", "Q"},
			),
			ctx:       EvalContext{TotalBet: 300, LineBet: 60},
			wantWin:   0,
			wantLines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, win, _ := e.evalPaylines(cfg, tt.grid, tt.ctx)
			if win != tt.wantWin {
				t.Errorf("线奖合计 = %d, 期望 %d", win, tt.wantWin)
			}
			if len(lines) != tt.wantLines {
				t.Errorf("中奖线数 = %d, 期望 %d", len(lines), tt.wantLines)
			}
		})
	}
}

func TestEvalPaylines_WinningLineRecord(t *testing.T) {
	// 规格场景：下注1.00，支付线0上恰好三个连续A，A×3赔付5.00
	cfg := newTestConfig()
	e := NewEvaluator(nil)
	grid := testGrid(
		[]Symbol{"10", "A", "J"},
		[]Symbol{"K", "A", "Q"},
		[]Symbol{"J", "A", "K"},
		[]Symbol{"Q", "10", "J"},
		[]Symbol{"K", "J", "Q"},
	)

	lines, win, _ := e.evalPaylines(cfg, grid, EvalContext{TotalBet: 100, LineBet: 20})
	if win != 500 {
		t.Fatalf("线奖合计 = %d, 期望 500", win)
	}
	if len(lines) != 1 {
		t.Fatalf("中奖线数 = %d, 期望 1", len(lines))
	}
	line := lines[0]
	if line.Line != 0 || line.Symbol != "A" || line.Count != 3 || line.Payout != 500 {
		t.Errorf("中奖线记录 = %+v, 期望 Line=0 Symbol=A Count=3 Payout=500", line)
	}
	if len(line.Rows) != cfg.Reels {
		t.Errorf("行序列长度 = %d, 必须是完整序列 %d", len(line.Rows), cfg.Reels)
	}
}

func TestEvalPaylines_FeatureSubstitutionDisabled(t *testing.T) {
	// 免费回合中若替代符号就是特殊符号，替代规则停用
	cfg := newTestConfig()
	e := NewEvaluator(nil)
	grid := testGrid(
		[]Symbol{"10", "A", "J"},
		[]Symbol{"K", "BOOK", "Q"},
		[]Symbol{"J", "A", "K"},
		[]Symbol{"Q", "10", "J"},
		[]Symbol{"K", "J", "Q"},
	)

	ctx := EvalContext{TotalBet: 100, LineBet: 20, FreeRound: true, FeatureSymbol: "BOOK"}
	_, win, _ := e.evalPaylines(cfg, grid, ctx)
	if win != 0 {
		t.Errorf("替代停用时线奖 = %d, 期望 0", win)
	}

	// 同一网格重复评估结果一致（幂等）
	lines1, win1, _ := e.evalPaylines(cfg, grid, ctx)
	lines2, win2, _ := e.evalPaylines(cfg, grid, ctx)
	if win1 != win2 || len(lines1) != len(lines2) {
		t.Error("重复评估结果不一致")
	}
}

func TestEvalPaylines_AllSubstituteLine(t *testing.T) {
	// 整线均为书符号时，书符号本身即中奖符号
	cfg := newTestConfig()
	e := NewEvaluator(nil)
	grid := testGrid(
		[]Symbol{"10", "BOOK", "J"},
		[]Symbol{"K", "BOOK", "Q"},
		[]Symbol{"J", "BOOK", "K"},
		[]Symbol{"Q", "BOOK", "J"},
		[]Symbol{"K", "BOOK", "Q"},
	)

	lines, _, _ := e.evalPaylines(cfg, grid, EvalContext{TotalBet: 100, LineBet: 20})
	found := false
	for _, l := range lines {
		if l.Line == 0 {
			found = true
			if l.Symbol != "BOOK" || l.Count != 5 {
				t.Errorf("整线书符号记录 = %+v, 期望 Symbol=BOOK Count=5", l)
			}
		}
	}
	if !found {
		t.Error("整线书符号应按书符号结算")
	}
}

func TestEvalPaylines_BonusSpinsGrant(t *testing.T) {
	cfg := newTestConfig()
	e := NewEvaluator(nil)
	grid := testGrid(
		[]Symbol{"10", "PHARAOH", "J"},
		[]Symbol{"K", "PHARAOH", "Q"},
		[]Symbol{"J", "PHARAOH", "K"},
		[]Symbol{"Q", "PHARAOH", "J"},
		[]Symbol{"K", "PHARAOH", "Q"},
	)

	_, _, spins := e.evalPaylines(cfg, grid, EvalContext{TotalBet: 100, LineBet: 20})
	if spins != 5 {
		t.Errorf("线奖授予的奖励次数 = %d, 期望 5", spins)
	}
}
