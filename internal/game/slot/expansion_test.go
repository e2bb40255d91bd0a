package slot

import "testing"

func TestExpandFeature(t *testing.T) {
	base := testGrid(
		[]Symbol{"10", "Q", "J"},
		[]Symbol{"K", "A", "Q"},
		[]Symbol{"J", "K", "Q"},
		[]Symbol{"A", "10", "J"},
		[]Symbol{"K", "J", "A"},
	)

	t.Run("三个卷轴含特殊符号时整轴扩展", func(t *testing.T) {
		expanded, positions := ExpandFeature(base, "Q")
		if expanded == nil {
			t.Fatal("应发生扩展")
		}
		for _, reel := range []int{0, 1, 2} {
			for row := 0; row < 3; row++ {
				if expanded[reel][row] != "Q" {
					t.Errorf("卷轴%d 行%d = %s, 期望 Q", reel, row, expanded[reel][row])
				}
			}
		}
		// 原网格必须保持不变
		if base[0][0] != "10" {
			t.Error("扩展不得修改原网格")
		}
		// 每个合格卷轴原有1个Q，改写2个位置，共6个
		if len(positions) != 6 {
			t.Errorf("改写位置数 = %d, 期望 6", len(positions))
		}
	})

	t.Run("仅两个卷轴时不扩展", func(t *testing.T) {
		grid := testGrid(
			[]Symbol{"10", "Q", "J"},
			[]Symbol{"K", "A", "Q"},
			[]Symbol{"J", "K", "10"},
			[]Symbol{"A", "10", "J"},
			[]Symbol{"K", "J", "A"},
		)
		expanded, positions := ExpandFeature(grid, "Q")
		if expanded != nil || positions != nil {
			t.Error("两个卷轴不满足扩展条件")
		}
	})
}

func TestEvalExpanded(t *testing.T) {
	cfg := newTestConfig()
	e := NewEvaluator(nil)

	t.Run("规格场景_三轴Q乘以支付线数", func(t *testing.T) {
		// 特殊符号Q出现在3个不同卷轴，扩展后3轴全满，
		// Q×3 在下注1.00时赔付7.00，5条支付线 → 扩展赢取35.00
		base := testGrid(
			[]Symbol{"10", "Q", "J"},
			[]Symbol{"K", "A", "Q"},
			[]Symbol{"J", "K", "Q"},
			[]Symbol{"A", "10", "J"},
			[]Symbol{"K", "J", "A"},
		)
		ctx := EvalContext{TotalBet: 100, LineBet: 20, FreeRound: true, FeatureSymbol: "Q"}
		expanded, _ := ExpandFeature(base, "Q")
		win, lines := e.evalExpanded(cfg, expanded, ctx)
		if win != 3500 {
			t.Errorf("扩展赢取 = %d, 期望 3500", win)
		}
		if len(lines) != len(cfg.Paylines) {
			t.Errorf("扩展中奖线数 = %d, 期望每条支付线一条 %d", len(lines), len(cfg.Paylines))
		}
		for _, l := range lines {
			if l.Symbol != "Q" || l.Count != 3 || l.Payout != 700 {
				t.Errorf("扩展中奖线 = %+v, 期望 Symbol=Q Count=3 Payout=700", l)
			}
		}
	})

	t.Run("赔付表缺项时扩展赢取为零", func(t *testing.T) {
		base := testGrid(
			[]Symbol{"10", "Q", "J"},
			[]Symbol{"K", "A", "Q"},
			[]Symbol{"J", "K", "Q"},
			[]Symbol{"A", "10", "J"},
			[]Symbol{"K", "J", "A"},
		)
		ctx := EvalContext{TotalBet: 300, LineBet: 60, FreeRound: true, FeatureSymbol: "Q"}
		expanded, _ := ExpandFeature(base, "Q")
		win, lines := e.evalExpanded(cfg, expanded, ctx)
		if win != 0 || lines != nil {
			t.Errorf("缺项时应零赢取, 实际 win=%d lines=%d", win, len(lines))
		}
	})
}

func TestEvaluate_ExpansionFlow(t *testing.T) {
	cfg := newTestConfig()
	e := NewEvaluator(nil)
	base := testGrid(
		[]Symbol{"10", "Q", "J"},
		[]Symbol{"K", "A", "Q"},
		[]Symbol{"J", "K", "Q"},
		[]Symbol{"A", "10", "J"},
		[]Symbol{"K", "J", "A"},
	)

	out := e.Evaluate(cfg, base, EvalContext{TotalBet: 100, LineBet: 20, FreeRound: true, FeatureSymbol: "Q"})
	if out.ExpandedGrid == nil {
		t.Fatal("应产生扩展网格")
	}
	if out.ExpandedWin != 3500 {
		t.Errorf("扩展赢取 = %d, 期望 3500", out.ExpandedWin)
	}
	if len(out.ExpandedPositions) != 6 {
		t.Errorf("扩展位置数 = %d, 期望 6", len(out.ExpandedPositions))
	}
	// 基础局中Q的线被排除，无其他中奖
	if out.BaseWin != 0 {
		t.Errorf("基础局赢取 = %d, 期望 0", out.BaseWin)
	}
}
