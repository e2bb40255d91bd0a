package slot

import (
	"os"
	"path/filepath"
	"testing"
)

const testGameYAML = `
name: "Mini Book"
reels: 3
rows: 3
book_symbol: "BOOK"
scatter_symbol: "BOOK"
bets: ["1.00", "2.00"]
free_spins: 10
card_symbols: ["10", "J", "Q", "K", "A"]
penny_cost: "0.01"
bonus_spin_cost: "0.02"
paylines:
  - [1, 1, 1]
  - [0, 0, 0]
  - [2, 2, 2]
strips:
  - ["A", "K", "BOOK", "Q", "10", "J"]
  - ["K", "A", "Q", "BOOK", "J", "10"]
  - ["Q", "10", "A", "K", "BOOK", "J"]
symbols:
  - name: "A"
    payouts:
      "1.00": {3: "5.00"}
      "2.00": {3: "10.00"}
  - name: "K"
    payouts:
      "1.00": {3: "3.00"}
      "2.00": {3: "6.00"}
  - name: "Q"
    payouts:
      "1.00": {3: "7.00"}
      "2.00": {3: "14.00"}
  - name: "J"
    payouts:
      "1.00": {3: "2.00"}
      "2.00": {3: "4.00"}
  - name: "10"
    payouts:
      "1.00": {3: "2.00"}
      "2.00": {3: "4.00"}
  - name: "BOOK"
    payouts:
      "1.00": {3: "10.00"}
      "2.00": {3: "20.00"}
scatter_payouts:
  "1.00": {3: "2.00"}
  "2.00": {3: "4.00"}
wheel:
  - {name: "cash", weight: 1, cash: "5.00"}
  - {name: "none", weight: 1}
`

func TestFileProviderLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mini-book.yaml")
	if err := os.WriteFile(path, []byte(testGameYAML), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewFileProvider(dir, nil)
	cfg, err := p.GetConfig("mini-book")
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}

	if cfg.Name != "Mini Book" || cfg.Reels != 3 || cfg.Rows != 3 {
		t.Errorf("基础字段解析错误: %+v", cfg)
	}
	if len(cfg.Bets) != 2 || cfg.Bets[0] != 100 || cfg.Bets[1] != 200 {
		t.Errorf("下注档位 = %v, 期望 [100 200]", cfg.Bets)
	}
	if cfg.PennyCost != 1 || cfg.BonusSpinCost != 2 {
		t.Errorf("费用解析错误: penny=%d bonus=%d", cfg.PennyCost, cfg.BonusSpinCost)
	}

	sym, ok := cfg.SymbolByName("A")
	if !ok {
		t.Fatal("缺少符号A")
	}
	if payout, ok := sym.Payouts.Lookup(100, 3); !ok || payout != 500 {
		t.Errorf("A×3@1.00 = %d (%v), 期望 500", payout, ok)
	}
	if payout, ok := cfg.ScatterPayouts.Lookup(200, 3); !ok || payout != 400 {
		t.Errorf("分散×3@2.00 = %d (%v), 期望 400", payout, ok)
	}

	// 二次获取命中缓存且为同一实例
	cfg2, err := p.GetConfig("mini-book")
	if err != nil {
		t.Fatal(err)
	}
	if cfg2 != cfg {
		t.Error("配置应缓存为同一只读实例")
	}
}

func TestFileProviderBuiltinFallback(t *testing.T) {
	p := NewFileProvider(t.TempDir(), nil)

	cfg, err := p.GetConfig("golden-book")
	if err != nil {
		t.Fatalf("内置游戏应可加载: %v", err)
	}
	if cfg.GameID != "golden-book" {
		t.Errorf("GameID = %s", cfg.GameID)
	}

	if _, err := p.GetConfig("no-such-game"); err == nil {
		t.Error("未知游戏应返回错误")
	}
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1.00", 100, false},
		{"0.01", 1, false},
		{"10", 1000, false},
		{"2.5", 250, false},
		{"", 0, false},
		{"0.001", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseCents(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCents(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseCents(%q) = %d, 期望 %d", tt.in, got, tt.want)
		}
	}
}
