package slot

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ConfigProvider 游戏配置提供者，按游戏ID返回只读配置
type ConfigProvider interface {
	// GetConfig 获取指定游戏的配置，加载后缓存，调用方不得修改
	GetConfig(gameID string) (*GameConfig, error)
}

// FileProvider 从目录加载 YAML 游戏定义的配置提供者。
// 金额字段以 "1.00" 形式书写，解析时用 decimal 精确转换为分，
// 避免浮点/本地化误差。找不到文件时回退内置配置（仅限内置游戏ID）。
type FileProvider struct {
	mu    sync.RWMutex
	dir   string
	log   *zap.Logger
	cache map[string]*GameConfig
}

// NewFileProvider 创建文件配置提供者
func NewFileProvider(dir string, log *zap.Logger) *FileProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileProvider{
		dir:   dir,
		log:   log,
		cache: make(map[string]*GameConfig),
	}
}

// GetConfig 获取游戏配置
func (p *FileProvider) GetConfig(gameID string) (*GameConfig, error) {
	p.mu.RLock()
	if cfg, ok := p.cache[gameID]; ok {
		p.mu.RUnlock()
		return cfg, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if cfg, ok := p.cache[gameID]; ok {
		return cfg, nil
	}

	cfg, err := p.load(gameID)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p.cache[gameID] = cfg
	p.log.Info("游戏配置已加载",
		zap.String("game_id", gameID),
		zap.Int("reels", cfg.Reels),
		zap.Int("paylines", len(cfg.Paylines)),
		zap.Int("bets", len(cfg.Bets)))
	return cfg, nil
}

func (p *FileProvider) load(gameID string) (*GameConfig, error) {
	if p.dir != "" {
		path := filepath.Join(p.dir, gameID+".yaml")
		data, err := os.ReadFile(path)
		if err == nil {
			return parseGameYAML(gameID, data)
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("读取游戏定义失败: %w", err)
		}
	}
	if def := DefaultConfig(); def.GameID == gameID {
		return def, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
}

// yamlGameConfig YAML 游戏定义，金额以十进制字符串书写
type yamlGameConfig struct {
	Name  string `yaml:"name"`
	Reels int    `yaml:"reels"`
	Rows  int    `yaml:"rows"`

	WildSymbol    string `yaml:"wild_symbol"`
	ScatterSymbol string `yaml:"scatter_symbol"`
	BookSymbol    string `yaml:"book_symbol"`

	Bets        []string   `yaml:"bets"`
	FreeSpins   int        `yaml:"free_spins"`
	CardSymbols []string   `yaml:"card_symbols"`
	Paylines    [][]int    `yaml:"paylines"`
	Strips      [][]string `yaml:"strips"`

	PennyCost     string `yaml:"penny_cost"`
	BonusSpinCost string `yaml:"bonus_spin_cost"`

	Symbols []struct {
		Name    string                    `yaml:"name"`
		Payouts map[string]map[int]string `yaml:"payouts"`
		Bonus   map[string]map[int]int    `yaml:"bonus"`
	} `yaml:"symbols"`

	ScatterPayouts map[string]map[int]string `yaml:"scatter_payouts"`
	ScatterBonus   map[string]map[int]int    `yaml:"scatter_bonus"`

	Wheel []struct {
		Name   string `yaml:"name"`
		Weight int    `yaml:"weight"`
		Cash   string `yaml:"cash"`
		Spins  int    `yaml:"spins"`
	} `yaml:"wheel"`

	Triggers []struct {
		Symbol        string `yaml:"symbol"`
		RequiredCount int    `yaml:"required_count"`
		Spins         int    `yaml:"spins"`
		WinMultiplier int64  `yaml:"win_multiplier"`
	} `yaml:"triggers"`
}

// parseCents 将 "1.00" 形式的金额精确转换为分
func parseCents(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("无效的金额 %q: %w", s, err)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("金额 %q 精度超过分", s)
	}
	return cents.IntPart(), nil
}

func parsePayTable(raw map[string]map[int]string) (PayTable, error) {
	table := PayTable{}
	for betStr, byCount := range raw {
		bet, err := parseCents(betStr)
		if err != nil {
			return nil, err
		}
		entries := map[int]int64{}
		for count, payStr := range byCount {
			payout, err := parseCents(payStr)
			if err != nil {
				return nil, err
			}
			entries[count] = payout
		}
		table[bet] = entries
	}
	return table, nil
}

func parseBonusTable(raw map[string]map[int]int) (BonusTable, error) {
	table := BonusTable{}
	for betStr, byCount := range raw {
		bet, err := parseCents(betStr)
		if err != nil {
			return nil, err
		}
		entries := map[int]int{}
		for count, spins := range byCount {
			entries[count] = spins
		}
		table[bet] = entries
	}
	return table, nil
}

func parseGameYAML(gameID string, data []byte) (*GameConfig, error) {
	var raw yamlGameConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("解析游戏定义失败: %w", err)
	}

	cfg := &GameConfig{
		GameID:        gameID,
		Name:          raw.Name,
		Reels:         raw.Reels,
		Rows:          raw.Rows,
		WildSymbol:    raw.WildSymbol,
		ScatterSymbol: raw.ScatterSymbol,
		BookSymbol:    raw.BookSymbol,
		FreeSpins:     raw.FreeSpins,
		Paylines:      raw.Paylines,
		CardSymbols:   raw.CardSymbols,
	}

	for _, betStr := range raw.Bets {
		bet, err := parseCents(betStr)
		if err != nil {
			return nil, err
		}
		cfg.Bets = append(cfg.Bets, bet)
	}

	var err error
	if cfg.PennyCost, err = parseCents(raw.PennyCost); err != nil {
		return nil, err
	}
	if cfg.BonusSpinCost, err = parseCents(raw.BonusSpinCost); err != nil {
		return nil, err
	}

	cfg.Strips = make([][]Symbol, len(raw.Strips))
	for i, strip := range raw.Strips {
		cfg.Strips[i] = append([]Symbol(nil), strip...)
	}

	for _, sym := range raw.Symbols {
		payouts, err := parsePayTable(sym.Payouts)
		if err != nil {
			return nil, fmt.Errorf("符号 %s: %w", sym.Name, err)
		}
		bonus, err := parseBonusTable(sym.Bonus)
		if err != nil {
			return nil, fmt.Errorf("符号 %s: %w", sym.Name, err)
		}
		cfg.Symbols = append(cfg.Symbols, SymbolConfig{Name: sym.Name, Payouts: payouts, Bonus: bonus})
	}

	if cfg.ScatterPayouts, err = parsePayTable(raw.ScatterPayouts); err != nil {
		return nil, err
	}
	if cfg.ScatterBonus, err = parseBonusTable(raw.ScatterBonus); err != nil {
		return nil, err
	}

	for _, o := range raw.Wheel {
		cash, err := parseCents(o.Cash)
		if err != nil {
			return nil, fmt.Errorf("转盘结果 %s: %w", o.Name, err)
		}
		cfg.Wheel = append(cfg.Wheel, WheelOutcomeConfig{Name: o.Name, Weight: o.Weight, Cash: cash, Spins: o.Spins})
	}

	for _, t := range raw.Triggers {
		cfg.Triggers = append(cfg.Triggers, BonusTriggerConfig{
			Symbol:        t.Symbol,
			RequiredCount: t.RequiredCount,
			Spins:         t.Spins,
			WinMultiplier: t.WinMultiplier,
		})
	}

	return cfg, nil
}
