package slot

import "fmt"

// GenerateGrid 从卷轴条生成一个可见符号网格。
// 每个卷轴随机取一个停止位，向下连续读取 rows 个符号并按条带长度回绕。
func GenerateGrid(cfg *GameConfig, rng RandomSource) (Grid, error) {
	grid := make(Grid, cfg.Reels)
	for reel := 0; reel < cfg.Reels; reel++ {
		strip := cfg.Strips[reel]
		if len(strip) == 0 {
			return nil, fmt.Errorf("%w: 卷轴 %d", ErrEmptyReelStrip, reel)
		}
		stop := rng.Intn(len(strip))
		grid[reel] = make([]Symbol, cfg.Rows)
		for row := 0; row < cfg.Rows; row++ {
			grid[reel][row] = strip[(stop+row)%len(strip)]
		}
	}
	return grid, nil
}
