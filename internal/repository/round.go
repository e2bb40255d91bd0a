package repository

import (
	"context"
	"time"

	"github.com/wfunc/book-slot/internal/models"
	"gorm.io/gorm"
)

// RoundRepository 旋转历史仓储接口
type RoundRepository interface {
	BaseRepository
	Create(ctx context.Context, round *models.GameRound) error
	BatchCreate(ctx context.Context, rounds []*models.GameRound) error
	FindByRoundID(ctx context.Context, roundID string) (*models.GameRound, error)
	FindBySessionID(ctx context.Context, sessionID string, p *Pagination) ([]*models.GameRound, error)
	GetSessionStatistics(ctx context.Context, sessionID string, startTime, endTime time.Time) (*SessionStatistics, error)
	GetBigWins(ctx context.Context, minAmount int64, limit int) ([]*models.GameRound, error)
}

// SessionStatistics 会话统计
type SessionStatistics struct {
	TotalRounds    int64   `json:"total_rounds"`
	WinRounds      int64   `json:"win_rounds"`
	WinRate        float64 `json:"win_rate"`
	TotalBetAmount int64   `json:"total_bet_amount"`
	TotalWinAmount int64   `json:"total_win_amount"`
	MaxWinAmount   int64   `json:"max_win_amount"`
	FreeRounds     int64   `json:"free_rounds"`
	BonusRounds    int64   `json:"bonus_rounds"`
	MysteryAmount  int64   `json:"mystery_amount"`
}

// roundRepo 旋转历史仓储实现
type roundRepo struct {
	*BaseRepo
}

// NewRoundRepository 创建旋转历史仓储
func NewRoundRepository(db *gorm.DB) RoundRepository {
	return &roundRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建旋转记录
func (r *roundRepo) Create(ctx context.Context, round *models.GameRound) error {
	return r.db.WithContext(ctx).Create(round).Error
}

// BatchCreate 批量创建旋转记录
func (r *roundRepo) BatchCreate(ctx context.Context, rounds []*models.GameRound) error {
	if len(rounds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rounds, 100).Error
}

// FindByRoundID 根据回合ID查找
func (r *roundRepo) FindByRoundID(ctx context.Context, roundID string) (*models.GameRound, error) {
	var round models.GameRound
	err := r.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		First(&round).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// FindBySessionID 查询会话的旋转记录，按时间倒序分页
func (r *roundRepo) FindBySessionID(ctx context.Context, sessionID string, p *Pagination) ([]*models.GameRound, error) {
	var rounds []*models.GameRound

	// 查询总数
	r.db.WithContext(ctx).
		Model(&models.GameRound{}).
		Where("session_id = ?", sessionID).
		Count(&p.Total)

	// 查询数据
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("played_at desc").
		Scopes(Paginate(p)).
		Find(&rounds).Error

	return rounds, err
}

// GetSessionStatistics 统计会话在时间窗口内的旋转数据
func (r *roundRepo) GetSessionStatistics(ctx context.Context, sessionID string, startTime, endTime time.Time) (*SessionStatistics, error) {
	stats := &SessionStatistics{}

	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.GameRound{}).
			Where("session_id = ? AND played_at BETWEEN ? AND ?", sessionID, startTime, endTime)
	}

	if err := scoped().Count(&stats.TotalRounds).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("win_amount > 0").Count(&stats.WinRounds).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("kind = ?", "free").Count(&stats.FreeRounds).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("kind = ?", "bonus").Count(&stats.BonusRounds).Error; err != nil {
		return nil, err
	}

	type sums struct {
		TotalBet   int64
		TotalWin   int64
		MaxWin     int64
		MysteryWin int64
	}
	var s sums
	err := scoped().
		Select("COALESCE(SUM(bet_amount),0) as total_bet, COALESCE(SUM(win_amount),0) as total_win, COALESCE(MAX(win_amount),0) as max_win, COALESCE(SUM(mystery_win),0) as mystery_win").
		Scan(&s).Error
	if err != nil {
		return nil, err
	}

	stats.TotalBetAmount = s.TotalBet
	stats.TotalWinAmount = s.TotalWin
	stats.MaxWinAmount = s.MaxWin
	stats.MysteryAmount = s.MysteryWin
	if stats.TotalRounds > 0 {
		stats.WinRate = float64(stats.WinRounds) / float64(stats.TotalRounds)
	}
	return stats, nil
}

// GetBigWins 查询大额赢取记录
func (r *roundRepo) GetBigWins(ctx context.Context, minAmount int64, limit int) ([]*models.GameRound, error) {
	var rounds []*models.GameRound
	err := r.db.WithContext(ctx).
		Where("win_amount >= ?", minAmount).
		Order("win_amount DESC").
		Limit(limit).
		Find(&rounds).Error
	if err != nil {
		return nil, err
	}
	return rounds, nil
}

// WithTx 使用事务
func (r *roundRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &roundRepo{
		BaseRepo: r.BaseRepo.WithTx(tx),
	}
}
