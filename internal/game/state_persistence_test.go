package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/book-slot/internal/models"
)

func setupPersisterDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SessionSnapshot{}, &models.GameRound{}))
	return db
}

func TestDatabaseStatePersisterRoundTrip(t *testing.T) {
	db := setupPersisterDB(t)
	p := NewDatabaseStatePersister(db)
	ctx := context.Background()

	state := NewSessionState("session-1", "test-book", 5000)
	state.FreeSpinsLeft = 7
	state.FeatureSymbol = "A"
	state.BonusRoundWin = 300
	state.PennyPool = 3
	state.FeatureExit = ExitFree
	state.LosingStreak = 2
	state.MysteryThreshold = 4

	require.NoError(t, p.Save(ctx, state))

	loaded, err := p.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, loaded.SessionID)
	assert.Equal(t, state.GameID, loaded.GameID)
	assert.Equal(t, state.Balance, loaded.Balance)
	assert.Equal(t, state.FreeSpinsLeft, loaded.FreeSpinsLeft)
	assert.Equal(t, state.FeatureSymbol, loaded.FeatureSymbol)
	assert.Equal(t, state.BonusRoundWin, loaded.BonusRoundWin)
	assert.Equal(t, state.PennyPool, loaded.PennyPool)
	assert.Equal(t, state.FeatureExit, loaded.FeatureExit)
	assert.Equal(t, state.LosingStreak, loaded.LosingStreak)
	assert.Equal(t, state.MysteryThreshold, loaded.MysteryThreshold)
}

func TestDatabaseStatePersisterUpsert(t *testing.T) {
	db := setupPersisterDB(t)
	p := NewDatabaseStatePersister(db)
	ctx := context.Background()

	state := NewSessionState("session-1", "test-book", 5000)
	require.NoError(t, p.Save(ctx, state))

	// 二次保存覆盖同一条快照
	state.Balance = 4200
	state.FreeSpinsLeft = 3
	require.NoError(t, p.Save(ctx, state))

	var count int64
	db.Model(&models.SessionSnapshot{}).Where("session_id = ?", "session-1").Count(&count)
	assert.Equal(t, int64(1), count)

	loaded, err := p.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4200), loaded.Balance)
	assert.Equal(t, 3, loaded.FreeSpinsLeft)
}

func TestDatabaseStatePersisterLoadMissing(t *testing.T) {
	db := setupPersisterDB(t)
	p := NewDatabaseStatePersister(db)

	_, err := p.Load(context.Background(), "no-such-session")
	assert.Error(t, err)
}

func TestDatabaseStatePersisterDelete(t *testing.T) {
	db := setupPersisterDB(t)
	p := NewDatabaseStatePersister(db)
	ctx := context.Background()

	state := NewSessionState("session-1", "test-book", 5000)
	require.NoError(t, p.Save(ctx, state))
	require.NoError(t, p.Delete(ctx, "session-1"))

	_, err := p.Load(ctx, "session-1")
	assert.Error(t, err)

	// 删除不存在的会话不报错
	assert.NoError(t, p.Delete(ctx, "session-1"))
}

func TestDatabaseRoundRecorder(t *testing.T) {
	db := setupPersisterDB(t)
	r := NewDatabaseRoundRecorder(db)
	ctx := context.Background()

	round := &models.GameRound{
		RoundID:      "round-1",
		SessionID:    "session-1",
		GameID:       "test-book",
		Kind:         "normal",
		BetAmount:    100,
		CostAmount:   100,
		WinAmount:    500,
		BalanceAfter: 5400,
		PlayedAt:     time.Now(),
	}
	require.NoError(t, r.Record(ctx, round))

	var got models.GameRound
	require.NoError(t, db.Where("round_id = ?", "round-1").First(&got).Error)
	assert.Equal(t, int64(500), got.WinAmount)

	// 重复 round_id 触发唯一索引冲突
	dup := *round
	dup.ID = 0
	assert.Error(t, r.Record(ctx, &dup))
}
