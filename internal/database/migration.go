package database

import (
	"fmt"

	"github.com/wfunc/book-slot/internal/logger"
	"github.com/wfunc/book-slot/internal/models"
	"go.uber.org/zap"
)

// AutoMigrate 自动迁移数据库表结构。
// SQLite 下通过文件锁避免多进程并发迁移。
func AutoMigrate() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	// 清理过期锁文件
	CleanupStaleLocks()

	if DB.Dialector.Name() == "sqlite" || DB.Dialector.Name() == "sqlite3" {
		lockFile, err := acquireMigrationLock(getDBPath())
		if err != nil {
			return err
		}
		defer releaseMigrationLock(lockFile)
	}

	tables := []interface{}{
		&models.GameRound{},
		&models.SessionSnapshot{},
	}

	for _, table := range tables {
		if err := DB.AutoMigrate(table); err != nil {
			return fmt.Errorf("迁移表结构失败: %w", err)
		}
	}

	logger.Info("数据库迁移完成", zap.Int("tables", len(tables)))
	return nil
}
