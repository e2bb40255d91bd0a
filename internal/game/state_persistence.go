package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wfunc/book-slot/internal/models"
	"gorm.io/gorm"
)

// DatabaseStatePersister 数据库状态持久化
type DatabaseStatePersister struct {
	db *gorm.DB
}

// NewDatabaseStatePersister 创建数据库持久化器
func NewDatabaseStatePersister(db *gorm.DB) *DatabaseStatePersister {
	return &DatabaseStatePersister{
		db: db,
	}
}

// Save 保存状态到数据库
func (p *DatabaseStatePersister) Save(ctx context.Context, state *SessionState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("序列化会话状态失败: %w", err)
	}

	snapshot := &models.SessionSnapshot{
		SessionID: state.SessionID,
		GameID:    state.GameID,
		Balance:   state.Balance,
		StateData: string(stateJSON),
		UpdatedAt: time.Now(),
	}

	// 使用 Upsert 操作（存在则更新，不存在则插入）
	result := p.db.WithContext(ctx).
		Where("session_id = ?", state.SessionID).
		Assign(models.SessionSnapshot{
			GameID:    snapshot.GameID,
			Balance:   snapshot.Balance,
			StateData: snapshot.StateData,
			UpdatedAt: snapshot.UpdatedAt,
		}).
		FirstOrCreate(snapshot)

	if result.Error != nil {
		return fmt.Errorf("保存会话状态失败: %w", result.Error)
	}

	return nil
}

// Load 从数据库加载状态
func (p *DatabaseStatePersister) Load(ctx context.Context, sessionID string) (*SessionState, error) {
	var snapshot models.SessionSnapshot

	result := p.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&snapshot)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("会话状态不存在: %s", sessionID)
		}
		return nil, fmt.Errorf("查询会话状态失败: %w", result.Error)
	}

	var state SessionState
	if err := json.Unmarshal([]byte(snapshot.StateData), &state); err != nil {
		return nil, fmt.Errorf("反序列化会话状态失败: %w", err)
	}

	return &state, nil
}

// Delete 从数据库删除状态
func (p *DatabaseStatePersister) Delete(ctx context.Context, sessionID string) error {
	result := p.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.SessionSnapshot{})

	if result.Error != nil {
		return fmt.Errorf("删除会话状态失败: %w", result.Error)
	}

	return nil
}

// DatabaseRoundRecorder 数据库旋转历史落库
type DatabaseRoundRecorder struct {
	db *gorm.DB
}

// NewDatabaseRoundRecorder 创建数据库落库器
func NewDatabaseRoundRecorder(db *gorm.DB) *DatabaseRoundRecorder {
	return &DatabaseRoundRecorder{
		db: db,
	}
}

// Record 写入一条旋转记录
func (r *DatabaseRoundRecorder) Record(ctx context.Context, round *models.GameRound) error {
	if err := r.db.WithContext(ctx).Create(round).Error; err != nil {
		return fmt.Errorf("写入旋转记录失败: %w", err)
	}
	return nil
}
