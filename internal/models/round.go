package models

import (
	"time"
)

// GameRound 旋转历史记录表，每次主路径或奖励转盘旋转一条
type GameRound struct {
	BaseModel
	RoundID           string    `gorm:"uniqueIndex;size:64;not null" json:"round_id"`
	SessionID         string    `gorm:"index;size:64;not null" json:"session_id"`
	GameID            string    `gorm:"index;size:64;not null" json:"game_id"`
	Kind              string    `gorm:"size:20;not null;index" json:"kind"` // normal, free, bonus
	BetAmount         int64     `gorm:"not null" json:"bet_amount"`
	CostAmount        int64     `gorm:"not null" json:"cost_amount"`
	WinAmount         int64     `gorm:"default:0" json:"win_amount"`
	MysteryWin        int64     `gorm:"default:0" json:"mystery_win"`
	FreeSpinsAwarded  int       `gorm:"default:0" json:"free_spins_awarded"`
	BonusSpinsAwarded int       `gorm:"default:0" json:"bonus_spins_awarded"`
	BalanceAfter      int64     `json:"balance_after"`
	Result            JSONMap   `gorm:"type:json" json:"result"`
	PlayedAt          time.Time `gorm:"index" json:"played_at"`
}

// TableName 指定表名
func (GameRound) TableName() string {
	return "game_rounds"
}

// SessionSnapshot 会话状态持久化表（用于进程重启后恢复会话）
type SessionSnapshot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"uniqueIndex;size:64;not null" json:"session_id"`
	GameID    string    `gorm:"index;size:64;not null" json:"game_id"`
	Balance   int64     `json:"balance"`
	StateData string    `gorm:"type:text" json:"state_data"` // JSON格式的完整会话状态
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (SessionSnapshot) TableName() string {
	return "session_snapshots"
}
