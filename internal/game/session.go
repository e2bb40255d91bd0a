package game

import (
	"time"

	"github.com/wfunc/book-slot/internal/game/slot"
)

// ExitType 特色回合退出类型
type ExitType string

const (
	ExitNone  ExitType = ""      // 无已记录的回合退出
	ExitFree  ExitType = "free"  // 免费旋转回合结束
	ExitBonus ExitType = "bonus" // 奖励转盘回合结束
)

// SpinKind 旋转类型
type SpinKind string

const (
	SpinNormal SpinKind = "normal"
	SpinFree   SpinKind = "free"
	SpinBonus  SpinKind = "bonus"
)

// SessionState 单个会话的完整游戏状态。
// 所有金额均以分为单位。状态只能通过 SessionStore.WithSession
// 内的状态转换函数修改，转换要么完整提交要么完全不生效。
type SessionState struct {
	SessionID string      `json:"session_id"`
	GameID    string      `json:"game_id"`
	Balance   int64       `json:"balance"`

	// 免费旋转回合
	FreeSpinsLeft int         `json:"free_spins_left"`
	FeatureSymbol slot.Symbol `json:"feature_symbol,omitempty"`
	BonusRoundWin int64       `json:"bonus_round_win"` // 免费回合内扣留的奖励触发赢取

	// 奖励转盘回合
	BonusSpinsLeft int `json:"bonus_spins_left"`

	// 神秘奖状态机
	PennyPool        int64    `json:"penny_pool"`
	BonusPool        int64    `json:"bonus_pool"`
	LosingStreak     int      `json:"losing_streak"`
	FeatureExit      ExitType `json:"feature_exit,omitempty"`
	MysteryThreshold int      `json:"mystery_threshold,omitempty"`

	// 调试用：下一次旋转使用的强制网格（仅开发模式可设置）
	ForcedGrid slot.Grid `json:"-"`

	LastResult *PlayResult `json:"last_result,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewSessionState 创建带初始余额的新会话状态
func NewSessionState(sessionID, gameID string, balance int64) *SessionState {
	now := time.Now()
	return &SessionState{
		SessionID: sessionID,
		GameID:    gameID,
		Balance:   balance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone 返回状态的副本，供转换函数在其上计算。
// ForcedGrid 与 LastResult 在转换中总是被整体替换，浅拷贝即可。
func (s *SessionState) Clone() *SessionState {
	c := *s
	return &c
}

// InFreeRound 当前请求的主路径旋转是否属于免费回合
func (s *SessionState) InFreeRound() bool {
	return s.FreeSpinsLeft > 0
}

// PlayResult 一次旋转（主路径或奖励转盘）的对外结果快照
type PlayResult struct {
	RoundID   string   `json:"round_id"`
	SessionID string   `json:"session_id"`
	GameID    string   `json:"game_id"`
	Kind      SpinKind `json:"kind"`

	TotalBet int64 `json:"total_bet"` // 本次旋转的名义总下注
	Cost     int64 `json:"cost"`      // 实际从余额扣除的金额

	Win              int64 `json:"win"`                // 对外展示的本次总赢取
	MysteryWin       int64 `json:"mystery_win"`        // 其中：神秘奖部分
	ReleasedRoundWin int64 `json:"released_round_win"` // 其中：免费回合结束释放的扣留赢取

	FreeSpinsAwarded  int `json:"free_spins_awarded"`
	BonusSpinsAwarded int `json:"bonus_spins_awarded"`

	Outcome *slot.SpinOutcome  `json:"outcome,omitempty"` // 主路径旋转
	Wheel   *slot.WheelOutcome `json:"wheel,omitempty"`   // 奖励转盘旋转

	Balance        int64       `json:"balance"`
	FreeSpinsLeft  int         `json:"free_spins_left"`
	BonusSpinsLeft int         `json:"bonus_spins_left"`
	FeatureSymbol  slot.Symbol `json:"feature_symbol,omitempty"`
	FeatureExit    ExitType    `json:"feature_exit,omitempty"`

	PlayedAt time.Time `json:"played_at"`
}
