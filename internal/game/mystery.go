package game

import "github.com/wfunc/book-slot/internal/game/slot"

// 神秘奖状态机。只在普通旋转上运行，且仅当会话记录了
// 特色回合退出之后激活：连续输掉的普通旋转达到随机门槛时，
// 把免费回合小额费用池与奖励转盘费用池一并返还给玩家。

// mysteryStreakFloor 连输两次后才抽取触发门槛
const mysteryStreakFloor = 2

// rollMysteryThreshold 抽取触发门槛，取值范围 [2,5]
func rollMysteryThreshold(rng slot.RandomSource) int {
	return mysteryStreakFloor + rng.Intn(4)
}

// applyMystery 把本次普通旋转的输赢折叠进神秘奖状态机，
// 直接修改 st，返回本次发放的神秘奖金额（已计入余额）。
// totalWin 是本次旋转折叠后的总赢取。
func applyMystery(st *SessionState, totalWin int64, rng slot.RandomSource) int64 {
	if st.FeatureExit == ExitNone {
		return 0
	}

	if totalWin > 0 {
		// 赢了就中断连输计数，门槛作废
		st.LosingStreak = 0
		st.MysteryThreshold = 0
		return 0
	}

	st.LosingStreak++
	if st.MysteryThreshold == 0 && st.LosingStreak >= mysteryStreakFloor {
		st.MysteryThreshold = rollMysteryThreshold(rng)
	}

	if st.MysteryThreshold > 0 && st.LosingStreak >= st.MysteryThreshold {
		prize := st.PennyPool + st.BonusPool
		st.Balance += prize
		st.PennyPool = 0
		st.BonusPool = 0
		st.LosingStreak = 0
		st.MysteryThreshold = 0
		st.FeatureExit = ExitNone
		return prize
	}

	return 0
}
