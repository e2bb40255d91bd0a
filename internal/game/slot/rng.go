package slot

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource 随机数来源接口，注入后便于确定性测试
type RandomSource interface {
	// Intn 返回 [0, n) 内的均匀随机整数，n 必须大于0
	Intn(n int) int
}

// lockedRand math/rand 实现，内部加锁以支持并发调用
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource 创建默认随机数来源
func NewRandomSource() RandomSource {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededSource 创建固定种子的随机数来源（测试用）
func NewSeededSource(seed int64) RandomSource {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// StubSource 预置序列的随机数来源（测试用），序列耗尽后返回0
type StubSource struct {
	Values []int
	pos    int
}

func (s *StubSource) Intn(n int) int {
	if s.pos >= len(s.Values) {
		return 0
	}
	v := s.Values[s.pos] % n
	s.pos++
	return v
}
