package game

import (
	"context"
	"sync"

	apperrors "github.com/wfunc/book-slot/internal/errors"
	"go.uber.org/zap"
)

// StatePersister 会话状态持久化接口
type StatePersister interface {
	Save(ctx context.Context, state *SessionState) error
	Load(ctx context.Context, sessionID string) (*SessionState, error)
	Delete(ctx context.Context, sessionID string) error
}

// sessionEntry 单个会话的存储槽，entry级别的锁保证
// 同一会话的旋转严格串行执行
type sessionEntry struct {
	mu    sync.Mutex
	state *SessionState
}

// SessionStore 内存会话存储，可选地把状态镜像到持久化层。
// 不同会话互不阻塞，同一会话的状态转换串行化。
type SessionStore struct {
	mu        sync.Mutex
	entries   map[string]*sessionEntry
	persister StatePersister
	log       *zap.Logger
}

// NewSessionStore 创建会话存储，persister 可为 nil（纯内存模式）
func NewSessionStore(persister StatePersister, log *zap.Logger) *SessionStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionStore{
		entries:   make(map[string]*sessionEntry),
		persister: persister,
		log:       log,
	}
}

// entry 获取或按需创建会话槽
func (s *SessionStore) entry(sessionID string, create bool) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok && create {
		e = &sessionEntry{}
		s.entries[sessionID] = e
	}
	return e
}

// Put 写入一个新会话的初始状态
func (s *SessionStore) Put(ctx context.Context, state *SessionState) error {
	e := s.entry(state.SessionID, true)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = state
	s.persist(ctx, state)
	return nil
}

// Get 返回会话状态的快照副本，不存在时尝试从持久化层恢复
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*SessionState, error) {
	e := s.entry(sessionID, false)
	if e == nil {
		restored, err := s.restore(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		e = s.entry(sessionID, true)
		e.mu.Lock()
		if e.state == nil {
			e.state = restored
		}
		snapshot := e.state.Clone()
		e.mu.Unlock()
		return snapshot, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return nil, apperrors.New(apperrors.ErrSessionNotFound, sessionID)
	}
	return e.state.Clone(), nil
}

// WithSession 在会话的独占临界区内执行一次状态转换。
// fn 基于当前状态计算并返回新状态；返回错误时原状态保持不变。
// 提交的新状态会尽力同步到持久化层，持久化失败只记录日志。
func (s *SessionStore) WithSession(ctx context.Context, sessionID string, fn func(*SessionState) (*SessionState, error)) (*SessionState, error) {
	e := s.entry(sessionID, false)
	if e == nil {
		restored, err := s.restore(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		e = s.entry(sessionID, true)
		e.mu.Lock()
		if e.state == nil {
			e.state = restored
		}
	} else {
		e.mu.Lock()
	}
	defer e.mu.Unlock()

	if e.state == nil {
		return nil, apperrors.New(apperrors.ErrSessionNotFound, sessionID)
	}

	next, err := fn(e.state.Clone())
	if err != nil {
		return nil, err
	}

	e.state = next
	s.persist(ctx, next)
	return next.Clone(), nil
}

// Delete 删除会话
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.Delete(ctx, sessionID); err != nil {
			s.log.Warn("删除持久化会话状态失败",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}
	}
	return nil
}

// restore 从持久化层恢复会话状态
func (s *SessionStore) restore(ctx context.Context, sessionID string) (*SessionState, error) {
	if s.persister == nil {
		return nil, apperrors.New(apperrors.ErrSessionNotFound, sessionID)
	}

	state, err := s.persister.Load(ctx, sessionID)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrSessionNotFound, sessionID)
	}

	s.log.Info("从持久化层恢复会话状态",
		zap.String("session_id", sessionID),
		zap.Int64("balance", state.Balance))
	return state, nil
}

// persist 尽力持久化，失败不影响内存状态
func (s *SessionStore) persist(ctx context.Context, state *SessionState) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, state); err != nil {
		s.log.Warn("持久化会话状态失败",
			zap.String("session_id", state.SessionID),
			zap.Error(err))
	}
}

// MemoryStatePersister 内存状态持久化（用于测试）
type MemoryStatePersister struct {
	mu     sync.RWMutex
	states map[string]*SessionState
}

// NewMemoryStatePersister 创建内存持久化器
func NewMemoryStatePersister() *MemoryStatePersister {
	return &MemoryStatePersister{
		states: make(map[string]*SessionState),
	}
}

// Save 保存状态
func (p *MemoryStatePersister) Save(ctx context.Context, state *SessionState) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	stateCopy := *state
	p.states[state.SessionID] = &stateCopy
	return nil
}

// Load 加载状态
func (p *MemoryStatePersister) Load(ctx context.Context, sessionID string) (*SessionState, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state, exists := p.states[sessionID]
	if !exists {
		return nil, apperrors.New(apperrors.ErrSessionNotFound, sessionID)
	}

	stateCopy := *state
	return &stateCopy, nil
}

// Delete 删除状态
func (p *MemoryStatePersister) Delete(ctx context.Context, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.states, sessionID)
	return nil
}
