package state

import (
	"sync"
	"time"

	"github.com/motomotoph/mc1lovecamerabot/internal/model"
)

// Manager управляет сессиями пользователей
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session // telegramID -> Session
	now      func() time.Time
}

// NewManager создаёт новый менеджер сессий
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// Create заводит новую сессию, заменяя существующую
func (sm *Manager) Create(telegramID int64, draft *model.BookingRequest, initial State) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s := &Session{
		UserID:    telegramID,
		State:     initial,
		Draft:     draft,
		UpdatedAt: sm.now(),
	}
	sm.sessions[telegramID] = s
	return s
}

// Acquire блокирует сессию пользователя для одного обработчика.
// Возвращает false если сессии нет. release нужно вызвать после обработки.
func (sm *Manager) Acquire(telegramID int64) (*Session, func(), bool) {
	for {
		sm.mu.RLock()
		s, exists := sm.sessions[telegramID]
		sm.mu.RUnlock()

		if !exists {
			return nil, nil, false
		}

		s.mu.Lock()

		// Сессия могла быть заменена или удалена пока ждали блокировку
		sm.mu.RLock()
		current := sm.sessions[telegramID]
		sm.mu.RUnlock()

		if current == s {
			return s, s.mu.Unlock, true
		}
		s.mu.Unlock()
	}
}

// Get возвращает сессию без блокировки
func (sm *Manager) Get(telegramID int64) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, exists := sm.sessions[telegramID]
	return s, exists
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if s, exists := sm.sessions[telegramID]; exists {
		return s.State
	}
	return StateNone
}

// Delete удаляет сессию пользователя
func (sm *Manager) Delete(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, telegramID)
}

// EvictIdle удаляет сессии без активности дольше ttl. Занятые сессии пропускаются.
func (sm *Manager) EvictIdle(ttl time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := sm.now().Add(-ttl)
	evicted := 0
	for id, s := range sm.sessions {
		if !s.mu.TryLock() {
			continue
		}
		if s.UpdatedAt.Before(cutoff) {
			delete(sm.sessions, id)
			evicted++
		}
		s.mu.Unlock()
	}
	return evicted
}

// Len возвращает количество активных сессий
func (sm *Manager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return len(sm.sessions)
}
