package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionEvictor удаляет брошенные диалоги
type SessionEvictor interface {
	EvictIdle(ttl time.Duration) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	sessions SessionEvictor
	idleTTL  time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewScheduler создаёт новый планировщик. Сессии проверяются раз в idleTTL/4, но не реже раза в час.
func NewScheduler(sessions SessionEvictor, idleTTL time.Duration, logger *zap.Logger) *Scheduler {
	interval := idleTTL / 4
	if interval <= 0 || interval > time.Hour {
		interval = time.Hour
	}
	return &Scheduler{
		sessions: sessions,
		idleTTL:  idleTTL,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	if s.idleTTL <= 0 {
		s.logger.Info("Session eviction disabled")
		return
	}

	s.logger.Info("Starting background scheduler",
		zap.Duration("idle_ttl", s.idleTTL),
		zap.Duration("interval", s.interval))

	go s.runEvictionTask(ctx)
}

// Stop останавливает фоновые задачи. Повторный вызов ничего не делает.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
}

// runEvictionTask периодически удаляет сессии без активности
func (s *Scheduler) runEvictionTask(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictIdle()
		case <-s.stopChan:
			s.logger.Info("Session eviction task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session eviction task cancelled")
			return
		}
	}
}

func (s *Scheduler) evictIdle() {
	if n := s.sessions.EvictIdle(s.idleTTL); n > 0 {
		s.logger.Info("Idle sessions evicted", zap.Int("count", n))
	}
}
