package service

import (
	"context"
	"fmt"
	"time"

	"github.com/motomotoph/mc1lovecamerabot/internal/formatting"
	"github.com/motomotoph/mc1lovecamerabot/internal/model"
	"go.uber.org/zap"
)

// RecordStore журнал заявок (только добавление)
type RecordStore interface {
	Append(ctx context.Context, row []string) error
	ListRows(ctx context.Context) ([][]string, error)
}

// Notifier доставляет сообщение одному получателю
type Notifier interface {
	Deliver(ctx context.Context, recipientID int64, text string) error
}

// SubmitResult итог отправки заявки
type SubmitResult struct {
	Persisted  bool
	PersistErr error
	Delivered  int
	Failed     int
}

// SubmissionService сохраняет подтверждённую заявку и уведомляет администраторов
type SubmissionService struct {
	store      RecordStore
	notifier   Notifier
	recipients []int64
	timeout    time.Duration
	logger     *zap.Logger
}

// NewSubmissionService создаёт сервис отправки заявок
func NewSubmissionService(
	store RecordStore,
	notifier Notifier,
	recipients []int64,
	timeout time.Duration,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		store:      store,
		notifier:   notifier,
		recipients: recipients,
		timeout:    timeout,
		logger:     logger,
	}
}

// Submit делает одну попытку записи в журнал и одну попытку доставки каждому администратору.
// Ошибка одного шага не отменяет другой.
func (s *SubmissionService) Submit(ctx context.Context, req *model.BookingRequest) SubmitResult {
	var result SubmitResult

	if err := s.persist(ctx, req); err != nil {
		result.PersistErr = err
		s.logger.Error("Failed to persist request",
			zap.String("application_number", req.ApplicationNumber),
			zap.Error(err))
	} else {
		result.Persisted = true
		s.logger.Info("Request persisted",
			zap.String("application_number", req.ApplicationNumber))
	}

	text := formatting.FormatAdminNotification(req, result.Persisted)
	for _, recipientID := range s.recipients {
		if err := s.deliver(ctx, recipientID, text); err != nil {
			result.Failed++
			s.logger.Error("Failed to notify admin",
				zap.Int64("recipient_id", recipientID),
				zap.String("application_number", req.ApplicationNumber),
				zap.Error(err))
			continue
		}
		result.Delivered++
	}

	s.logger.Info("Request submitted",
		zap.String("application_number", req.ApplicationNumber),
		zap.Bool("persisted", result.Persisted),
		zap.Int("delivered", result.Delivered),
		zap.Int("failed", result.Failed))

	return result
}

func (s *SubmissionService) persist(ctx context.Context, req *model.BookingRequest) error {
	if s.store == nil {
		return fmt.Errorf("record store not configured")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.store.Append(ctx, req.Row()); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

func (s *SubmissionService) deliver(ctx context.Context, recipientID int64, text string) error {
	if s.notifier == nil {
		return fmt.Errorf("notifier not configured")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.notifier.Deliver(ctx, recipientID, text)
}

func (s *SubmissionService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
