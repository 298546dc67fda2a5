package intake

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/motomotoph/mc1lovecamerabot/internal/controller/state"
	"github.com/motomotoph/mc1lovecamerabot/internal/model"
	"github.com/motomotoph/mc1lovecamerabot/internal/service"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownState    = errors.New("unknown session state")
	ErrHandlerPanic    = errors.New("handler panicked")
)

// Inbound входящее сообщение пользователя
type Inbound struct {
	UserID int64
	Handle string // username без @, может быть пустым
	Text   string
}

// Outbound ответ пользователю
type Outbound struct {
	UserID           int64
	Text             string
	SuggestedReplies [][]string // Ряды кнопок; пусто - убрать клавиатуру
	KeepKeyboard     bool       // Не трогать текущую клавиатуру
}

// NumberSource выдаёт номер новой заявки
type NumberSource interface {
	Next(ctx context.Context) string
}

// Submitter отправляет подтверждённую заявку
type Submitter interface {
	Submit(ctx context.Context, req *model.BookingRequest) service.SubmitResult
}

// transition результат обработчика шага: следующее состояние и ответ
type transition struct {
	next     state.State
	text     string
	keyboard [][]string
}

// Engine ведёт диалог оформления заявки
type Engine struct {
	sessions  *state.Manager
	planner   *service.DatePlanner
	numbers   NumberSource
	submitter Submitter
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine создаёт движок диалога
func NewEngine(
	sessions *state.Manager,
	planner *service.DatePlanner,
	numbers NumberSource,
	submitter Submitter,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		sessions:  sessions,
		planner:   planner,
		numbers:   numbers,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
	}
}

// Handle обрабатывает одно входящее сообщение. Ответ возвращается всегда,
// ошибка нужна только для логирования.
func (e *Engine) Handle(ctx context.Context, in Inbound) (out Outbound, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.sessions.Delete(in.UserID)
			e.logger.Error("Handler panicked, session discarded",
				zap.Int64("telegram_id", in.UserID),
				zap.Any("panic", r),
				zap.Stack("stack"))
			out = Outbound{UserID: in.UserID, Text: textUnexpectedError}
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()

	act := Classify(in.Text)

	switch act.Kind {
	case ActionStart:
		return e.start(ctx, in), nil
	case ActionHelp:
		return Outbound{UserID: in.UserID, Text: textHelp, KeepKeyboard: true}, nil
	}

	s, release, ok := e.sessions.Acquire(in.UserID)
	if !ok {
		if act.Kind == ActionCancel {
			return Outbound{UserID: in.UserID, Text: textNothingToCancel}, nil
		}
		e.logger.Info("Reply without active session",
			zap.Int64("telegram_id", in.UserID))
		return Outbound{UserID: in.UserID, Text: textRestartRequired}, ErrSessionNotFound
	}
	defer release()

	s.Touch(e.now())

	if act.Kind == ActionCancel {
		e.sessions.Delete(in.UserID)
		e.logger.Info("Request cancelled",
			zap.Int64("telegram_id", in.UserID),
			zap.String("application_number", s.Draft.ApplicationNumber),
			zap.String("state", string(s.State)))
		return Outbound{UserID: in.UserID, Text: textCancelled}, nil
	}

	tr, err := e.dispatch(ctx, s, act)
	if err != nil {
		e.sessions.Delete(in.UserID)
		e.logger.Error("Failed to handle reply, session discarded",
			zap.Int64("telegram_id", in.UserID),
			zap.String("state", string(s.State)),
			zap.Error(err))
		return Outbound{UserID: in.UserID, Text: textUnexpectedError}, err
	}

	if tr.next != s.State {
		e.logger.Info("State changed",
			zap.Int64("telegram_id", in.UserID),
			zap.String("from", string(s.State)),
			zap.String("to", string(tr.next)))
	}

	if tr.next == state.StateNone {
		e.sessions.Delete(in.UserID)
	} else {
		s.State = tr.next
	}

	return Outbound{UserID: in.UserID, Text: tr.text, SuggestedReplies: tr.keyboard}, nil
}

// dispatch вызывает обработчик текущего состояния
func (e *Engine) dispatch(ctx context.Context, s *state.Session, act Action) (transition, error) {
	switch s.State {
	case state.StateCollectingName:
		return e.handleName(s, act), nil
	case state.StateCollectingPurpose:
		return e.handlePurpose(s, act), nil
	case state.StateCollectingEquipment:
		return e.handleEquipment(s, act), nil
	case state.StateSelectingDates:
		return e.handleDates(s, act), nil
	case state.StateSelectingTime:
		return e.handleTime(s, act), nil
	case state.StateReviewingSummary:
		return e.handleSummary(ctx, s, act), nil
	case state.StateEditingField:
		return e.handleEditChoice(s, act), nil
	default:
		return transition{}, fmt.Errorf("%w: %q", ErrUnknownState, s.State)
	}
}

// start заводит новую сессию; номер заявки назначается один раз здесь
func (e *Engine) start(ctx context.Context, in Inbound) Outbound {
	number := e.numbers.Next(ctx)

	draft := &model.BookingRequest{
		ApplicationNumber:    number,
		RequesterHandle:      requesterHandle(in.Handle),
		RequesterProfileLink: profileLink(in.UserID, in.Handle),
		CreatedAt:            e.now().In(e.planner.Location()),
		Status:               model.RequestStatusDraft,
	}
	e.sessions.Create(in.UserID, draft, state.StateCollectingName)

	e.logger.Info("Request started",
		zap.Int64("telegram_id", in.UserID),
		zap.String("application_number", number))

	return Outbound{
		UserID:           in.UserID,
		Text:             fmt.Sprintf(textWelcome, number),
		SuggestedReplies: cancelKeyboard(),
	}
}

func requesterHandle(handle string) string {
	if handle == "" {
		return model.NoHandle
	}
	return handle
}

func profileLink(userID int64, handle string) string {
	if handle == "" {
		return "tg://user?id=" + strconv.FormatInt(userID, 10)
	}
	return "https://t.me/" + handle
}
