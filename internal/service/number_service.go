package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// NumberWidth ширина числовой части номера заявки
const NumberWidth = 5

// fallbackLayout даёт уникальный токен с точностью до секунды
const fallbackLayout = "20060102150405"

// Резервные номера длиннее, в последовательность они не попадают
var sequencePattern = fmt.Sprintf(`(\d{%d,%d})`, NumberWidth, len(fallbackLayout)-1)

// NumberService выдаёт номера заявок вида mc00042
type NumberService struct {
	store   RecordStore
	prefix  string
	pattern *regexp.Regexp
	timeout time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewNumberService создаёт генератор номеров
func NewNumberService(store RecordStore, prefix string, timeout time.Duration, logger *zap.Logger) *NumberService {
	return &NumberService{
		store:   store,
		prefix:  prefix,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + sequencePattern + `$`),
		timeout: timeout,
		now:     time.Now,
		logger:  logger,
	}
}

// Next возвращает следующий номер по журналу или резервный номер по времени.
// Ошибки журнала не пробрасываются.
func (s *NumberService) Next(ctx context.Context) string {
	next, err := s.nextFromStore(ctx)
	if err != nil {
		fallback := s.fallback()
		s.logger.Warn("Using fallback application number",
			zap.String("application_number", fallback),
			zap.Error(err))
		return fallback
	}
	return next
}

func (s *NumberService) nextFromStore(ctx context.Context) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("record store not configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rows, err := s.store.ListRows(ctx)
	if err != nil {
		return "", fmt.Errorf("list records: %w", err)
	}

	maxNumber, found := int64(0), false
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		m := s.pattern.FindStringSubmatch(strings.TrimSpace(row[0]))
		if m == nil {
			continue
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		found = true
		if n > maxNumber {
			maxNumber = n
		}
	}

	if !found {
		return "", fmt.Errorf("no application numbers with prefix %q", s.prefix)
	}

	return fmt.Sprintf("%s%0*d", s.prefix, NumberWidth, maxNumber+1), nil
}

// fallback не гарантирует уникальность для двух заявок в одну секунду
func (s *NumberService) fallback() string {
	return s.prefix + s.now().Format(fallbackLayout)
}
