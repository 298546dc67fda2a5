package service

import (
	"context"
	"testing"
	"time"

	"github.com/motomotoph/mc1lovecamerabot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRequest() *model.BookingRequest {
	return &model.BookingRequest{
		ApplicationNumber:    "mc00042",
		RequesterName:        "Ann Lee",
		PurposeOrUnit:        "Workshop",
		EquipmentList:        "1 camera",
		SelectedDates:        []string{"18.10.2026"},
		TimeRange:            "12:00-18:00",
		Schedule:             []string{"18.10.2026 12:00-18:00"},
		RequesterHandle:      "annlee",
		RequesterProfileLink: "https://t.me/annlee",
		CreatedAt:            time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
		Status:               model.RequestStatusSubmitted,
	}
}

func TestSubmitPersistsAndNotifiesEveryAdmin(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	s := NewSubmissionService(store, notifier, []int64{10, 20}, time.Second, zap.NewNop())

	result := s.Submit(context.Background(), testRequest())

	assert.True(t, result.Persisted)
	assert.NoError(t, result.PersistErr)
	assert.Equal(t, 2, result.Delivered)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, store.rows, 1)
	assert.Len(t, store.rows[0], len(model.RecordColumns))
	require.Len(t, notifier.deliveries, 2)
	assert.Contains(t, notifier.deliveries[0].text, "#mc00042")
	assert.NotContains(t, notifier.deliveries[0].text, "не удалось сохранить")
}

func TestSubmitStoreFailureDoesNotSuppressNotifications(t *testing.T) {
	store := &fakeStore{appendFn: func(ctx context.Context, row []string) error { return errUnreachable }}
	notifier := &fakeNotifier{}
	s := NewSubmissionService(store, notifier, []int64{10, 20}, time.Second, zap.NewNop())

	result := s.Submit(context.Background(), testRequest())

	assert.False(t, result.Persisted)
	assert.ErrorIs(t, result.PersistErr, errUnreachable)
	assert.Equal(t, 1, store.appends)
	assert.Equal(t, 2, result.Delivered)
	require.Len(t, notifier.deliveries, 2)
	assert.Contains(t, notifier.deliveries[1].text, "не удалось сохранить")
}

func TestSubmitRecipientFailureIsSkipped(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{failFor: map[int64]bool{20: true}}
	s := NewSubmissionService(store, notifier, []int64{10, 20, 30}, time.Second, zap.NewNop())

	result := s.Submit(context.Background(), testRequest())

	assert.True(t, result.Persisted)
	assert.Equal(t, 2, result.Delivered)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, notifier.deliveries, 3)
	assert.Equal(t, int64(30), notifier.deliveries[2].recipientID)
}

func TestSubmitBoundsSlowStore(t *testing.T) {
	store := &fakeStore{appendFn: func(ctx context.Context, row []string) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	notifier := &fakeNotifier{}
	s := NewSubmissionService(store, notifier, []int64{10}, 20*time.Millisecond, zap.NewNop())

	result := s.Submit(context.Background(), testRequest())

	assert.False(t, result.Persisted)
	assert.ErrorIs(t, result.PersistErr, context.DeadlineExceeded)
	assert.Equal(t, 1, result.Delivered)
}

func TestSubmitWithoutCollaborators(t *testing.T) {
	s := NewSubmissionService(nil, nil, []int64{10}, time.Second, zap.NewNop())

	result := s.Submit(context.Background(), testRequest())

	assert.False(t, result.Persisted)
	assert.Error(t, result.PersistErr)
	assert.Equal(t, 0, result.Delivered)
	assert.Equal(t, 1, result.Failed)
}
