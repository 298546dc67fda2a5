package service

import (
	"context"
	"errors"
	"sync"
)

var errUnreachable = errors.New("store unreachable")

type fakeStore struct {
	mu       sync.Mutex
	rows     [][]string
	appendFn func(ctx context.Context, row []string) error
	listFn   func(ctx context.Context) ([][]string, error)
	appends  int
}

func (f *fakeStore) Append(ctx context.Context, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends++
	if f.appendFn != nil {
		return f.appendFn(ctx, row)
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeStore) ListRows(ctx context.Context) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return f.rows, nil
}

type delivery struct {
	recipientID int64
	text        string
}

type fakeNotifier struct {
	mu         sync.Mutex
	deliveries []delivery
	failFor    map[int64]bool
}

func (f *fakeNotifier) Deliver(ctx context.Context, recipientID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveries = append(f.deliveries, delivery{recipientID: recipientID, text: text})
	if f.failFor[recipientID] {
		return errors.New("chat not found")
	}
	return nil
}
