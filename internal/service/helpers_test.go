package service_test

import (
	"context"
	"io"
	"strconv"

	"github.com/maxviazov/buddyfinder-service/internal/repository"
	"github.com/rs/zerolog"
)

func itoa(n int) string { return strconv.Itoa(n) }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func discard() zerolog.Logger { return zerolog.New(io.Discard) }

// fakeTx runs fn inline; the repositories it guards are in-memory fakes.
type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	f.calls++
	return fn(ctx)
}

var _ repository.TxManager = (*fakeTx)(nil)
