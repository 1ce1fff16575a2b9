package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingService struct {
	name    string
	stopped bool
}

func (s *blockingService) Name() string { return s.name }

func (s *blockingService) Run(ctx context.Context) error {
	<-ctx.Done()
	s.stopped = true
	return nil
}

type failingService struct {
	err error
}

func (s *failingService) Name() string { return "failing" }

func (s *failingService) Run(context.Context) error { return s.err }

func TestGroup_StopsOnContextCancel(t *testing.T) {
	a, b := &blockingService{name: "a"}, &blockingService{name: "b"}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, Group{a, b}.Run(ctx))
	assert.True(t, a.stopped)
	assert.True(t, b.stopped)
}

func TestGroup_FailureCancelsSiblings(t *testing.T) {
	boom := errors.New("boom")
	sibling := &blockingService{name: "sibling"}

	err := Group{sibling, &failingService{err: boom}}.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failing: boom")
	assert.True(t, sibling.stopped)
}
