package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/services/mocks"
)

func TestEventRecorder_AllSinksAndFailuresAbsorbed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	event := &models.AccessEvent{ID: "ev-1", ShortCode: "abc123", Outcome: models.OutcomeAllowed}

	primary := mocks.NewMockEventRepository(ctrl)
	primary.EXPECT().Append(gomock.Any(), event).Return(errors.New("disk full"))
	secondary := mocks.NewMockEventRepository(ctrl)
	secondary.EXPECT().Append(gomock.Any(), event).Return(nil)

	obs := mocks.NewMockObserver(ctrl)
	obs.EXPECT().ObserveRecordFailure("primary")

	core, logs := observer.New(zap.WarnLevel)
	rec := NewEventRecorder(zap.New(core),
		WithSink("primary", primary),
		WithSink("redis", secondary),
		WithRecorderObserver(obs),
	)

	rec.Record(t.Context(), event)

	entries := logs.FilterMessage("failed to record access event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "primary", entries[0].ContextMap()["sink"])
}

func TestEventRecorder_IgnoresCallerCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	sink := mocks.NewMockEventRepository(ctrl)
	sink.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *models.AccessEvent) error {
			assert.NoError(t, ctx.Err())
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		})

	rec := NewEventRecorder(zap.NewNop(), WithSink("primary", sink), WithRecordTimeout(time.Second))
	rec.Record(ctx, &models.AccessEvent{ID: "ev-2"})
}

func TestEventRecorder_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockEventRepository(ctrl)
	sink.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *models.AccessEvent) error {
			<-ctx.Done()
			return ctx.Err()
		})

	rec := NewEventRecorder(zap.NewNop(), WithSink("slow", sink), WithRecordTimeout(20*time.Millisecond))

	done := make(chan struct{})
	go func() {
		rec.Record(t.Context(), &models.AccessEvent{ID: "ev-3"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("recorder did not respect its timeout")
	}
}

func TestEventRecorder_DefaultTimeoutBoundsSlowSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockEventRepository(ctrl)
	sink.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *models.AccessEvent) error {
			<-ctx.Done()
			return ctx.Err()
		})

	rec := NewEventRecorder(zap.NewNop(), WithSink("slow", sink))

	started := time.Now()
	rec.Record(t.Context(), &models.AccessEvent{ID: "ev-4"})
	elapsed := time.Since(started)

	assert.GreaterOrEqual(t, elapsed, defaultRecordTimeout)
	assert.Less(t, elapsed, defaultRecordTimeout+time.Second)
}
