package services

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fsdevblog/geolink/internal/db"
	"github.com/fsdevblog/geolink/internal/geo"
	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/repositories"
	"github.com/fsdevblog/geolink/internal/repositories/memstore"
	"github.com/fsdevblog/geolink/internal/services/mocks"
)

func newMemLinkService() *LinkService {
	store := db.NewMemStorage()
	return NewLinkService(memstore.NewLinkRepo(store), memstore.NewEventRepo(store), zap.NewNop())
}

func validParams() CreateLinkParams {
	return CreateLinkParams{
		TargetURL:    gofakeit.URL(),
		Center:       sfCenter,
		RadiusMeters: 100,
	}
}

func TestLinkService_CreateValidation(t *testing.T) {
	negative := int64(-1)
	tests := []struct {
		name   string
		mutate func(p *CreateLinkParams)
	}{
		{name: "not_url", mutate: func(p *CreateLinkParams) { p.TargetURL = "not a url" }},
		{name: "ftp_scheme", mutate: func(p *CreateLinkParams) { p.TargetURL = "ftp://example.com/file" }},
		{name: "bare_host", mutate: func(p *CreateLinkParams) { p.TargetURL = "http://intranet/page" }},
		{name: "latitude", mutate: func(p *CreateLinkParams) { p.Center = geo.Point{Lat: 95, Lng: 0} }},
		{name: "zero_radius", mutate: func(p *CreateLinkParams) { p.RadiusMeters = 0 }},
		{name: "negative_quota", mutate: func(p *CreateLinkParams) { p.MaxAccessCount = &negative }},
		{name: "short_code", mutate: func(p *CreateLinkParams) { p.ShortCode = "ab" }},
		{name: "code_chars", mutate: func(p *CreateLinkParams) { p.ShortCode = "abc/../x" }},
		{name: "route_metrics", mutate: func(p *CreateLinkParams) { p.ShortCode = "metrics" }},
		{name: "route_ping", mutate: func(p *CreateLinkParams) { p.ShortCode = "PING" }},
		{name: "route_api", mutate: func(p *CreateLinkParams) { p.ShortCode = "api" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// Некорректные параметры не доходят до хранилища.
			svc := NewLinkService(mocks.NewMockLinkStore(ctrl), nil, zap.NewNop())
			params := validParams()
			tt.mutate(&params)

			_, err := svc.Create(t.Context(), params)
			require.ErrorIs(t, err, ErrInvalidLink)
		})
	}
}

func TestLinkService_CreateGeneratesCode(t *testing.T) {
	svc := newMemLinkService()

	link, err := svc.Create(t.Context(), validParams())
	require.NoError(t, err)
	assert.Len(t, link.ShortCode, models.ShortCodeLength)
	assert.Regexp(t, `^[a-zA-Z0-9]+$`, link.ShortCode)
	assert.NotZero(t, link.ID)

	got, err := svc.Get(t.Context(), link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, link.TargetURL, got.TargetURL)
}

func TestLinkService_CreateRetriesOnCollision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockLinkStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repositories.ErrDuplicateKey),
		store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
	)

	svc := NewLinkService(store, nil, zap.NewNop())
	link, err := svc.Create(t.Context(), validParams())
	require.NoError(t, err)
	assert.Len(t, link.ShortCode, models.ShortCodeLength)
}

func TestLinkService_CreateGivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockLinkStore(ctrl)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repositories.ErrDuplicateKey).Times(maxGenerateRetries)

	_, err := NewLinkService(store, nil, zap.NewNop()).Create(t.Context(), validParams())
	require.ErrorIs(t, err, ErrUnknown)
}

func TestLinkService_CustomCodeDuplicate(t *testing.T) {
	svc := newMemLinkService()
	params := validParams()
	params.ShortCode = "office-hq"

	_, err := svc.Create(t.Context(), params)
	require.NoError(t, err)

	_, err = svc.Create(t.Context(), params)
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestLinkService_Flags(t *testing.T) {
	svc := newMemLinkService()
	params := validParams()
	params.ShortCode = "flags1"
	_, err := svc.Create(t.Context(), params)
	require.NoError(t, err)

	link, err := svc.SoftDelete(t.Context(), "flags1")
	require.NoError(t, err)
	assert.True(t, link.IsDeleted)
	assert.NotNil(t, link.DeletedAt)

	link, err = svc.Restore(t.Context(), "flags1")
	require.NoError(t, err)
	assert.False(t, link.IsDeleted)
	assert.Nil(t, link.DeletedAt)

	link, err = svc.Ban(t.Context(), "flags1")
	require.NoError(t, err)
	assert.True(t, link.IsBanned)

	link, err = svc.Unban(t.Context(), "flags1")
	require.NoError(t, err)
	assert.False(t, link.IsBanned)

	_, err = svc.Ban(t.Context(), "nope00")
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestLinkService_PublicInfo(t *testing.T) {
	svc := newMemLinkService()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	title, place := "Office", "HQ lobby"
	params := validParams()
	params.ShortCode = "info01"
	params.Title = &title
	params.LocationName = &place
	_, err := svc.Create(t.Context(), params)
	require.NoError(t, err)

	expired := now.Add(-time.Hour)
	params = validParams()
	params.ShortCode = "info02"
	params.ExpiresAt = &expired
	_, err = svc.Create(t.Context(), params)
	require.NoError(t, err)

	info, err := svc.PublicInfo(t.Context(), "info01")
	require.NoError(t, err)
	assert.Equal(t, &PublicLinkInfo{ShortCode: "info01", Title: &title, LocationName: &place, IsActive: true}, info)

	info, err = svc.PublicInfo(t.Context(), "info02")
	require.NoError(t, err)
	assert.False(t, info.IsActive)

	_, err = svc.SoftDelete(t.Context(), "info01")
	require.NoError(t, err)
	_, err = svc.PublicInfo(t.Context(), "info01")
	require.ErrorIs(t, err, ErrRecordNotFound)

	_, err = svc.PublicInfo(t.Context(), "missing")
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestLinkService_EventsWithoutReader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := NewLinkService(mocks.NewMockLinkStore(ctrl), nil, zap.NewNop()).Events(t.Context(), "abc", 10)
	require.ErrorIs(t, err, ErrUnknown)
}

func TestLinkService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMemStorage()
	reader := mocks.NewMockStatsReader(ctrl)
	svc := NewLinkService(memstore.NewLinkRepo(store), memstore.NewEventRepo(store), zap.NewNop(),
		WithStatsReader(reader))

	params := validParams()
	params.ShortCode = "stat01"
	_, err := svc.Create(t.Context(), params)
	require.NoError(t, err)

	reader.EXPECT().LinkCounters(gomock.Any(), "stat01").Return(map[models.Outcome]int64{
		models.OutcomeAllowed:          3,
		models.OutcomeDeniedOutOfRange: 1,
	}, nil)
	stats, err := svc.Stats(t.Context(), "stat01")
	require.NoError(t, err)
	assert.Equal(t, "stat01", stats.ShortCode)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(3), stats.Allowed)
	assert.Equal(t, int64(1), stats.Denied)
	assert.InDelta(t, 0.75, stats.SuccessRate, 1e-9)

	// Счетчики для неизвестного кода не читаются.
	_, err = svc.Stats(t.Context(), "missing")
	require.ErrorIs(t, err, ErrRecordNotFound)

	reader.EXPECT().LinkCounters(gomock.Any(), "stat01").Return(nil, repositories.ErrUnavailable)
	_, err = svc.Stats(t.Context(), "stat01")
	require.ErrorIs(t, err, ErrPersistenceUnavailable)

	reader.EXPECT().Totals(gomock.Any()).Return(map[models.Outcome]int64{}, nil)
	totals, err := svc.TotalStats(t.Context())
	require.NoError(t, err)
	assert.Zero(t, totals.Total)
	assert.Zero(t, totals.SuccessRate)
}

func TestLinkService_StatsDisabled(t *testing.T) {
	svc := newMemLinkService()

	_, err := svc.Stats(t.Context(), "stat01")
	require.ErrorIs(t, err, ErrStatsDisabled)
	_, err = svc.TotalStats(t.Context())
	require.ErrorIs(t, err, ErrStatsDisabled)
}
