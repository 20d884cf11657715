package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fsdevblog/geolink/internal/geo"
	"github.com/fsdevblog/geolink/internal/linkstate"
	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/repositories"
)

// VerifyRequest запрос на проверку доступа к короткой ссылке.
type VerifyRequest struct {
	ShortCode string
	Point     geo.Point // Заявленная клиентом координата
	Now       time.Time // Момент проверки. Нулевое значение означает текущее время
	UserAgent string
	ClientIP  string
}

// VerificationResult результат проверки.
// TargetURL заполняется только при OutcomeAllowed. DistanceMeters только если расстояние считалось.
type VerificationResult struct {
	Outcome        models.Outcome
	TargetURL      *string
	DistanceMeters *float64
	Title          *string
	Contact        *string // Контакт администратора, показывается только при отказе по расстоянию
}

// AccessVerifier проверяет доступ к ссылке по геозоне, состоянию и квоте, записывает событие.
// Между вызовами состояния не хранит.
type AccessVerifier struct {
	links        LinkRepository
	quota        *QuotaLedger
	recorder     AccessRecorder
	storeTimeout time.Duration
	observer     Observer
	logger       *zap.Logger
}

type VerifierOption func(*AccessVerifier)

// WithStoreTimeout ограничивает каждое обращение к хранилищу ссылок.
func WithStoreTimeout(d time.Duration) VerifierOption {
	return func(v *AccessVerifier) { v.storeTimeout = d }
}

func WithVerifierObserver(o Observer) VerifierOption {
	return func(v *AccessVerifier) { v.observer = o }
}

// NewAccessVerifier создает проверяющий сервис.
//
// Параметры:
//   - links: репозиторий ссылок
//   - recorder: регистратор событий доступа
//   - logger: логгер
//   - opts: дополнительные настройки
//
// Возвращает:
//   - *AccessVerifier: сервис проверки доступа
func NewAccessVerifier(
	links LinkRepository,
	recorder AccessRecorder,
	logger *zap.Logger,
	opts ...VerifierOption,
) *AccessVerifier {
	v := &AccessVerifier{
		links:    links,
		recorder: recorder,
		logger:   logger.With(zap.String("module", "services/verifier")),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.quota = NewQuotaLedger(links, v.storeTimeout)
	return v
}

// Verify проверяет доступ и записывает ровно одно событие доступа.
// Некорректная координата отклоняется до любых обращений к хранилищу, событие в этом случае не пишется.
//
// Возвращает:
//   - *VerificationResult: исход проверки
//   - error: ErrInvalidCoordinate
func (v *AccessVerifier) Verify(ctx context.Context, req VerifyRequest) (*VerificationResult, error) {
	started := time.Now()
	if err := req.Point.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCoordinate, err)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	event := &models.AccessEvent{
		ID:         uuid.NewString(),
		ShortCode:  req.ShortCode,
		OccurredAt: now.UTC(),
		Latitude:   req.Point.Lat,
		Longitude:  req.Point.Lng,
		UserAgent:  req.UserAgent,
		ClientIP:   req.ClientIP,
	}

	result := v.decide(ctx, req, now, event)

	event.Outcome = result.Outcome
	event.DistanceMeters = result.DistanceMeters
	v.recorder.Record(ctx, event)

	if v.observer != nil {
		v.observer.ObserveVerification(result.Outcome, time.Since(started))
	}
	return result, nil
}

func (v *AccessVerifier) decide(
	ctx context.Context,
	req VerifyRequest,
	now time.Time,
	event *models.AccessEvent,
) *VerificationResult {
	link, err := v.findLink(ctx, req.ShortCode)
	if err != nil {
		v.logger.Warn("link lookup failed", zap.String("short_code", req.ShortCode), zap.Error(err))
		return &VerificationResult{Outcome: models.OutcomeDeniedUnavailable}
	}
	if link != nil {
		linkID := link.ID
		event.LinkID = &linkID
	}

	if state := linkstate.Classify(link, now); state != linkstate.Active {
		return &VerificationResult{Outcome: state.Outcome()}
	}

	inside, distance, err := geo.Within(req.Point, link.Center(), link.RadiusMeters)
	if err != nil {
		// Центр ссылки хранится в некорректном виде, доступ не выдаем.
		v.logger.Error("link has invalid geofence", zap.Uint("link_id", link.ID), zap.Error(err))
		return &VerificationResult{Outcome: models.OutcomeDeniedUnavailable}
	}
	if !inside {
		return &VerificationResult{
			Outcome:        models.OutcomeDeniedOutOfRange,
			DistanceMeters: &distance,
			Title:          link.Title,
			Contact:        link.Contact,
		}
	}

	reserved, err := v.quota.TryReserve(ctx, link.ID)
	if err != nil {
		v.logger.Warn("quota reservation failed", zap.Uint("link_id", link.ID), zap.Error(err))
		return &VerificationResult{Outcome: models.OutcomeDeniedUnavailable, DistanceMeters: &distance}
	}
	if reserved != repositories.ReserveReserved {
		return &VerificationResult{Outcome: models.OutcomeDeniedExhausted, DistanceMeters: &distance}
	}

	target := link.TargetURL
	return &VerificationResult{
		Outcome:        models.OutcomeAllowed,
		TargetURL:      &target,
		DistanceMeters: &distance,
		Title:          link.Title,
	}
}

// findLink возвращает nil без ошибки, если ссылки нет.
func (v *AccessVerifier) findLink(ctx context.Context, code string) (*models.Link, error) {
	if v.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.storeTimeout)
		defer cancel()
	}

	link, err := v.links.FindByShortCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil //nolint:nilnil
		}
		return nil, fmt.Errorf("%w: %s", ErrPersistenceUnavailable, err.Error())
	}
	return link, nil
}
