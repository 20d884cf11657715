package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fsdevblog/geolink/internal/geo"
	"github.com/fsdevblog/geolink/internal/linkstate"
	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/repositories"
)

const (
	shortCodeAlphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	minCustomCodeLen   = 3
	maxCustomCodeLen   = 50
	maxGenerateRetries = 10
	defaultEventsLimit = 100
)

// hostnameRegex в соответствии с `RFC 1123` за исключением - исключает корневые доменные имена (без зоны).
var hostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9](-?[a-zA-Z0-9])*\.)+([a-zA-Z0-9](-?[a-zA-Z0-9])*)$`)

var customCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// reservedShortCodes совпадают с корневыми маршрутами http сервера.
var reservedShortCodes = map[string]bool{
	"api":     true,
	"metrics": true,
	"ping":    true,
}

// CreateLinkParams параметры новой ссылки.
type CreateLinkParams struct {
	ShortCode      string // Пустой код будет сгенерирован
	TargetURL      string
	Title          *string
	Center         geo.Point
	RadiusMeters   float64
	LocationName   *string
	Contact        *string
	ExpiresAt      *time.Time
	MaxAccessCount *int64 // nil без ограничения
}

// PublicLinkInfo сведения о ссылке, которые можно показать до проверки доступа.
type PublicLinkInfo struct {
	ShortCode    string
	Title        *string
	LocationName *string
	IsActive     bool
}

// OutcomeStats сводка исходов проверок.
type OutcomeStats struct {
	ShortCode   string                   `json:"shortCode,omitempty"` // Пустой для сводки по всем ссылкам
	Total       int64                    `json:"total"`
	Allowed     int64                    `json:"allowed"`
	Denied      int64                    `json:"denied"`
	SuccessRate float64                  `json:"successRate"` // Доля разрешенных, 0 если проверок не было
	ByOutcome   map[models.Outcome]int64 `json:"byOutcome"`
}

// LinkService управление ссылками: создание, удаление, восстановление, бан.
type LinkService struct {
	store  LinkStore
	events EventReader
	stats  StatsReader
	logger *zap.Logger
	now    func() time.Time
}

type LinkServiceOption func(*LinkService)

// WithStatsReader подключает источник счетчиков исходов.
func WithStatsReader(r StatsReader) LinkServiceOption {
	return func(s *LinkService) { s.stats = r }
}

// NewLinkService создает сервис управления ссылками.
//
// Параметры:
//   - store: репозиторий ссылок
//   - events: журнал событий, может быть nil
//   - logger: логгер
//   - opts: дополнительные настройки
func NewLinkService(store LinkStore, events EventReader, logger *zap.Logger, opts ...LinkServiceOption) *LinkService {
	s := &LinkService{
		store:  store,
		events: events,
		logger: logger.With(zap.String("module", "services/links")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create проверяет параметры и сохраняет ссылку. Если код не задан, генерирует его,
// повторяя попытку при совпадении с существующим.
//
// Возвращает:
//   - *models.Link: созданная ссылка
//   - error: ErrInvalidLink, ErrDuplicateKey для занятого пользовательского кода, ErrUnknown
func (s *LinkService) Create(ctx context.Context, params CreateLinkParams) (*models.Link, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	link := models.Link{
		TargetURL:      params.TargetURL,
		Title:          params.Title,
		CenterLat:      params.Center.Lat,
		CenterLng:      params.Center.Lng,
		RadiusMeters:   params.RadiusMeters,
		LocationName:   params.LocationName,
		Contact:        params.Contact,
		ExpiresAt:      params.ExpiresAt,
		MaxAccessCount: params.MaxAccessCount,
	}

	if params.ShortCode != "" {
		link.ShortCode = params.ShortCode
		if err := s.store.Create(ctx, &link); err != nil {
			return nil, convertRepoErr(err, "create link "+params.ShortCode)
		}
		return &link, nil
	}

	for attempt := range maxGenerateRetries {
		code, err := generateShortCode(models.ShortCodeLength)
		if err != nil {
			return nil, errors.Wrap(ErrUnknown, err.Error())
		}
		link.ShortCode = code
		createErr := s.store.Create(ctx, &link)
		if createErr == nil {
			return &link, nil
		}
		if !errors.Is(createErr, repositories.ErrDuplicateKey) {
			return nil, convertRepoErr(createErr, "create link")
		}
		s.logger.Debug("short code collision", zap.String("code", code), zap.Int("attempt", attempt))
	}
	return nil, errors.Wrap(ErrUnknown, "generateShortCode loop limit")
}

// Get возвращает ссылку по короткому коду.
func (s *LinkService) Get(ctx context.Context, code string) (*models.Link, error) {
	link, err := s.store.FindByShortCode(ctx, code)
	if err != nil {
		return nil, convertRepoErr(err, "get link "+code)
	}
	return link, nil
}

// PublicInfo сведения о ссылке для страницы проверки. Удаленные ссылки не раскрываются.
func (s *LinkService) PublicInfo(ctx context.Context, code string) (*PublicLinkInfo, error) {
	link, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if link.IsDeleted {
		return nil, errors.Wrapf(ErrRecordNotFound, "link %s is deleted", code)
	}
	return &PublicLinkInfo{
		ShortCode:    link.ShortCode,
		Title:        link.Title,
		LocationName: link.LocationName,
		IsActive:     linkstate.Classify(link, s.now()) == linkstate.Active,
	}, nil
}

// SoftDelete помечает ссылку удаленной. Запись остается в хранилище.
func (s *LinkService) SoftDelete(ctx context.Context, code string) (*models.Link, error) {
	deleted := true
	return s.setFlags(ctx, code, repositories.LinkFlags{IsDeleted: &deleted})
}

// Restore снимает отметку удаления.
func (s *LinkService) Restore(ctx context.Context, code string) (*models.Link, error) {
	deleted := false
	return s.setFlags(ctx, code, repositories.LinkFlags{IsDeleted: &deleted})
}

func (s *LinkService) Ban(ctx context.Context, code string) (*models.Link, error) {
	banned := true
	return s.setFlags(ctx, code, repositories.LinkFlags{IsBanned: &banned})
}

func (s *LinkService) Unban(ctx context.Context, code string) (*models.Link, error) {
	banned := false
	return s.setFlags(ctx, code, repositories.LinkFlags{IsBanned: &banned})
}

// Events последние события доступа по ссылке. limit <= 0 означает значение по умолчанию.
func (s *LinkService) Events(ctx context.Context, code string, limit int) ([]models.AccessEvent, error) {
	if s.events == nil {
		return nil, errors.Wrap(ErrUnknown, "event reader is not configured")
	}
	if limit <= 0 {
		limit = defaultEventsLimit
	}
	events, err := s.events.ListByShortCode(ctx, code, limit)
	if err != nil {
		return nil, convertRepoErr(err, "list events "+code)
	}
	return events, nil
}

// Stats счетчики исходов проверок по ссылке.
//
// Возвращает:
//   - *OutcomeStats: сводка
//   - error: ErrStatsDisabled без подключенных счетчиков, ErrRecordNotFound, ErrPersistenceUnavailable
func (s *LinkService) Stats(ctx context.Context, code string) (*OutcomeStats, error) {
	if s.stats == nil {
		return nil, errors.WithStack(ErrStatsDisabled)
	}
	if _, err := s.Get(ctx, code); err != nil {
		return nil, err
	}
	counters, err := s.stats.LinkCounters(ctx, code)
	if err != nil {
		return nil, convertRepoErr(err, "link stats "+code)
	}
	stats := summarize(counters)
	stats.ShortCode = code
	return stats, nil
}

// TotalStats счетчики исходов по всем ссылкам, включая запросы к несуществующим кодам.
func (s *LinkService) TotalStats(ctx context.Context) (*OutcomeStats, error) {
	if s.stats == nil {
		return nil, errors.WithStack(ErrStatsDisabled)
	}
	counters, err := s.stats.Totals(ctx)
	if err != nil {
		return nil, convertRepoErr(err, "total stats")
	}
	return summarize(counters), nil
}

func summarize(counters map[models.Outcome]int64) *OutcomeStats {
	stats := &OutcomeStats{ByOutcome: counters}
	for outcome, n := range counters {
		stats.Total += n
		if outcome.Allowed() {
			stats.Allowed += n
		} else {
			stats.Denied += n
		}
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Allowed) / float64(stats.Total)
	}
	return stats
}

func (s *LinkService) setFlags(ctx context.Context, code string, flags repositories.LinkFlags) (*models.Link, error) {
	link, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if setErr := s.store.SetFlags(ctx, link.ID, flags, s.now().UTC()); setErr != nil {
		return nil, convertRepoErr(setErr, "set flags "+code)
	}
	return s.Get(ctx, code)
}

func validateParams(params CreateLinkParams) error {
	if err := validateURL(params.TargetURL); err != nil {
		return errors.Wrap(ErrInvalidLink, err.Error())
	}
	if err := params.Center.Validate(); err != nil {
		return errors.Wrap(ErrInvalidLink, err.Error())
	}
	if math.IsNaN(params.RadiusMeters) || math.IsInf(params.RadiusMeters, 0) || params.RadiusMeters <= 0 {
		return errors.Wrapf(ErrInvalidLink, "radius must be positive, got %v", params.RadiusMeters)
	}
	if params.MaxAccessCount != nil && *params.MaxAccessCount < 0 {
		return errors.Wrapf(ErrInvalidLink, "max access count must not be negative, got %d", *params.MaxAccessCount)
	}
	if code := params.ShortCode; code != "" {
		if len(code) < minCustomCodeLen || len(code) > maxCustomCodeLen {
			return errors.Wrapf(ErrInvalidLink,
				"short code length must be between %d and %d", minCustomCodeLen, maxCustomCodeLen)
		}
		if !customCodeRegex.MatchString(code) {
			return errors.Wrapf(ErrInvalidLink, "short code %q contains forbidden characters", code)
		}
		if reservedShortCodes[strings.ToLower(code)] {
			return errors.Wrapf(ErrInvalidLink, "short code %q is reserved", code)
		}
	}
	return nil
}

// validateURL проверяет, является ли строка корректным URL.
func validateURL(rawURL string) error {
	parsedURL, err := url.ParseRequestURI(strings.TrimSpace(rawURL))
	if err != nil {
		return errors.New("invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("URL must have http or https scheme")
	}

	if parsedURL.Host == "" {
		return errors.New("URL must have a host")
	}

	if parsedURL.Hostname() != "localhost" && !hostnameRegex.MatchString(parsedURL.Hostname()) {
		return errors.New("invalid hostname")
	}
	return nil
}

// generateShortCode генерирует случайный код нужной длины из латинских букв и цифр.
func generateShortCode(length int) (string, error) {
	alphabetLen := big.NewInt(int64(len(shortCodeAlphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("random index: %w", err)
		}
		b[i] = shortCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

func convertRepoErr(err error, msg string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return errors.Wrap(ErrRecordNotFound, msg)
	case errors.Is(err, repositories.ErrDuplicateKey):
		return errors.Wrap(ErrDuplicateKey, msg)
	case errors.Is(err, repositories.ErrUnavailable):
		return errors.Wrap(ErrPersistenceUnavailable, msg)
	default:
		return errors.Wrapf(ErrUnknown, "%s: %s", msg, err.Error())
	}
}
