package controllers

import (
	"math"
	"net/http"
	"time"

	"github.com/fsdevblog/geolink/internal/models"
)

const (
	DefaultRequestTimeout = 3 * time.Second
	// RetryAfterSeconds значение заголовка Retry-After при временной недоступности хранилища.
	RetryAfterSeconds = "5"
)

// outcomeStatus http статус для исхода проверки.
func outcomeStatus(outcome models.Outcome) int {
	switch outcome {
	case models.OutcomeAllowed:
		return http.StatusOK
	case models.OutcomeDeniedOutOfRange, models.OutcomeDeniedBanned:
		return http.StatusForbidden
	case models.OutcomeDeniedNotFound, models.OutcomeDeniedDeleted:
		return http.StatusNotFound
	case models.OutcomeDeniedExpired, models.OutcomeDeniedExhausted:
		return http.StatusGone
	case models.OutcomeDeniedUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// roundMeters округляет расстояние до метра.
func roundMeters(d *float64) *float64 {
	if d == nil {
		return nil
	}
	r := math.Round(*d)
	return &r
}
