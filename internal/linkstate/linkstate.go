// Package linkstate определяет, может ли ссылка быть открыта в данный момент.
//
// Порядок проверок фиксирован: бан и мягкое удаление важнее истечения срока и
// исчерпания квоты, чтобы администратор мог остановить ссылку в любой момент.
package linkstate

import (
	"time"

	"github.com/fsdevblog/geolink/internal/models"
)

// State состояние ссылки.
type State int

const (
	Active State = iota
	NotFound
	Deleted
	Banned
	Expired
	Exhausted
)

var stateNames = map[State]string{ //nolint:gochecknoglobals
	Active:    "ACTIVE",
	NotFound:  "NOT_FOUND",
	Deleted:   "DELETED",
	Banned:    "BANNED",
	Expired:   "EXPIRED",
	Exhausted: "EXHAUSTED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Outcome возвращает результат проверки, соответствующий состоянию.
// Для Active возвращается models.OutcomeAllowed, дальнейшие проверки остаются за вызывающим.
func (s State) Outcome() models.Outcome {
	switch s {
	case Active:
		return models.OutcomeAllowed
	case Deleted:
		return models.OutcomeDeniedDeleted
	case Banned:
		return models.OutcomeDeniedBanned
	case Expired:
		return models.OutcomeDeniedExpired
	case Exhausted:
		return models.OutcomeDeniedExhausted
	default:
		return models.OutcomeDeniedNotFound
	}
}

// Classify вычисляет состояние ссылки на момент now. link == nil означает что ссылка не найдена.
func Classify(link *models.Link, now time.Time) State {
	switch {
	case link == nil:
		return NotFound
	case link.IsBanned:
		return Banned
	case link.IsDeleted:
		return Deleted
	case link.ExpiresAt != nil && now.After(*link.ExpiresAt):
		return Expired
	case link.MaxAccessCount != nil && link.AccessCount >= *link.MaxAccessCount:
		return Exhausted
	default:
		return Active
	}
}
