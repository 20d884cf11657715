package models

import "time"

// Outcome результат проверки доступа к ссылке.
type Outcome string

const (
	OutcomeAllowed           Outcome = "ALLOWED"
	OutcomeDeniedOutOfRange  Outcome = "DENIED_OUT_OF_RANGE"
	OutcomeDeniedExpired     Outcome = "DENIED_EXPIRED"
	OutcomeDeniedExhausted   Outcome = "DENIED_EXHAUSTED"
	OutcomeDeniedDeleted     Outcome = "DENIED_DELETED"
	OutcomeDeniedBanned      Outcome = "DENIED_BANNED"
	OutcomeDeniedNotFound    Outcome = "DENIED_NOT_FOUND"
	OutcomeDeniedUnavailable Outcome = "DENIED_UNAVAILABLE" // Хранилище недоступно, запрос можно повторить
)

// Allowed true только для OutcomeAllowed.
func (o Outcome) Allowed() bool {
	return o == OutcomeAllowed
}

// AccessEvent запись о единичной проверке доступа. Только добавляется, никогда не изменяется.
type AccessEvent struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// LinkID пустой, если ссылка не найдена.
	LinkID     *uint     `gorm:"index" json:"linkID"`
	ShortCode  string    `gorm:"size:50;index" json:"shortCode"`
	OccurredAt time.Time `gorm:"not null;index" json:"occurredAt"`
	Outcome    Outcome   `gorm:"size:32;not null" json:"outcome"`

	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	DistanceMeters *float64 `json:"distanceMeters"`

	UserAgent string `json:"userAgent"`
	ClientIP  string `gorm:"size:45" json:"clientIP"`
}
