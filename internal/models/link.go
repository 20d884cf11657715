package models

import (
	"time"

	"github.com/fsdevblog/geolink/internal/geo"
)

// ShortCodeLength длина автоматически сгенерированного короткого кода.
const ShortCodeLength = 6

// Link модель короткой ссылки с географическим ограничением доступа.
type Link struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ShortCode string  `gorm:"uniqueIndex;size:50;not null" json:"shortCode"`
	TargetURL string  `gorm:"size:500;not null" json:"targetURL"`
	Title     *string `gorm:"size:100" json:"title"`

	// Центр и радиус геозоны в градусах WGS-84 и метрах.
	CenterLat    float64 `gorm:"not null" json:"centerLat"`
	CenterLng    float64 `gorm:"not null" json:"centerLng"`
	RadiusMeters float64 `gorm:"not null" json:"radiusMeters"`
	LocationName *string `gorm:"size:255" json:"locationName"`
	// Contact контакт администратора, показывается посетителю вне геозоны.
	Contact *string `gorm:"size:100" json:"contact"`

	ExpiresAt *time.Time `json:"expiresAt"`
	// MaxAccessCount nil означает отсутствие ограничения.
	MaxAccessCount *int64 `json:"maxAccessCount"`
	AccessCount    int64  `gorm:"not null;default:0" json:"accessCount"`

	IsDeleted bool       `gorm:"not null;default:false;index" json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt"`
	IsBanned  bool       `gorm:"not null;default:false;index" json:"isBanned"`
}

// Center возвращает центр геозоны.
func (l *Link) Center() geo.Point {
	return geo.Point{Lat: l.CenterLat, Lng: l.CenterLng}
}
