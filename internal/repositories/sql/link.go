package sql

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/repositories"
)

// LinkRepo репозиторий ссылок в sql базе.
type LinkRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewLinkRepo(db *gorm.DB, logger *zap.Logger) *LinkRepo {
	return &LinkRepo{
		db:     db,
		logger: logger.With(zap.String("module", "repository/sql/link")),
	}
}

func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := l.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("create link %s: %w", link.ShortCode, convertErrorType(err))
	}
	return nil
}

func (l *LinkRepo) FindByShortCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	if err := l.db.WithContext(ctx).Where("short_code = ?", code).First(&link).Error; err != nil {
		return nil, fmt.Errorf("find link by short code %s: %w", code, convertErrorType(err))
	}
	return &link, nil
}

func (l *LinkRepo) FindByID(ctx context.Context, id uint) (*models.Link, error) {
	var link models.Link
	if err := l.db.WithContext(ctx).First(&link, id).Error; err != nil {
		return nil, fmt.Errorf("find link by id %d: %w", id, convertErrorType(err))
	}
	return &link, nil
}

// AtomicReserve увеличивает счетчик доступов одним условным UPDATE.
// Если квота исчерпана, ни одна строка не изменится и вернется repositories.ReserveExhausted.
func (l *LinkRepo) AtomicReserve(ctx context.Context, linkID uint) (repositories.ReserveResult, error) {
	res := l.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("id = ? AND (max_access_count IS NULL OR access_count < max_access_count)", linkID).
		UpdateColumns(map[string]any{
			"access_count": gorm.Expr("access_count + 1"),
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		l.logger.Error("reserve access failed", zap.Uint("linkID", linkID), zap.Error(res.Error))
		return repositories.ReserveExhausted, fmt.Errorf("reserve link %d: %w", linkID, convertErrorType(res.Error))
	}
	if res.RowsAffected == 0 {
		return repositories.ReserveExhausted, nil
	}
	return repositories.ReserveReserved, nil
}

// SetFlags меняет флаги удаления и бана. DeletedAt выставляется и сбрасывается вместе с IsDeleted.
func (l *LinkRepo) SetFlags(ctx context.Context, linkID uint, flags repositories.LinkFlags, now time.Time) error {
	updates := map[string]any{"updated_at": now}
	if flags.IsDeleted != nil {
		updates["is_deleted"] = *flags.IsDeleted
		if *flags.IsDeleted {
			updates["deleted_at"] = now
		} else {
			updates["deleted_at"] = nil
		}
	}
	if flags.IsBanned != nil {
		updates["is_banned"] = *flags.IsBanned
	}

	res := l.db.WithContext(ctx).Model(&models.Link{}).Where("id = ?", linkID).UpdateColumns(updates)
	if res.Error != nil {
		return fmt.Errorf("set flags for link %d: %w", linkID, convertErrorType(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("set flags for link %d: %w", linkID, repositories.ErrNotFound)
	}
	return nil
}

// Ping проверяет соединение с базой.
func (l *LinkRepo) Ping(ctx context.Context) error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx) //nolint:wrapcheck
}
