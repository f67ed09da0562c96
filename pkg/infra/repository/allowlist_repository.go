package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	domain "github.com/devfest-tools/modgate/pkg/domain/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AllowlistRepository struct {
	db *gorm.DB
}

func NewAllowlistRepository(db *gorm.DB) allowlist.Repository {
	return &AllowlistRepository{
		db: db,
	}
}

func (r *AllowlistRepository) Create(ctx context.Context, entry *allowlist.Entry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create allow-list entry: %w", err)
	}
	return nil
}

func (r *AllowlistRepository) GetByEmail(ctx context.Context, email string) (*allowlist.Entry, error) {
	entity := new(allowlist.Entry)
	err := r.db.WithContext(ctx).Where("email = ?", email).First(entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("allow-list entry", uuid.Nil)
		}
		return nil, fmt.Errorf("failed to fetch allow-list entry: %w", err)
	}
	return entity, nil
}

func (r *AllowlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*allowlist.Entry, error) {
	entity := new(allowlist.Entry)
	err := r.db.WithContext(ctx).First(entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("allow-list entry", id)
		}
		return nil, fmt.Errorf("failed to fetch allow-list entry: %w", err)
	}
	return entity, nil
}

func (r *AllowlistRepository) List(ctx context.Context) ([]allowlist.Entry, error) {
	var entries []allowlist.Entry
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list allow-list entries: %w", err)
	}
	return entries, nil
}

func (r *AllowlistRepository) Update(ctx context.Context, entry *allowlist.Entry) error {
	result := r.db.WithContext(ctx).Model(&allowlist.Entry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"role":   entry.Role,
			"active": entry.Active,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update allow-list entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("allow-list entry", entry.ID)
	}
	return nil
}

func (r *AllowlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&allowlist.Entry{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete allow-list entry: %w", err)
	}
	return nil
}
