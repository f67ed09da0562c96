package repository

import (
	"context"
	"fmt"

	"github.com/devfest-tools/modgate/pkg/domain/moderation"
	"github.com/devfest-tools/modgate/pkg/domain/submission"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) submission.Repository {
	return &SubmissionRepository{
		db: db,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, entity *submission.Submission) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]submission.Submission, error) {
	var entities []submission.Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return entities, nil
}

func (r *SubmissionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&submission.Submission{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return total, nil
}

func (r *SubmissionRepository) CountByStatus(
	ctx context.Context,
	userID uuid.UUID,
) (submission.StatusCounts, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&submission.Submission{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return submission.StatusCounts{}, fmt.Errorf("failed to count submissions by status: %w", err)
	}

	var counts submission.StatusCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case moderation.StatusApproved:
			counts.Approved = row.Count
		case moderation.StatusFlagged:
			counts.Flagged = row.Count
		case moderation.StatusBlocked:
			counts.Blocked = row.Count
		}
	}
	return counts, nil
}
