package submission

import (
	"context"

	"github.com/google/uuid"
)

// StatusCounts aggregates a user's submissions by resolved status.
type StatusCounts struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Flagged  int64 `json:"flagged"`
	Blocked  int64 `json:"blocked"`
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter

type Repository interface {
	Create(ctx context.Context, sub *Submission) error
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]Submission, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, userID uuid.UUID) (StatusCounts, error)
}
