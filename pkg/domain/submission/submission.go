package submission

import (
	"time"

	"github.com/devfest-tools/modgate/pkg/domain/moderation"
	"github.com/google/uuid"
)

// Submission is one recorded moderation run. Records are append-only: they
// are created once by the pipeline and never mutated afterwards.
type Submission struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Content      string    `json:"content"`
	CocViolation bool      `json:"cocViolation"`
	NSFW         bool      `json:"nsfw" gorm:"column:nsfw"`
	Rubbish      bool      `json:"rubbish"`
	Feedback     string    `json:"feedback"`
	Status       string    `json:"status" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s Submission) TableName() string {
	return "public.moderation_requests"
}

func (s Submission) Verdict() moderation.Verdict {
	return moderation.Verdict{
		CocViolation: s.CocViolation,
		NSFW:         s.NSFW,
		Rubbish:      s.Rubbish,
		Feedback:     s.Feedback,
	}
}
