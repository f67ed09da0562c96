package authorization

import (
	"context"

	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Checker --dir=. --output=./mocks --filename=checker_mock.go --case=underscore --with-expecter

// Checker decides whether an email may use the moderation feature. A missing
// entry, an inactive entry, and a storage failure are indistinguishable to
// the caller: all three yield false.
type Checker interface {
	IsAuthorized(ctx context.Context, email string) bool
	IsAdmin(ctx context.Context, email string) bool
}

type checker struct {
	logger     *logrus.Logger
	repository allowlist.Repository
}

func NewChecker(logger *logrus.Logger, repository allowlist.Repository) Checker {
	return &checker{
		logger:     logger,
		repository: repository,
	}
}

func (c *checker) IsAuthorized(ctx context.Context, email string) bool {
	entry, err := c.repository.GetByEmail(ctx, email)
	if err != nil {
		c.logger.WithError(err).WithField("email", email).Debug("allow-list lookup failed")
		return false
	}
	return entry.Active
}

func (c *checker) IsAdmin(ctx context.Context, email string) bool {
	entry, err := c.repository.GetByEmail(ctx, email)
	if err != nil {
		c.logger.WithError(err).WithField("email", email).Debug("allow-list lookup failed")
		return false
	}
	return entry.IsAdmin()
}
