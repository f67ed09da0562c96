package authorization

import (
	"context"
	"errors"
	"testing"

	"github.com/devfest-tools/modgate/pkg/domain/allowlist"
	allowlistMocks "github.com/devfest-tools/modgate/pkg/domain/allowlist/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestChecker_IsAuthorized(t *testing.T) {
	tests := []struct {
		name     string
		entry    *allowlist.Entry
		err      error
		expected bool
	}{
		{
			name:     "active entry is authorized",
			entry:    &allowlist.Entry{Email: "dev@example.com", Role: allowlist.RoleModerator, Active: true},
			expected: true,
		},
		{
			name:     "inactive entry is not authorized",
			entry:    &allowlist.Entry{Email: "dev@example.com", Role: allowlist.RoleModerator, Active: false},
			expected: false,
		},
		{
			name:     "lookup failure denies",
			err:      errors.New("record not found"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(allowlistMocks.Repository)
			repo.On("GetByEmail", mock.Anything, "dev@example.com").Return(tt.entry, tt.err)

			checker := NewChecker(logrus.New(), repo)

			assert.Equal(t, tt.expected, checker.IsAuthorized(context.Background(), "dev@example.com"))
		})
	}
}

func TestChecker_IsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		entry    *allowlist.Entry
		err      error
		expected bool
	}{
		{
			name:     "active admin",
			entry:    &allowlist.Entry{Email: "admin@example.com", Role: allowlist.RoleAdmin, Active: true},
			expected: true,
		},
		{
			name:     "inactive admin is not admin",
			entry:    &allowlist.Entry{Email: "admin@example.com", Role: allowlist.RoleAdmin, Active: false},
			expected: false,
		},
		{
			name:     "active moderator is not admin",
			entry:    &allowlist.Entry{Email: "admin@example.com", Role: allowlist.RoleModerator, Active: true},
			expected: false,
		},
		{
			name:     "lookup failure denies",
			err:      errors.New("connection refused"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(allowlistMocks.Repository)
			repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(tt.entry, tt.err)

			checker := NewChecker(logrus.New(), repo)

			assert.Equal(t, tt.expected, checker.IsAdmin(context.Background(), "admin@example.com"))
		})
	}
}
