package moderation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	authMocks "github.com/devfest-tools/modgate/pkg/app/authorization/mocks"
	"github.com/devfest-tools/modgate/pkg/domain/moderation"
	"github.com/devfest-tools/modgate/pkg/domain/submission"
	submissionMocks "github.com/devfest-tools/modgate/pkg/domain/submission/mocks"
	"github.com/devfest-tools/modgate/pkg/domain/user"
	userMocks "github.com/devfest-tools/modgate/pkg/domain/user/mocks"
	"github.com/devfest-tools/modgate/pkg/infra/httpx"
	"github.com/devfest-tools/modgate/pkg/infra/jwt"
	"github.com/devfest-tools/modgate/pkg/infra/providers"
	providerMocks "github.com/devfest-tools/modgate/pkg/infra/providers/mocks"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pipelineFixture struct {
	authorizer  *authMocks.Checker
	provider    *providerMocks.Client
	users       *userMocks.Repository
	submissions *submissionMocks.Repository
	pipeline    *Pipeline
}

func newPipelineFixture() *pipelineFixture {
	logger := logrus.New()
	f := &pipelineFixture{
		authorizer:  new(authMocks.Checker),
		provider:    new(providerMocks.Client),
		users:       new(userMocks.Repository),
		submissions: new(submissionMocks.Repository),
	}
	f.pipeline = NewPipeline(
		logger,
		f.authorizer,
		NewPromptBuilder(testPolicy),
		f.provider,
		&providers.Config{Model: "gemini-1.5-flash"},
		httpx.NewCircuitBreaker("test", logger, time.Second, 100),
		5*time.Second,
		f.users,
		f.submissions,
	)
	return f
}

func identity(email string) *jwt.IdentityClaim {
	return &jwt.IdentityClaim{
		UserID: uuid.NewString(),
		Email:  email,
		Role:   "user",
	}
}

func modelReply(body string) *providers.CompletionResponse {
	return &providers.CompletionResponse{Response: body}
}

func TestPipeline_NoIdentity(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.pipeline.Run(context.Background(), nil, "some text")
	assert.ErrorIs(t, err, ErrNoIdentity)

	_, err = f.pipeline.Run(context.Background(), &jwt.IdentityClaim{}, "some text")
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestPipeline_NotAuthorized(t *testing.T) {
	f := newPipelineFixture()
	f.authorizer.On("IsAuthorized", mock.Anything, "outsider@example.com").Return(false)

	_, err := f.pipeline.Run(context.Background(), identity("outsider@example.com"), "some text")

	assert.ErrorIs(t, err, ErrNotAuthorized)
	f.provider.AssertNotCalled(t, "Ask")
	f.submissions.AssertNotCalled(t, "Create")
}

func TestPipeline_EmptyInputIsNotPersisted(t *testing.T) {
	f := newPipelineFixture()
	f.authorizer.On("IsAuthorized", mock.Anything, "dev@example.com").Return(true)

	result, err := f.pipeline.Run(context.Background(), identity("dev@example.com"), "   \n  ")

	require.NoError(t, err)
	assert.Nil(t, result.ID)
	assert.True(t, result.Verdict.Rubbish)
	assert.Equal(t, moderation.EmptyInputFeedback, result.Verdict.Feedback)
	assert.Equal(t, moderation.StatusFlagged, result.Status)
	f.provider.AssertNotCalled(t, "Ask")
	f.submissions.AssertNotCalled(t, "Create")
}

func TestPipeline_InputTooLong(t *testing.T) {
	f := newPipelineFixture()
	f.authorizer.On("IsAuthorized", mock.Anything, "dev@example.com").Return(true)

	_, err := f.pipeline.Run(context.Background(), identity("dev@example.com"), strings.Repeat("a", 5001))

	assert.ErrorIs(t, err, ErrInputTooLong)
	f.provider.AssertNotCalled(t, "Ask")
}

func TestPipeline_CleanContentApprovedAndPersisted(t *testing.T) {
	f := newPipelineFixture()
	owner := &user.User{ID: uuid.New(), Email: "dev@example.com"}

	f.authorizer.On("IsAuthorized", mock.Anything, "dev@example.com").Return(true)
	f.provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(modelReply(`{"cocViolation": false, "nsfw": false, "rubbish": false, "feedback": "Safe content"}`), nil)
	f.users.On("GetByEmail", mock.Anything, "dev@example.com").Return(owner, nil)

	var saved *submission.Submission
	f.submissions.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*submission.Submission)
		}).
		Return(nil)

	result, err := f.pipeline.Run(context.Background(), identity("dev@example.com"), "hello world")

	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, result.Status)
	assert.Equal(t, "Safe content", result.Verdict.Feedback)
	require.NotNil(t, result.ID)

	require.NotNil(t, saved)
	assert.Equal(t, owner.ID, saved.UserID)
	assert.Equal(t, "hello world", saved.Content)
	assert.Equal(t, moderation.StatusApproved, saved.Status)
	assert.Equal(t, *result.ID, saved.ID)
}

func TestPipeline_ModelFailureFallsBackAndPersists(t *testing.T) {
	f := newPipelineFixture()
	owner := &user.User{ID: uuid.New(), Email: "dev@example.com"}

	f.authorizer.On("IsAuthorized", mock.Anything, "dev@example.com").Return(true)
	f.provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream timeout"))
	f.users.On("GetByEmail", mock.Anything, "dev@example.com").Return(owner, nil)
	f.submissions.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.pipeline.Run(context.Background(), identity("dev@example.com"), "hello world")

	require.NoError(t, err)
	assert.Equal(t, moderation.SafeFallback(), result.Verdict)
	assert.Equal(t, moderation.StatusFlagged, result.Status)
	require.NotNil(t, result.ID)
	f.submissions.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPipeline_UnintelligibleReplyFallsBack(t *testing.T) {
	f := newPipelineFixture()
	owner := &user.User{ID: uuid.New(), Email: "dev@example.com"}

	f.authorizer.On("IsAuthorized", mock.Anything, "dev@example.com").Return(true)
	f.provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(modelReply("I am unable to answer that."), nil)
	f.users.On("GetByEmail", mock.Anything, "dev@example.com").Return(owner, nil)
	f.submissions.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.pipeline.Run(context.Background(), identity("dev@example.com"), "hello world")

	require.NoError(t, err)
	assert.Equal(t, moderation.ParsingErrorFeedback, result.Verdict.Feedback)
	assert.Equal(t, moderation.StatusFlagged, result.Status)
}

func TestPipeline_UnknownUser(t *testing.T) {
	f := newPipelineFixture()

	f.authorizer.On("IsAuthorized", mock.Anything, "ghost@example.com").Return(true)
	f.provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(modelReply(`{"cocViolation": false, "nsfw": false, "rubbish": false, "feedback": "ok"}`), nil)
	f.users.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, errors.New("record not found"))

	_, err := f.pipeline.Run(context.Background(), identity("ghost@example.com"), "hello world")

	assert.ErrorIs(t, err, ErrUnknownUser)
	f.submissions.AssertNotCalled(t, "Create")
}

func TestPipeline_PersistenceFailureIsFatal(t *testing.T) {
	f := newPipelineFixture()
	owner := &user.User{ID: uuid.New(), Email: "dev@example.com"}

	f.authorizer.On("IsAuthorized", mock.Anything, "dev@example.com").Return(true)
	f.provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(modelReply(`{"cocViolation": false, "nsfw": false, "rubbish": false, "feedback": "ok"}`), nil)
	f.users.On("GetByEmail", mock.Anything, "dev@example.com").Return(owner, nil)
	f.submissions.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := f.pipeline.Run(context.Background(), identity("dev@example.com"), "hello world")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist submission")
}

func TestPipeline_StoredContentIsTruncated(t *testing.T) {
	f := newPipelineFixture()
	owner := &user.User{ID: uuid.New(), Email: "dev@example.com"}
	long := strings.Repeat("b", 1500)

	f.authorizer.On("IsAuthorized", mock.Anything, "dev@example.com").Return(true)
	f.provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(modelReply(`{"cocViolation": false, "nsfw": false, "rubbish": false, "feedback": "ok"}`), nil)
	f.users.On("GetByEmail", mock.Anything, "dev@example.com").Return(owner, nil)

	var saved *submission.Submission
	f.submissions.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*submission.Submission)
		}).
		Return(nil)

	_, err := f.pipeline.Run(context.Background(), identity("dev@example.com"), long)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Len(t, saved.Content, 1000)
}

func TestPipeline_CanceledContextAbandonsPersistence(t *testing.T) {
	f := newPipelineFixture()

	ctx, cancel := context.WithCancel(context.Background())
	f.authorizer.On("IsAuthorized", mock.Anything, "dev@example.com").Return(true)
	f.provider.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(modelReply(`{"cocViolation": false, "nsfw": false, "rubbish": false, "feedback": "ok"}`), nil)

	_, err := f.pipeline.Run(ctx, identity("dev@example.com"), "hello world")

	assert.ErrorIs(t, err, context.Canceled)
	f.submissions.AssertNotCalled(t, "Create")
}
