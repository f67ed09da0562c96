package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devfest-tools/modgate/pkg/app/authorization"
	"github.com/devfest-tools/modgate/pkg/common"
	"github.com/devfest-tools/modgate/pkg/domain/moderation"
	"github.com/devfest-tools/modgate/pkg/domain/submission"
	"github.com/devfest-tools/modgate/pkg/domain/user"
	"github.com/devfest-tools/modgate/pkg/infra/httpx"
	"github.com/devfest-tools/modgate/pkg/infra/jwt"
	"github.com/devfest-tools/modgate/pkg/infra/metrics"
	"github.com/devfest-tools/modgate/pkg/infra/providers"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoIdentity    = errors.New("authentication required")
	ErrNotAuthorized = errors.New("access denied")
	ErrUnknownUser   = errors.New("user not found")
)

// Result is the outcome of one pipeline run. ID is nil when the run
// short-circuited before persistence (empty input).
type Result struct {
	Verdict moderation.Verdict
	Status  string
	ID      *uuid.UUID
}

// Pipeline sequences the moderation request: identity gate, authorization
// gate, prompt construction, model call, tolerant parsing, status
// resolution, persistence. Each gate short-circuits; after authorization the
// only fatal condition is a persistence failure.
type Pipeline struct {
	logger        *logrus.Logger
	authorizer    authorization.Checker
	promptBuilder *PromptBuilder
	parser        *VerdictParser
	provider      providers.Client
	providerCfg   *providers.Config
	breaker       httpx.CircuitBreaker
	modelTimeout  time.Duration
	users         user.Repository
	submissions   submission.Repository
}

func NewPipeline(
	logger *logrus.Logger,
	authorizer authorization.Checker,
	promptBuilder *PromptBuilder,
	provider providers.Client,
	providerCfg *providers.Config,
	breaker httpx.CircuitBreaker,
	modelTimeout time.Duration,
	users user.Repository,
	submissions submission.Repository,
) *Pipeline {
	return &Pipeline{
		logger:        logger,
		authorizer:    authorizer,
		promptBuilder: promptBuilder,
		parser:        NewVerdictParser(),
		provider:      provider,
		providerCfg:   providerCfg,
		breaker:       breaker,
		modelTimeout:  modelTimeout,
		users:         users,
		submissions:   submissions,
	}
}

func (p *Pipeline) Run(ctx context.Context, claim *jwt.IdentityClaim, text string) (*Result, error) {
	if claim == nil || claim.Email == "" {
		return nil, ErrNoIdentity
	}

	if !p.authorizer.IsAuthorized(ctx, claim.Email) {
		p.logger.WithField("email", claim.Email).Info("unauthorized moderation attempt")
		return nil, ErrNotAuthorized
	}

	// Whitespace-only input never reaches the model and is not recorded.
	if strings.TrimSpace(text) == "" {
		verdict := moderation.EmptyInputVerdict()
		return &Result{
			Verdict: verdict,
			Status:  moderation.ResolveStatus(verdict),
		}, nil
	}

	prompt, err := p.promptBuilder.Build(text)
	if err != nil {
		return nil, err
	}

	raw := p.generate(ctx, prompt)

	verdict, fellBack := p.parser.Parse(raw)
	if fellBack {
		metrics.ModelFallbacks.Inc()
	}
	status := moderation.ResolveStatus(verdict)

	// The caller walked away; don't record a verdict nobody received.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	owner, err := p.users.GetByEmail(ctx, claim.Email)
	if err != nil {
		return nil, ErrUnknownUser
	}

	id, err := uuid.NewV6()
	if err != nil {
		return nil, fmt.Errorf("failed to generate submission ID: %w", err)
	}

	record := &submission.Submission{
		ID:           id,
		UserID:       owner.ID,
		Content:      truncate(text, common.MaxStoredContentLength),
		CocViolation: verdict.CocViolation,
		NSFW:         verdict.NSFW,
		Rubbish:      verdict.Rubbish,
		Feedback:     verdict.Feedback,
		Status:       status,
	}

	if err := p.submissions.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist submission: %w", err)
	}

	metrics.ModerationOutcomes.WithLabelValues(status).Inc()

	return &Result{
		Verdict: verdict,
		Status:  status,
		ID:      &record.ID,
	}, nil
}

// generate calls the model through the circuit breaker. Every failure mode
// collapses to an empty string, which the parser turns into the safe
// fallback verdict.
func (p *Pipeline) generate(ctx context.Context, prompt string) string {
	ctx, cancel := context.WithTimeout(ctx, p.modelTimeout)
	defer cancel()

	var raw string
	err := p.breaker.Do(ctx, func(ctx context.Context) error {
		resp, err := p.provider.Ask(ctx, p.providerCfg, prompt)
		if err != nil {
			return err
		}
		raw = resp.Response
		return nil
	})
	if err != nil {
		p.logger.WithError(err).Warn("model call failed, falling back")
		return ""
	}
	return raw
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
