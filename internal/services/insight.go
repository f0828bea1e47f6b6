package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/logger"
	"github.com/AnshRaj112/serenify-journal/internal/models"
)

// InsightSystemPrompt is sent with every remote insight request.
const InsightSystemPrompt = "You are a supportive AI mental wellness coach. Read the journal entry and respond with a short emotional insight in 1-2 sentences."

// RemoteInsightClient produces free-text insight for a journal text.
type RemoteInsightClient interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// errCallerGone marks a remote call cut short because the caller went away.
// The breaker does not count it against the remote.
var errCallerGone = errors.New("caller abandoned request")

// InsightConfig tunes the remote branch of the InsightProvider.
type InsightConfig struct {
	Timeout          time.Duration
	FailureThreshold uint32        // consecutive failures before the breaker opens
	Cooldown         time.Duration // how long the breaker stays open
}

// InsightProvider returns the local classification, optionally replacing the
// insight text with a single remote completion.
type InsightProvider struct {
	remote  RemoteInsightClient
	breaker *gobreaker.CircuitBreaker[string]
	timeout time.Duration
	log     *zap.Logger
}

// NewInsightProvider builds a provider. A nil remote client means local-only analysis.
func NewInsightProvider(remote RemoteInsightClient, cfg InsightConfig, log *zap.Logger) *InsightProvider {
	log = logger.OrNop(log)
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}

	p := &InsightProvider{
		remote:  remote,
		timeout: cfg.Timeout,
		log:     log,
	}
	if remote != nil {
		p.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:        "remote-insight",
			MaxRequests: 1,
			Timeout:     cfg.Cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.FailureThreshold
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errCallerGone)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Info("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		})
	}
	return p
}

// RemoteEnabled reports whether a remote client is configured.
func (p *InsightProvider) RemoteEnabled() bool {
	return p.remote != nil
}

// Analyze never fails. The mood always comes from the local classifier; the
// insight comes from the remote client when it answers in time.
func (p *InsightProvider) Analyze(ctx context.Context, text string) models.Analysis {
	local := ClassifyMood(text)
	if p.remote == nil || ctx.Err() != nil {
		return local
	}

	insight, err := p.breaker.Execute(func() (string, error) {
		out, err := p.callRemote(ctx, text)
		if err != nil && ctx.Err() != nil {
			return "", fmt.Errorf("%w: %w", errCallerGone, err)
		}
		return out, err
	})
	if errors.Is(err, errCallerGone) {
		p.log.Debug("caller abandoned remote insight", zap.Error(err))
		return local
	}
	if err != nil {
		p.log.Warn("remote insight failed, using local analysis",
			zap.Error(err),
			zap.String("breaker_state", p.breaker.State().String()),
		)
		return local
	}

	return models.Analysis{
		Insight: insight,
		Mood:    local.Mood,
		Source:  models.SourceRemote,
	}
}

type remoteResult struct {
	text string
	err  error
}

// callRemote makes exactly one attempt bounded by p.timeout, even when the
// client ignores context cancellation.
func (p *InsightProvider) callRemote(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan remoteResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- remoteResult{err: fmt.Errorf("%w: panic: %v", apperrors.ErrRemoteAnalysis, r)}
			}
		}()
		out, err := p.remote.Complete(ctx, InsightSystemPrompt, text)
		done <- remoteResult{text: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", apperrors.ErrRemoteAnalysis, ctx.Err())
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, apperrors.ErrRemoteAnalysis) {
				return "", res.err
			}
			return "", fmt.Errorf("%w: %v", apperrors.ErrRemoteAnalysis, res.err)
		}
		insight := strings.TrimSpace(res.text)
		if insight == "" {
			return "", fmt.Errorf("%w: empty completion", apperrors.ErrRemoteAnalysis)
		}
		return insight, nil
	}
}
