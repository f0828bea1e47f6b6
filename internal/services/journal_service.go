package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/logger"
	"github.com/AnshRaj112/serenify-journal/internal/models"
)

// CreateEntryInput carries a new entry. Empty Mood or Insight means "not supplied".
type CreateEntryInput struct {
	Context string
	Mood    string
	Insight string
}

// JournalService composes the insight provider and the journal store. It holds
// no per-request state.
type JournalService struct {
	store    JournalStore
	insights *InsightProvider
	cache    *CacheService // optional
	log      *zap.Logger
	now      func() time.Time
}

// NewJournalService wires the service. cache and log may be nil.
func NewJournalService(store JournalStore, insights *InsightProvider, cache *CacheService, log *zap.Logger) *JournalService {
	return &JournalService{
		store:    store,
		insights: insights,
		cache:    cache,
		log:      logger.OrNop(log),
		now:      time.Now,
	}
}

// Create stores a new entry. Supplied mood/insight win; the insight provider is
// consulted once, only when at least one of them is missing, and only fills the gap.
func (s *JournalService) Create(ctx context.Context, ownerID string, in CreateEntryInput) (models.JournalEntry, error) {
	requireOwner(ownerID)

	text, err := CleanContext(in.Context)
	if err != nil {
		return models.JournalEntry{}, err
	}

	var mood models.Mood
	if m := strings.TrimSpace(in.Mood); m != "" {
		parsed, ok := models.ParseMood(m)
		if !ok {
			return models.JournalEntry{}, fmt.Errorf("%w: unknown mood %q", apperrors.ErrValidation, m)
		}
		mood = parsed
	}
	insight := strings.TrimSpace(in.Insight)

	if mood == "" || insight == "" {
		analysis := s.insights.Analyze(ctx, text)
		mood, insight = mergeAnalysis(mood, insight, analysis)
	}

	entry, err := s.store.Create(ctx, ownerID, text, mood, insight)
	if err != nil {
		s.logStoreError("create", ownerID, err)
		return models.JournalEntry{}, err
	}

	s.invalidateStats(ctx, ownerID)
	return entry, nil
}

// mergeAnalysis keeps supplied values and takes only the missing ones from a.
func mergeAnalysis(mood models.Mood, insight string, a models.Analysis) (models.Mood, string) {
	if mood == "" {
		mood = a.Mood
	}
	if insight == "" {
		insight = a.Insight
	}
	return mood, insight
}

// List returns one page of the owner's entries, newest first.
func (s *JournalService) List(ctx context.Context, ownerID string, page, limit int) (models.EntryPage, error) {
	requireOwner(ownerID)

	result, err := s.store.List(ctx, ownerID, page, limit)
	if err != nil {
		s.logStoreError("list", ownerID, err)
		return models.EntryPage{}, err
	}
	return result, nil
}

// Update replaces the entry body only; mood and insight are left as they were.
func (s *JournalService) Update(ctx context.Context, id, ownerID, text string) (models.JournalEntry, error) {
	requireOwner(ownerID)

	entry, err := s.store.Update(ctx, id, ownerID, text)
	if err != nil {
		s.logStoreError("update", ownerID, err)
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// Delete permanently removes the entry. A second delete of the same id is NotFound.
func (s *JournalService) Delete(ctx context.Context, id, ownerID string) error {
	requireOwner(ownerID)

	if err := s.store.Delete(ctx, id, ownerID); err != nil {
		s.logStoreError("delete", ownerID, err)
		return err
	}

	s.invalidateStats(ctx, ownerID)
	return nil
}

// Analyze runs the insight provider without persisting anything.
func (s *JournalService) Analyze(ctx context.Context, text string) (models.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return models.Analysis{}, fmt.Errorf("%w: context is required for analysis", apperrors.ErrValidation)
	}
	return s.insights.Analyze(ctx, text), nil
}

// Stats aggregates the owner's journal with calendar days taken in loc.
func (s *JournalService) Stats(ctx context.Context, ownerID string, loc *time.Location) (models.MoodStats, error) {
	requireOwner(ownerID)
	if loc == nil {
		loc = time.UTC
	}

	cacheKey := CacheKey("stats", ownerID)
	if s.cache != nil {
		var cached models.MoodStats
		found, err := s.cache.Get(ctx, cacheKey, loc.String(), &cached)
		if err != nil {
			s.log.Warn("stats cache read failed", zap.String("owner_id", ownerID), zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	now := s.now()
	total, err := s.store.Count(ctx, ownerID)
	if err != nil {
		s.logStoreError("stats", ownerID, err)
		return models.MoodStats{}, err
	}
	recent, err := s.store.ListSince(ctx, ownerID, statsLookbackStart(now, loc))
	if err != nil {
		s.logStoreError("stats", ownerID, err)
		return models.MoodStats{}, err
	}

	stats := ComputeMoodStats(recent, total, now, loc)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, loc.String(), stats); err != nil {
			s.log.Warn("stats cache write failed", zap.String("owner_id", ownerID), zap.Error(err))
		}
	}
	return stats, nil
}

func (s *JournalService) invalidateStats(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, CacheKey("stats", ownerID)); err != nil {
		s.log.Warn("stats cache invalidation failed", zap.String("owner_id", ownerID), zap.Error(err))
	}
}

func (s *JournalService) logStoreError(op, ownerID string, err error) {
	if isPersistence(err) {
		s.log.Error("journal store failure",
			zap.String("op", op),
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
	}
}
