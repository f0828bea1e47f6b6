package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/models"
)

const (
	// DefaultPageLimit is used when a list request carries no limit.
	DefaultPageLimit = 10
	// MaxPageLimit caps list page sizes.
	MaxPageLimit = 50
	// MaxContextLength caps the trimmed entry body, in characters.
	MaxContextLength = 10000
)

// JournalStore persists journal entries. Every operation is scoped by owner:
// an entry owned by someone else behaves exactly like a missing one.
type JournalStore interface {
	Create(ctx context.Context, ownerID, text string, mood models.Mood, insight string) (models.JournalEntry, error)
	// List returns the page-th page (1-based) of the owner's entries, newest first.
	List(ctx context.Context, ownerID string, page, limit int) (models.EntryPage, error)
	Update(ctx context.Context, id, ownerID, text string) (models.JournalEntry, error)
	Delete(ctx context.Context, id, ownerID string) error
	// ListSince returns the owner's entries created at or after since, newest first.
	ListSince(ctx context.Context, ownerID string, since time.Time) ([]models.JournalEntry, error)
	Count(ctx context.Context, ownerID string) (int64, error)
}

// CleanContext trims text and rejects blank or oversized bodies.
func CleanContext(text string) (string, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w: context is required", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(cleaned) > MaxContextLength {
		return "", fmt.Errorf("%w: context exceeds %d characters", apperrors.ErrValidation, MaxContextLength)
	}
	return cleaned, nil
}

// ClampPage normalizes page to >= 1 and limit into [1, MaxPageLimit].
func ClampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// TotalPages is ceil(total/limit), never less than 1.
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		limit = 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}

// pageOffset returns the number of entries to skip for page.
func pageOffset(page, limit int) int64 {
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return math.MaxInt64
	}
	return int64(page-1) * int64(limit)
}

func requireOwner(ownerID string) {
	if strings.TrimSpace(ownerID) == "" {
		panic("journal: empty owner id")
	}
}

func isPersistence(err error) bool {
	return errors.Is(err, apperrors.ErrPersistence)
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrPersistence, op, err)
}

// storeNow is the creation timestamp used by the database-backed stores,
// truncated to the millisecond precision both Mongo and Postgres keep.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

var (
	_ JournalStore = (*MemoryJournalStore)(nil)
	_ JournalStore = (*MongoJournalStore)(nil)
	_ JournalStore = (*PostgresJournalStore)(nil)
)
