package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/models"
)

// MemoryJournalStore keeps entries in process memory. It backs JOURNAL_STORE=memory
// for local development and the service tests.
type MemoryJournalStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	seq     int64
	now     func() time.Time
}

type memoryEntry struct {
	entry models.JournalEntry
	seq   int64
}

// NewMemoryJournalStore returns an empty store. now may be nil.
func NewMemoryJournalStore(now func() time.Time) *MemoryJournalStore {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &MemoryJournalStore{entries: make(map[string]memoryEntry), now: now}
}

func (s *MemoryJournalStore) Create(_ context.Context, ownerID, text string, mood models.Mood, insight string) (models.JournalEntry, error) {
	requireOwner(ownerID)
	cleaned, err := CleanContext(text)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if mood == "" {
		mood = models.MoodNeutral
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	entry := models.JournalEntry{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Context:   cleaned,
		Mood:      mood,
		Insight:   insight,
		CreatedAt: s.now(),
	}
	s.entries[entry.ID] = memoryEntry{entry: entry, seq: s.seq}
	return entry, nil
}

// sortedFor returns the owner's entries newest first; ties keep insertion order reversed.
func (s *MemoryJournalStore) sortedFor(ownerID string) []memoryEntry {
	var owned []memoryEntry
	for _, e := range s.entries {
		if e.entry.OwnerID == ownerID {
			owned = append(owned, e)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].entry.CreatedAt.Equal(owned[j].entry.CreatedAt) {
			return owned[i].entry.CreatedAt.After(owned[j].entry.CreatedAt)
		}
		return owned[i].seq > owned[j].seq
	})
	return owned
}

func (s *MemoryJournalStore) List(_ context.Context, ownerID string, page, limit int) (models.EntryPage, error) {
	requireOwner(ownerID)
	page, limit = ClampPage(page, limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := s.sortedFor(ownerID)
	total := int64(len(owned))

	result := models.EntryPage{
		Entries:    []models.JournalEntry{},
		Page:       page,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}

	start := pageOffset(page, limit)
	if start >= total {
		return result, nil
	}
	end := start + int64(limit)
	if end > total {
		end = total
	}
	for _, e := range owned[start:end] {
		result.Entries = append(result.Entries, e.entry)
	}
	return result, nil
}

func (s *MemoryJournalStore) Update(_ context.Context, id, ownerID, text string) (models.JournalEntry, error) {
	requireOwner(ownerID)
	cleaned, err := CleanContext(text)
	if err != nil {
		return models.JournalEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.entry.OwnerID != ownerID {
		return models.JournalEntry{}, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}
	e.entry.Context = cleaned
	s.entries[id] = e
	return e.entry, nil
}

func (s *MemoryJournalStore) Delete(_ context.Context, id, ownerID string) error {
	requireOwner(ownerID)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.entry.OwnerID != ownerID {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}
	delete(s.entries, id)
	return nil
}

func (s *MemoryJournalStore) ListSince(_ context.Context, ownerID string, since time.Time) ([]models.JournalEntry, error) {
	requireOwner(ownerID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.JournalEntry{}
	for _, e := range s.sortedFor(ownerID) {
		if e.entry.CreatedAt.Before(since) {
			break
		}
		out = append(out, e.entry)
	}
	return out, nil
}

func (s *MemoryJournalStore) Count(_ context.Context, ownerID string) (int64, error) {
	requireOwner(ownerID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.entries {
		if e.entry.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}
