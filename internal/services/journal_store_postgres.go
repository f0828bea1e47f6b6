package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/models"
)

const journalColumns = `id, owner_id, context, mood, insight, created_at`

// PostgresJournalStore stores entries in the journal_entries table.
type PostgresJournalStore struct {
	db *sql.DB
}

func NewPostgresJournalStore(db *sql.DB) *PostgresJournalStore {
	return &PostgresJournalStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournalEntry(row rowScanner) (models.JournalEntry, error) {
	var (
		e    models.JournalEntry
		mood string
	)
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Context, &mood, &e.Insight, &e.CreatedAt); err != nil {
		return models.JournalEntry{}, err
	}
	e.Mood, _ = models.ParseMood(mood)
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

func (s *PostgresJournalStore) Create(ctx context.Context, ownerID, text string, mood models.Mood, insight string) (models.JournalEntry, error) {
	requireOwner(ownerID)
	cleaned, err := CleanContext(text)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if mood == "" {
		mood = models.MoodNeutral
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO journal_entries (id, owner_id, context, mood, insight, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+journalColumns,
		uuid.New(), ownerID, cleaned, string(mood), insight, storeNow(),
	)
	entry, err := scanJournalEntry(row)
	if err != nil {
		return models.JournalEntry{}, persistenceError("insert journal entry", err)
	}
	return entry, nil
}

func (s *PostgresJournalStore) List(ctx context.Context, ownerID string, page, limit int) (models.EntryPage, error) {
	requireOwner(ownerID)
	page, limit = ClampPage(page, limit)

	total, err := s.Count(ctx, ownerID)
	if err != nil {
		return models.EntryPage{}, err
	}

	result := models.EntryPage{
		Entries:    []models.JournalEntry{},
		Page:       page,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}

	offset := pageOffset(page, limit)
	if offset >= total {
		return result, nil
	}

	entries, err := s.query(ctx, `
		SELECT `+journalColumns+`
		FROM journal_entries
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return models.EntryPage{}, err
	}
	result.Entries = append(result.Entries, entries...)
	return result, nil
}

func (s *PostgresJournalStore) Update(ctx context.Context, id, ownerID, text string) (models.JournalEntry, error) {
	requireOwner(ownerID)
	cleaned, err := CleanContext(text)
	if err != nil {
		return models.JournalEntry{}, err
	}
	entryID, err := uuid.Parse(id)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE journal_entries SET context = $1
		WHERE id = $2 AND owner_id = $3
		RETURNING `+journalColumns,
		cleaned, entryID, ownerID,
	)
	entry, err := scanJournalEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalEntry{}, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return models.JournalEntry{}, persistenceError("update journal entry", err)
	}
	return entry, nil
}

func (s *PostgresJournalStore) Delete(ctx context.Context, id, ownerID string) error {
	requireOwner(ownerID)
	entryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM journal_entries WHERE id = $1 AND owner_id = $2`,
		entryID, ownerID,
	)
	if err != nil {
		return persistenceError("delete journal entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistenceError("delete journal entry", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}
	return nil
}

func (s *PostgresJournalStore) ListSince(ctx context.Context, ownerID string, since time.Time) ([]models.JournalEntry, error) {
	requireOwner(ownerID)
	return s.query(ctx, `
		SELECT `+journalColumns+`
		FROM journal_entries
		WHERE owner_id = $1 AND created_at >= $2
		ORDER BY created_at DESC, id DESC`,
		ownerID, since.UTC(),
	)
}

func (s *PostgresJournalStore) Count(ctx context.Context, ownerID string) (int64, error) {
	requireOwner(ownerID)
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE owner_id = $1`, ownerID,
	).Scan(&total)
	if err != nil {
		return 0, persistenceError("count journal entries", err)
	}
	return total, nil
}

func (s *PostgresJournalStore) query(ctx context.Context, query string, args ...any) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError("query journal entries", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, persistenceError("scan journal entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate journal entries", err)
	}
	return entries, nil
}
