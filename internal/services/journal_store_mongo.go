package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/models"
)

// journalDocument is the Mongo shape of a journal entry.
type journalDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   string             `bson:"owner_id"`
	Context   string             `bson:"context"`
	Mood      string             `bson:"mood"`
	Insight   string             `bson:"insight,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d journalDocument) toModel() models.JournalEntry {
	mood, ok := models.ParseMood(d.Mood)
	if !ok {
		mood = models.MoodNeutral
	}
	return models.JournalEntry{
		ID:        d.ID.Hex(),
		OwnerID:   d.OwnerID,
		Context:   d.Context,
		Mood:      mood,
		Insight:   d.Insight,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// newestFirst sorts by creation time, then by ObjectID so equal timestamps stay stable.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// MongoJournalStore stores entries in a Mongo collection.
type MongoJournalStore struct {
	col *mongo.Collection
}

func NewMongoJournalStore(col *mongo.Collection) *MongoJournalStore {
	return &MongoJournalStore{col: col}
}

func (s *MongoJournalStore) Create(ctx context.Context, ownerID, text string, mood models.Mood, insight string) (models.JournalEntry, error) {
	requireOwner(ownerID)
	cleaned, err := CleanContext(text)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if mood == "" {
		mood = models.MoodNeutral
	}

	doc := journalDocument{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Context:   cleaned,
		Mood:      string(mood),
		Insight:   insight,
		CreatedAt: storeNow(),
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return models.JournalEntry{}, persistenceError("insert journal entry", err)
	}
	return doc.toModel(), nil
}

func (s *MongoJournalStore) List(ctx context.Context, ownerID string, page, limit int) (models.EntryPage, error) {
	requireOwner(ownerID)
	page, limit = ClampPage(page, limit)
	filter := bson.M{"owner_id": ownerID}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return models.EntryPage{}, persistenceError("count journal entries", err)
	}

	result := models.EntryPage{
		Entries:    []models.JournalEntry{},
		Page:       page,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}

	skip := pageOffset(page, limit)
	if skip >= total {
		return result, nil
	}

	findOptions := options.Find().
		SetSort(newestFirst).
		SetSkip(skip).
		SetLimit(int64(limit))

	docs, err := s.find(ctx, filter, findOptions)
	if err != nil {
		return models.EntryPage{}, err
	}
	for _, d := range docs {
		result.Entries = append(result.Entries, d.toModel())
	}
	return result, nil
}

func (s *MongoJournalStore) Update(ctx context.Context, id, ownerID, text string) (models.JournalEntry, error) {
	requireOwner(ownerID)
	cleaned, err := CleanContext(text)
	if err != nil {
		return models.JournalEntry{}, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}

	var doc journalDocument
	err = s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "owner_id": ownerID},
		bson.M{"$set": bson.M{"context": cleaned}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.JournalEntry{}, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return models.JournalEntry{}, persistenceError("update journal entry", err)
	}
	return doc.toModel(), nil
}

func (s *MongoJournalStore) Delete(ctx context.Context, id, ownerID string) error {
	requireOwner(ownerID)
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}

	err = s.col.FindOneAndDelete(ctx, bson.M{"_id": oid, "owner_id": ownerID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return persistenceError("delete journal entry", err)
	}
	return nil
}

func (s *MongoJournalStore) ListSince(ctx context.Context, ownerID string, since time.Time) ([]models.JournalEntry, error) {
	requireOwner(ownerID)
	filter := bson.M{
		"owner_id":   ownerID,
		"created_at": bson.M{"$gte": since.UTC()},
	}

	docs, err := s.find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	out := make([]models.JournalEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *MongoJournalStore) Count(ctx context.Context, ownerID string) (int64, error) {
	requireOwner(ownerID)
	n, err := s.col.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, persistenceError("count journal entries", err)
	}
	return n, nil
}

func (s *MongoJournalStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]journalDocument, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, persistenceError("find journal entries", err)
	}
	defer cursor.Close(ctx)

	var docs []journalDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, persistenceError("decode journal entries", err)
	}
	return docs, nil
}
