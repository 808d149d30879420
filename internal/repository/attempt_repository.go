package repository

import (
	"context"

	"analytics-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// maxInKeys is the backend's cap on discrete values per $in query. Revise
// here if the store contract changes; callers never see the limit.
const maxInKeys = 30

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("attempts")}
}

// FindByQuizIDs returns every attempt for the given quiz set. The id list is
// partitioned into chunks of maxInKeys and the chunk queries run
// concurrently; results merge only after all of them settle, so one failed
// chunk fails the whole read.
func (r *AttemptRepository) FindByQuizIDs(ctx context.Context, quizIDs []string) ([]models.AttemptRecord, error) {
	return fetchChunked(ctx, quizIDs, r.findChunk)
}

// fetchChunked fans one fetch per chunk out concurrently and merges the
// results in chunk order once all of them settle. Each goroutine writes only
// its own slot of parts.
func fetchChunked(ctx context.Context, quizIDs []string, fetch func(context.Context, []string) ([]models.AttemptRecord, error)) ([]models.AttemptRecord, error) {
	chunks := chunkIDs(quizIDs, maxInKeys)
	parts := make([][]models.AttemptRecord, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			records, err := fetch(gctx, chunk)
			if err != nil {
				return err
			}
			parts[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []models.AttemptRecord
	for _, part := range parts {
		merged = append(merged, part...)
	}
	return merged, nil
}

func (r *AttemptRepository) findChunk(ctx context.Context, quizIDs []string) ([]models.AttemptRecord, error) {
	cur, err := r.Col.Find(ctx, bson.M{"quiz_id": bson.M{"$in": quizIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.AttemptRecord
	for cur.Next(ctx) {
		var rec models.AttemptRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, cur.Err()
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
