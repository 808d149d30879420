package repository

import (
	"context"

	"analytics-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection("quizzes")}
}

// FindByCourse returns the course's quiz definitions, restricted by source
// unless the filter is "all".
func (r *QuizRepository) FindByCourse(ctx context.Context, courseID string, filter models.SourceFilter) ([]models.QuizDefinition, error) {
	query := bson.M{"course_id": courseID}
	if filter != models.FilterAll {
		query["source"] = string(filter)
	}
	cur, err := r.Col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var quizzes []models.QuizDefinition
	for cur.Next(ctx) {
		var q models.QuizDefinition
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, cur.Err()
}
