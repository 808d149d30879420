package repository

import (
	"context"

	"analytics-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CurriculumRepository struct {
	Col *mongo.Collection
}

func NewCurriculumRepository(db *mongo.Database) *CurriculumRepository {
	return &CurriculumRepository{Col: db.Collection("curriculum")}
}

// FindByCourse returns the ordered chapter hierarchy for a course. A course
// without a curriculum document yields an empty hierarchy, not an error.
func (r *CurriculumRepository) FindByCourse(ctx context.Context, courseID string) ([]models.Chapter, error) {
	var doc struct {
		Chapters []models.Chapter `bson:"chapters"`
	}
	err := r.Col.FindOne(ctx, bson.M{"course_id": courseID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Chapters, nil
}
