package repository

import (
	"context"

	"analytics-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type RosterRepository struct {
	Col *mongo.Collection
}

func NewRosterRepository(db *mongo.Database) *RosterRepository {
	return &RosterRepository{Col: db.Collection("enrollments")}
}

// FindStudentsByCourse returns the student roster for a course. Entries with
// an unrecognized class label are returned as-is; the aggregation layer
// decides who participates.
func (r *RosterRepository) FindStudentsByCourse(ctx context.Context, courseID string) ([]models.RosterEntry, error) {
	cur, err := r.Col.Find(ctx, bson.M{"course_id": courseID, "role": "student"})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var entries []models.RosterEntry
	for cur.Next(ctx) {
		var e models.RosterEntry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, cur.Err()
}
