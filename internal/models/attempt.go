package models

import "time"

// QuestionOutcome is the graded result of one question within an attempt.
type QuestionOutcome struct {
	IsCorrect bool `bson:"is_correct" json:"is_correct"`
}

// AttemptRecord is one student's completed submission of one quiz.
type AttemptRecord struct {
	ID           string                     `bson:"_id,omitempty" json:"id"`
	StudentID    string                     `bson:"student_id" json:"student_id"`
	QuizID       string                     `bson:"quiz_id" json:"quiz_id"`
	Score        float64                    `bson:"score" json:"score"`
	CorrectCount int                        `bson:"correct_count" json:"correct_count"`
	TotalCount   int                        `bson:"total_count" json:"total_count"`
	Outcomes     map[string]QuestionOutcome `bson:"outcomes" json:"outcomes"`
	SubmittedAt  time.Time                  `bson:"submitted_at" json:"submitted_at"`
}
