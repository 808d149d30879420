package models

import "time"

// QuizSource tags who authored a quiz.
type QuizSource string

const (
	SourceProfessor   QuizSource = "professor"
	SourceCustom      QuizSource = "custom"
	SourceAIGenerated QuizSource = "ai-generated"
)

// SourceFilter restricts which quizzes participate in a statistics run.
type SourceFilter string

const (
	FilterAll         SourceFilter = "all"
	FilterProfessor   SourceFilter = "professor"
	FilterCustom      SourceFilter = "custom"
	FilterAIGenerated SourceFilter = "ai-generated"
)

// ParseSourceFilter validates a raw query value against the closed filter set.
func ParseSourceFilter(raw string) (SourceFilter, bool) {
	switch SourceFilter(raw) {
	case FilterAll, FilterProfessor, FilterCustom, FilterAIGenerated:
		return SourceFilter(raw), true
	}
	return "", false
}

// Matches reports whether a quiz with the given source passes the filter.
func (f SourceFilter) Matches(s QuizSource) bool {
	return f == FilterAll || string(f) == string(s)
}

// Difficulty is the tier assigned to AI-generated quizzes.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the fixed tiers in reporting order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// QuestionRef is one question of a quiz, carrying its curriculum tagging.
// A combined question holds its parts in SubQuestions; each part's own
// tagging takes precedence over the parent's, which acts only as a fallback.
type QuestionRef struct {
	ID           string        `bson:"id" json:"id"`
	ChapterID    string        `bson:"chapter_id,omitempty" json:"chapter_id,omitempty"`
	SubsectionID string        `bson:"subsection_id,omitempty" json:"subsection_id,omitempty"`
	SubQuestions []QuestionRef `bson:"sub_questions,omitempty" json:"sub_questions,omitempty"`
}

type QuizDefinition struct {
	ID         string        `bson:"_id,omitempty" json:"id"`
	CourseID   string        `bson:"course_id" json:"course_id"`
	Title      string        `bson:"title" json:"title"`
	Source     QuizSource    `bson:"source" json:"source"`
	Difficulty Difficulty    `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Questions  []QuestionRef `bson:"questions" json:"questions"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
}
