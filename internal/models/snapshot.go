package models

import "analytics-service/internal/statistics"

// StatGroup is the computed summary of one collection of per-student scalars.
type StatGroup struct {
	Count     int                `json:"count"`
	Mean      float64            `json:"mean"`
	StdDev    float64            `json:"std_dev"`
	CV        float64            `json:"cv"`
	CILow     float64            `json:"ci_low"`
	CIHigh    float64            `json:"ci_high"`
	Stability float64            `json:"stability"`
	Quartiles statistics.Summary `json:"quartiles"`
}

// NewStatGroup summarizes a scalar list. Empty input yields the neutral
// all-zero group, never an error.
func NewStatGroup(values []float64) StatGroup {
	low, high := statistics.CI95(values)
	return StatGroup{
		Count:     len(values),
		Mean:      statistics.Mean(values),
		StdDev:    statistics.StdDev(values),
		CV:        statistics.CV(values),
		CILow:     low,
		CIHigh:    high,
		Stability: statistics.StabilityIndex(values),
		Quartiles: statistics.Quartiles(values),
	}
}

// ClassStats summarizes one class group's per-student average scores.
type ClassStats struct {
	Class        ClassLabel `json:"class"`
	StudentCount int        `json:"student_count"`
	Stats        StatGroup  `json:"stats"`
}

// WeeklyDataPoint carries all four classes' stats for one observed ISO week.
type WeeklyDataPoint struct {
	Week    int                       `json:"week"`
	Classes map[ClassLabel]ClassStats `json:"classes"`
}

// SubsectionStats summarizes per-student correctness within one subsection.
type SubsectionStats struct {
	SubsectionID string    `json:"subsection_id"`
	Title        string    `json:"title"`
	StudentCount int       `json:"student_count"`
	Stats        StatGroup `json:"stats"`
}

// ChapterStats summarizes one chapter. When the chapter has subsections its
// stats are rolled up from them; otherwise they come from attempts tagged
// directly at the chapter.
type ChapterStats struct {
	ChapterID    string            `json:"chapter_id"`
	Title        string            `json:"title"`
	StudentCount int               `json:"student_count"`
	Stats        StatGroup         `json:"stats"`
	Subsections  []SubsectionStats `json:"subsections"`
}

// AIDifficultyStats summarizes raw attempt scores of AI-generated quizzes
// in one difficulty tier.
type AIDifficultyStats struct {
	Difficulty Difficulty `json:"difficulty"`
	Mean       float64    `json:"mean"`
	StdDev     float64    `json:"std_dev"`
	Count      int        `json:"count"`
}

// StatsSnapshot is the immutable result of one statistics run. It is built
// fresh per invocation and never persisted.
type StatsSnapshot struct {
	CourseID      string              `json:"course_id"`
	Source        SourceFilter        `json:"source"`
	Classes       []ClassStats        `json:"classes"`
	WeeklyTrend   []WeeklyDataPoint   `json:"weekly_trend"`
	Chapters      []ChapterStats      `json:"chapters"`
	AIDifficulty  []AIDifficultyStats `json:"ai_difficulty"`
	ProfessorMean float64             `json:"professor_mean"`
	TotalStudents int                 `json:"total_students"`
	TotalAttempts int                 `json:"total_attempts"`
}
