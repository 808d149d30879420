package service

import (
	"sort"

	"analytics-service/internal/models"
	"analytics-service/internal/statistics"
)

// buildSnapshot is the synchronous reduction step: no I/O happens past this
// point. Attempts whose student is not on the roster (or whose quiz is not
// in scope) are dropped here and contribute to nothing, counters included.
func buildSnapshot(courseID string, filter models.SourceFilter, quizzes []models.QuizDefinition, roster map[string]models.ClassLabel, chapters []models.Chapter, attempts []models.AttemptRecord) *models.StatsSnapshot {
	quizByID := make(map[string]models.QuizDefinition, len(quizzes))
	for _, q := range quizzes {
		quizByID[q.ID] = q
	}

	eligible := make([]models.AttemptRecord, 0, len(attempts))
	for _, a := range attempts {
		if _, ok := roster[a.StudentID]; !ok {
			continue
		}
		if _, ok := quizByID[a.QuizID]; !ok {
			continue
		}
		eligible = append(eligible, a)
	}

	var professorScores []float64
	students := make(map[string]struct{})
	for _, a := range eligible {
		students[a.StudentID] = struct{}{}
		if quizByID[a.QuizID].Source == models.SourceProfessor {
			professorScores = append(professorScores, a.Score)
		}
	}

	return &models.StatsSnapshot{
		CourseID:      courseID,
		Source:        filter,
		Classes:       classStats(eligible, roster),
		WeeklyTrend:   weeklyTrend(eligible, roster),
		Chapters:      curriculumStats(eligible, quizByID, chapters),
		AIDifficulty:  difficultyStats(eligible, quizByID),
		ProfessorMean: statistics.Mean(professorScores),
		TotalStudents: len(students),
		TotalAttempts: len(eligible),
	}
}

// classStats summarizes per-student average scores for each of the four
// class groups. Every label appears even with no qualifying students.
func classStats(attempts []models.AttemptRecord, roster map[string]models.ClassLabel) []models.ClassStats {
	byClass := make(map[models.ClassLabel]map[string][]float64)
	for _, a := range attempts {
		label := roster[a.StudentID]
		if byClass[label] == nil {
			byClass[label] = make(map[string][]float64)
		}
		byClass[label][a.StudentID] = append(byClass[label][a.StudentID], a.Score)
	}

	out := make([]models.ClassStats, 0, len(models.ClassLabels))
	for _, label := range models.ClassLabels {
		values := studentAverages(byClass[label])
		out = append(out, models.ClassStats{
			Class:        label,
			StudentCount: len(values),
			Stats:        models.NewStatGroup(values),
		})
	}
	return out
}

// weeklyTrend buckets per-student averages by ISO week and class. Only weeks
// observed in the data appear; missing weeks are not zero-filled.
func weeklyTrend(attempts []models.AttemptRecord, roster map[string]models.ClassLabel) []models.WeeklyDataPoint {
	byWeek := make(map[int]map[models.ClassLabel]map[string][]float64)
	for _, a := range attempts {
		week := statistics.ISOWeek(a.SubmittedAt)
		label := roster[a.StudentID]
		if byWeek[week] == nil {
			byWeek[week] = make(map[models.ClassLabel]map[string][]float64)
		}
		if byWeek[week][label] == nil {
			byWeek[week][label] = make(map[string][]float64)
		}
		byWeek[week][label][a.StudentID] = append(byWeek[week][label][a.StudentID], a.Score)
	}

	weeks := make([]int, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	trend := make([]models.WeeklyDataPoint, 0, len(weeks))
	for _, week := range weeks {
		point := models.WeeklyDataPoint{
			Week:    week,
			Classes: make(map[models.ClassLabel]models.ClassStats, len(models.ClassLabels)),
		}
		for _, label := range models.ClassLabels {
			values := studentAverages(byWeek[week][label])
			point.Classes[label] = models.ClassStats{
				Class:        label,
				StudentCount: len(values),
				Stats:        models.NewStatGroup(values),
			}
		}
		trend = append(trend, point)
	}
	return trend
}

// resolveCurriculumKey decides which curriculum bucket a (sub-)item belongs
// to. The item's own tagging wins over the parent question's; within each,
// subsection wins over chapter. Untagged items resolve to nothing.
func resolveCurriculumKey(item, parent models.QuestionRef) (string, bool) {
	switch {
	case item.SubsectionID != "":
		return item.SubsectionID, true
	case item.ChapterID != "":
		return item.ChapterID, true
	case parent.SubsectionID != "":
		return parent.SubsectionID, true
	case parent.ChapterID != "":
		return parent.ChapterID, true
	}
	return "", false
}

// curriculumStats performs the chapter/subsection rollup. Each scored
// (sub-)item contributes a 100/0 mark to its resolved key; marks average per
// student per key; a chapter with subsections is summarized over the union
// of its subsections' per-student scalars rather than resampled from raw
// attempts.
func curriculumStats(attempts []models.AttemptRecord, quizByID map[string]models.QuizDefinition, chapters []models.Chapter) []models.ChapterStats {
	byKey := make(map[string]map[string][]float64)
	for _, a := range attempts {
		quiz := quizByID[a.QuizID]
		for _, question := range quiz.Questions {
			items := question.SubQuestions
			if len(items) == 0 {
				items = []models.QuestionRef{question}
			}
			for _, item := range items {
				key, ok := resolveCurriculumKey(item, question)
				if !ok {
					continue
				}
				outcome, scored := a.Outcomes[item.ID]
				if !scored {
					continue
				}
				mark := 0.0
				if outcome.IsCorrect {
					mark = 100
				}
				if byKey[key] == nil {
					byKey[key] = make(map[string][]float64)
				}
				byKey[key][a.StudentID] = append(byKey[key][a.StudentID], mark)
			}
		}
	}

	out := make([]models.ChapterStats, 0, len(chapters))
	for _, ch := range chapters {
		cs := models.ChapterStats{
			ChapterID:   ch.ID,
			Title:       ch.Title,
			Subsections: make([]models.SubsectionStats, 0, len(ch.Subsections)),
		}
		if len(ch.Subsections) > 0 {
			var union []float64
			chapterStudents := make(map[string]struct{})
			for _, sub := range ch.Subsections {
				values := studentAverages(byKey[sub.ID])
				cs.Subsections = append(cs.Subsections, models.SubsectionStats{
					SubsectionID: sub.ID,
					Title:        sub.Title,
					StudentCount: len(values),
					Stats:        models.NewStatGroup(values),
				})
				union = append(union, values...)
				for studentID := range byKey[sub.ID] {
					chapterStudents[studentID] = struct{}{}
				}
			}
			cs.StudentCount = len(chapterStudents)
			cs.Stats = models.NewStatGroup(union)
		} else {
			values := studentAverages(byKey[ch.ID])
			cs.StudentCount = len(values)
			cs.Stats = models.NewStatGroup(values)
		}
		out = append(out, cs)
	}
	return out
}

// difficultyStats buckets raw attempt scores of AI-generated quizzes into
// the three fixed tiers. Every attempt counts here, not per-student averages.
func difficultyStats(attempts []models.AttemptRecord, quizByID map[string]models.QuizDefinition) []models.AIDifficultyStats {
	byTier := make(map[models.Difficulty][]float64)
	for _, a := range attempts {
		quiz := quizByID[a.QuizID]
		if quiz.Source != models.SourceAIGenerated {
			continue
		}
		tier := quiz.Difficulty
		if tier == "" {
			tier = models.DifficultyNormal
		}
		byTier[tier] = append(byTier[tier], a.Score)
	}

	out := make([]models.AIDifficultyStats, 0, len(models.Difficulties))
	for _, tier := range models.Difficulties {
		values := byTier[tier]
		out = append(out, models.AIDifficultyStats{
			Difficulty: tier,
			Mean:       statistics.Mean(values),
			StdDev:     statistics.StdDev(values),
			Count:      len(values),
		})
	}
	return out
}

// studentAverages collapses per-student score lists into one scalar per
// student, ordered by student id so repeated runs reduce in the same order.
func studentAverages(byStudent map[string][]float64) []float64 {
	ids := make([]string, 0, len(byStudent))
	for id := range byStudent {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	values := make([]float64, 0, len(ids))
	for _, id := range ids {
		values = append(values, statistics.Mean(byStudent[id]))
	}
	return values
}
