package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"analytics-service/internal/models"

	"go.uber.org/zap"
)

type fakeQuizStore struct {
	quizzes []models.QuizDefinition
	err     error
}

func (f *fakeQuizStore) FindByCourse(ctx context.Context, courseID string, filter models.SourceFilter) ([]models.QuizDefinition, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matched []models.QuizDefinition
	for _, q := range f.quizzes {
		if q.CourseID == courseID && filter.Matches(q.Source) {
			matched = append(matched, q)
		}
	}
	return matched, nil
}

type fakeRosterStore struct {
	entries []models.RosterEntry
	err     error
}

func (f *fakeRosterStore) FindStudentsByCourse(ctx context.Context, courseID string) ([]models.RosterEntry, error) {
	return f.entries, f.err
}

type fakeCurriculumStore struct {
	chapters []models.Chapter
	err      error
}

func (f *fakeCurriculumStore) FindByCourse(ctx context.Context, courseID string) ([]models.Chapter, error) {
	return f.chapters, f.err
}

type fakeAttemptStore struct {
	records []models.AttemptRecord
	err     error
	calls   [][]string
}

func (f *fakeAttemptStore) FindByQuizIDs(ctx context.Context, quizIDs []string) ([]models.AttemptRecord, error) {
	f.calls = append(f.calls, quizIDs)
	return f.records, f.err
}

func newTestService(quizzes *fakeQuizStore, roster *fakeRosterStore, curriculum *fakeCurriculumStore, attempts *fakeAttemptStore) *StatsService {
	return NewStatsService(quizzes, roster, curriculum, attempts, zap.NewNop())
}

func testEntries() []models.RosterEntry {
	return []models.RosterEntry{
		{StudentID: "s1", CourseID: "c1", Role: "student", Class: models.ClassA},
		{StudentID: "s2", CourseID: "c1", Role: "student", Class: models.ClassA},
		{StudentID: "s3", CourseID: "c1", Role: "student", Class: models.ClassB},
		{StudentID: "s4", CourseID: "c1", Role: "student", Class: "unassigned"},
	}
}

func TestFetchStatsEndToEnd(t *testing.T) {
	quizzes := &fakeQuizStore{quizzes: []models.QuizDefinition{
		{ID: "q1", CourseID: "c1", Source: models.SourceProfessor},
		{ID: "q2", CourseID: "c1", Source: models.SourceCustom},
	}}
	attempts := &fakeAttemptStore{records: []models.AttemptRecord{
		attempt("s1", "q1", 80, monday),
		attempt("s2", "q1", 60, monday),
		attempt("s3", "q1", 100, monday),
		attempt("s4", "q1", 10, monday), // unassigned class label, excluded
	}}
	svc := newTestService(quizzes, &fakeRosterStore{entries: testEntries()}, &fakeCurriculumStore{}, attempts)

	snap, err := svc.FetchStats(context.Background(), "c1", models.FilterProfessor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.TotalStudents != 3 || snap.TotalAttempts != 3 {
		t.Errorf("expected 3 students and 3 attempts, got %d and %d", snap.TotalStudents, snap.TotalAttempts)
	}
	if !almostEqual(snap.ProfessorMean, 80) {
		t.Errorf("expected professor mean 80, got %f", snap.ProfessorMean)
	}

	// The custom quiz is filtered out before the attempt fetch.
	if len(attempts.calls) != 1 || len(attempts.calls[0]) != 1 || attempts.calls[0][0] != "q1" {
		t.Errorf("expected one attempt fetch for [q1], got %v", attempts.calls)
	}
}

func TestFetchStatsEmptyQuizSet(t *testing.T) {
	chapters := []models.Chapter{{ID: "ch1", Subsections: []models.Subsection{{ID: "sec1"}}}}
	attempts := &fakeAttemptStore{}
	svc := newTestService(
		&fakeQuizStore{}, // nothing matches
		&fakeRosterStore{entries: testEntries()},
		&fakeCurriculumStore{chapters: chapters},
		attempts,
	)

	snap, err := svc.FetchStats(context.Background(), "c1", models.FilterAIGenerated)
	if err != nil {
		t.Fatalf("empty quiz set must not be an error, got: %v", err)
	}
	if len(snap.Classes) != 4 {
		t.Fatalf("expected 4 class entries, got %d", len(snap.Classes))
	}
	for _, cs := range snap.Classes {
		if cs.StudentCount != 0 || cs.Stats.Count != 0 {
			t.Errorf("class %s: expected neutral empty stats, got %+v", cs.Class, cs)
		}
	}
	if len(snap.WeeklyTrend) != 0 {
		t.Errorf("expected empty weekly trend, got %d points", len(snap.WeeklyTrend))
	}
	if len(snap.Chapters) != 1 || snap.Chapters[0].Stats.Count != 0 {
		t.Errorf("expected chapter present with neutral stats, got %+v", snap.Chapters)
	}
	if snap.ProfessorMean != 0 || snap.TotalStudents != 0 || snap.TotalAttempts != 0 {
		t.Errorf("expected zeroed summary, got %+v", snap)
	}
	if len(attempts.calls) != 0 {
		t.Errorf("attempt store must not be queried when no quizzes match, got %d calls", len(attempts.calls))
	}
}

func TestFetchStatsStoreFailures(t *testing.T) {
	boom := errors.New("connection reset")
	testCases := []struct {
		name  string
		build func() *StatsService
	}{
		{"quiz store", func() *StatsService {
			return newTestService(&fakeQuizStore{err: boom}, &fakeRosterStore{entries: testEntries()}, &fakeCurriculumStore{}, &fakeAttemptStore{})
		}},
		{"roster store", func() *StatsService {
			return newTestService(&fakeQuizStore{}, &fakeRosterStore{err: boom}, &fakeCurriculumStore{}, &fakeAttemptStore{})
		}},
		{"curriculum store", func() *StatsService {
			return newTestService(&fakeQuizStore{}, &fakeRosterStore{entries: testEntries()}, &fakeCurriculumStore{err: boom}, &fakeAttemptStore{})
		}},
		{"attempt store", func() *StatsService {
			quizzes := &fakeQuizStore{quizzes: []models.QuizDefinition{{ID: "q1", CourseID: "c1", Source: models.SourceProfessor}}}
			return newTestService(quizzes, &fakeRosterStore{entries: testEntries()}, &fakeCurriculumStore{}, &fakeAttemptStore{err: boom})
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := tc.build().FetchStats(context.Background(), "c1", models.FilterProfessor)
			if !errors.Is(err, ErrStatsUnavailable) {
				t.Errorf("expected ErrStatsUnavailable, got %v", err)
			}
			if snap != nil {
				t.Errorf("no partial snapshot may be returned on failure, got %+v", snap)
			}
		})
	}
}

func TestFetchStatsChunkOrderTransparency(t *testing.T) {
	// 45 quiz ids force two chunked fetches against the real store. The
	// merge order of chunk results must not influence the snapshot.
	var quizzes []models.QuizDefinition
	var records []models.AttemptRecord
	for i := 0; i < 45; i++ {
		id := makeQuizID(i)
		quizzes = append(quizzes, models.QuizDefinition{ID: id, CourseID: "c1", Source: models.SourceProfessor})
		student := "s1"
		if i%2 == 0 {
			student = "s2"
		}
		records = append(records, attempt(student, id, float64(40+i), monday))
	}
	reversed := make([]models.AttemptRecord, len(records))
	for i, rec := range records {
		reversed[len(records)-1-i] = rec
	}

	roster := &fakeRosterStore{entries: testEntries()}
	curriculum := &fakeCurriculumStore{}
	svcA := newTestService(&fakeQuizStore{quizzes: quizzes}, roster, curriculum, &fakeAttemptStore{records: records})
	svcB := newTestService(&fakeQuizStore{quizzes: quizzes}, roster, curriculum, &fakeAttemptStore{records: reversed})

	snapA, err := svcA.FetchStats(context.Background(), "c1", models.FilterProfessor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snapB, err := svcB.FetchStats(context.Background(), "c1", models.FilterProfessor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(snapA, snapB) {
		t.Errorf("record arrival order changed the snapshot:\nA: %+v\nB: %+v", snapA, snapB)
	}
}

func makeQuizID(i int) string {
	return "quiz-" + string(rune('a'+i/26)) + string(rune('a'+i%26))
}
