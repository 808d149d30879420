package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"analytics-service/internal/models"
	"analytics-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeQuizStore struct {
	quizzes []models.QuizDefinition
	err     error
}

func (f *fakeQuizStore) FindByCourse(ctx context.Context, courseID string, filter models.SourceFilter) ([]models.QuizDefinition, error) {
	return f.quizzes, f.err
}

type fakeRosterStore struct {
	entries []models.RosterEntry
}

func (f *fakeRosterStore) FindStudentsByCourse(ctx context.Context, courseID string) ([]models.RosterEntry, error) {
	return f.entries, nil
}

type fakeCurriculumStore struct{}

func (f *fakeCurriculumStore) FindByCourse(ctx context.Context, courseID string) ([]models.Chapter, error) {
	return nil, nil
}

type fakeAttemptStore struct {
	records []models.AttemptRecord
}

func (f *fakeAttemptStore) FindByQuizIDs(ctx context.Context, quizIDs []string) ([]models.AttemptRecord, error) {
	return f.records, nil
}

type recordingPublisher struct {
	events []string
}

func (r *recordingPublisher) Publish(eventType string, payload interface{}) error {
	r.events = append(r.events, eventType)
	return nil
}

func newStatsRequest(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = gin.Params{{Key: "courseId", Value: "c1"}}
	return c, w
}

func TestGetCourseStatsPublishesFetched(t *testing.T) {
	quizzes := &fakeQuizStore{quizzes: []models.QuizDefinition{{ID: "q1", CourseID: "c1", Source: models.SourceProfessor}}}
	roster := &fakeRosterStore{entries: []models.RosterEntry{{StudentID: "s1", CourseID: "c1", Role: "student", Class: models.ClassA}}}
	svc := service.NewStatsService(quizzes, roster, &fakeCurriculumStore{}, &fakeAttemptStore{}, zap.NewNop())

	publisher := &recordingPublisher{}
	handler := NewStatsHandler(svc)
	handler.Events = publisher

	c, w := newStatsRequest(t, "/public/quizz/stats/course/c1?source=professor")
	handler.GetCourseStats(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if len(publisher.events) != 1 || publisher.events[0] != "stats.fetched" {
		t.Errorf("expected single stats.fetched event, got %v", publisher.events)
	}
}

func TestGetCourseStatsPublishesFailed(t *testing.T) {
	quizzes := &fakeQuizStore{err: errors.New("connection reset")}
	svc := service.NewStatsService(quizzes, &fakeRosterStore{}, &fakeCurriculumStore{}, &fakeAttemptStore{}, zap.NewNop())

	publisher := &recordingPublisher{}
	handler := NewStatsHandler(svc)
	handler.Events = publisher

	c, w := newStatsRequest(t, "/public/quizz/stats/course/c1?source=professor")
	handler.GetCourseStats(c)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if len(publisher.events) != 1 || publisher.events[0] != "stats.failed" {
		t.Errorf("expected single stats.failed event, got %v", publisher.events)
	}
}

func TestGetCourseStatsRejectsUnknownFilter(t *testing.T) {
	svc := service.NewStatsService(&fakeQuizStore{}, &fakeRosterStore{}, &fakeCurriculumStore{}, &fakeAttemptStore{}, zap.NewNop())

	publisher := &recordingPublisher{}
	handler := NewStatsHandler(svc)
	handler.Events = publisher

	c, w := newStatsRequest(t, "/public/quizz/stats/course/c1?source=bogus")
	handler.GetCourseStats(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	// A rejected request never reaches the engine, so no event is emitted.
	if len(publisher.events) != 0 {
		t.Errorf("expected no events for a rejected request, got %v", publisher.events)
	}
}
