package service

import (
	"context"
	"errors"

	"analytics-service/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrStatsUnavailable is the single failure surfaced to callers when any
// underlying read fails. Partial snapshots are never returned; retry the
// whole invocation.
var ErrStatsUnavailable = errors.New("course statistics could not be loaded")

type QuizStore interface {
	FindByCourse(ctx context.Context, courseID string, filter models.SourceFilter) ([]models.QuizDefinition, error)
}

type RosterStore interface {
	FindStudentsByCourse(ctx context.Context, courseID string) ([]models.RosterEntry, error)
}

type AttemptStore interface {
	FindByQuizIDs(ctx context.Context, quizIDs []string) ([]models.AttemptRecord, error)
}

type CurriculumStore interface {
	FindByCourse(ctx context.Context, courseID string) ([]models.Chapter, error)
}

// StatsService computes class performance snapshots. It holds no state
// between invocations; every call reads fresh and aggregates from scratch.
type StatsService struct {
	Quizzes    QuizStore
	Roster     RosterStore
	Curriculum CurriculumStore
	Attempts   AttemptStore
	Logger     *zap.Logger
}

func NewStatsService(quizzes QuizStore, roster RosterStore, curriculum CurriculumStore, attempts AttemptStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		Quizzes:    quizzes,
		Roster:     roster,
		Curriculum: curriculum,
		Attempts:   attempts,
		Logger:     logger,
	}
}

// FetchStats resolves the course's quizzes, roster and curriculum
// concurrently, pulls the attempt records for the resolved quiz set, and
// reduces everything into one immutable snapshot. An empty quiz set is a
// normal outcome and yields a neutral snapshot.
func (s *StatsService) FetchStats(ctx context.Context, courseID string, filter models.SourceFilter) (*models.StatsSnapshot, error) {
	var (
		quizzes  []models.QuizDefinition
		entries  []models.RosterEntry
		chapters []models.Chapter
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quizzes, err = s.Quizzes.FindByCourse(gctx, courseID, filter)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.Roster.FindStudentsByCourse(gctx, courseID)
		return err
	})
	g.Go(func() error {
		var err error
		chapters, err = s.Curriculum.FindByCourse(gctx, courseID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(courseID, filter, "resolve", err)
		return nil, ErrStatsUnavailable
	}

	roster := make(map[string]models.ClassLabel, len(entries))
	for _, e := range entries {
		if e.Class.Known() {
			roster[e.StudentID] = e.Class
		}
	}

	if len(quizzes) == 0 {
		return buildSnapshot(courseID, filter, nil, roster, chapters, nil), nil
	}

	quizIDs := make([]string, len(quizzes))
	for i, q := range quizzes {
		quizIDs[i] = q.ID
	}
	attempts, err := s.Attempts.FindByQuizIDs(ctx, quizIDs)
	if err != nil {
		s.fail(courseID, filter, "attempts", err)
		return nil, ErrStatsUnavailable
	}

	return buildSnapshot(courseID, filter, quizzes, roster, chapters, attempts), nil
}

func (s *StatsService) fail(courseID string, filter models.SourceFilter, stage string, err error) {
	s.Logger.Error("stats fetch failed",
		zap.String("course_id", courseID),
		zap.String("source", string(filter)),
		zap.String("stage", stage),
		zap.Error(err),
	)
}
