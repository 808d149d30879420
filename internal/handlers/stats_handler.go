package handlers

import (
	"context"
	"net/http"
	"time"

	"analytics-service/internal/models"
	"analytics-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statsRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_requests_total",
			Help: "Total number of course statistics requests",
		},
		[]string{"status", "source"},
	)

	statsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stats_request_duration_seconds",
			Help:    "Time spent computing course statistics",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
)

// EventPublisher emits one event per completed statistics invocation.
type EventPublisher interface {
	Publish(eventType string, payload interface{}) error
}

type StatsHandler struct {
	Service *service.StatsService
	// Events is optional; when unset no events are published.
	Events EventPublisher
}

func NewStatsHandler(s *service.StatsService) *StatsHandler {
	return &StatsHandler{Service: s}
}

// GetCourseStats serves one statistics snapshot for a course. The optional
// "source" query narrows which quizzes count; it defaults to
// instructor-authored ones.
func (h *StatsHandler) GetCourseStats(c *gin.Context) {
	courseID := c.Param("courseId")
	filter, ok := models.ParseSourceFilter(c.DefaultQuery("source", string(models.FilterProfessor)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid source filter"})
		return
	}

	start := time.Now()
	snapshot, err := h.Service.FetchStats(context.Background(), courseID, filter)
	status := "success"
	if err != nil {
		status = "failure"
	}
	statsRequests.WithLabelValues(status, string(filter)).Inc()
	statsDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())

	if err != nil {
		h.publish("stats.failed", courseID, filter)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load course statistics"})
		return
	}
	h.publish("stats.fetched", courseID, filter)
	c.JSON(http.StatusOK, snapshot)
}

func (h *StatsHandler) publish(eventType, courseID string, filter models.SourceFilter) {
	if h.Events == nil {
		return
	}
	h.Events.Publish(eventType, gin.H{
		"courseId": courseID,
		"source":   string(filter),
	})
}
