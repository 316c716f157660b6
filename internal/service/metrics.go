package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/smkwon/lifeone/internal/models"
)

var (
	recordsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifeone_records_created_total",
		Help: "Records committed to the store, by type.",
	}, []string{"type"})

	conflictsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifeone_conflicts_detected_total",
		Help: "Extraction batches suspended on a duplicate/conflict decision.",
	})

	notificationsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifeone_notifications_emitted_total",
		Help: "Notifications produced by the daily and budget checks.",
	})
)

func countBatch(batch models.ExtractionBatch) {
	if n := len(batch.Contacts); n > 0 {
		recordsCreated.WithLabelValues(string(models.TypeContact)).Add(float64(n))
	}
	if n := len(batch.Schedule); n > 0 {
		recordsCreated.WithLabelValues(string(models.TypeSchedule)).Add(float64(n))
	}
	if n := len(batch.Expenses); n > 0 {
		recordsCreated.WithLabelValues(string(models.TypeExpense)).Add(float64(n))
	}
	if n := len(batch.Diary); n > 0 {
		recordsCreated.WithLabelValues(string(models.TypeDiary)).Add(float64(n))
	}
}
