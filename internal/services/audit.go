package services

import (
	"context"
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/assessment"
	"github.com/Dennisdaviddante/teissi-app/internal/repository"

	"go.uber.org/zap"
)

// Auditor periodically re-derives risk levels for recently written
// assessments and logs any record whose stored level no longer matches the
// scorer's output. The two values are independently writable at the store,
// so drift is possible and worth surfacing early.
type Auditor struct {
	log      *zap.Logger
	interval time.Duration
	window   time.Duration
}

func NewAuditor(log *zap.Logger) *Auditor {
	return &Auditor{
		log:      log,
		interval: time.Hour,
		window:   48 * time.Hour,
	}
}

// Start runs the auditor in a goroutine.
func (s *Auditor) Start() {
	s.log.Info("Starting risk level auditor...")
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			<-ticker.C
			s.runAuditPass()
		}
	}()
}

func (s *Auditor) runAuditPass() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	since := time.Now().Add(-s.window)
	records, err := repository.ListAssessmentsCreatedSince(ctx, since)
	if err != nil {
		s.log.Error("Failed to load assessments for audit", zap.Error(err))
		return
	}

	drifted := 0
	for i := range records {
		if err := assessment.Audit(&records[i]); err != nil {
			drifted++
			s.log.Warn("Stored risk level drifted from computed value",
				zap.String("assessment_id", records[i].ID.String()),
				zap.Error(err),
			)
		}
	}

	s.log.Debug("Risk level audit pass completed",
		zap.Int("checked", len(records)),
		zap.Int("drifted", drifted),
	)
}
