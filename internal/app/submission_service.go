// internal/app/submission_service.go
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mental_screening_service/internal/domain/notification"
	"mental_screening_service/internal/domain/screening"

	"github.com/sirupsen/logrus"
)

// dispatchTimeout bounds a single alert fan-out. Dispatch runs on its own
// context so an upstream request timeout cannot drop a warranted alert.
const dispatchTimeout = 30 * time.Second

// SubmissionConfig holds the orchestrator's construction-time configuration.
type SubmissionConfig struct {
	// NotifyMinLevel is the lowest risk level that triggers an alert.
	NotifyMinLevel screening.RiskLevel
}

// SubmissionResult describes exactly which steps of a submission succeeded.
// Persistence and notification are independent side effects; one failing
// never swallows the other.
type SubmissionResult struct {
	Record       *screening.Record
	Assessment   *screening.RiskAssessment
	Persisted    bool
	PersistErr   error
	Notified     bool
	Notification *notification.Result
}

// PartialFailure reports whether any attempted side effect failed.
func (r *SubmissionResult) PartialFailure() bool {
	if r.PersistErr != nil {
		return true
	}
	return r.Notified && r.Notification != nil && !r.Notification.AllSucceeded
}

// SubmissionService composes classification, persistence and notification
// into the single "submit a screening" operation.
type SubmissionService struct {
	repo       screening.Repository
	dispatcher Dispatcher
	channels   []notification.Channel
	cfg        SubmissionConfig
	logger     *logrus.Logger
}

func NewSubmissionService(
	repo screening.Repository,
	dispatcher Dispatcher,
	channels []notification.Channel,
	cfg SubmissionConfig,
	logger *logrus.Logger,
) *SubmissionService {
	return &SubmissionService{
		repo:       repo,
		dispatcher: dispatcher,
		channels:   channels,
		cfg:        cfg,
		logger:     logger,
	}
}

// Submission is one completed questionnaire plus optional subject metadata.
type Submission struct {
	Subject     screening.Subject
	StressScore *int
	TwoQ        screening.TwoQAnswers
	EightQ      []int
}

// Submit classifies the answers, persists the record and, when the risk level
// meets the configured threshold, dispatches an alert to every channel.
// Classification errors abort the whole submission; storage and channel
// failures are captured on the result, never propagated.
func (s *SubmissionService) Submit(ctx context.Context, sub Submission) (*SubmissionResult, error) {
	if err := screening.ValidateAnswers(sub.StressScore, sub.TwoQ, sub.EightQ); err != nil {
		return nil, err
	}

	assessment, err := screening.Classify(sub.StressScore, sub.TwoQ, sub.EightQ)
	if err != nil {
		return nil, err
	}

	record := screening.BuildRecord(sub.Subject, assessment)
	result := &SubmissionResult{Record: record, Assessment: assessment}

	if err := s.repo.Insert(ctx, record); err != nil {
		s.logger.WithError(err).Error("Failed to persist screening record")
		result.PersistErr = fmt.Errorf("storing screening record: %w", err)
	} else {
		result.Persisted = true
		s.logger.WithFields(logrus.Fields{
			"record_id":  record.ID,
			"risk_level": record.RiskLevel,
		}).Info("Screening record persisted")
	}

	if s.cfg.NotifyMinLevel.Valid() && assessment.Level.AtLeast(s.cfg.NotifyMinLevel) {
		// Detached from the caller's context: once a screening warrants an
		// alert, an unrelated upstream timeout must not cancel it.
		dispatchCtx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		dispatchResult := s.dispatcher.Dispatch(dispatchCtx, AlertText(record), s.channels)
		result.Notified = true
		result.Notification = &dispatchResult
	}

	return result, nil
}

// AlertText renders the alert message for a screening record.
func AlertText(record *screening.Record) string {
	name := "-"
	if record.FullName.Valid && record.FullName.String != "" {
		name = record.FullName.String
	}
	return fmt.Sprintf("Suicide risk alert: level %s\nName: %s\n8Q total: %d",
		strings.ToUpper(string(record.RiskLevel)), name, record.Q8Total)
}
