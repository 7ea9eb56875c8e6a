// internal/app/report_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"mental_screening_service/internal/domain/screening"
	"mental_screening_service/internal/domain/severity"

	"github.com/sirupsen/logrus"
)

const defaultHistoryLimit = 100

// DashboardSummary aggregates screenings over a time window.
type DashboardSummary struct {
	Total              int                     `json:"total"`
	HighStress         int                     `json:"high_stress"`
	SuicideRisk        int                     `json:"suicide_risk"`
	SevereDepression   int                     `json:"severe_depression"`
	StressDistribution map[int]int             `json:"stress_distribution"`
	SeverityBreakdown  map[severity.Bucket]int `json:"severity_breakdown"`
	WindowDays         int                     `json:"window_days"`
}

// ReportService serves the history view and dashboard aggregates.
type ReportService struct {
	repo   screening.Repository
	logger *logrus.Logger
}

func NewReportService(repo screening.Repository, logger *logrus.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

// Detail returns one screening record by ID together with its severity band
// on the fine-grained scale, which the detail view renders alongside the raw
// answers.
func (s *ReportService) Detail(ctx context.Context, id int64) (*screening.Record, severity.Bucket, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, severity.BucketUnknown, err
	}
	return rec, severity.NormalizeFine(severityRow(rec)), nil
}

// History returns the most recent screenings, newest first.
func (s *ReportService) History(ctx context.Context, limit int) ([]*screening.Record, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	records, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing screening history: %w", err)
	}
	return records, nil
}

// Summary aggregates screenings created within the last windowDays days.
func (s *ReportService) Summary(ctx context.Context, windowDays int) (*DashboardSummary, error) {
	if windowDays <= 0 {
		windowDays = 7
	}
	since := time.Now().AddDate(0, 0, -windowDays)
	records, err := s.repo.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("listing screenings since %s: %w", since.Format("2006-01-02"), err)
	}

	summary := &DashboardSummary{
		StressDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		SeverityBreakdown:  map[severity.Bucket]int{},
		WindowDays:         windowDays,
	}

	for _, rec := range records {
		summary.Total++
		if rec.StressScore.Valid {
			score := int(rec.StressScore.Int64)
			if _, ok := summary.StressDistribution[score]; ok {
				summary.StressDistribution[score]++
			}
			if score >= 4 {
				summary.HighStress++
			}
		}
		if rec.Q3 == 1 {
			summary.SuicideRisk++
		}
		bucket := severity.Normalize(severityRow(rec))
		summary.SeverityBreakdown[bucket]++
		if bucket == severity.BucketSevere {
			summary.SevereDepression++
		}
	}

	return summary, nil
}

// severityRow adapts a stored record to the normalizer's row shape. This is
// the one place legacy severity fields are reconciled with the canonical
// schema; current records carry risk_level only.
func severityRow(rec *screening.Record) severity.Row {
	return severity.Row{
		"risk_level": string(rec.RiskLevel),
	}
}

// DailyDigest renders a one-message summary of the last day's screenings,
// suitable for pushing through the notification channels.
func (s *ReportService) DailyDigest(ctx context.Context) (string, error) {
	summary, err := s.Summary(ctx, 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Daily screening summary\nScreenings: %d\nHigh stress (>=4): %d\nSuicide risk (2Q item 3): %d\nSevere depression: %d",
		summary.Total, summary.HighStress, summary.SuicideRisk, summary.SevereDepression,
	), nil
}
