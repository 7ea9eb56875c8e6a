package scheduler

import (
	"context"
	"time"

	"mental_screening_service/internal/app"
	"mental_screening_service/internal/domain/notification"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SummaryScheduler pushes a daily screening digest through the notification
// channels.
type SummaryScheduler struct {
	cronEngine *cron.Cron
	reports    *app.ReportService
	dispatcher app.Dispatcher
	channels   []notification.Channel
	logger     *logrus.Logger
	cronSpec   string
}

func NewSummaryScheduler(
	reports *app.ReportService,
	dispatcher app.Dispatcher,
	channels []notification.Channel,
	logger *logrus.Logger,
	cronSpec string, // e.g. "0 8 * * *" (08:00 daily)
) *SummaryScheduler {
	return &SummaryScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		reports:    reports,
		dispatcher: dispatcher,
		channels:   channels,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *SummaryScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily screening summary")
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		digest, err := s.reports.DailyDigest(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Failed to build daily screening digest")
			return
		}
		result := s.dispatcher.Dispatch(ctx, digest, s.channels)
		if !result.AllSucceeded {
			s.logger.WithField("outcomes", result.Outcomes).Warn("Daily digest delivery partially failed")
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Summary scheduler started")
	return nil
}

func (s *SummaryScheduler) Stop() {
	s.logger.Info("Stopping summary scheduler...")
	ctx := s.cronEngine.Stop() // Waits for any running job to finish.
	<-ctx.Done()
	s.logger.Info("Summary scheduler stopped")
}
