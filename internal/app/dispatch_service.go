// internal/app/dispatch_service.go
package app

import (
	"context"

	"mental_screening_service/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

// Dispatcher defines the operation of pushing one alert text to a set of
// configured channels, collecting per-channel success or failure.
type Dispatcher interface {
	Dispatch(ctx context.Context, text string, channels []notification.Channel) notification.Result
}

// DispatchConfig holds the dispatcher's construction-time configuration.
// It is injected explicitly so tests can exercise the disabled path without
// touching process environment.
type DispatchConfig struct {
	// Enabled gates all delivery. When false every channel is recorded as a
	// successful no-op with Disabled set, which keeps dispatch idempotent
	// for environments where alerting is switched off.
	Enabled bool
}

// DispatchService attempts every configured channel independently: a failure
// on one channel never aborts its siblings, and the returned outcomes always
// match the input channel order.
type DispatchService struct {
	cfg    DispatchConfig
	logger *logrus.Logger
}

func NewDispatchService(cfg DispatchConfig, logger *logrus.Logger) *DispatchService {
	return &DispatchService{cfg: cfg, logger: logger}
}

func (s *DispatchService) Dispatch(ctx context.Context, text string, channels []notification.Channel) notification.Result {
	result := notification.Result{
		AllSucceeded: true,
		Outcomes:     make([]notification.Outcome, len(channels)),
	}

	for i, ch := range channels {
		outcome := notification.Outcome{Channel: ch.Label}

		switch {
		case !s.cfg.Enabled:
			s.logger.WithField("channel", ch.Label).Info("Notification dispatch disabled by configuration, skipping delivery")
			outcome.Success = true
			outcome.Disabled = true
		case ch.Pusher == nil:
			outcome.Error = (&notification.MissingConfigError{What: "pusher"}).Error()
		case ch.Destination == "":
			outcome.Error = (&notification.MissingConfigError{What: "destination"}).Error()
		default:
			if err := ch.Pusher.Configured(); err != nil {
				outcome.Error = err.Error()
				break
			}
			if err := ch.Pusher.Push(ctx, ch.Destination, text); err != nil {
				s.logger.WithField("channel", ch.Label).WithError(err).Error("Alert delivery failed")
				outcome.Error = err.Error()
				break
			}
			s.logger.WithField("channel", ch.Label).Info("Alert delivered")
			outcome.Success = true
		}

		if !outcome.Success {
			result.AllSucceeded = false
		}
		result.Outcomes[i] = outcome
	}

	return result
}
