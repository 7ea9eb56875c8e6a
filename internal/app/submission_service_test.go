package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mental_screening_service/internal/domain/notification"
	"mental_screening_service/internal/domain/screening"
	"mental_screening_service/internal/infra/database"
)

// fakeScreeningRepo implements screening.Repository in memory.
type fakeScreeningRepo struct {
	insertErr error
	records   []*screening.Record
	nextID    int64
}

func (f *fakeScreeningRepo) Insert(_ context.Context, rec *screening.Record) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	rec.ID = f.nextID
	rec.CreatedAt = time.Now()
	f.records = append([]*screening.Record{rec}, f.records...)
	return nil
}

func (f *fakeScreeningRepo) GetByID(_ context.Context, id int64) (*screening.Record, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, database.ErrRecordNotFound
}

func (f *fakeScreeningRepo) List(_ context.Context, limit int) ([]*screening.Record, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func (f *fakeScreeningRepo) ListSince(_ context.Context, since time.Time) ([]*screening.Record, error) {
	var out []*screening.Record
	for _, rec := range f.records {
		if !rec.CreatedAt.Before(since) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// fakeDispatcher records dispatch calls and returns a prepared result.
type fakeDispatcher struct {
	calls  int
	texts  []string
	result notification.Result
}

func (f *fakeDispatcher) Dispatch(_ context.Context, text string, channels []notification.Channel) notification.Result {
	f.calls++
	f.texts = append(f.texts, text)
	if f.result.Outcomes == nil {
		outcomes := make([]notification.Outcome, len(channels))
		for i, ch := range channels {
			outcomes[i] = notification.Outcome{Channel: ch.Label, Success: true}
		}
		return notification.Result{AllSucceeded: true, Outcomes: outcomes}
	}
	return f.result
}

func intPtr(v int) *int { return &v }

func newSubmissionService(repo *fakeScreeningRepo, dispatcher *fakeDispatcher, minLevel screening.RiskLevel) *SubmissionService {
	channels := []notification.Channel{{Label: "line_group", Destination: "G1", Pusher: &fakePusher{}}}
	return NewSubmissionService(repo, dispatcher, channels, SubmissionConfig{NotifyMinLevel: minLevel}, testLogger())
}

func TestSubmitFullSuccessWithAlert(t *testing.T) {
	repo := &fakeScreeningRepo{}
	dispatcher := &fakeDispatcher{}
	svc := newSubmissionService(repo, dispatcher, screening.RiskMedium)

	result, err := svc.Submit(context.Background(), Submission{
		Subject: screening.Subject{FullName: "Somsri P."},
		TwoQ:    screening.TwoQAnswers{Q3: 1},
		EightQ:  []int{1, 1, 0, 0, 0, 0, 0, 0},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if !result.Persisted || result.PersistErr != nil {
		t.Errorf("persisted=%v persistErr=%v, want true/nil", result.Persisted, result.PersistErr)
	}
	if result.Record.ID == 0 {
		t.Error("record ID should be assigned at persistence")
	}
	if !result.Notified || dispatcher.calls != 1 {
		t.Errorf("medium risk should dispatch exactly once, notified=%v calls=%d", result.Notified, dispatcher.calls)
	}
	if result.PartialFailure() {
		t.Error("full success must not report partial failure")
	}
	wantText := "Suicide risk alert: level MEDIUM\nName: Somsri P.\n8Q total: 2"
	if dispatcher.texts[0] != wantText {
		t.Errorf("alert text = %q, want %q", dispatcher.texts[0], wantText)
	}
}

func TestSubmitBelowThresholdNeverDispatches(t *testing.T) {
	repo := &fakeScreeningRepo{}
	dispatcher := &fakeDispatcher{}
	svc := newSubmissionService(repo, dispatcher, screening.RiskMedium)

	// A low-level assessment: stress-only trigger.
	result, err := svc.Submit(context.Background(), Submission{StressScore: intPtr(5)})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.Assessment.Level != screening.RiskLow {
		t.Fatalf("level = %s, want low", result.Assessment.Level)
	}
	if result.Notified || dispatcher.calls != 0 {
		t.Errorf("low risk must not dispatch, notified=%v calls=%d", result.Notified, dispatcher.calls)
	}
	if result.Notification != nil {
		t.Error("notification aggregate should be absent when no dispatch happened")
	}
}

func TestSubmitThresholdIsConfigurable(t *testing.T) {
	repo := &fakeScreeningRepo{}
	dispatcher := &fakeDispatcher{}
	svc := newSubmissionService(repo, dispatcher, screening.RiskLow)

	_, err := svc.Submit(context.Background(), Submission{StressScore: intPtr(5)})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if dispatcher.calls != 1 {
		t.Errorf("with threshold low, a low assessment should dispatch, calls=%d", dispatcher.calls)
	}
}

func TestSubmitStorageFailureDoesNotBlockAlert(t *testing.T) {
	repo := &fakeScreeningRepo{insertErr: fmt.Errorf("connection refused")}
	dispatcher := &fakeDispatcher{}
	svc := newSubmissionService(repo, dispatcher, screening.RiskMedium)

	result, err := svc.Submit(context.Background(), Submission{
		TwoQ:   screening.TwoQAnswers{Q3: 1},
		EightQ: []int{0, 0, 0, 0, 0, 0, 1, 0},
	})
	if err != nil {
		t.Fatalf("storage failure must be captured, not returned: %v", err)
	}
	if result.Persisted || result.PersistErr == nil {
		t.Errorf("persisted=%v persistErr=%v, want false/non-nil", result.Persisted, result.PersistErr)
	}
	if !result.Notified || dispatcher.calls != 1 {
		t.Errorf("high risk alert must still be dispatched, notified=%v calls=%d", result.Notified, dispatcher.calls)
	}
	if !result.PartialFailure() {
		t.Error("storage failure is a partial failure")
	}
}

func TestSubmitChannelFailureIsPartial(t *testing.T) {
	repo := &fakeScreeningRepo{}
	dispatcher := &fakeDispatcher{result: notification.Result{
		AllSucceeded: false,
		Outcomes: []notification.Outcome{
			{Channel: "line_group", Success: false, Error: "push failed with status 500: upstream"},
		},
	}}
	svc := newSubmissionService(repo, dispatcher, screening.RiskMedium)

	result, err := svc.Submit(context.Background(), Submission{
		TwoQ:   screening.TwoQAnswers{Q3: 1},
		EightQ: []int{1, 1, 1, 1, 0, 0, 0, 0},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !result.Persisted {
		t.Error("persistence should succeed independently of the channel failure")
	}
	if !result.PartialFailure() {
		t.Error("failed channel is a partial failure")
	}
}

func TestSubmitInvalidInputAbortsBeforeSideEffects(t *testing.T) {
	repo := &fakeScreeningRepo{}
	dispatcher := &fakeDispatcher{}
	svc := newSubmissionService(repo, dispatcher, screening.RiskMedium)

	_, err := svc.Submit(context.Background(), Submission{
		TwoQ:   screening.TwoQAnswers{Q3: 1},
		EightQ: []int{1, 0},
	})
	if !errors.Is(err, screening.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if len(repo.records) != 0 {
		t.Error("nothing may be persisted for invalid input")
	}
	if dispatcher.calls != 0 {
		t.Error("nothing may be dispatched for invalid input")
	}
}

func TestSubmitAlertTextWithoutName(t *testing.T) {
	repo := &fakeScreeningRepo{}
	dispatcher := &fakeDispatcher{}
	svc := newSubmissionService(repo, dispatcher, screening.RiskMedium)

	_, err := svc.Submit(context.Background(), Submission{
		TwoQ:   screening.TwoQAnswers{Q3: 1},
		EightQ: []int{0, 0, 0, 0, 0, 0, 0, 1},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	wantText := "Suicide risk alert: level HIGH\nName: -\n8Q total: 1"
	if dispatcher.texts[0] != wantText {
		t.Errorf("alert text = %q, want %q", dispatcher.texts[0], wantText)
	}
}
