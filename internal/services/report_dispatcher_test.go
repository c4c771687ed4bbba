package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pirlanta/internal/models"
)

type stubRenderer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *stubRenderer) RenderReport(_ models.ReportContext) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.3"), nil
}

func (r *stubRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type stubNotifier struct {
	mu   sync.Mutex
	docs []string
}

func (n *stubNotifier) Notify(_ context.Context, _ string) error { return nil }

func (n *stubNotifier) NotifyDocument(_ context.Context, filename string, _ []byte, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.docs = append(n.docs, filename)
	return nil
}

func completedSession(store *memStore, id string) {
	store.sessions[id] = &models.AssessmentSession{
		ID:          id,
		Name:        "Asha Rao",
		Phone:       "+919800000000",
		Email:       "asha@example.com",
		OTPVerified: true,
		CurrentStep: 5,
		Progress:    100,
		Answers:     models.StepAnswers{1: {"company_name": "Acme"}},
	}
}

func fastOpts() DispatcherOptions {
	return DispatcherOptions{Workers: 2, QueueSize: 4, Attempts: 3, RetryDelay: time.Millisecond}
}

func TestReportDispatcher_Process(t *testing.T) {
	store := newMemStore()
	completedSession(store, "abcdef12-3456")
	mail := &fakeMailer{}
	notifier := &stubNotifier{}
	d := NewReportDispatcher(store, &stubRenderer{}, mail, notifier, nil, fastOpts())

	if err := d.Process(context.Background(), models.ReportTask{SessionID: "abcdef12-3456"}); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if mail.reports != 1 {
		t.Errorf("report emails = %d, want 1", mail.reports)
	}
	if store.sessions["abcdef12-3456"].ReportSentAt == nil {
		t.Error("ReportSentAt not set")
	}
	if len(notifier.docs) != 1 || notifier.docs[0] != "PIR-ABCDEF12.pdf" {
		t.Errorf("notified docs = %v", notifier.docs)
	}
}

func TestReportDispatcher_ProcessErrors(t *testing.T) {
	store := newMemStore()
	completedSession(store, "s1")

	d := NewReportDispatcher(store, &stubRenderer{err: errors.New("font missing")}, &fakeMailer{}, nil, nil, fastOpts())
	if err := d.Process(context.Background(), models.ReportTask{SessionID: "s1"}); !errors.Is(err, models.ErrExternalService) {
		t.Errorf("render failure error = %v, want ErrExternalService", err)
	}

	d = NewReportDispatcher(store, &stubRenderer{}, &fakeMailer{err: errors.New("smtp down")}, nil, nil, fastOpts())
	if err := d.Process(context.Background(), models.ReportTask{SessionID: "s1"}); !errors.Is(err, models.ErrExternalService) {
		t.Errorf("mail failure error = %v, want ErrExternalService", err)
	}
	if store.sessions["s1"].ReportSentAt != nil {
		t.Error("ReportSentAt set despite failures")
	}

	if err := d.Process(context.Background(), models.ReportTask{SessionID: "missing"}); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("missing session error = %v", err)
	}
}

func TestReportDispatcher_RetriesThenGivesUp(t *testing.T) {
	store := newMemStore()
	completedSession(store, "s1")
	renderer := &stubRenderer{err: errors.New("boom")}
	d := NewReportDispatcher(store, renderer, &fakeMailer{}, nil, nil, fastOpts())

	d.Start(context.Background())
	if !d.Enqueue(models.ReportTask{SessionID: "s1"}) {
		t.Fatal("Enqueue() = false")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if renderer.count() != 3 {
		t.Errorf("render attempts = %d, want 3", renderer.count())
	}
	if d.Enqueue(models.ReportTask{SessionID: "s1"}) {
		t.Error("Enqueue() after Stop = true")
	}
}

func TestReportDispatcher_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	d := NewReportDispatcher(newMemStore(), &stubRenderer{}, &fakeMailer{}, nil, nil,
		DispatcherOptions{Workers: 1, QueueSize: 1, Attempts: 1, RetryDelay: time.Millisecond})
	// воркеры не запущены, очередь на одно место
	if !d.Enqueue(models.ReportTask{SessionID: "a"}) {
		t.Fatal("first Enqueue() = false")
	}
	if d.Enqueue(models.ReportTask{SessionID: "b"}) {
		t.Fatal("second Enqueue() = true, want drop")
	}
}

func TestSubmitLastStep_RenderFailureDoesNotAffectResponse(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	renderer := &stubRenderer{err: errors.New("renderer crashed")}
	d := NewReportDispatcher(f.store, renderer, &fakeMailer{}, nil, nil, fastOpts())
	f.svc.Reports = d
	d.Start(ctx)

	id := f.verifiedSession(t)
	var last models.StepProgress
	for step := 1; step <= 4; step++ {
		var err error
		last, err = f.svc.SubmitStep(ctx, id, step, map[string]any{})
		if err != nil {
			t.Fatalf("SubmitStep(%d) error = %v", step, err)
		}
	}

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := d.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if last != (models.StepProgress{CurrentStep: 5, Progress: 100}) {
		t.Errorf("final SubmitStep() = %+v, want {5 100}", last)
	}
	if renderer.count() == 0 {
		t.Error("renderer was never called")
	}
	stored, _ := f.store.GetByID(ctx, id)
	if stored.ReportSentAt != nil {
		t.Error("ReportSentAt set although rendering failed")
	}
}

// ctxStore ведёт себя как SQL-репозиторий: отменённый ctx даёт ошибку
type ctxStore struct {
	*memStore
}

func (s ctxStore) GetByID(ctx context.Context, id string) (*models.AssessmentSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.memStore.GetByID(ctx, id)
}

func (s ctxStore) MarkReportSent(ctx context.Context, id string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.memStore.MarkReportSent(ctx, id, at)
}

func TestReportDispatcher_StopDrainsQueueAfterShutdownSignal(t *testing.T) {
	store := newMemStore()
	ids := []string{"s1", "s2", "s3"}
	for _, id := range ids {
		completedSession(store, id)
	}
	mail := &fakeMailer{}
	d := NewReportDispatcher(ctxStore{store}, &stubRenderer{}, mail, nil, nil,
		DispatcherOptions{Workers: 1, QueueSize: 8, Attempts: 3, RetryDelay: time.Millisecond})

	appCtx, cancelApp := context.WithCancel(context.Background())
	for _, id := range ids {
		if !d.Enqueue(models.ReportTask{SessionID: id}) {
			t.Fatalf("Enqueue(%s) = false", id)
		}
	}
	// SIGTERM пришёл раньше, чем воркер взял задачи
	cancelApp()
	d.Start(appCtx)

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if mail.reports != len(ids) {
		t.Errorf("report emails = %d, want %d", mail.reports, len(ids))
	}
	for _, id := range ids {
		if store.sessions[id].ReportSentAt == nil {
			t.Errorf("session %s: ReportSentAt not set", id)
		}
	}
}

func TestReportDispatcher_StopDeadlineCancelsRetries(t *testing.T) {
	store := newMemStore()
	completedSession(store, "s1")
	renderer := &stubRenderer{err: errors.New("boom")}
	d := NewReportDispatcher(store, renderer, &fakeMailer{}, nil, nil,
		DispatcherOptions{Workers: 1, QueueSize: 1, Attempts: 3, RetryDelay: time.Hour})
	d.Start(context.Background())
	d.Enqueue(models.ReportTask{SessionID: "s1"})

	stopCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := d.Stop(stopCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Stop() error = %v, want DeadlineExceeded", err)
	}

	// ожидание повтора отменено, воркер выходит
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker still waiting for retry after Stop deadline")
	}
	if renderer.count() != 1 {
		t.Errorf("render attempts = %d, want 1", renderer.count())
	}
}
