package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"sync"
	"time"

	"pirlanta/internal/models"
	"pirlanta/internal/pdf"
)

// ReportArchive: куда складывать копию PDF (pdf.ReportGenerator.Save)
type ReportArchive interface {
	Save(filename string, data []byte) (string, error)
}

type DispatcherOptions struct {
	Workers    int
	QueueSize  int
	Attempts   int
	RetryDelay time.Duration
}

// ReportDispatcher: очередь генерации/отправки отчётов с пулом воркеров.
// Сбои здесь никогда не возвращаются в HTTP-ответ, только в лог.
type ReportDispatcher struct {
	store    SessionStore
	renderer pdf.Renderer
	mailer   EmailService
	notifier Notifier
	archive  ReportArchive

	now        func() time.Time
	workers    int
	attempts   int
	retryDelay time.Duration

	queue  chan models.ReportTask
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	// отменяется только в Stop, когда истёк его ctx
	cancel context.CancelFunc
}

func NewReportDispatcher(store SessionStore, renderer pdf.Renderer, mailer EmailService, notifier Notifier, archive ReportArchive, opts DispatcherOptions) *ReportDispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 5 * time.Second
	}
	return &ReportDispatcher{
		store:      store,
		renderer:   renderer,
		mailer:     mailer,
		notifier:   notifier,
		archive:    archive,
		now:        func() time.Time { return time.Now().UTC() },
		workers:    opts.Workers,
		attempts:   opts.Attempts,
		retryDelay: opts.RetryDelay,
		queue:      make(chan models.ReportTask, opts.QueueSize),
	}
}

// Start запускает воркеров. Отмена ctx их не останавливает: очередь дорабатывается в Stop.
func (d *ReportDispatcher) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func(id int) {
			defer d.wg.Done()
			for task := range d.queue {
				d.run(runCtx, id, task)
			}
		}(i + 1)
	}
	log.Printf("[report][dispatcher] started workers=%d", d.workers)
}

// Enqueue не блокирует: при полной или закрытой очереди задача отбрасывается
func (d *ReportDispatcher) Enqueue(task models.ReportTask) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Printf("[report][enqueue] dispatcher stopped, drop session=%s", task.SessionID)
		return false
	}
	select {
	case d.queue <- task:
		return true
	default:
		log.Printf("[report][enqueue] queue full (%d), drop session=%s", cap(d.queue), task.SessionID)
		return false
	}
}

// Stop закрывает очередь и ждёт, пока воркеры доработают оставшиеся задачи.
// Если ctx истёк раньше, текущие попытки и ожидания повторов отменяются.
func (d *ReportDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	cancel := d.cancel
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		if cancel != nil {
			cancel()
		}
		log.Printf("[report][dispatcher] stopped")
		return nil
	case <-ctx.Done():
		if cancel != nil {
			cancel()
		}
		log.Printf("[report][dispatcher] stop deadline reached, %d task(s) left in queue", len(d.queue))
		return ctx.Err()
	}
}

func (d *ReportDispatcher) run(ctx context.Context, worker int, task models.ReportTask) {
	for attempt := 1; attempt <= d.attempts; attempt++ {
		task.Attempt = attempt
		err := d.Process(ctx, task)
		if err == nil {
			return
		}
		log.Printf("[report][worker %d] session=%s attempt=%d/%d failed: %v", worker, task.SessionID, attempt, d.attempts, err)
		if errors.Is(err, models.ErrSessionNotFound) || attempt == d.attempts {
			return
		}

		// линейный backoff: delay, 2*delay, ...
		select {
		case <-time.After(d.retryDelay * time.Duration(attempt)):
		case <-ctx.Done():
			log.Printf("[report][worker %d] session=%s retry cancelled: %v", worker, task.SessionID, ctx.Err())
			return
		}
	}
}

// Process делает одну попытку: собрать контекст, отрендерить, отправить, отметить
func (d *ReportDispatcher) Process(ctx context.Context, task models.ReportTask) error {
	sess, err := d.store.GetByID(ctx, task.SessionID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return models.ErrSessionNotFound
	}

	rc := BuildReportContext(sess, d.now())
	data, err := d.renderer.RenderReport(rc)
	if err != nil {
		return fmt.Errorf("%w: render report: %w", models.ErrExternalService, err)
	}
	filename := rc.SurveyCode + ".pdf"

	if d.archive != nil {
		if path, err := d.archive.Save(filename, data); err != nil {
			log.Printf("[report][archive] session=%s: %v", sess.ID, err)
		} else {
			log.Printf("[report][archive] session=%s path=%s", sess.ID, path)
		}
	}

	if err := d.mailer.SendReportEmail(sess.Email, rc, data); err != nil {
		return fmt.Errorf("%w: %w", models.ErrExternalService, err)
	}
	if err := d.store.MarkReportSent(ctx, sess.ID, d.now()); err != nil {
		// письмо уже ушло: повтор отправил бы его второй раз
		log.Printf("[report][send] session=%s mark sent failed: %v", sess.ID, err)
	}
	log.Printf("[report][send] session=%s code=%s overall=%d", sess.ID, rc.SurveyCode, rc.Scores.Overall)

	if d.notifier != nil {
		caption := fmt.Sprintf("<b>Assessment completed</b>\n%s (%s)\nOverall: %d / 100\nCode: %s",
			html.EscapeString(rc.FullName), html.EscapeString(sess.Phone), rc.Scores.Overall, rc.SurveyCode)
		if err := d.notifier.NotifyDocument(ctx, filename, data, caption); err != nil {
			log.Printf("[report][notify] session=%s: %v", sess.ID, err)
		}
	}
	return nil
}
