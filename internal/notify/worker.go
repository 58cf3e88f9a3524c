package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Worker dispatches notifications asynchronously through a buffered queue
// so callers never block on, or fail because of, push delivery.
type Worker struct {
	notifier Notifier
	queue    chan Notification
	wg       sync.WaitGroup
}

// NewWorker creates a worker delivering through notifier with the given
// queue capacity.
func NewWorker(notifier Notifier, bufferSize int) *Worker {
	return &Worker{
		notifier: notifier,
		queue:    make(chan Notification, bufferSize),
	}
}

// Start launches the delivery goroutine.
func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for n := range w.queue {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			if err := w.notifier.Send(ctx, n); err != nil {
				slog.Error("Failed to send notification", "group_id", n.GroupID, "error", err)
			} else {
				slog.Debug("Notification sent", "group_id", n.GroupID, "title", n.Title)
			}
			cancel()
		}
	}()
}

// Dispatch enqueues a notification without blocking. When the queue is
// full the notification is dropped and logged.
func (w *Worker) Dispatch(n Notification) {
	select {
	case w.queue <- n:
	default:
		slog.Warn("Notification queue full, dropping", "group_id", n.GroupID, "title", n.Title)
	}
}

// Shutdown stops accepting notifications and waits for the queue to
// drain.
func (w *Worker) Shutdown() {
	close(w.queue)
	w.wg.Wait()
}
