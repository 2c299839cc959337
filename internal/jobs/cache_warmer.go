package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"notebooklm-bridge/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// Warmer refreshes the notebook cache (NotebookService)
type Warmer interface {
	Warm(ctx context.Context) error
}

// CacheWarmer periodically re-lists notebooks so /query rarely pays for a listing call
type CacheWarmer struct {
	scheduler gocron.Scheduler
	warmer    Warmer
	interval  time.Duration
	timeout   time.Duration
}

// NewCacheWarmer creates a warmer running every interval
func NewCacheWarmer(warmer Warmer, interval, timeout time.Duration) (*CacheWarmer, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &CacheWarmer{
		scheduler: scheduler,
		warmer:    warmer,
		interval:  interval,
		timeout:   timeout,
	}, nil
}

// Start registers the job and starts the scheduler. The first run is immediate.
func (w *CacheWarmer) Start() error {
	_, err := w.scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.run),
		gocron.WithName("notebook-cache-warmer"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create warm job: %w", err)
	}

	w.scheduler.Start()
	log.Printf("⏰ [CACHE-WARMER] Refreshing notebook cache every %v", w.interval)
	return nil
}

// Stop shuts the scheduler down, waiting for a running warm to finish
func (w *CacheWarmer) Stop() error {
	log.Println("⏹️ [CACHE-WARMER] Stopping")
	return w.scheduler.Shutdown()
}

func (w *CacheWarmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	err := w.warmer.Warm(ctx)
	switch {
	case err == nil:
	case services.IsAuthError(err):
		// nothing to warm until notebooklm-mcp-auth has been run
	default:
		log.Printf("⚠️  [CACHE-WARMER] Warm failed: %v", err)
	}
}
