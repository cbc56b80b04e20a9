// Package capture feeds the timeline automatically: a scheduled feed of
// canned activity, and a watcher that records files as they change.
package capture

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"

	"github.com/iammorganparry/rewind/internal/models"
	"github.com/iammorganparry/rewind/internal/observability"
)

const recentLimit = 5

// Adder is the entry-creation contract the feed writes through.
type Adder interface {
	Add(req *models.AddRequest) (*models.Entry, error)
}

// Preferences persists the auto-capture switch.
type Preferences interface {
	Settings() (models.AppSettings, error)
	UpdateSettings(settings models.AppSettings) (models.AppSettings, error)
}

// Feed periodically captures one canned activity.
type Feed struct {
	adder    Adder
	prefs    Preferences
	interval time.Duration
	metrics  *observability.Collector
	logger   *slog.Logger

	pick func(n int) int
	now  func() time.Time

	mu     sync.Mutex
	cron   *rcron.Cron
	cancel context.CancelFunc
	recent []string
	stats  map[string]int
}

func NewFeed(adder Adder, interval time.Duration, metrics *observability.Collector, logger *slog.Logger) *Feed {
	return &Feed{
		adder:    adder,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
		pick:     rand.IntN,
		now:      time.Now,
		stats:    map[string]int{"total": 0},
	}
}

// Start schedules captures every interval until Stop or ctx is done.
// Starting a running feed is a no-op.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cron != nil {
		return nil
	}

	c := rcron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", f.interval), f.tick); err != nil {
		return fmt.Errorf("schedule capture: %w", err)
	}
	runCtx, cancel := context.WithCancel(ctx)
	f.cron = c
	f.cancel = cancel
	c.Start()
	f.logger.Info("live capture started", "interval", f.interval.String())

	go func() {
		<-runCtx.Done()
		f.stop(c)
	}()
	return nil
}

// Stop halts the schedule and waits for a running capture to finish.
func (f *Feed) Stop() {
	f.stop(nil)
}

// stop halts the running schedule. A non-nil only restricts it to that
// schedule, so a stale context cannot stop a restarted feed.
func (f *Feed) stop(only *rcron.Cron) {
	f.mu.Lock()
	c, cancel := f.cron, f.cancel
	if c == nil || (only != nil && c != only) {
		f.mu.Unlock()
		return
	}
	f.cron, f.cancel = nil, nil
	f.mu.Unlock()

	cancel()
	<-c.Stop().Done()
	f.logger.Info("live capture stopped")
}

// Remember makes Toggle save the new state as the auto-capture setting.
func (f *Feed) Remember(p Preferences) {
	f.prefs = p
}

// Toggle flips the feed on or off and reports whether it is now active.
func (f *Feed) Toggle(ctx context.Context) (bool, error) {
	active := !f.Active()
	if active {
		if err := f.Start(ctx); err != nil {
			return false, err
		}
	} else {
		f.Stop()
	}
	return active, f.persist(active)
}

func (f *Feed) persist(active bool) error {
	if f.prefs == nil {
		return nil
	}
	settings, err := f.prefs.Settings()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	if settings.AutoCapture == active {
		return nil
	}
	settings.AutoCapture = active
	if _, err := f.prefs.UpdateSettings(settings); err != nil {
		return fmt.Errorf("save auto-capture: %w", err)
	}
	return nil
}

// Apply brings the feed in line with saved settings: the interval is
// updated and the feed runs exactly when AutoCapture is set.
func (f *Feed) Apply(ctx context.Context, settings models.AppSettings) error {
	if err := f.SetInterval(ctx, time.Duration(settings.CaptureInterval)*time.Second); err != nil {
		return err
	}
	if !settings.AutoCapture {
		f.Stop()
		return nil
	}
	return f.Start(ctx)
}

// SetInterval changes the capture period, rescheduling a running feed.
func (f *Feed) SetInterval(ctx context.Context, d time.Duration) error {
	f.mu.Lock()
	changed := f.interval != d
	f.interval = d
	f.mu.Unlock()

	if !changed || !f.Active() {
		return nil
	}
	f.Stop()
	return f.Start(ctx)
}

func (f *Feed) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cron != nil
}

func (f *Feed) tick() {
	if _, err := f.Capture(); err != nil {
		f.logger.Error("live capture failed", "error", err)
	}
}

// Capture records one randomly chosen activity immediately.
func (f *Feed) Capture() (*models.Entry, error) {
	req := activities[f.pick(len(activities))]

	e, err := f.adder.Add(&req)
	if err != nil {
		return nil, err
	}
	f.metrics.Captured(string(e.Type))

	line := fmt.Sprintf("%s: Captured %s - %s", f.now().Format("15:04:05"), e.Type, e.Title)
	f.mu.Lock()
	f.recent = append([]string{line}, f.recent...)
	if len(f.recent) > recentLimit {
		f.recent = f.recent[:recentLimit]
	}
	f.stats[string(e.Type)]++
	f.stats["total"]++
	f.mu.Unlock()

	f.logger.Debug("captured activity", "id", e.ID, "type", e.Type)
	return e, nil
}

// Status reports whether the feed runs, its period and what it captured.
func (f *Feed) Status() models.CaptureStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := make(map[string]int, len(f.stats))
	for k, v := range f.stats {
		stats[k] = v
	}
	return models.CaptureStatus{
		Active:         f.cron != nil,
		Interval:       int(f.interval / time.Second),
		RecentActivity: append([]string{}, f.recent...),
		Stats:          stats,
	}
}
