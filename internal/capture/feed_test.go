package capture

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iammorganparry/rewind/internal/models"
)

type fakeAdder struct {
	mu    sync.Mutex
	added []models.AddRequest
	err   error
}

func (a *fakeAdder) Add(req *models.AddRequest) (*models.Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	a.added = append(a.added, *req)
	return &models.Entry{ID: "id", Type: req.Type, Title: req.Title, Content: req.Content}, nil
}

func (a *fakeAdder) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.added)
}

func newTestFeed(adder Adder, interval time.Duration) *Feed {
	f := NewFeed(adder, interval, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.now = func() time.Time { return time.Date(2024, 1, 1, 9, 30, 5, 0, time.UTC) }
	return f
}

func TestCapture(t *testing.T) {
	adder := &fakeAdder{}
	f := newTestFeed(adder, 5*time.Second)

	next := 0
	f.pick = func(n int) int {
		i := next % n
		next++
		return i
	}

	for i := 0; i < 7; i++ {
		_, err := f.Capture()
		require.NoError(t, err)
	}

	require.Len(t, adder.added, 7)
	assert.Equal(t, models.EntryTypeClipboard, adder.added[0].Type)
	assert.Equal(t, models.EntryTypeNote, adder.added[4].Type)

	st := f.Status()
	assert.False(t, st.Active)
	assert.Equal(t, 5, st.Interval)
	require.Len(t, st.RecentActivity, 5)
	assert.Equal(t, "09:30:05: Captured file - Modified: UserService.js", st.RecentActivity[0])
	assert.Equal(t, "09:30:05: Captured clipboard - API Documentation Copied", st.RecentActivity[1])
	assert.Equal(t, 7, st.Stats["total"])
	assert.Equal(t, 2, st.Stats["clipboard"])
	assert.Equal(t, 1, st.Stats["note"])
}

func TestCaptureError(t *testing.T) {
	f := newTestFeed(&fakeAdder{err: errors.New("boom")}, time.Second)
	f.pick = func(int) int { return 0 }

	_, err := f.Capture()
	assert.Error(t, err)
	assert.Empty(t, f.Status().RecentActivity)
	assert.Zero(t, f.Status().Stats["total"])
}

func TestStatusIsACopy(t *testing.T) {
	f := newTestFeed(&fakeAdder{}, time.Second)
	f.pick = func(int) int { return 0 }
	_, err := f.Capture()
	require.NoError(t, err)

	st := f.Status()
	st.Stats["total"] = 99
	st.RecentActivity[0] = "changed"
	assert.Equal(t, 1, f.Status().Stats["total"])
	assert.NotEqual(t, "changed", f.Status().RecentActivity[0])
}

func TestActivitiesAreValid(t *testing.T) {
	for _, a := range activities {
		assert.True(t, a.Type.IsValid(), a.Title)
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Content)
	}
	assert.Len(t, activities, 5)
}

func TestStartStopToggle(t *testing.T) {
	f := newTestFeed(&fakeAdder{}, time.Hour)
	ctx := context.Background()

	active, err := f.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, active)
	assert.True(t, f.Status().Active)

	require.NoError(t, f.Start(ctx))

	active, err = f.Toggle(ctx)
	require.NoError(t, err)
	assert.False(t, active)
	assert.False(t, f.Active())

	f.Stop()
}

func TestStopsWhenContextDone(t *testing.T) {
	f := newTestFeed(&fakeAdder{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, f.Start(ctx))

	cancel()
	assert.Eventually(t, func() bool { return !f.Active() }, time.Second, 10*time.Millisecond)
}

func TestScheduledCaptures(t *testing.T) {
	adder := &fakeAdder{}
	f := newTestFeed(adder, time.Second)
	f.pick = func(int) int { return 3 }

	require.NoError(t, f.Start(context.Background()))
	defer f.Stop()

	assert.Eventually(t, func() bool { return adder.count() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestSetInterval(t *testing.T) {
	f := newTestFeed(&fakeAdder{}, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.SetInterval(ctx, 2*time.Second))
	assert.Equal(t, 2, f.Status().Interval)
	assert.False(t, f.Active())

	require.NoError(t, f.Start(ctx))
	require.NoError(t, f.SetInterval(ctx, 10*time.Second))
	assert.True(t, f.Active())
	assert.Equal(t, 10, f.Status().Interval)
	f.Stop()
}

type fakePrefs struct {
	settings models.AppSettings
	saves    int
}

func (p *fakePrefs) Settings() (models.AppSettings, error) {
	return p.settings, nil
}

func (p *fakePrefs) UpdateSettings(s models.AppSettings) (models.AppSettings, error) {
	p.settings = s
	p.saves++
	return s, nil
}

func TestToggleRemembersSetting(t *testing.T) {
	prefs := &fakePrefs{settings: models.AppSettings{CaptureInterval: 30, MaxEntries: 10}}
	f := newTestFeed(&fakeAdder{}, time.Hour)
	f.Remember(prefs)
	ctx := context.Background()

	_, err := f.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, prefs.settings.AutoCapture)
	assert.Equal(t, 30, prefs.settings.CaptureInterval)

	_, err = f.Toggle(ctx)
	require.NoError(t, err)
	assert.False(t, prefs.settings.AutoCapture)
	assert.Equal(t, 2, prefs.saves)
}

func TestApply(t *testing.T) {
	f := newTestFeed(&fakeAdder{}, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.Apply(ctx, models.AppSettings{AutoCapture: true, CaptureInterval: 20}))
	assert.True(t, f.Active())
	assert.Equal(t, 20, f.Status().Interval)

	require.NoError(t, f.Apply(ctx, models.AppSettings{AutoCapture: false, CaptureInterval: 20}))
	assert.False(t, f.Active())
}
