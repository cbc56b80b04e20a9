package capture

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iammorganparry/rewind/internal/models"
)

func TestFileRequest(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		req := fileRequest("/src/app/main.go", 12, []byte("package main\n"))
		assert.Equal(t, models.EntryTypeFile, req.Type)
		assert.Equal(t, "main.go", req.Title)
		assert.Equal(t, "package main", req.Content)
		assert.Equal(t, "go", req.FileType)
		assert.Equal(t, "go", req.Language)
		assert.Equal(t, "/src/app/main.go", req.FilePath)
		assert.Equal(t, "Watched directory /src/app", req.Context)
	})

	t.Run("truncated", func(t *testing.T) {
		head := strings.Repeat("a", previewBytes)
		req := fileRequest("/notes/long.txt", 10000, []byte(head))
		assert.True(t, strings.HasSuffix(req.Content, "…"))
		assert.Empty(t, req.Language)
		assert.Equal(t, "txt", req.FileType)
	})

	t.Run("character split at preview end", func(t *testing.T) {
		head := []byte(strings.Repeat("a", previewBytes-1) + "é…")[:previewBytes]
		req := fileRequest("/notes/accents.txt", 10000, head)
		assert.Equal(t, strings.Repeat("a", previewBytes-1)+"\n…", req.Content)
	})

	t.Run("binary", func(t *testing.T) {
		req := fileRequest("/shots/screen.PNG", 2048, []byte{0x89, 'P', 'N', 'G', 0, 0xff})
		assert.Equal(t, "Binary file, 2.0 KiB", req.Content)
		assert.Equal(t, "png", req.FileType)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "Empty file", fileRequest("/tmp/x", 0, nil).Content)
	})
}

func TestDirWatcher(t *testing.T) {
	dir := t.TempDir()
	adder := &fakeAdder{}
	w := NewDirWatcher(adder, []string{dir}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	w.debounce = 200 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	path := filepath.Join(dir, "handler.js")
	require.NoError(t, os.WriteFile(path, []byte("function handle() {}"), 0o644))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("\n// more")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".swap"), []byte("x"), 0o644))

	require.Eventually(t, func() bool { return adder.count() == 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, 1, adder.count())

	adder.mu.Lock()
	got := adder.added[0]
	adder.mu.Unlock()
	assert.Equal(t, "handler.js", got.Title)
	assert.Equal(t, "javascript", got.Language)
	assert.Contains(t, got.Content, "function handle()")
}

func TestDirWatcherMissingDir(t *testing.T) {
	w := NewDirWatcher(&fakeAdder{}, []string{filepath.Join(t.TempDir(), "nope")}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, w.Start(context.Background()))
}
