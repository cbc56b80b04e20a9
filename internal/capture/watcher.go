package capture

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"

	"github.com/iammorganparry/rewind/internal/models"
	"github.com/iammorganparry/rewind/internal/observability"
)

const (
	previewBytes    = 2048
	defaultDebounce = 500 * time.Millisecond
)

var languages = map[string]string{
	".go":   "go",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".py":   "python",
	".rb":   "ruby",
	".rs":   "rust",
	".java": "java",
	".css":  "css",
	".html": "html",
	".sql":  "sql",
	".sh":   "shell",
	".md":   "markdown",
}

// DirWatcher adds a file entry whenever a file in one of its directories is
// created or written. A burst of events for one path yields one entry.
type DirWatcher struct {
	adder    Adder
	dirs     []string
	debounce time.Duration
	metrics  *observability.Collector
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewDirWatcher(adder Adder, dirs []string, metrics *observability.Collector, logger *slog.Logger) *DirWatcher {
	return &DirWatcher{
		adder:    adder,
		dirs:     dirs,
		debounce: defaultDebounce,
		metrics:  metrics,
		logger:   logger,
		pending:  make(map[string]*time.Timer),
	}
}

// Start watches the directories until ctx is done. It returns once every
// directory is registered.
func (w *DirWatcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.logger.Info("watching directories", "dirs", w.dirs)

	go w.loop(ctx, fsw)
	return nil
}

func (w *DirWatcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			for path, t := range w.pending {
				t.Stop()
				delete(w.pending, path)
			}
			w.mu.Unlock()
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *DirWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if _, err := w.captureFile(path); err != nil {
			w.logger.Error("file capture failed", "path", path, "error", err)
		}
	})
}

// captureFile adds an entry for path. Directories and vanished files are
// skipped and return a nil entry.
func (w *DirWatcher) captureFile(path string) (*models.Entry, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, previewBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}

	e, err := w.adder.Add(fileRequest(path, info.Size(), buf[:n]))
	if err != nil {
		return nil, err
	}
	w.metrics.Captured(string(e.Type))
	w.logger.Debug("captured file", "id", e.ID, "path", path)
	return e, nil
}

// trimPartialRune drops a multi-byte character cut off at the end of head.
func trimPartialRune(head []byte) []byte {
	for i := len(head) - 1; i >= 0 && i >= len(head)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(head[i]) {
			continue
		}
		if !utf8.FullRune(head[i:]) {
			return head[:i]
		}
		break
	}
	return head
}

// fileRequest builds the entry for a file from its leading bytes.
func fileRequest(path string, size int64, head []byte) *models.AddRequest {
	ext := strings.ToLower(filepath.Ext(path))
	if size > int64(len(head)) {
		head = trimPartialRune(head)
	}

	var content string
	switch {
	case size == 0:
		content = "Empty file"
	case !utf8.Valid(head) || strings.ContainsRune(string(head), 0):
		content = "Binary file, " + humanize.IBytes(uint64(size))
	default:
		content = strings.TrimSpace(string(head))
		if size > int64(len(head)) {
			content += "\n…"
		}
	}

	return &models.AddRequest{
		Type:     models.EntryTypeFile,
		Title:    filepath.Base(path),
		Content:  content,
		FilePath: path,
		FileType: strings.TrimPrefix(ext, "."),
		Language: languages[ext],
		Context:  "Watched directory " + filepath.Dir(path),
	}
}
