// Package watch provides a file system watcher that rebuilds reports when
// their source data changes.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReportSuffix marks generated workbooks so the watcher does not rebuild its
// own output in a loop.
const ReportSuffix = "_report.xlsx"

// Config holds the watcher configuration.
type Config struct {
	Directories []string `json:"directories"`
	Extensions  []string `json:"extensions"` // default: .xlsx, .csv, .json
	Recursive   bool     `json:"recursive"`
	Debounce    int      `json:"debounceMs"` // milliseconds to wait before processing
}

// Event records one detected and processed file change.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"` // processed, error, skipped
	Output    string    `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Handler rebuilds a report for a changed source file and returns the output
// path it wrote.
type Handler func(path string) (string, error)

// Watcher monitors directories for data file changes and triggers rebuilds.
type Watcher struct {
	Config  Config
	Logger  *log.Logger
	Handler Handler
	Events  []Event

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
}

// Status reports the watcher's current state.
type Status struct {
	Running     bool     `json:"running"`
	Directories []string `json:"directories"`
	EventCount  int      `json:"eventCount"`
}

var defaultExtensions = []string{".xlsx", ".csv", ".json"}

// New creates a Watcher with the given configuration.
func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if config.Debounce <= 0 {
		config.Debounce = 500
	}
	if len(config.Extensions) == 0 {
		config.Extensions = defaultExtensions
	}

	return &Watcher{
		Config:   config,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watcher:  fsw,
		debounce: make(map[string]*time.Timer),
	}, nil
}

// Start begins watching the configured directories. It blocks until the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	for _, dir := range w.Config.Directories {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", dir, err)
		}

		if w.Config.Recursive {
			if err := w.addRecursive(absDir); err != nil {
				return err
			}
		} else {
			if err := w.watcher.Add(absDir); err != nil {
				return fmt.Errorf("could not watch %s: %w", absDir, err)
			}
		}
	}

	w.Logger.Printf("Watching %d directory(ies)", len(w.Config.Directories))

	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("Error: %v", err)
		}
	}
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	path := event.Name
	if !w.Matches(path) {
		return
	}

	// Debounce rapid-fire write events per file
	w.mu.Lock()
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	op := event.Op.String()
	w.debounce[path] = time.AfterFunc(time.Duration(w.Config.Debounce)*time.Millisecond, func() {
		w.processFile(path, op)
	})
	w.mu.Unlock()
}

// Matches reports whether a path is a watchable data file: a configured
// extension, not an Office temp file, and not a generated report.
func (w *Watcher) Matches(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return false
	}
	if strings.HasSuffix(base, ReportSuffix) {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.Config.Extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func (w *Watcher) processFile(path, operation string) {
	evt := Event{Time: time.Now(), Path: path, Operation: operation}

	if w.Handler == nil {
		evt.Status = "skipped"
	} else if out, err := w.Handler(path); err != nil {
		evt.Status = "error"
		evt.Error = err.Error()
		w.Logger.Printf("Error processing %s: %v", path, err)
	} else {
		evt.Status = "processed"
		evt.Output = out
		w.Logger.Printf("Rebuilt %s → %s", path, out)
	}

	w.mu.Lock()
	w.Events = append(w.Events, evt)
	w.mu.Unlock()
}

// GetStatus returns the current watcher status.
func (w *Watcher) GetStatus() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Status{
		Running:     true,
		Directories: w.Config.Directories,
		EventCount:  len(w.Events),
	}
}

// GetEvents returns a copy of all recorded events.
func (w *Watcher) GetEvents() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := make([]Event, len(w.Events))
	copy(events, w.Events)
	return events
}
