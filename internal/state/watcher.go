package state

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/tome/internal/pathutil"
)

// CatalogChangedMsg reports that the source file of a catalog was rewritten.
type CatalogChangedMsg struct {
	Catalog string
}

type CatalogWatcherErrMsg struct {
	Err error
}

const defaultSettle = 150 * time.Millisecond

// CatalogWatcher watches the directories holding local catalog files.
// Directories are watched rather than files so that editors replacing a file
// by rename are still seen.
type CatalogWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]string // cleaned path -> catalog name
	done     chan struct{}
	once     sync.Once
	mu       sync.Mutex
	settle   time.Duration
	onChange func(string)
}

// NewCatalogWatcher watches files, keyed by catalog name.
func NewCatalogWatcher(files map[string]string) (*CatalogWatcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no catalog files to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &CatalogWatcher{
		watcher: w,
		files:   make(map[string]string, len(files)),
		done:    make(chan struct{}),
		settle:  defaultSettle,
	}

	dirs := make(map[string]bool)
	for name, path := range files {
		abs, err := filepath.Abs(pathutil.NormalizePath(path))
		if err != nil {
			_ = watcher.Close()
			return nil, err
		}
		watcher.files[abs] = name
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, err
		}
		dirs[dir] = true
	}

	return watcher, nil
}

// Start returns a command that blocks until the next catalog change. Bursts
// of events for the same catalog within the settle window collapse into one
// message. Re-issue the command after each message to keep watching.
func (w *CatalogWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				name, relevant := w.catalogFor(event)
				if !relevant {
					continue
				}
				if !w.drain(name) {
					return nil
				}
				if fn := w.changeHook(); fn != nil {
					fn(name)
				}
				return CatalogChangedMsg{Catalog: name}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return CatalogWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

// drain swallows further events for name until the settle window passes
// quietly. It reports false if the watcher closed meanwhile.
func (w *CatalogWatcher) drain(name string) bool {
	timer := time.NewTimer(w.settleWindow())
	defer timer.Stop()
	for {
		select {
		case <-w.done:
			return false
		case <-timer.C:
			return true
		case event, ok := <-w.watcher.Events:
			if !ok {
				return false
			}
			if other, relevant := w.catalogFor(event); relevant && other == name {
				timer.Reset(w.settleWindow())
			}
		}
	}
}

func (w *CatalogWatcher) catalogFor(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return "", false
	}
	abs, err := filepath.Abs(pathutil.NormalizePath(event.Name))
	if err != nil {
		return "", false
	}
	name, ok := w.files[abs]
	return name, ok
}

func (w *CatalogWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})

	return closeErr
}

// OnChange registers a callback that receives the catalog name whenever the
// watcher reports a change.
func (w *CatalogWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// SetSettle sets the window in which repeated events are coalesced.
func (w *CatalogWatcher) SetSettle(d time.Duration) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settle = d
}

func (w *CatalogWatcher) changeHook() func(string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onChange
}

func (w *CatalogWatcher) settleWindow() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.settle
}
