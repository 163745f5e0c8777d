package profile

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/boxfit/pkg/errors"
)

// DefaultSettle is how long a profile file must stay quiet after a write
// before it is reloaded. Editors often write a file in several steps.
const DefaultSettle = 100 * time.Millisecond

// Watcher reloads a profile file whenever it changes on disk.
type Watcher struct {
	path    string
	settle  time.Duration
	watcher *fsnotify.Watcher
}

// Watch starts watching the profile at path. The directory is watched
// rather than the file so that editors replacing the file are noticed.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create file watcher")
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "watch %s", path)
	}
	return &Watcher{path: path, settle: DefaultSettle, watcher: fw}, nil
}

// Run delivers reload results to onChange until ctx is done or the watcher
// is closed. A failed reload is reported with a nil profile.
func (w *Watcher) Run(ctx context.Context, onChange func(*Profile, error)) {
	name := filepath.Base(w.path)
	settle := time.NewTimer(w.settle)
	if !settle.Stop() {
		<-settle.C
	}
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			settle.Reset(w.settle)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			onChange(nil, errors.Wrap(errors.ErrCodeInternal, err, "watch %s", w.path))

		case <-settle.C:
			onChange(Load(w.path))
		}
	}
}

// Close stops the watcher. Run returns once its event channels close.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
