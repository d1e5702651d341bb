package palette

import "context"
import "path/filepath"
import "time"

import "github.com/fsnotify/fsnotify"

// Time to wait after the last change event before reloading. Editors
// often write files in multiple steps.
const WatchDebounce = 100*time.Millisecond

// Watches the palette file and calls onChange with the reloaded palette
// each time it changes, or with the error if it can't be reloaded. The
// initial palette is not reported. Watch blocks until ctx is cancelled,
// and only returns an error if the file can't be watched at all.
//
// The file's directory is watched instead of the file itself, so
// editors that save by renaming a temporary file are also supported.
func Watch(ctx context.Context, path string, onChange func(*Palette, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil { return err }
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil { return err }

	target, err := filepath.Abs(path)
	if err != nil { return err }

	var debounce *time.Timer
	var debounceCh <-chan time.Time
	defer func() {
		if debounce != nil { debounce.Stop() }
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok { return nil }
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target { continue }
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil { debounce.Stop() }
			debounce = time.NewTimer(WatchDebounce)
			debounceCh = debounce.C
		case <-debounceCh:
			debounce, debounceCh = nil, nil
			onChange(Load(path))
		case err, ok := <-watcher.Errors:
			if !ok { return nil }
			onChange(nil, err)
		}
	}
}
