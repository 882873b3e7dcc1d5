package policy

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Loader reads the policy YAML file and can watch it for changes. A missing
// file is not an error; the built-in defaults apply until one appears.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  Policy
	onChange []func(Policy)
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path, current: Default()}
	if path == "" {
		return l, nil
	}
	pol, err := l.load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return nil, err
	}
	l.current = pol
	return l, nil
}

// Policy returns the current (latest) policy.
func (l *Loader) Policy() Policy {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the policy reloads.
func (l *Loader) OnChange(fn func(Policy)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Reload forces an immediate re-read of the policy file.
func (l *Loader) Reload() (Policy, error) {
	pol, err := l.load()
	if err != nil {
		return Policy{}, err
	}
	l.swap(pol)
	return pol, nil
}

// Watch starts a background goroutine that hot-reloads the policy on file
// changes. Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	if l.path == "" {
		return func() {}, nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("policy watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("policy watcher add %s: %w", l.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					pol, err := l.load()
					if err != nil {
						// Keep serving the previous policy.
						continue
					}
					l.swap(pol)
				}
			case <-w.Errors:
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

func (l *Loader) load() (Policy, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy %s: %w", l.path, err)
	}
	var pol Policy
	if err := yaml.Unmarshal(data, &pol); err != nil {
		return Policy{}, fmt.Errorf("parse policy %s: %w", l.path, err)
	}
	pol.applyDefaults()
	return pol, nil
}

func (l *Loader) swap(pol Policy) {
	l.mu.Lock()
	l.current = pol
	callbacks := make([]func(Policy), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(pol)
	}
}
