package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"git.sr.ht/~whereswaldon/brainchart/model"
)

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

// Entry is one loaded data file.
type Entry struct {
	Path   string
	Kind   model.ChartKind
	Source *model.Source
	// Err is the error of the last reload. The previous source stays
	// available.
	Err error
}

// Snapshot is the state of a library at one point in time.
type Snapshot struct {
	Generation uint64
	Entries    []Entry
}

// Sources returns the loaded sources of kind.
func (s Snapshot) Sources(kind model.ChartKind) []*model.Source {
	var out []*model.Source
	for _, e := range s.Entries {
		if e.Kind == kind && e.Source != nil {
			out = append(out, e.Source)
		}
	}
	return out
}

// Errors returns the entries whose last load failed.
func (s Snapshot) Errors() []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

type libraryState struct {
	generation uint64
	entries    []Entry
	subs       map[chan Snapshot]struct{}
}

func (s *libraryState) snapshot() Snapshot {
	return Snapshot{Generation: s.generation, Entries: slices.Clone(s.entries)}
}

// publish hands the current snapshot to every subscriber, replacing any
// snapshot it has not received yet. Callers hold the write lock.
func (s *libraryState) publish() {
	s.generation++
	snap := s.snapshot()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

// Library holds the data files loaded into the viewer and reloads them when
// they change on disk.
type Library struct {
	opts    Options
	watcher *Watcher
	state   RWBox[libraryState]
}

func NewLibrary(opts Options) (*Library, error) {
	w, err := NewWatcher()
	if err != nil {
		return nil, err
	}
	l := &Library{opts: opts, watcher: w}
	l.state.Write(func(s *libraryState) {
		s.subs = make(map[chan Snapshot]struct{})
	})
	return l, nil
}

func (l *Library) Close() error {
	return l.watcher.Close()
}

// Snapshot returns the current state.
func (l *Library) Snapshot() (snap Snapshot) {
	l.state.Read(func(s *libraryState) {
		snap = s.snapshot()
	})
	return snap
}

// Snapshots streams the library state, starting with the current one, until
// ctx is done. Slow readers only see the latest state.
func (l *Library) Snapshots(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	l.state.Write(func(s *libraryState) {
		ch <- s.snapshot()
		s.subs[ch] = struct{}{}
	})
	go func() {
		<-ctx.Done()
		l.state.Write(func(s *libraryState) {
			delete(s.subs, ch)
		})
		close(ch)
	}()
	return ch
}

// Load parses the file at path as kind and watches it for changes. Loading a
// path again replaces its entry.
func (l *Library) Load(kind model.ChartKind, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	src, err := l.read(kind, abs)
	if err != nil {
		return err
	}
	if err := l.watcher.Add(abs); err != nil {
		return err
	}
	l.state.Write(func(s *libraryState) {
		e := Entry{Path: abs, Kind: kind, Source: src}
		if i := slices.IndexFunc(s.entries, func(e Entry) bool { return e.Path == abs }); i >= 0 {
			s.entries[i] = e
		} else {
			s.entries = append(s.entries, e)
		}
		s.publish()
	})
	return nil
}

// Remove forgets the file at path.
func (l *Library) Remove(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	l.state.Write(func(s *libraryState) {
		n := len(s.entries)
		s.entries = slices.DeleteFunc(s.entries, func(e Entry) bool { return e.Path == abs })
		if len(s.entries) != n {
			s.publish()
		}
	})
	return l.watcher.Remove(abs)
}

// Run reloads changed files until ctx is done.
func (l *Library) Run(ctx context.Context) {
	l.watcher.Run(ctx, l.reload)
}

func (l *Library) reload(path string) {
	var kind model.ChartKind
	var known bool
	l.state.Read(func(s *libraryState) {
		for _, e := range s.entries {
			if e.Path == path {
				kind, known = e.Kind, true
			}
		}
	})
	if !known {
		return
	}
	src, err := l.read(kind, path)
	l.state.Write(func(s *libraryState) {
		i := slices.IndexFunc(s.entries, func(e Entry) bool { return e.Path == path })
		if i < 0 {
			return
		}
		s.entries[i].Err = err
		if err == nil {
			s.entries[i].Source = src
		}
		s.publish()
	})
}

// read parses complete lines only, since a watched file may be mid-write.
func (l *Library) read(kind model.ChartKind, path string) (*model.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening %s data: %w", kind, err)
	}
	defer f.Close()
	return Parse(kind, SourceName(path), NewLineReader(f), l.opts)
}
