package roadmap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Registry composes the built-in roadmaps with custom ones added by Extend.
// Built-ins are readable before any extension completes.
type Registry struct {
	mu          sync.RWMutex
	builtin     map[string]*Roadmap
	extended    map[string]*Roadmap
	transformer *Transformer
	logger      *zap.Logger
}

// NewRegistry returns a Registry holding only the built-in roadmaps.
//
// Postcondition: A nil logger is replaced with a no-op logger.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		builtin:     make(map[string]*Roadmap, len(builtinRoadmaps)),
		extended:    make(map[string]*Roadmap),
		transformer: NewTransformer(logger),
		logger:      logger,
	}
	for _, rm := range builtinRoadmaps {
		r.builtin[rm.Key] = rm
	}
	return r
}

// reserved reports whether name matches a built-in key or display name,
// ignoring case.
func (r *Registry) reserved(name string) bool {
	for key, rm := range r.builtin {
		if strings.EqualFold(key, name) || strings.EqualFold(rm.Name, name) {
			return true
		}
	}
	return false
}

// Extend transforms and registers custom roadmaps. A roadmap whose name
// collides with a built-in or with an already registered name is rejected and
// logged; the rest of the batch still loads.
//
// Postcondition: Returns one error per rejected roadmap, each wrapping
// ErrReservedName or ErrDuplicateName.
func (r *Registry) Extend(customs []Custom) []error {
	var errs []error
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range customs {
		var err error
		switch {
		case r.reserved(c.Name):
			err = fmt.Errorf("%w: %q (%s)", ErrReservedName, c.Name, c.Source)
		case r.extended[c.Name] != nil:
			err = fmt.Errorf("%w: %q (%s)", ErrDuplicateName, c.Name, c.Source)
		}
		if err != nil {
			r.logger.Warn("rejecting custom roadmap", zap.Error(err))
			errs = append(errs, err)
			continue
		}
		r.extended[c.Name] = r.transformer.Transform(c)
		r.logger.Debug("registered custom roadmap", zap.String("name", c.Name))
	}
	return errs
}

// Reset drops every custom roadmap.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extended = make(map[string]*Roadmap)
}

// Get returns the roadmap registered under key.
//
// Postcondition: Returns (roadmap, true) if found, or (nil, false) otherwise.
// The returned Choices must not be modified; use Clone.
func (r *Registry) Get(key string) (*Roadmap, bool) {
	if rm, ok := r.builtin[key]; ok {
		return rm, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.extended[key]
	return rm, ok
}

// Keys returns the built-in keys in declaration order followed by the custom
// keys sorted by name.
func (r *Registry) Keys() []string {
	out := make([]string, 0, len(builtinRoadmaps))
	for _, rm := range builtinRoadmaps {
		out = append(out, rm.Key)
	}
	r.mu.RLock()
	custom := make([]string, 0, len(r.extended))
	for key := range r.extended {
		custom = append(custom, key)
	}
	r.mu.RUnlock()
	sort.Strings(custom)
	return append(out, custom...)
}

// roadmapExts are the file extensions LoadDir reads.
var roadmapExts = map[string]bool{".yaml": true, ".yml": true, ".json": true}

// LoadDir decodes every roadmap file in dir. Files that fail to read or decode
// are logged and returned as errors; the others are still returned.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the decoded roadmaps in file-name order, the per-file
// errors, and a non-nil error only when dir itself cannot be read.
func LoadDir(dir string, logger *zap.Logger) ([]Custom, []error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading roadmap dir %q: %w", dir, err)
	}
	var (
		customs []Custom
		errs    []error
	)
	for _, entry := range entries {
		if entry.IsDir() || !roadmapExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("reading custom roadmap", zap.String("path", path), zap.Error(err))
			errs = append(errs, fmt.Errorf("reading %q: %w", path, err))
			continue
		}
		c, err := Decode(data, path, logger)
		if err != nil {
			logger.Warn("decoding custom roadmap", zap.Error(err))
			errs = append(errs, err)
			continue
		}
		customs = append(customs, c)
	}
	return customs, errs, nil
}
