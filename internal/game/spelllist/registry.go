package spelllist

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry serves the built-in lists plus any lists added with Extend. It is
// safe for concurrent use; reads never wait on a slow Extend beyond the final
// swap.
type Registry struct {
	mu       sync.RWMutex
	builtin  map[string]*SpellList
	extended map[string]*SpellList
	logger   *zap.Logger
}

// NewRegistry returns a Registry preloaded with the built-in lists.
//
// Postcondition: A nil logger is replaced with a no-op logger.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		builtin:  make(map[string]*SpellList, len(builtinLists)),
		extended: make(map[string]*SpellList),
		logger:   logger,
	}
	for _, l := range builtinLists {
		r.builtin[l.ID] = l
	}
	return r
}

// Extend adds externally loaded lists. A list that fails validation, repeats an
// ID within the batch, or collides with a built-in ID is logged and skipped;
// the rest are added.
//
// Postcondition: Returns the number of lists added.
func (r *Registry) Extend(lists []*SpellList) int {
	accepted := make(map[string]*SpellList, len(lists))
	for _, l := range lists {
		if l == nil {
			continue
		}
		if err := l.Validate(); err != nil {
			r.logger.Warn("rejecting spell list", zap.Error(err))
			continue
		}
		if _, ok := r.builtin[l.ID]; ok {
			r.logger.Warn("rejecting spell list: id collides with built-in", zap.String("id", l.ID))
			continue
		}
		if _, ok := accepted[l.ID]; ok {
			r.logger.Warn("rejecting spell list: duplicate id", zap.String("id", l.ID))
			continue
		}
		accepted[l.ID] = l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range accepted {
		if _, ok := r.extended[id]; ok {
			r.logger.Warn("replacing previously loaded spell list", zap.String("id", id))
		}
		r.extended[id] = l
	}
	return len(accepted)
}

// Reset drops every extended list, leaving only the built-ins.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extended = make(map[string]*SpellList)
}

// Get returns the list registered under id.
//
// Postcondition: Returns (list, true) if found, or (nil, false) otherwise.
func (r *Registry) Get(id string) (*SpellList, bool) {
	if l, ok := r.builtin[id]; ok {
		return l, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.extended[id]
	return l, ok
}

// IDs returns every registered list ID, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.builtin)+len(r.extended))
	for id := range r.builtin {
		out = append(out, id)
	}
	for id := range r.extended {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
