package chart

import (
	"runtime"
	"sync"
	"weak"

	"github.com/user/dashboard-charts-go/internal/ui"
)

// Instance is a live chart bound to a canvas surface.
type Instance struct {
	mu        sync.Mutex
	cfg       Config
	library   string
	handle    Handle
	destroyed bool
}

// Kind returns the chart kind the instance was created with.
func (in *Instance) Kind() Kind { return in.cfg.Type }

// Config returns the configuration the instance was created with.
func (in *Instance) Config() Config { return in.cfg }

// Library returns the name of the library that drew the instance.
func (in *Instance) Library() string { return in.library }

// Destroy tears the chart down. Calls after the first are no-ops.
func (in *Instance) Destroy() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.destroyed {
		return
	}
	in.destroyed = true
	in.handle.Destroy()
}

// Destroyed reports whether Destroy has been called.
func (in *Instance) Destroyed() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.destroyed
}

type entry struct {
	instance *Instance
	cleanup  runtime.Cleanup
}

// Registry maps hosts to their live chart without keeping hosts alive. When
// a host is garbage collected its chart is destroyed and the entry dropped.
type Registry struct {
	mu      sync.Mutex
	entries map[weak.Pointer[ui.Element]]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[weak.Pointer[ui.Element]]entry),
	}
}

// Get returns the chart registered for host.
func (r *Registry) Get(host *ui.Element) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[weak.Make(host)]
	return e.instance, ok
}

// Set registers in for host. An existing entry is replaced without being
// destroyed; callers destroy it first via Delete.
func (r *Registry) Set(host *ui.Element, in *Instance) {
	key := weak.Make(host)

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[key]; ok {
		e.instance = in
		r.entries[key] = e
		return
	}
	r.entries[key] = entry{
		instance: in,
		cleanup:  runtime.AddCleanup(host, r.evict, key),
	}
}

// Delete destroys and removes the chart registered for host. It reports
// whether an entry existed.
func (r *Registry) Delete(host *ui.Element) bool {
	key := weak.Make(host)

	r.mu.Lock()
	e, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	e.cleanup.Stop()
	e.instance.Destroy()
	return true
}

// Len returns the number of registered hosts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// evict runs on the runtime cleanup goroutine after a host is collected.
func (r *Registry) evict(key weak.Pointer[ui.Element]) {
	r.mu.Lock()
	e, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	r.mu.Unlock()

	if ok {
		e.instance.Destroy()
	}
}
