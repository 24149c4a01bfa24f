package chart

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

type Slot string

const (
	SlotCategory Slot = "categoryChart"
	SlotProgram  Slot = "prodiChart"
	SlotSemester Slot = "semesterChart"
	SlotGauge    Slot = "gaugeChart"
	SlotTrend    Slot = "trendChart"
)

var AllSlots = []Slot{SlotCategory, SlotProgram, SlotSemester, SlotGauge, SlotTrend}

// Handle is one rendered chart living in a slot.
type Handle struct {
	ID        uuid.UUID `json:"id"`
	Slot      Slot      `json:"slot"`
	Gen       uint64    `json:"gen"`
	Config    Config    `json:"config"`
	destroyed atomic.Bool
}

func (h *Handle) Destroyed() bool { return h.destroyed.Load() }

// Registry keeps at most one live handle per slot. Loads are numbered by
// Begin; a result from a load older than the newest started one is dropped.
type Registry struct {
	mu        sync.Mutex
	live      map[Slot]*Handle
	latest    uint64
	onDestroy func(*Handle)
}

func NewRegistry(onDestroy func(*Handle)) *Registry {
	return &Registry{
		live:      make(map[Slot]*Handle),
		onDestroy: onDestroy,
	}
}

// Begin starts a load and returns its generation.
func (r *Registry) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest++
	return r.latest
}

func (r *Registry) Stale(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen < r.latest
}

// Replace destroys the slot's current handle and installs a new one in a
// single critical section. It reports false, and changes nothing, for a
// stale generation.
func (r *Registry) Replace(slot Slot, gen uint64, cfg Config) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen < r.latest {
		return nil, false
	}
	r.destroyLocked(slot)
	h := &Handle{ID: uuid.New(), Slot: slot, Gen: gen, Config: cfg}
	r.live[slot] = h
	return h, true
}

func (r *Registry) Get(slot Slot) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live[slot]
}

// Release destroys whatever lives in slot.
func (r *Registry) Release(slot Slot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyLocked(slot)
}

func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

func (r *Registry) destroyLocked(slot Slot) {
	old, ok := r.live[slot]
	if !ok {
		return
	}
	old.destroyed.Store(true)
	delete(r.live, slot)
	if r.onDestroy != nil {
		r.onDestroy(old)
	}
}
