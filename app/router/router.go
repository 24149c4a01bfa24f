// Package router switches the admin page between its sections. Exactly one
// section is active at a time and each section loads its data when entered.
package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionData      Section = "data"
	SectionQuestions Section = "questions"
	SectionCharts    Section = "charts"
)

var ErrUnknownSection = errors.New("unknown section")

// EnterFunc runs when its section becomes active.
type EnterFunc func(ctx context.Context) error

// SectionView is how one section and its nav item are drawn.
type SectionView struct {
	Section Section
	Title   string
	Visible bool
	Active  bool
	NavLit  bool
}

type Router struct {
	order  []Section
	titles map[Section]string
	log    *zap.Logger

	mu     sync.Mutex
	hooks  map[Section]EnterFunc
	active Section
}

// New builds a router over the given sections. initial may be empty, in
// which case no section is active until the first Activate.
func New(order []Section, titles map[Section]string, initial Section, log *zap.Logger) (*Router, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{
		order:  append([]Section(nil), order...),
		titles: titles,
		log:    log,
		hooks:  make(map[Section]EnterFunc),
	}
	if initial != "" && !r.Known(initial) {
		return nil, fmt.Errorf("initial %q: %w", initial, ErrUnknownSection)
	}
	r.active = initial
	return r, nil
}

func (r *Router) Known(s Section) bool {
	for _, o := range r.order {
		if o == s {
			return true
		}
	}
	return false
}

// Parse maps a path segment onto a configured section.
func (r *Router) Parse(raw string) (Section, bool) {
	s := Section(raw)
	return s, r.Known(s)
}

func (r *Router) OnEnter(s Section, fn EnterFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[s] = fn
}

func (r *Router) Active() Section {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Activate makes target the only active section. Its enter hook runs only
// when target was not already active; entered reports whether it ran.
func (r *Router) Activate(ctx context.Context, target Section) (entered bool, err error) {
	if !r.Known(target) {
		return false, fmt.Errorf("%q: %w", target, ErrUnknownSection)
	}

	r.mu.Lock()
	prev := r.active
	r.active = target
	hook := r.hooks[target]
	r.mu.Unlock()

	if prev == target {
		return false, nil
	}
	r.log.Debug("section entered", zap.String("from", string(prev)), zap.String("to", string(target)))
	if hook == nil {
		return true, nil
	}
	return true, hook(ctx)
}

// Reload reruns the active section's hook, e.g. for a refresh button.
func (r *Router) Reload(ctx context.Context) error {
	r.mu.Lock()
	hook := r.hooks[r.active]
	r.mu.Unlock()
	if hook == nil {
		return nil
	}
	return hook(ctx)
}

func (r *Router) Views() []SectionView {
	r.mu.Lock()
	active := r.active
	r.mu.Unlock()

	out := make([]SectionView, len(r.order))
	for i, s := range r.order {
		on := s == active
		title := r.titles[s]
		if title == "" {
			title = string(s)
		}
		out[i] = SectionView{Section: s, Title: title, Visible: on, Active: on, NavLit: on}
	}
	return out
}
