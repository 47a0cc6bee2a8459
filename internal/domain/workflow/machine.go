package workflow

import (
	"context"
	"fmt"
)

// Guard decides whether a candidate transition applies
type Guard func(ctx context.Context) bool

// Machine tracks one approval status and applies configured transitions to it
type Machine interface {
	// Status returns the current status
	Status() ApprovalStatus

	// CanFire returns true if any transition is configured for the trigger in the current status
	CanFire(trigger Trigger) bool

	// Fire applies the first transition whose guard passes
	Fire(ctx context.Context, trigger Trigger) error
}

// Builder collects transitions and produces machines
type Builder interface {
	// Configure returns the transition set for a status
	Configure(status ApprovalStatus) Configuration

	// Build returns a machine positioned at initial
	Build(initial ApprovalStatus) Machine
}

// Configuration registers transitions out of one status.
// Candidates for the same trigger are tried in registration order.
type Configuration interface {
	Permit(trigger Trigger, to ApprovalStatus) Configuration
	PermitIf(trigger Trigger, to ApprovalStatus, guard Guard) Configuration
}

type transition struct {
	to    ApprovalStatus
	guard Guard
}

type configuration struct {
	transitions map[Trigger][]transition
}

type builder struct {
	configs map[ApprovalStatus]*configuration
}

type machine struct {
	current ApprovalStatus
	configs map[ApprovalStatus]*configuration
}

// NewBuilder creates an empty builder
func NewBuilder() Builder {
	return &builder{configs: make(map[ApprovalStatus]*configuration)}
}

func (b *builder) Configure(status ApprovalStatus) Configuration {
	if !status.IsValid() {
		panic(fmt.Sprintf("invalid approval status: %q", status))
	}

	cfg, ok := b.configs[status]
	if !ok {
		cfg = &configuration{transitions: make(map[Trigger][]transition)}
		b.configs[status] = cfg
	}
	return cfg
}

// Build copies the configured transitions so later Configure calls do not leak into existing machines
func (b *builder) Build(initial ApprovalStatus) Machine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("invalid initial approval status: %q", initial))
	}

	configs := make(map[ApprovalStatus]*configuration, len(b.configs))
	for status, cfg := range b.configs {
		transitions := make(map[Trigger][]transition, len(cfg.transitions))
		for trigger, ts := range cfg.transitions {
			transitions[trigger] = append([]transition(nil), ts...)
		}
		configs[status] = &configuration{transitions: transitions}
	}

	return &machine{current: initial, configs: configs}
}

func (c *configuration) Permit(trigger Trigger, to ApprovalStatus) Configuration {
	return c.PermitIf(trigger, to, nil)
}

func (c *configuration) PermitIf(trigger Trigger, to ApprovalStatus, guard Guard) Configuration {
	if !to.IsValid() {
		panic(fmt.Sprintf("invalid target approval status: %q", to))
	}
	c.transitions[trigger] = append(c.transitions[trigger], transition{to: to, guard: guard})
	return c
}

func (m *machine) Status() ApprovalStatus {
	return m.current
}

func (m *machine) CanFire(trigger Trigger) bool {
	cfg, ok := m.configs[m.current]
	if !ok {
		return false
	}
	return len(cfg.transitions[trigger]) > 0
}

func (m *machine) Fire(ctx context.Context, trigger Trigger) error {
	cfg, ok := m.configs[m.current]
	if !ok || len(cfg.transitions[trigger]) == 0 {
		return fmt.Errorf("%w: %s from %q", ErrInvalidTransition, trigger, m.current)
	}

	for _, t := range cfg.transitions[trigger] {
		if t.guard == nil || t.guard(ctx) {
			m.current = t.to
			return nil
		}
	}

	return fmt.Errorf("%w: %s from %q", ErrGuardFailed, trigger, m.current)
}
