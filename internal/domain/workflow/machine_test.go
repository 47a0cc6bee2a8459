package workflow

import (
	"context"
	"errors"
	"testing"
)

func TestApprovalStatus_IsDecidable(t *testing.T) {
	tests := []struct {
		status   ApprovalStatus
		expected bool
	}{
		{ApprovalYetToSubmit, true},
		{ApprovalDenied, true},
		{ApprovalPeerToPeer, true},
		{ApprovalNeedMR, true},
		{ApprovalApproved, false},
		{ApprovalInProgress, false},
		{ApprovalStatus("Cancelled"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsDecidable(); got != tt.expected {
				t.Errorf("IsDecidable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestApprovalStatus_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		status   ApprovalStatus
		expected bool
	}{
		{"known status", ApprovalApproved, true},
		{"lower-case draft status", ApprovalYetToSubmit, true},
		{"unknown status", ApprovalStatus("approved"), false},
		{"empty status", ApprovalStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestApprovalStatus_Suffix(t *testing.T) {
	if got := ApprovalPeerToPeer.Suffix(); got != "peer to peer" {
		t.Errorf("Suffix() = %q, want %q", got, "peer to peer")
	}
	if got := ApprovalNeedMR.Suffix(); got != "need mr" {
		t.Errorf("Suffix() = %q, want %q", got, "need mr")
	}
}

func TestBuilder_ConfigureReturnsSameConfiguration(t *testing.T) {
	b := NewBuilder()
	if b.Configure(ApprovalDenied) != b.Configure(ApprovalDenied) {
		t.Error("Configure() should return the same configuration for the same status")
	}
}

func TestBuilder_PanicsOnUnknownStatus(t *testing.T) {
	t.Run("configure", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Configure() should panic on unknown status")
			}
		}()
		NewBuilder().Configure(ApprovalStatus("bogus"))
	})

	t.Run("build", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Build() should panic on unknown initial status")
			}
		}()
		NewBuilder().Build(ApprovalStatus("bogus"))
	})

	t.Run("permit target", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Permit() should panic on unknown target status")
			}
		}()
		NewBuilder().Configure(ApprovalDenied).Permit(TriggerDecide, ApprovalStatus("bogus"))
	})
}

func TestMachine_Fire(t *testing.T) {
	b := NewBuilder()
	b.Configure(ApprovalDenied).Permit(TriggerDecide, ApprovalInProgress)

	m := b.Build(ApprovalDenied)
	if !m.CanFire(TriggerDecide) {
		t.Fatal("CanFire() should be true for a configured trigger")
	}
	if err := m.Fire(context.Background(), TriggerDecide); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if m.Status() != ApprovalInProgress {
		t.Errorf("Status() = %v, want %v", m.Status(), ApprovalInProgress)
	}
}

func TestMachine_FireWithoutTransition(t *testing.T) {
	m := NewBuilder().Build(ApprovalApproved)

	if m.CanFire(TriggerDecide) {
		t.Error("CanFire() should be false without configuration")
	}
	err := m.Fire(context.Background(), TriggerDecide)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() error = %v, want ErrInvalidTransition", err)
	}
	if m.Status() != ApprovalApproved {
		t.Errorf("Status() changed to %v", m.Status())
	}
}

func TestMachine_GuardsTriedInOrder(t *testing.T) {
	b := NewBuilder()
	b.Configure(ApprovalYetToSubmit).
		PermitIf(TriggerDecide, ApprovalApproved, func(ctx context.Context) bool { return false }).
		PermitIf(TriggerDecide, ApprovalDenied, func(ctx context.Context) bool { return true }).
		Permit(TriggerDecide, ApprovalPeerToPeer)

	m := b.Build(ApprovalYetToSubmit)
	if err := m.Fire(context.Background(), TriggerDecide); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if m.Status() != ApprovalDenied {
		t.Errorf("Status() = %v, want %v", m.Status(), ApprovalDenied)
	}
}

func TestMachine_AllGuardsFail(t *testing.T) {
	b := NewBuilder()
	b.Configure(ApprovalYetToSubmit).
		PermitIf(TriggerDecide, ApprovalApproved, func(ctx context.Context) bool { return false })

	m := b.Build(ApprovalYetToSubmit)
	err := m.Fire(context.Background(), TriggerDecide)
	if !errors.Is(err, ErrGuardFailed) {
		t.Errorf("Fire() error = %v, want ErrGuardFailed", err)
	}
}

func TestBuilder_BuildIsolatesMachines(t *testing.T) {
	b := NewBuilder()
	b.Configure(ApprovalNeedMR).Permit(TriggerDecide, ApprovalApproved)
	m := b.Build(ApprovalNeedMR)

	b.Configure(ApprovalApproved).Permit(TriggerDecide, ApprovalDenied)

	if err := m.Fire(context.Background(), TriggerDecide); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}
	if m.CanFire(TriggerDecide) {
		t.Error("configuration added after Build() leaked into machine")
	}
}
