package workflow

import (
	"context"
	"sync"
)

// DecisionOutcomes is the number of outcomes drawn when deciding a fresh request.
// Outcomes 3, 4 and 5 all land on Peer to Peer.
const DecisionOutcomes = 6

type outcomeKey struct{}

func withOutcome(ctx context.Context, outcome int) context.Context {
	return context.WithValue(ctx, outcomeKey{}, outcome)
}

func outcomeIs(n int) Guard {
	return func(ctx context.Context) bool {
		v, ok := ctx.Value(outcomeKey{}).(int)
		return ok && v == n
	}
}

// approvalTransitions is built on first use
var approvalTransitions = sync.OnceValue(newApprovalTransitions)

func newApprovalTransitions() Builder {
	b := NewBuilder()

	b.Configure(ApprovalYetToSubmit).
		PermitIf(TriggerDecide, ApprovalApproved, outcomeIs(0)).
		PermitIf(TriggerDecide, ApprovalDenied, outcomeIs(1)).
		PermitIf(TriggerDecide, ApprovalNeedMR, outcomeIs(2)).
		Permit(TriggerDecide, ApprovalPeerToPeer)

	b.Configure(ApprovalDenied).
		Permit(TriggerDecide, ApprovalInProgress)

	b.Configure(ApprovalPeerToPeer).
		Permit(TriggerDecide, ApprovalApproved)

	b.Configure(ApprovalNeedMR).
		Permit(TriggerDecide, ApprovalApproved)

	return b
}

// fixedReasons covers the transitions that never draw a reason
var fixedReasons = map[ApprovalStatus]string{
	ApprovalInProgress: ReasonAppealInitiated,
	ApprovalApproved:   ReasonChecksCompleted,
}

// Decision is the result of firing TriggerDecide
type Decision struct {
	From   ApprovalStatus
	To     ApprovalStatus
	Reason string

	// Randomized is set when the outcome was drawn, i.e. the request was never decided before.
	// Only randomized decisions stamp approval dates and emit an EDI document.
	Randomized bool
}

// Decide applies the approve/reject decision to current
func Decide(ctx context.Context, current ApprovalStatus, chooser Chooser) (Decision, error) {
	if current == "" {
		return Decision{}, ErrMissingStatus
	}
	if !current.IsDecidable() {
		return Decision{From: current, To: current}, ErrAlreadyDecided
	}

	randomized := current == ApprovalYetToSubmit
	if randomized {
		ctx = withOutcome(ctx, chooser.Intn(DecisionOutcomes))
	}

	m := approvalTransitions().Build(current)
	if err := m.Fire(ctx, TriggerDecide); err != nil {
		return Decision{}, err
	}

	d := Decision{From: current, To: m.Status(), Randomized: randomized}
	if randomized {
		pool := decisionReasons[d.To]
		d.Reason = pool[chooser.Intn(len(pool))]
	} else {
		d.Reason = fixedReasons[d.To]
	}

	return d, nil
}
