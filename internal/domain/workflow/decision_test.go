package workflow

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedChooser returns queued values in order
type scriptedChooser struct {
	values []int
	calls  []int
}

func (s *scriptedChooser) Intn(n int) int {
	s.calls = append(s.calls, n)
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

type seededChooser struct {
	r *rand.Rand
}

func (s seededChooser) Intn(n int) int {
	return s.r.IntN(n)
}

func TestDecide_FreshRequestOutcomes(t *testing.T) {
	tests := []struct {
		outcome int
		want    ApprovalStatus
	}{
		{0, ApprovalApproved},
		{1, ApprovalDenied},
		{2, ApprovalNeedMR},
		{3, ApprovalPeerToPeer},
		{4, ApprovalPeerToPeer},
		{5, ApprovalPeerToPeer},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			chooser := &scriptedChooser{values: []int{tt.outcome, 3}}

			d, err := Decide(context.Background(), ApprovalYetToSubmit, chooser)

			require.NoError(t, err)
			assert.Equal(t, tt.want, d.To)
			assert.True(t, d.Randomized)
			assert.Equal(t, Reasons(tt.want)[3], d.Reason)
			assert.Equal(t, []int{DecisionOutcomes, 5}, chooser.calls)
		})
	}
}

func TestDecide_DeterministicTransitions(t *testing.T) {
	tests := []struct {
		from       ApprovalStatus
		wantTo     ApprovalStatus
		wantReason string
	}{
		{ApprovalDenied, ApprovalInProgress, ReasonAppealInitiated},
		{ApprovalPeerToPeer, ApprovalApproved, ReasonChecksCompleted},
		{ApprovalNeedMR, ApprovalApproved, ReasonChecksCompleted},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			chooser := &scriptedChooser{}

			d, err := Decide(context.Background(), tt.from, chooser)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTo, d.To)
			assert.Equal(t, tt.wantReason, d.Reason)
			assert.False(t, d.Randomized)
			assert.Empty(t, chooser.calls, "deterministic transitions must not draw")
		})
	}
}

func TestDecide_AlreadyVerified(t *testing.T) {
	for _, status := range []ApprovalStatus{ApprovalApproved, ApprovalInProgress, "Cancelled"} {
		t.Run(string(status), func(t *testing.T) {
			d, err := Decide(context.Background(), status, &scriptedChooser{})

			assert.ErrorIs(t, err, ErrAlreadyDecided)
			assert.Equal(t, status, d.To)
		})
	}
}

func TestDecide_MissingStatus(t *testing.T) {
	_, err := Decide(context.Background(), "", &scriptedChooser{})
	assert.ErrorIs(t, err, ErrMissingStatus)
}

func TestDecide_Distribution(t *testing.T) {
	const trials = 60000
	chooser := seededChooser{r: rand.New(rand.NewPCG(20241018, 7))}
	counts := make(map[ApprovalStatus]int)

	for i := 0; i < trials; i++ {
		d, err := Decide(context.Background(), ApprovalYetToSubmit, chooser)
		require.NoError(t, err)
		assert.Contains(t, Reasons(d.To), d.Reason)
		counts[d.To]++
	}

	require.Len(t, counts, 4)
	for _, status := range []ApprovalStatus{ApprovalApproved, ApprovalDenied, ApprovalNeedMR} {
		share := float64(counts[status]) / trials
		assert.InDelta(t, 1.0/6, share, 0.02, "share of %s", status)
	}
	assert.InDelta(t, 0.5, float64(counts[ApprovalPeerToPeer])/trials, 0.02)
}

func TestCoinFlip(t *testing.T) {
	assert.True(t, CoinFlip(&scriptedChooser{values: []int{1}}))
	assert.False(t, CoinFlip(&scriptedChooser{values: []int{0}}))
}

func TestReasonPools(t *testing.T) {
	for _, status := range []ApprovalStatus{ApprovalApproved, ApprovalDenied, ApprovalNeedMR, ApprovalPeerToPeer} {
		assert.Len(t, Reasons(status), 5, "reason pool for %s", status)
	}
	assert.Empty(t, Reasons(ApprovalInProgress))
}

func TestApprovalTransitions_CoverDecidableStatuses(t *testing.T) {
	var b Builder
	require.NotPanics(t, func() { b = approvalTransitions() })
	assert.Same(t, b, approvalTransitions())

	for _, s := range []ApprovalStatus{ApprovalYetToSubmit, ApprovalDenied, ApprovalPeerToPeer, ApprovalNeedMR} {
		assert.True(t, s.IsDecidable(), s)
		assert.True(t, b.Build(s).CanFire(TriggerDecide), s)
	}
	for _, s := range []ApprovalStatus{ApprovalApproved, ApprovalInProgress} {
		assert.False(t, s.IsDecidable(), s)
		assert.False(t, b.Build(s).CanFire(TriggerDecide), s)
	}
}
