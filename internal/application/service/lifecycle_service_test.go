package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/garyjia/speedauth/internal/domain/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 31, 15, 4, 5, 0, time.UTC)

type lifecycleFixture struct {
	svc      *lifecycleServiceImpl
	repo     *mockAuthRepo
	edi      *mockEDIService
	notifier *mockNotifier
	chooser  *scriptedChooser
}

func newLifecycleFixture(draws []int, auths ...*entity.Authorization) *lifecycleFixture {
	f := &lifecycleFixture{
		repo:     newMockAuthRepo(auths...),
		edi:      &mockEDIService{},
		notifier: &mockNotifier{},
		chooser:  &scriptedChooser{draws: draws},
	}
	f.svc = NewLifecycleService(f.repo, f.edi, f.notifier, &mockTxManager{}, f.chooser, &mockLogger{}).(*lifecycleServiceImpl)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func pending(id int64) *entity.Authorization {
	return &entity.Authorization{
		AuthorizationID: id,
		UniqueAuthID:    "AUTH001",
		ApprovalStatus:  workflow.ApprovalYetToSubmit,
		RequestType:     workflow.RequestTypeDraft,
	}
}

func TestLifecycleService_Decide_RandomOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		outcome    int
		reason     int
		wantStatus workflow.ApprovalStatus
		wantSuffix string
	}{
		{"outcome 0 approves", 0, 2, workflow.ApprovalApproved, "approved"},
		{"outcome 1 denies", 1, 0, workflow.ApprovalDenied, "denied"},
		{"outcome 2 needs records", 2, 4, workflow.ApprovalNeedMR, "need mr"},
		{"outcome 3 peer to peer", 3, 1, workflow.ApprovalPeerToPeer, "peer to peer"},
		{"outcome 4 peer to peer", 4, 3, workflow.ApprovalPeerToPeer, "peer to peer"},
		{"outcome 5 peer to peer", 5, 0, workflow.ApprovalPeerToPeer, "peer to peer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLifecycleFixture([]int{tt.outcome, tt.reason}, pending(1))

			result, err := f.svc.Decide(context.Background(), 1)
			require.NoError(t, err)

			wantReason := workflow.Reasons(tt.wantStatus)[tt.reason]
			assert.Equal(t, tt.wantStatus.String(), result.Status)
			assert.Equal(t, wantReason, result.ApprovalReason)
			assert.Equal(t, int64(1), result.AuthorizationID)
			assert.Equal(t, "/data/edi/authorization_edi_1_"+tt.wantSuffix+"_278.edi", result.EDIFilePath)
			assert.False(t, result.AlreadyVerified)
			assert.Equal(t, []int{6, 5}, f.chooser.calls)

			stored := f.repo.store[1]
			assert.Equal(t, tt.wantStatus, stored.ApprovalStatus)
			assert.Equal(t, wantReason, stored.ApprovalReason)
			assert.Equal(t, workflow.RequestTypeSubmitted, stored.RequestType)
			require.NotNil(t, stored.ApprovalDate)
			require.NotNil(t, stored.ApprovalEndDate)
			assert.Equal(t, "2024-01-31", stored.ApprovalDate.String())
			assert.Equal(t, "2024-02-29", stored.ApprovalEndDate.String())

			assert.Equal(t, []string{"1:" + tt.wantSuffix}, f.edi.calls)
			require.Len(t, f.notifier.events, 1)
			assert.Equal(t, string(workflow.ApprovalYetToSubmit), f.notifier.events[0].FromStatus)
			assert.Equal(t, tt.wantStatus.String(), f.notifier.events[0].ToStatus)
		})
	}
}

func TestLifecycleService_Decide_Deterministic(t *testing.T) {
	tests := []struct {
		from       workflow.ApprovalStatus
		wantStatus workflow.ApprovalStatus
		wantReason string
	}{
		{workflow.ApprovalDenied, workflow.ApprovalInProgress, workflow.ReasonAppealInitiated},
		{workflow.ApprovalPeerToPeer, workflow.ApprovalApproved, workflow.ReasonChecksCompleted},
		{workflow.ApprovalNeedMR, workflow.ApprovalApproved, workflow.ReasonChecksCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			auth := pending(7)
			auth.ApprovalStatus = tt.from
			f := newLifecycleFixture(nil, auth)

			result, err := f.svc.Decide(context.Background(), 7)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus.String(), result.Status)
			assert.Equal(t, tt.wantReason, result.ApprovalReason)
			assert.Empty(t, result.EDIFilePath)
			assert.Empty(t, f.chooser.calls, "deterministic transitions never draw")
			assert.Empty(t, f.edi.calls, "no EDI for deterministic transitions")

			stored := f.repo.store[7]
			assert.Equal(t, tt.wantStatus, stored.ApprovalStatus)
			assert.Equal(t, workflow.RequestTypeSubmitted, stored.RequestType)
			require.NotNil(t, stored.AuthorizationStartDate)
			assert.Equal(t, "2024-01-31", stored.AuthorizationStartDate.String())
			assert.Nil(t, stored.ApprovalDate)
			assert.Len(t, f.notifier.events, 1)
		})
	}
}

func TestLifecycleService_Decide_AlreadyVerified(t *testing.T) {
	for _, status := range []workflow.ApprovalStatus{workflow.ApprovalApproved, workflow.ApprovalInProgress, "Cancelled"} {
		t.Run(status.String(), func(t *testing.T) {
			auth := pending(3)
			auth.ApprovalStatus = status
			f := newLifecycleFixture(nil, auth)

			result, err := f.svc.Decide(context.Background(), 3)
			require.NoError(t, err)

			assert.True(t, result.AlreadyVerified)
			assert.Equal(t, StatusAlreadyVerified, result.Status)
			assert.Empty(t, f.repo.updates)
			assert.Empty(t, f.edi.calls)
			assert.Empty(t, f.notifier.events)
			assert.Equal(t, status, f.repo.store[3].ApprovalStatus)
		})
	}
}

func TestLifecycleService_Decide_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newLifecycleFixture(nil)

		_, err := f.svc.Decide(context.Background(), 404)
		assert.ErrorIs(t, err, ErrAuthorizationNotFound)
	})

	t.Run("missing status", func(t *testing.T) {
		auth := pending(2)
		auth.ApprovalStatus = ""
		f := newLifecycleFixture(nil, auth)

		_, err := f.svc.Decide(context.Background(), 2)
		assert.ErrorIs(t, err, workflow.ErrMissingStatus)
		assert.Empty(t, f.repo.updates)
	})

	t.Run("edi failure keeps the decision", func(t *testing.T) {
		f := newLifecycleFixture([]int{0, 0}, pending(1))
		f.edi.generateFunc = func(ctx context.Context, id int64, suffix string) (*GeneratedDocument, error) {
			return nil, errors.New("disk full")
		}

		_, err := f.svc.Decide(context.Background(), 1)
		assert.Error(t, err)
		assert.Equal(t, workflow.ApprovalApproved, f.repo.store[1].ApprovalStatus)
	})

	t.Run("notifier failure is not returned", func(t *testing.T) {
		f := newLifecycleFixture([]int{1, 0}, pending(1))
		f.notifier.err = errors.New("lark down")

		result, err := f.svc.Decide(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Denied", result.Status)
	})
}

func TestLifecycleService_CheckEligibility(t *testing.T) {
	f := newLifecycleFixture([]int{1, 0}, pending(1))
	ctx := context.Background()

	eligible, err := f.svc.CheckEligibility(ctx, 1)
	require.NoError(t, err)
	assert.True(t, eligible)
	assert.Equal(t, workflow.EligibilityEligible, f.repo.store[1].EligibilityStatus)

	eligible, err = f.svc.CheckEligibility(ctx, 1)
	require.NoError(t, err)
	assert.False(t, eligible)
	assert.Equal(t, workflow.EligibilityNotEligible, f.repo.store[1].EligibilityStatus)
	assert.Equal(t, []int{2, 2}, f.chooser.calls)

	_, err = f.svc.CheckEligibility(ctx, 99)
	assert.ErrorIs(t, err, ErrAuthorizationNotFound)
}

func TestLifecycleService_BatchStopsAtFirstMissingID(t *testing.T) {
	f := newLifecycleFixture(nil, pending(1), pending(2))

	err := f.svc.UncheckEligibilityForList(context.Background(), []int64{1, 99, 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthorizationNotFound)
	assert.Equal(t, "Request ID not found: 99", err.Error())
	assert.Equal(t, workflow.EligibilityUnchecked, f.repo.store[1].EligibilityStatus)
	assert.Empty(t, f.repo.store[2].EligibilityStatus)
	assert.Equal(t, []int64{1}, f.repo.updates)
}

func TestLifecycleService_CheckEligibilityForList_PartialBatch(t *testing.T) {
	f := newLifecycleFixture([]int{1, 0}, pending(1), pending(2))

	err := f.svc.CheckEligibilityForList(context.Background(), []int64{1, 2, 999})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthorizationNotFound)
	assert.Equal(t, "Request ID not found: 999", err.Error())
	assert.Equal(t, workflow.EligibilityEligible, f.repo.store[1].EligibilityStatus)
	assert.Equal(t, workflow.EligibilityNotEligible, f.repo.store[2].EligibilityStatus)
	assert.Equal(t, []int64{1, 2}, f.repo.updates)
	assert.Equal(t, []int{2, 2}, f.chooser.calls, "no draw for the missing id")
}

func TestLifecycleService_ProviderValidation(t *testing.T) {
	f := newLifecycleFixture([]int{0, 1, 0}, pending(1), pending(2))
	ctx := context.Background()

	valid, err := f.svc.ValidateProvider(ctx, 1)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, workflow.ValidationInvalid, f.repo.store[1].ValidationStatus)

	require.NoError(t, f.svc.ValidateProviderForList(ctx, []int64{1, 2}))
	assert.Equal(t, workflow.ValidationValid, f.repo.store[1].ValidationStatus)
	assert.Equal(t, workflow.ValidationInvalid, f.repo.store[2].ValidationStatus)

	require.NoError(t, f.svc.InvalidateProviderForList(ctx, []int64{1, 2}))
	assert.Equal(t, workflow.ValidationUnchecked, f.repo.store[1].ValidationStatus)
	assert.Equal(t, workflow.ValidationUnchecked, f.repo.store[2].ValidationStatus)

	assert.Equal(t, workflow.ApprovalYetToSubmit, f.repo.store[1].ApprovalStatus, "validation never touches approval")
}

func TestLifecycleService_ValidateCPT(t *testing.T) {
	t.Run("authorization required", func(t *testing.T) {
		f := newLifecycleFixture([]int{1}, pending(1))

		required, err := f.svc.ValidateCPT(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, required)

		stored := f.repo.store[1]
		assert.Equal(t, workflow.RequestAuthRequired, stored.RequestStatus)
		assert.Equal(t, workflow.ApprovalYetToSubmit, stored.ApprovalStatus)
	})

	t.Run("exempt procedure is approved", func(t *testing.T) {
		f := newLifecycleFixture([]int{0}, pending(1))

		required, err := f.svc.ValidateCPT(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, required)

		stored := f.repo.store[1]
		assert.Equal(t, workflow.RequestAuthNotRequired, stored.RequestStatus)
		assert.Equal(t, workflow.ApprovalApproved, stored.ApprovalStatus)
		assert.Equal(t, workflow.ReasonCPTExempt, stored.ApprovalReason)
	})

	t.Run("reset", func(t *testing.T) {
		auth := pending(1)
		auth.ApprovalStatus = workflow.ApprovalApproved
		auth.ApprovalReason = workflow.ReasonCPTExempt
		auth.RequestStatus = workflow.RequestAuthNotRequired
		f := newLifecycleFixture(nil, auth)

		require.NoError(t, f.svc.ResetCPTForList(context.Background(), []int64{1}))

		stored := f.repo.store[1]
		assert.Equal(t, workflow.ApprovalYetToSubmit, stored.ApprovalStatus)
		assert.Empty(t, stored.ApprovalReason)
		assert.Equal(t, workflow.RequestUnchecked, stored.RequestStatus)
	})
}
