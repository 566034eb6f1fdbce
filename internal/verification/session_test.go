package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetgate/internal/domain"
	domainerrors "vetgate/pkg/domain-errors"
)

func TestCaseSession_BusyGuard(t *testing.T) {
	sess := newCaseSession("subject-1", pendingCase())

	gen, err := sess.begin()
	require.NoError(t, err)

	_, err = sess.begin()
	require.ErrorIs(t, err, ErrBusy)

	sess.end()
	gen2, err := sess.begin()
	require.NoError(t, err)
	assert.Equal(t, gen, gen2, "generation only moves on close, not per operation")
}

func TestCaseSession_CloseInvalidatesGeneration(t *testing.T) {
	sess := newCaseSession("subject-1", pendingCase())

	gen, err := sess.begin()
	require.NoError(t, err)
	sess.Close()

	applied := sess.apply(gen, func(c *domain.VerificationCase) {
		c.TaxID().Status = domain.StatusVerified
	})
	assert.False(t, applied, "results settling after close must be discarded")
	snap := sess.Snapshot()
	assert.Equal(t, domain.StatusPending, snap.TaxID().Status)

	_, err = sess.begin()
	require.Error(t, err)
	assert.Equal(t, domainerrors.CodeNotFound, domainerrors.CodeOf(err))
}

func TestCaseSession_SnapshotIsACopy(t *testing.T) {
	sess := newCaseSession("subject-1", pendingCase())

	snap := sess.Snapshot()
	snap.Documents[0].Status = domain.StatusVerified

	live := sess.Snapshot()
	assert.Equal(t, domain.StatusPending, live.TaxID().Status,
		"mutating a snapshot must not touch the live case")
}

func TestSessions_GetOrCreateBuildsOnce(t *testing.T) {
	reg := NewSessions()
	builds := 0
	build := func() *domain.VerificationCase {
		builds++
		return pendingCase()
	}

	first := reg.GetOrCreate("subject-1", build)
	second := reg.GetOrCreate("subject-1", build)

	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
}

func TestSessions_CloseRemoves(t *testing.T) {
	reg := NewSessions()
	sess := reg.GetOrCreate("subject-1", pendingCase)

	reg.Close("subject-1")

	_, ok := reg.Get("subject-1")
	assert.False(t, ok)
	_, err := sess.begin()
	require.Error(t, err, "the removed session must also be closed")

	// Closing an unknown subject is a no-op.
	reg.Close("subject-2")
}
