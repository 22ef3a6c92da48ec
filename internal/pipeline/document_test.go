package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaseintake/internal/model"
)

func record(events *[]Event) Observer {
	return func(e Event) { *events = append(*events, e) }
}

func TestDocument_HappyPath(t *testing.T) {
	var events []Event
	d := NewDocument("lease.pdf", 1024, "application/pdf", record(&events))
	require.Equal(t, StatusPending, d.Status)

	require.NoError(t, d.Advance(StatusUploading, ProgressUploadStarted))
	require.NoError(t, d.Advance(StatusUploading, ProgressUploadSent))
	require.NoError(t, d.Advance(StatusProcessing, ProgressExtracting))
	require.NoError(t, d.Advance(StatusProcessing, ProgressSaving))
	require.NoError(t, d.Complete("lease-1", &model.LeaseRecord{}))

	assert.Equal(t, StatusCompleted, d.Status)
	assert.Equal(t, ProgressDone, d.Progress)
	assert.Empty(t, d.Error)

	got := make([]int, 0, len(events))
	for _, e := range events {
		got = append(got, e.Progress)
		assert.Equal(t, d.ID, e.DocumentID)
	}
	assert.Equal(t, []int{0, 50, 75, 90, 100}, got)
}

func TestDocument_FailFromAnyNonTerminalState(t *testing.T) {
	for _, setup := range []func(d *Document){
		func(d *Document) {},
		func(d *Document) { _ = d.Advance(StatusUploading, 50) },
		func(d *Document) {
			_ = d.Advance(StatusUploading, 50)
			_ = d.Advance(StatusProcessing, 75)
		},
	} {
		d := NewDocument("a.pdf", 1, "", nil)
		setup(d)
		require.NoError(t, d.Fail("Failed to extract text from document"))
		assert.Equal(t, StatusError, d.Status)
		assert.Equal(t, 0, d.Progress)
		assert.Nil(t, d.Lease)
	}
}

func TestDocument_TerminalStatesAreFinal(t *testing.T) {
	d := NewDocument("a.pdf", 1, "", nil)
	require.NoError(t, d.Advance(StatusUploading, 0))
	require.NoError(t, d.Advance(StatusProcessing, 75))
	require.NoError(t, d.Complete("id", &model.LeaseRecord{}))

	assert.ErrorIs(t, d.Fail("late"), ErrIllegalTransition)
	assert.ErrorIs(t, d.Advance(StatusProcessing, 100), ErrIllegalTransition)
	assert.Equal(t, StatusCompleted, d.Status)

	e := NewDocument("b.pdf", 1, "", nil)
	require.NoError(t, e.Fail("boom"))
	assert.ErrorIs(t, e.Complete("id", &model.LeaseRecord{}), ErrIllegalTransition)
	assert.Equal(t, "boom", e.Error)
}

func TestDocument_IllegalMoves(t *testing.T) {
	d := NewDocument("a.pdf", 1, "", nil)
	assert.ErrorIs(t, d.Advance(StatusProcessing, 75), ErrIllegalTransition)
	assert.ErrorIs(t, d.Complete("id", &model.LeaseRecord{}), ErrIllegalTransition)
	assert.ErrorIs(t, d.Advance(StatusError, 0), ErrIllegalTransition)

	require.NoError(t, d.Advance(StatusUploading, 50))
	assert.ErrorIs(t, d.Advance(StatusUploading, 10), ErrIllegalTransition, "progress never goes backwards")
	assert.ErrorIs(t, d.Advance(StatusPending, 50), ErrIllegalTransition)
	assert.ErrorIs(t, d.Complete("id", nil), ErrIllegalTransition)
}

func TestDocument_FailDefaultsMessage(t *testing.T) {
	d := NewDocument("a.pdf", 1, "", nil)
	require.NoError(t, d.Fail(""))
	assert.NotEmpty(t, d.Error)
}
