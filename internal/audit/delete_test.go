package audit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refsN(n int) []VersionRef {
	refs := make([]VersionRef, n)
	for i := range refs {
		refs[i] = VersionRef{ProjectID: "p", ServiceID: "s", VersionID: fmt.Sprintf("v%d", i+1)}
	}
	return refs
}

func TestDeleteAll_Empty(t *testing.T) {
	t.Parallel()
	dir := &MockDirectory{}

	done := make(chan DeletionReport)
	go func() { done <- NewDeleter(dir).DeleteAll(context.Background(), nil) }()

	select {
	case report := <-done:
		assert.Equal(t, 0, report.Requested)
		assert.Equal(t, 0, report.SuccessCount)
		assert.Empty(t, report.Failures)
		assert.NoError(t, report.Err())
	case <-time.After(time.Second):
		t.Fatal("DeleteAll with no refs did not return")
	}
	assert.Empty(t, dir.DeletedRefs())
}

func TestDeleteAll_SecondOfThreeFails(t *testing.T) {
	t.Parallel()
	refs := refsN(3)
	boom := errors.New("version is serving traffic")

	// Each ordering makes a different call finish first.
	orderings := map[string]map[string]time.Duration{
		"failure first": {"v1": 20, "v2": 0, "v3": 10},
		"failure last":  {"v1": 0, "v2": 20, "v3": 10},
		"in order":      {"v1": 0, "v2": 10, "v3": 20},
	}

	for name, delays := range orderings {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := &MockDirectory{DeleteVersionFunc: func(_ context.Context, ref VersionRef) error {
				time.Sleep(delays[ref.VersionID] * time.Millisecond)
				if ref.VersionID == "v2" {
					return boom
				}
				return nil
			}}

			report := NewDeleter(dir).DeleteAll(context.Background(), refs)

			assert.Equal(t, 3, report.Requested)
			assert.Equal(t, 2, report.SuccessCount)
			assert.Equal(t, []VersionRef{refs[0], refs[2]}, report.Succeeded)
			require.Len(t, report.Failures, 1)
			assert.Equal(t, refs[1], report.Failures[0].Ref)
			assert.ErrorIs(t, report.Failures[0].Err, boom)
			assert.EqualError(t, report.Err(), "1 of 3 version deletions failed")
			assert.ElementsMatch(t, refs, dir.DeletedRefs())
		})
	}
}

func TestDeleteAll_CountsAlwaysAddUp(t *testing.T) {
	t.Parallel()
	for n := 0; n <= 6; n++ {
		for mask := 0; mask < 1<<n; mask++ {
			refs := refsN(n)
			failing := make(map[string]bool)
			for i := range n {
				if mask&(1<<i) != 0 {
					failing[refs[i].VersionID] = true
				}
			}
			dir := &MockDirectory{DeleteVersionFunc: func(_ context.Context, ref VersionRef) error {
				if failing[ref.VersionID] {
					return errors.New("denied")
				}
				return nil
			}}

			report := NewDeleter(dir, WithConcurrency(2)).DeleteAll(context.Background(), refs)

			assert.Equal(t, n, report.SuccessCount+len(report.Failures), "n=%d mask=%b", n, mask)
			assert.Len(t, report.Failures, len(failing), "n=%d mask=%b", n, mask)
			assert.Len(t, dir.DeletedRefs(), n)
		}
	}
}

func TestDeleteAll_AllFail(t *testing.T) {
	t.Parallel()
	refs := refsN(4)
	dir := &MockDirectory{DeleteVersionFunc: func(_ context.Context, ref VersionRef) error {
		return fmt.Errorf("cannot delete %s", ref)
	}}

	report := NewDeleter(dir).DeleteAll(context.Background(), refs)

	assert.Equal(t, 0, report.SuccessCount)
	assert.Empty(t, report.Succeeded)
	require.Len(t, report.Failures, 4)
	for i, f := range report.Failures {
		assert.Equal(t, refs[i], f.Ref)
		assert.EqualError(t, f.Err, "cannot delete "+refs[i].String())
	}
}

func TestDeleteAll_FailureDoesNotCancelSiblings(t *testing.T) {
	t.Parallel()
	refs := refsN(3)
	dir := &MockDirectory{DeleteVersionFunc: func(ctx context.Context, ref VersionRef) error {
		if ref.VersionID == "v1" {
			return errors.New("fast failure")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}}

	report := NewDeleter(dir).DeleteAll(context.Background(), refs)

	assert.Equal(t, 2, report.SuccessCount)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "v1", report.Failures[0].Ref.VersionID)
}
