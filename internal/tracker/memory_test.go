package tracker

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/umalmyha/dataverse/internal/odata"
)

func TestMemoryTracker(t *testing.T) {
	ctx := context.Background()
	trk := NewMemoryTracker()

	t.Log("refs are kept in tracking order per run")
	{
		require.NoError(t, trk.Track(ctx, "run-1", Ref{Kind: odata.KindAccount, ID: "a1"}))
		require.NoError(t, trk.Track(ctx, "run-1", Ref{Kind: odata.KindContact, ID: "c1"}))
		require.NoError(t, trk.Track(ctx, "run-2", Ref{Kind: odata.KindAccount, ID: "a2"}))

		refs, err := trk.Refs(ctx, "run-1")
		require.NoError(t, err)
		require.Equal(t, []Ref{{Kind: odata.KindAccount, ID: "a1"}, {Kind: odata.KindContact, ID: "c1"}}, refs)

		runs, err := trk.Runs(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"run-1", "run-2"}, runs)
	}

	t.Log("forgotten run has no refs")
	{
		require.NoError(t, trk.Forget(ctx, "run-1"))

		refs, err := trk.Refs(ctx, "run-1")
		require.NoError(t, err)
		require.Empty(t, refs)

		runs, err := trk.Runs(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"run-2"}, runs)
	}
}

func TestMemoryTrackerConcurrentTrack(t *testing.T) {
	ctx := context.Background()
	trk := NewMemoryTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = trk.Track(ctx, "run", Ref{Kind: odata.KindIncident, ID: "i"})
		}()
	}
	wg.Wait()

	refs, err := trk.Refs(ctx, "run")
	require.NoError(t, err)
	require.Len(t, refs, 50)
}
