package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetcanvas/streetcanvas/src/chain"
)

type fakeReader struct {
	walls        map[uint64]*chain.Wall
	wallsByOwner map[string][]*chain.Wall
	galleries    map[uint64]*chain.Gallery
	galleryWalls map[uint64][]uint64
	pendingWalls map[uint64][]chain.WallToGalleryRequest
	requests     map[uint64]*chain.PaintingRequest
	wallRequests map[uint64][]uint64
	pending      map[string][]uint64
	accepted     map[string][]uint64

	// failRequests lists request ids whose hydration read errors out.
	failRequests map[uint64]bool
}

func (f *fakeReader) GetWall(_ context.Context, id uint64) (*chain.Wall, error) {
	return f.walls[id], nil
}

func (f *fakeReader) GetWallsByOwner(_ context.Context, owner string) ([]*chain.Wall, error) {
	return f.wallsByOwner[owner], nil
}

func (f *fakeReader) GetGallery(_ context.Context, id uint64) (*chain.Gallery, error) {
	return f.galleries[id], nil
}

func (f *fakeReader) GetGalleryWalls(_ context.Context, id uint64) ([]uint64, error) {
	return f.galleryWalls[id], nil
}

func (f *fakeReader) GetPendingWallRequests(_ context.Context, id uint64) ([]chain.WallToGalleryRequest, error) {
	return f.pendingWalls[id], nil
}

func (f *fakeReader) GetPaintingRequest(_ context.Context, id uint64) (*chain.PaintingRequest, error) {
	if f.failRequests[id] {
		return nil, errors.New("read timeout")
	}
	return f.requests[id], nil
}

func (f *fakeReader) GetWallRequests(_ context.Context, id uint64) ([]uint64, error) {
	return f.wallRequests[id], nil
}

func (f *fakeReader) GetPainterPendingRequests(_ context.Context, painter string) ([]uint64, error) {
	return f.pending[painter], nil
}

func (f *fakeReader) GetPainterAcceptedRequests(_ context.Context, painter string) ([]uint64, error) {
	return f.accepted[painter], nil
}

func req(id, wallID uint64, status chain.PaintingStatus, ts int64) *chain.PaintingRequest {
	return &chain.PaintingRequest{
		RequestID: id,
		WallID:    wallID,
		Painter:   "0xabc",
		Status:    status,
		Timestamp: ts,
	}
}

func TestWallRequestsBucketsAndSorts(t *testing.T) {
	reader := &fakeReader{
		wallRequests: map[uint64][]uint64{7: {1, 2, 3, 4}},
		requests: map[uint64]*chain.PaintingRequest{
			1: req(1, 7, chain.StatusRequested, 100),
			2: req(2, 7, chain.StatusRequested, 300),
			3: req(3, 7, chain.StatusInProcess, 200),
			4: req(4, 7, chain.StatusCompleted, 50),
		},
	}
	v := New(reader)

	buckets, err := v.WallRequests(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, buckets.Pending, 2)
	assert.Equal(t, uint64(2), buckets.Pending[0].RequestID, "newest first")
	assert.Equal(t, uint64(1), buckets.Pending[1].RequestID)
	require.Len(t, buckets.InProcess, 1)
	require.Len(t, buckets.Completed, 1)
}

func TestWallRequestsToleratesFailedReads(t *testing.T) {
	reader := &fakeReader{
		wallRequests: map[uint64][]uint64{7: {1, 2, 3}},
		requests: map[uint64]*chain.PaintingRequest{
			1: req(1, 7, chain.StatusRequested, 1),
			2: req(2, 7, chain.StatusRequested, 2),
			3: req(3, 7, chain.StatusRequested, 3),
		},
		failRequests: map[uint64]bool{2: true},
	}
	v := New(reader)

	buckets, err := v.WallRequests(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, buckets.Pending, 2)
	for _, r := range buckets.Pending {
		assert.NotEqual(t, uint64(2), r.RequestID)
	}
}

func TestGalleryRequestsSpanMemberWalls(t *testing.T) {
	reader := &fakeReader{
		galleryWalls: map[uint64][]uint64{5: {10, 11}},
		wallRequests: map[uint64][]uint64{10: {1}, 11: {2}},
		requests: map[uint64]*chain.PaintingRequest{
			1: req(1, 10, chain.StatusRequested, 1),
			2: req(2, 11, chain.StatusInProcess, 2),
		},
	}
	v := New(reader)

	buckets, err := v.GalleryRequests(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, buckets.Pending, 1)
	assert.Len(t, buckets.InProcess, 1)
}

func TestPainterRequestsDeduplicates(t *testing.T) {
	reader := &fakeReader{
		pending:  map[string][]uint64{"0xabc": {1, 2}},
		accepted: map[string][]uint64{"0xabc": {2, 3}},
		requests: map[uint64]*chain.PaintingRequest{
			1: req(1, 7, chain.StatusRequested, 1),
			2: req(2, 7, chain.StatusInProcess, 2),
			3: req(3, 7, chain.StatusCompleted, 3),
		},
	}
	v := New(reader)

	buckets, err := v.PainterRequests(context.Background(), "0xabc")
	require.NoError(t, err)
	total := len(buckets.Pending) + len(buckets.InProcess) + len(buckets.Completed)
	assert.Equal(t, 3, total)
}

func TestGalleryOverviewAbsent(t *testing.T) {
	v := New(&fakeReader{})
	overview, err := v.GalleryOverview(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, overview)
}

func TestGalleryOverviewMergesSections(t *testing.T) {
	reader := &fakeReader{
		galleries: map[uint64]*chain.Gallery{
			5: {ID: 5, Name: "East Side", Owner: "0xdef", IsActive: true},
		},
		galleryWalls: map[uint64][]uint64{5: {10}},
		walls: map[uint64]*chain.Wall{
			10: {ID: 10, Owner: "0xabc", IsInGallery: true, GalleryID: 5},
		},
		pendingWalls: map[uint64][]chain.WallToGalleryRequest{
			5: {{WallID: 11, WallOwner: "0xabc", Pending: true}},
		},
		wallRequests: map[uint64][]uint64{10: {1}},
		requests: map[uint64]*chain.PaintingRequest{
			1: req(1, 10, chain.StatusRequested, 1),
		},
	}
	v := New(reader)

	overview, err := v.GalleryOverview(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, overview)
	assert.Equal(t, "East Side", overview.Gallery.Name)
	require.Len(t, overview.Walls, 1)
	require.Len(t, overview.WallRequests, 1)
	assert.Len(t, overview.Paintings.Pending, 1)
}

func TestOwnerDashboard(t *testing.T) {
	reader := &fakeReader{
		wallsByOwner: map[string][]*chain.Wall{
			"0xabc": {{ID: 10, Owner: "0xabc"}, {ID: 11, Owner: "0xabc"}},
		},
		wallRequests: map[uint64][]uint64{10: {1}},
		requests: map[uint64]*chain.PaintingRequest{
			1: req(1, 10, chain.StatusRequested, 1),
		},
	}
	v := New(reader)

	entries, err := v.OwnerDashboard(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Len(t, entries[0].Requests.Pending, 1)
	assert.Empty(t, entries[1].Requests.Pending)
}
