// Package views composes per-wall, per-gallery and per-painter request
// listings for the dashboard. All reads tolerate partial failure: one
// unreadable entity is logged and dropped, never allowed to empty a listing.
package views

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/streetcanvas/streetcanvas/src/chain"
)

// Bound on concurrent entity reads while hydrating a listing.
const maxConcurrentReads = 8

// Reader is the slice of the chain client the views fan out over.
type Reader interface {
	GetWall(ctx context.Context, wallID uint64) (*chain.Wall, error)
	GetWallsByOwner(ctx context.Context, owner string) ([]*chain.Wall, error)
	GetGallery(ctx context.Context, galleryID uint64) (*chain.Gallery, error)
	GetGalleryWalls(ctx context.Context, galleryID uint64) ([]uint64, error)
	GetPendingWallRequests(ctx context.Context, galleryID uint64) ([]chain.WallToGalleryRequest, error)
	GetPaintingRequest(ctx context.Context, requestID uint64) (*chain.PaintingRequest, error)
	GetWallRequests(ctx context.Context, wallID uint64) ([]uint64, error)
	GetPainterPendingRequests(ctx context.Context, painter string) ([]uint64, error)
	GetPainterAcceptedRequests(ctx context.Context, painter string) ([]uint64, error)
}

// RequestBuckets groups painting requests by lifecycle state, most recent
// first within each bucket.
type RequestBuckets struct {
	Pending   []chain.PaintingRequest `json:"pending"`
	InProcess []chain.PaintingRequest `json:"inProcess"`
	Completed []chain.PaintingRequest `json:"completed"`
}

// GalleryOverview is the canonical merged gallery shape: the gallery, its
// member walls, pending wall admissions and bucketed painting requests.
type GalleryOverview struct {
	Gallery      chain.Gallery                `json:"gallery"`
	Walls        []chain.Wall                 `json:"walls"`
	WallRequests []chain.WallToGalleryRequest `json:"wallRequests"`
	Paintings    RequestBuckets               `json:"paintings"`
}

// WallWithRequests pairs an owned wall with its request buckets.
type WallWithRequests struct {
	Wall     chain.Wall     `json:"wall"`
	Requests RequestBuckets `json:"requests"`
}

type Views struct {
	reader Reader
}

func New(reader Reader) *Views {
	return &Views{reader: reader}
}

// hydrateRequests fetches request snapshots with bounded concurrency.
// Failures and absent ids are dropped; results keep slot order before
// bucketing re-sorts them.
func (v *Views) hydrateRequests(ctx context.Context, requestIDs []uint64) []chain.PaintingRequest {
	results := make([]*chain.PaintingRequest, len(requestIDs))
	sem := make(chan struct{}, maxConcurrentReads)
	var wg sync.WaitGroup

	for i, id := range requestIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(slot int, requestID uint64) {
			defer wg.Done()
			defer func() { <-sem }()
			req, err := v.reader.GetPaintingRequest(ctx, requestID)
			if err != nil {
				log.Printf("views: request %d: %v", requestID, err)
				return
			}
			results[slot] = req
		}(i, id)
	}
	wg.Wait()

	reqs := make([]chain.PaintingRequest, 0, len(requestIDs))
	for _, req := range results {
		if req != nil {
			reqs = append(reqs, *req)
		}
	}
	return reqs
}

func bucket(reqs []chain.PaintingRequest) RequestBuckets {
	var b RequestBuckets
	for _, req := range reqs {
		switch req.Status {
		case chain.StatusRequested:
			b.Pending = append(b.Pending, req)
		case chain.StatusInProcess:
			b.InProcess = append(b.InProcess, req)
		case chain.StatusCompleted:
			b.Completed = append(b.Completed, req)
		}
	}
	byNewest := func(reqs []chain.PaintingRequest) {
		sort.Slice(reqs, func(i, j int) bool { return reqs[i].Timestamp > reqs[j].Timestamp })
	}
	byNewest(b.Pending)
	byNewest(b.InProcess)
	byNewest(b.Completed)
	return b
}

// WallRequests returns the bucketed requests for one wall.
func (v *Views) WallRequests(ctx context.Context, wallID uint64) (RequestBuckets, error) {
	requestIDs, err := v.reader.GetWallRequests(ctx, wallID)
	if err != nil {
		return RequestBuckets{}, err
	}
	return bucket(v.hydrateRequests(ctx, requestIDs)), nil
}

// GalleryRequests fans out over a gallery's member walls. A wall whose index
// read fails is logged and skipped.
func (v *Views) GalleryRequests(ctx context.Context, galleryID uint64) (RequestBuckets, error) {
	wallIDs, err := v.reader.GetGalleryWalls(ctx, galleryID)
	if err != nil {
		return RequestBuckets{}, err
	}

	perWall := make([][]uint64, len(wallIDs))
	sem := make(chan struct{}, maxConcurrentReads)
	var wg sync.WaitGroup
	for i, id := range wallIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(slot int, wallID uint64) {
			defer wg.Done()
			defer func() { <-sem }()
			requestIDs, err := v.reader.GetWallRequests(ctx, wallID)
			if err != nil {
				log.Printf("views: wall %d requests: %v", wallID, err)
				return
			}
			perWall[slot] = requestIDs
		}(i, id)
	}
	wg.Wait()

	var all []uint64
	for _, requestIDs := range perWall {
		all = append(all, requestIDs...)
	}
	return bucket(v.hydrateRequests(ctx, all)), nil
}

// PainterRequests returns the caller's own requests across all walls.
func (v *Views) PainterRequests(ctx context.Context, painter string) (RequestBuckets, error) {
	pending, err := v.reader.GetPainterPendingRequests(ctx, painter)
	if err != nil {
		return RequestBuckets{}, err
	}
	accepted, err := v.reader.GetPainterAcceptedRequests(ctx, painter)
	if err != nil {
		log.Printf("views: painter %s accepted: %v", painter, err)
	}

	seen := make(map[uint64]struct{}, len(pending)+len(accepted))
	var all []uint64
	for _, id := range append(pending, accepted...) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		all = append(all, id)
	}
	return bucket(v.hydrateRequests(ctx, all)), nil
}

// GalleryOverview returns the merged gallery view, or (nil, nil) when the
// gallery does not exist.
func (v *Views) GalleryOverview(ctx context.Context, galleryID uint64) (*GalleryOverview, error) {
	gallery, err := v.reader.GetGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}
	if gallery == nil {
		return nil, nil
	}

	overview := &GalleryOverview{Gallery: *gallery}

	wallIDs, err := v.reader.GetGalleryWalls(ctx, galleryID)
	if err != nil {
		log.Printf("views: gallery %d walls: %v", galleryID, err)
		wallIDs = nil
	}
	for _, id := range wallIDs {
		w, err := v.reader.GetWall(ctx, id)
		if err != nil {
			log.Printf("views: wall %d: %v", id, err)
			continue
		}
		if w != nil {
			overview.Walls = append(overview.Walls, *w)
		}
	}

	if pending, err := v.reader.GetPendingWallRequests(ctx, galleryID); err != nil {
		log.Printf("views: gallery %d pending walls: %v", galleryID, err)
	} else {
		overview.WallRequests = pending
	}

	paintings, err := v.GalleryRequests(ctx, galleryID)
	if err != nil {
		log.Printf("views: gallery %d paintings: %v", galleryID, err)
	} else {
		overview.Paintings = paintings
	}
	return overview, nil
}

// OwnerDashboard returns every wall owned by addr with its request buckets.
func (v *Views) OwnerDashboard(ctx context.Context, owner string) ([]WallWithRequests, error) {
	walls, err := v.reader.GetWallsByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	entries := make([]WallWithRequests, 0, len(walls))
	for _, w := range walls {
		buckets, err := v.WallRequests(ctx, w.ID)
		if err != nil {
			log.Printf("views: wall %d requests: %v", w.ID, err)
			buckets = RequestBuckets{}
		}
		entries = append(entries, WallWithRequests{Wall: *w, Requests: buckets})
	}
	return entries, nil
}
