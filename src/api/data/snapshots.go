package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streetcanvas/streetcanvas/src/chain"
)

// Snapshots is a short-lived cache of normalized entity snapshots, keyed by
// entity id. Mutation paths invalidate the affected ids; the next read
// refetches from the ledger. A cache miss or redis error is never an error
// for the caller, only a forced refetch.
type Snapshots struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSnapshots(rdb *redis.Client, ttl time.Duration) *Snapshots {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Snapshots{rdb: rdb, ttl: ttl}
}

func snapshotKey(kind string, id uint64) string {
	return fmt.Sprintf("snapshot:%s:%d", kind, id)
}

func (s *Snapshots) get(ctx context.Context, key string, out interface{}) bool {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("snapshots: get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("snapshots: decode %s: %v", key, err)
		return false
	}
	return true
}

func (s *Snapshots) put(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		log.Printf("snapshots: set %s: %v", key, err)
	}
}

func (s *Snapshots) drop(ctx context.Context, key string) {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("snapshots: del %s: %v", key, err)
	}
}

func (s *Snapshots) GetWall(ctx context.Context, id uint64) (*chain.Wall, bool) {
	var w chain.Wall
	if !s.get(ctx, snapshotKey("wall", id), &w) {
		return nil, false
	}
	return &w, true
}

func (s *Snapshots) PutWall(ctx context.Context, w *chain.Wall) {
	if w != nil {
		s.put(ctx, snapshotKey("wall", w.ID), w)
	}
}

func (s *Snapshots) GetGallery(ctx context.Context, id uint64) (*chain.Gallery, bool) {
	var g chain.Gallery
	if !s.get(ctx, snapshotKey("gallery", id), &g) {
		return nil, false
	}
	return &g, true
}

func (s *Snapshots) PutGallery(ctx context.Context, g *chain.Gallery) {
	if g != nil {
		s.put(ctx, snapshotKey("gallery", g.ID), g)
	}
}

func (s *Snapshots) GetPainting(ctx context.Context, id uint64) (*chain.PaintingRequest, bool) {
	var req chain.PaintingRequest
	if !s.get(ctx, snapshotKey("painting", id), &req) {
		return nil, false
	}
	return &req, true
}

func (s *Snapshots) PutPainting(ctx context.Context, req *chain.PaintingRequest) {
	if req != nil {
		s.put(ctx, snapshotKey("painting", req.RequestID), req)
	}
}

// InvalidatePainting implements lifecycle.Invalidator.
func (s *Snapshots) InvalidatePainting(ctx context.Context, id uint64) {
	s.drop(ctx, snapshotKey("painting", id))
}

// InvalidateWall implements lifecycle.Invalidator.
func (s *Snapshots) InvalidateWall(ctx context.Context, id uint64) {
	s.drop(ctx, snapshotKey("wall", id))
}

// InvalidateGallery drops a gallery snapshot after gallery-level mutations.
func (s *Snapshots) InvalidateGallery(ctx context.Context, id uint64) {
	s.drop(ctx, snapshotKey("gallery", id))
}
