package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetcanvas/streetcanvas/src/chain"
)

const (
	painterAddr  = "0x1111111111111111111111111111111111111111"
	ownerAddr    = "0x2222222222222222222222222222222222222222"
	strangerAddr = "0x3333333333333333333333333333333333333333"
)

// fakeLedger is an in-memory stand-in for the deployed contracts. It
// enforces the same authority and state rules the chain does, so rejected
// submissions come back as plain errors with no local state change.
type fakeLedger struct {
	mu        sync.Mutex
	requests  map[uint64]*chain.PaintingRequest
	wallIndex map[uint64][]uint64
	wallOwner map[uint64]string
	painters  map[string]bool
	nextID    uint64

	// submitGate, when set, blocks every submit until released.
	submitGate chan struct{}
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		requests:  make(map[uint64]*chain.PaintingRequest),
		wallIndex: make(map[uint64][]uint64),
		wallOwner: map[uint64]string{42: ownerAddr},
		painters:  map[string]bool{painterAddr: true},
	}
}

func (f *fakeLedger) waitGate() {
	if f.submitGate != nil {
		<-f.submitGate
	}
}

func (f *fakeLedger) GetPaintingRequest(_ context.Context, id uint64) (*chain.PaintingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (f *fakeLedger) GetWallRequests(_ context.Context, wallID uint64) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint64(nil), f.wallIndex[wallID]...), nil
}

func (f *fakeLedger) RequestPainting(_ context.Context, s *chain.Session, wallID uint64, description string) error {
	f.waitGate()
	f.mu.Lock()
	defer f.mu.Unlock()
	addr := s.Address().Hex()
	if !f.painters[addr] {
		return errors.New("execution reverted: missing painter role")
	}
	f.nextID++
	f.requests[f.nextID] = &chain.PaintingRequest{
		RequestID:   f.nextID,
		WallID:      wallID,
		Painter:     addr,
		Description: description,
		Status:      chain.StatusRequested,
		Timestamp:   time.Now().Unix(),
	}
	f.wallIndex[wallID] = append(f.wallIndex[wallID], f.nextID)
	return nil
}

func (f *fakeLedger) ownerGated(s *chain.Session, id uint64, from, to chain.PaintingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return errors.New("execution reverted: unknown request")
	}
	if !strings.EqualFold(f.wallOwner[req.WallID], s.Address().Hex()) {
		return errors.New("execution reverted: not wall owner")
	}
	if req.Status != from {
		return fmt.Errorf("execution reverted: status %d", req.Status)
	}
	req.Status = to
	return nil
}

func (f *fakeLedger) ApprovePaintingRequest(_ context.Context, s *chain.Session, id uint64) error {
	f.waitGate()
	return f.ownerGated(s, id, chain.StatusRequested, chain.StatusInProcess)
}

func (f *fakeLedger) RejectPaintingRequest(_ context.Context, s *chain.Session, id uint64) error {
	f.waitGate()
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok || req.Status != chain.StatusRequested {
		return errors.New("execution reverted")
	}
	if !strings.EqualFold(f.wallOwner[req.WallID], s.Address().Hex()) {
		return errors.New("execution reverted: not wall owner")
	}
	delete(f.requests, id)
	idx := f.wallIndex[req.WallID][:0]
	for _, rid := range f.wallIndex[req.WallID] {
		if rid != id {
			idx = append(idx, rid)
		}
	}
	f.wallIndex[req.WallID] = idx
	return nil
}

func (f *fakeLedger) SubmitPaintingCompletion(_ context.Context, s *chain.Session, id uint64) error {
	f.waitGate()
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok || req.Status != chain.StatusInProcess {
		return errors.New("execution reverted")
	}
	if !strings.EqualFold(req.Painter, s.Address().Hex()) {
		return errors.New("execution reverted: not the painter")
	}
	req.Status = chain.StatusCompleted
	return nil
}

func (f *fakeLedger) FinalizePainting(_ context.Context, s *chain.Session, id uint64) error {
	f.waitGate()
	return f.ownerGated(s, id, chain.StatusCompleted, chain.StatusCompleted)
}

func (f *fakeLedger) ResolveCapabilities(_ context.Context, addr string) chain.Capabilities {
	f.mu.Lock()
	defer f.mu.Unlock()
	return chain.Capabilities{IsPainter: f.painters[addr]}
}

// recorder tracks invalidations.
type recorder struct {
	mu        sync.Mutex
	paintings []uint64
	walls     []uint64
}

func (r *recorder) InvalidatePainting(_ context.Context, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paintings = append(r.paintings, id)
}

func (r *recorder) InvalidateWall(_ context.Context, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.walls = append(r.walls, id)
}

func TestFullLifecycle(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	m := New(ledger, nil)

	painter := chain.ReadOnly(painterAddr)
	owner := chain.ReadOnly(ownerAddr)

	created, err := m.Request(ctx, painter, 42, "sunset mural")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, chain.StatusRequested, created.Status)
	assert.Equal(t, uint64(42), created.WallID)

	approved, err := m.Approve(ctx, owner, created.RequestID)
	require.NoError(t, err)
	require.NotNil(t, approved)
	assert.Equal(t, chain.StatusInProcess, approved.Status)

	completed, err := m.SubmitCompletion(ctx, painter, created.RequestID)
	require.NoError(t, err)
	require.NotNil(t, completed)
	assert.Equal(t, chain.StatusCompleted, completed.Status)

	_, err = m.Finalize(ctx, owner, created.RequestID)
	require.NoError(t, err)
}

func TestRequestRequiresPainterCapability(t *testing.T) {
	ledger := newFakeLedger()
	m := New(ledger, nil)

	_, err := m.Request(context.Background(), chain.ReadOnly(strangerAddr), 42, "tag")
	assert.ErrorIs(t, err, ErrNoCapability)
	assert.Empty(t, ledger.requests)
}

func TestApproveRequiresRequestedState(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	m := New(ledger, nil)

	created, err := m.Request(ctx, chain.ReadOnly(painterAddr), 42, "mural")
	require.NoError(t, err)

	owner := chain.ReadOnly(ownerAddr)
	_, err = m.Approve(ctx, owner, created.RequestID)
	require.NoError(t, err)

	_, err = m.Approve(ctx, owner, created.RequestID)
	assert.ErrorIs(t, err, ErrBadState)

	// State untouched by the failed attempt.
	req, err := ledger.GetPaintingRequest(ctx, created.RequestID)
	require.NoError(t, err)
	assert.Equal(t, chain.StatusInProcess, req.Status)
}

func TestApproveByNonOwnerLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	m := New(ledger, nil)

	created, err := m.Request(ctx, chain.ReadOnly(painterAddr), 42, "mural")
	require.NoError(t, err)

	_, err = m.Approve(ctx, chain.ReadOnly(strangerAddr), created.RequestID)
	require.Error(t, err)

	req, err := ledger.GetPaintingRequest(ctx, created.RequestID)
	require.NoError(t, err)
	assert.Equal(t, chain.StatusRequested, req.Status)
}

func TestSubmitCompletionOnlyByPainter(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	m := New(ledger, nil)

	created, err := m.Request(ctx, chain.ReadOnly(painterAddr), 42, "mural")
	require.NoError(t, err)
	_, err = m.Approve(ctx, chain.ReadOnly(ownerAddr), created.RequestID)
	require.NoError(t, err)

	_, err = m.SubmitCompletion(ctx, chain.ReadOnly(ownerAddr), created.RequestID)
	assert.ErrorIs(t, err, ErrNotPainter)
}

func TestRejectRemovesRequest(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	m := New(ledger, nil)

	created, err := m.Request(ctx, chain.ReadOnly(painterAddr), 42, "mural")
	require.NoError(t, err)

	gone, err := m.Reject(ctx, chain.ReadOnly(ownerAddr), created.RequestID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	ids, err := ledger.GetWallRequests(ctx, 42)
	require.NoError(t, err)
	assert.NotContains(t, ids, created.RequestID)
}

func TestUnknownRequest(t *testing.T) {
	m := New(newFakeLedger(), nil)
	_, err := m.Approve(context.Background(), chain.ReadOnly(ownerAddr), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSingleFlightPerRequest(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	m := New(ledger, nil)

	created, err := m.Request(ctx, chain.ReadOnly(painterAddr), 42, "mural")
	require.NoError(t, err)

	gate := make(chan struct{})
	ledger.submitGate = gate

	done := make(chan error, 1)
	go func() {
		_, err := m.Approve(ctx, chain.ReadOnly(ownerAddr), created.RequestID)
		done <- err
	}()

	// Wait until the first transition holds the in-flight slot.
	require.Eventually(t, func() bool { return m.InFlight(created.RequestID) },
		time.Second, 5*time.Millisecond)

	_, err = m.Approve(ctx, chain.ReadOnly(ownerAddr), created.RequestID)
	assert.ErrorIs(t, err, ErrInFlight)

	close(gate)
	require.NoError(t, <-done)
	assert.False(t, m.InFlight(created.RequestID))
}

func TestInFlightClearedOnFailure(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	m := New(ledger, nil)

	created, err := m.Request(ctx, chain.ReadOnly(painterAddr), 42, "mural")
	require.NoError(t, err)

	_, err = m.Approve(ctx, chain.ReadOnly(strangerAddr), created.RequestID)
	require.Error(t, err)
	assert.False(t, m.InFlight(created.RequestID))
}

func TestInvalidationAfterTransition(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	rec := &recorder{}
	m := New(ledger, rec)

	created, err := m.Request(ctx, chain.ReadOnly(painterAddr), 42, "mural")
	require.NoError(t, err)
	assert.Contains(t, rec.walls, uint64(42))

	_, err = m.Approve(ctx, chain.ReadOnly(ownerAddr), created.RequestID)
	require.NoError(t, err)
	assert.Contains(t, rec.paintings, created.RequestID)
}
