// Package lifecycle drives the painting-request state machine against the
// external ledger: Requested -> InProcess -> Completed -> finalized, with
// Rejected terminal from Requested. The ledger is authoritative; this client
// validates preconditions on fresh reads, submits, waits for confirmation,
// then refetches. Nothing is mutated optimistically, so a failed transition
// needs no rollback.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/streetcanvas/streetcanvas/src/chain"
)

var (
	// ErrInFlight means a transition for the same request is still pending
	// confirmation. The caller retries after the first one settles.
	ErrInFlight = errors.New("transition already in flight")
	// ErrNotFound means the request id maps to no active request.
	ErrNotFound = errors.New("painting request not found")
	// ErrBadState means the request is not in the state the command requires.
	ErrBadState = errors.New("invalid state for transition")
	// ErrNotPainter means the caller is not the request's painter.
	ErrNotPainter = errors.New("caller is not the request painter")
	// ErrNoCapability means the caller lacks the role the command needs.
	// Advisory: the ledger is the authority and re-checks on submit.
	ErrNoCapability = errors.New("missing role capability")
)

// Ledger is the slice of the chain client the manager drives.
// *chain.Client satisfies it; tests use an in-memory fake.
type Ledger interface {
	GetPaintingRequest(ctx context.Context, requestID uint64) (*chain.PaintingRequest, error)
	GetWallRequests(ctx context.Context, wallID uint64) ([]uint64, error)
	RequestPainting(ctx context.Context, s *chain.Session, wallID uint64, description string) error
	ApprovePaintingRequest(ctx context.Context, s *chain.Session, requestID uint64) error
	RejectPaintingRequest(ctx context.Context, s *chain.Session, requestID uint64) error
	SubmitPaintingCompletion(ctx context.Context, s *chain.Session, requestID uint64) error
	FinalizePainting(ctx context.Context, s *chain.Session, requestID uint64) error
	ResolveCapabilities(ctx context.Context, addr string) chain.Capabilities
}

// Invalidator drops cached snapshots after a confirmed transition.
type Invalidator interface {
	InvalidatePainting(ctx context.Context, requestID uint64)
	InvalidateWall(ctx context.Context, wallID uint64)
}

// Manager is the painting-request state machine client.
type Manager struct {
	ledger   Ledger
	inv      Invalidator
	inflight *tracker
}

func New(ledger Ledger, inv Invalidator) *Manager {
	return &Manager{ledger: ledger, inv: inv, inflight: newTracker()}
}

// InFlight reports whether a transition for requestID is awaiting
// confirmation. Views key their processing indicators on this.
func (m *Manager) InFlight(requestID uint64) bool {
	return m.inflight.has(requestKey(requestID))
}

// WallInFlight reports whether a new request on wallID is awaiting
// confirmation.
func (m *Manager) WallInFlight(wallID uint64) bool {
	return m.inflight.has(wallKey(wallID))
}

// Request submits a new painting request for a wall and returns the freshly
// assigned request as read back from the ledger.
func (m *Manager) Request(ctx context.Context, s *chain.Session, wallID uint64, description string) (*chain.PaintingRequest, error) {
	if caps := m.ledger.ResolveCapabilities(ctx, s.Address().Hex()); !caps.IsPainter {
		return nil, fmt.Errorf("%w: painter", ErrNoCapability)
	}

	key := wallKey(wallID)
	if !m.inflight.begin(key) {
		return nil, ErrInFlight
	}
	defer m.inflight.end(key)

	before, err := m.ledger.GetWallRequests(ctx, wallID)
	if err != nil {
		return nil, err
	}
	known := make(map[uint64]struct{}, len(before))
	for _, id := range before {
		known[id] = struct{}{}
	}

	if err := m.ledger.RequestPainting(ctx, s, wallID, description); err != nil {
		return nil, err
	}
	m.invalidateWall(ctx, wallID)

	// Locate the ledger-assigned id among ids that appeared with this
	// painter. Ids are monotonic, so the newest match wins.
	after, err := m.ledger.GetWallRequests(ctx, wallID)
	if err != nil {
		return nil, fmt.Errorf("request confirmed but refetch failed: %w", err)
	}
	var created *chain.PaintingRequest
	for _, id := range after {
		if _, seen := known[id]; seen {
			continue
		}
		req, err := m.ledger.GetPaintingRequest(ctx, id)
		if err != nil || req == nil {
			continue
		}
		if sameAddr(req.Painter, s.Address().Hex()) && (created == nil || req.RequestID > created.RequestID) {
			created = req
		}
	}
	if created == nil {
		return nil, errors.New("request confirmed but not visible on refetch")
	}
	m.invalidatePainting(ctx, created.RequestID)
	return created, nil
}

// Approve moves Requested -> InProcess. Wall or gallery ownership is
// enforced by the ledger.
func (m *Manager) Approve(ctx context.Context, s *chain.Session, requestID uint64) (*chain.PaintingRequest, error) {
	return m.transition(ctx, s, requestID, chain.StatusRequested, m.ledger.ApprovePaintingRequest)
}

// Reject removes a Requested request from the active indices. The returned
// snapshot is nil once the ledger has dropped it.
func (m *Manager) Reject(ctx context.Context, s *chain.Session, requestID uint64) (*chain.PaintingRequest, error) {
	return m.transition(ctx, s, requestID, chain.StatusRequested, m.ledger.RejectPaintingRequest)
}

// SubmitCompletion moves InProcess -> Completed. Only the request's painter
// may submit.
func (m *Manager) SubmitCompletion(ctx context.Context, s *chain.Session, requestID uint64) (*chain.PaintingRequest, error) {
	return m.transitionChecked(ctx, s, requestID, chain.StatusInProcess, m.ledger.SubmitPaintingCompletion,
		func(req *chain.PaintingRequest) error {
			if !sameAddr(req.Painter, s.Address().Hex()) {
				return ErrNotPainter
			}
			return nil
		})
}

// Finalize closes a Completed request. Share issuance happens on-chain.
func (m *Manager) Finalize(ctx context.Context, s *chain.Session, requestID uint64) (*chain.PaintingRequest, error) {
	return m.transition(ctx, s, requestID, chain.StatusCompleted, m.ledger.FinalizePainting)
}

type submitFunc func(ctx context.Context, s *chain.Session, requestID uint64) error

func (m *Manager) transition(ctx context.Context, s *chain.Session, requestID uint64, from chain.PaintingStatus, submit submitFunc) (*chain.PaintingRequest, error) {
	return m.transitionChecked(ctx, s, requestID, from, submit, nil)
}

func (m *Manager) transitionChecked(ctx context.Context, s *chain.Session, requestID uint64, from chain.PaintingStatus, submit submitFunc, check func(*chain.PaintingRequest) error) (*chain.PaintingRequest, error) {
	key := requestKey(requestID)
	if !m.inflight.begin(key) {
		return nil, ErrInFlight
	}
	defer m.inflight.end(key)

	// Fresh pre-read, never the cache: the precondition must reflect the
	// ledger as-of-now, and even then the ledger has the final word.
	current, err := m.ledger.GetPaintingRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	if current.Status != from {
		return nil, fmt.Errorf("%w: request %d is %s, need %s",
			ErrBadState, requestID, current.Status, from)
	}
	if check != nil {
		if err := check(current); err != nil {
			return nil, err
		}
	}

	if err := submit(ctx, s, requestID); err != nil {
		return nil, err
	}

	m.invalidatePainting(ctx, requestID)
	m.invalidateWall(ctx, current.WallID)

	updated, err := m.ledger.GetPaintingRequest(ctx, requestID)
	if err != nil {
		// The transition is confirmed; only the refresh read failed.
		log.Printf("lifecycle: refetch request %d: %v", requestID, err)
		return nil, nil
	}
	return updated, nil
}

func (m *Manager) invalidatePainting(ctx context.Context, requestID uint64) {
	if m.inv != nil {
		m.inv.InvalidatePainting(ctx, requestID)
	}
}

func (m *Manager) invalidateWall(ctx context.Context, wallID uint64) {
	if m.inv != nil {
		m.inv.InvalidateWall(ctx, wallID)
	}
}

func sameAddr(a, b string) bool { return strings.EqualFold(a, b) }
