package chain

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

type rawPaintingRequest struct {
	RequestId   *big.Int
	WallId      *big.Int
	Painter     common.Address
	Description string
	Status      uint8
	Timestamp   *big.Int
}

// normalizePaintingRequest maps the raw tuple to the surfaced shape, or nil
// for an uninitialized slot (zero painter or status None).
func normalizePaintingRequest(raw rawPaintingRequest) *PaintingRequest {
	if raw.Painter == (common.Address{}) || PaintingStatus(raw.Status) == StatusNone {
		return nil
	}
	return &PaintingRequest{
		RequestID:   toU64(raw.RequestId),
		WallID:      toU64(raw.WallId),
		Painter:     raw.Painter.Hex(),
		Description: raw.Description,
		Status:      PaintingStatus(raw.Status),
		Timestamp:   toI64(raw.Timestamp),
	}
}

// GetPaintingRequest returns the request snapshot, or (nil, nil) when the id
// maps to an uninitialized slot.
func (c *Client) GetPaintingRequest(ctx context.Context, requestID uint64) (*PaintingRequest, error) {
	out, err := c.call(ctx, c.painting, "getPaintingRequest", u256(requestID))
	if err != nil {
		return nil, err
	}
	return normalizePaintingRequest(*abi.ConvertType(out[0], new(rawPaintingRequest)).(*rawPaintingRequest)), nil
}

func (c *Client) requestIDs(ctx context.Context, method string, arg interface{}) ([]uint64, error) {
	out, err := c.call(ctx, c.painting, method, arg)
	if err != nil {
		return nil, err
	}
	return ids(*abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int)), nil
}

func (c *Client) GetWallRequests(ctx context.Context, wallID uint64) ([]uint64, error) {
	return c.requestIDs(ctx, "getWallRequests", u256(wallID))
}

func (c *Client) GetWallCompletedRequests(ctx context.Context, wallID uint64) ([]uint64, error) {
	return c.requestIDs(ctx, "getWallCompletedRequests", u256(wallID))
}

func (c *Client) GetPainterPendingRequests(ctx context.Context, painter string) ([]uint64, error) {
	return c.requestIDs(ctx, "getPainterPendingRequests", common.HexToAddress(painter))
}

func (c *Client) GetPainterAcceptedRequests(ctx context.Context, painter string) ([]uint64, error) {
	return c.requestIDs(ctx, "getPainterAcceptedRequests", common.HexToAddress(painter))
}

// RequestPainting proposes painting a wall. The ledger assigns the id.
func (c *Client) RequestPainting(ctx context.Context, s *Session, wallID uint64, description string) error {
	if strings.TrimSpace(description) == "" {
		return errors.New("painting description required")
	}
	return c.transact(ctx, s, c.painting, "requestPainting", u256(wallID), description)
}

func (c *Client) ApprovePaintingRequest(ctx context.Context, s *Session, requestID uint64) error {
	return c.transact(ctx, s, c.painting, "approvePaintingRequest", u256(requestID))
}

func (c *Client) RejectPaintingRequest(ctx context.Context, s *Session, requestID uint64) error {
	return c.transact(ctx, s, c.painting, "rejectPaintingRequest", u256(requestID))
}

func (c *Client) SubmitPaintingCompletion(ctx context.Context, s *Session, requestID uint64) error {
	return c.transact(ctx, s, c.painting, "submitPaintingCompletion", u256(requestID))
}

func (c *Client) FinalizePainting(ctx context.Context, s *Session, requestID uint64) error {
	return c.transact(ctx, s, c.painting, "finalizePainting", u256(requestID))
}
