package chain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ErrPercentOutOfRange is returned by client-side bounds validation before
// any remote call is issued. The ledger re-validates regardless.
var ErrPercentOutOfRange = errors.New("ownership percentage out of range")

const (
	maxWallPercent    = 90
	maxGalleryPercent = 50
)

type rawWallLocation struct {
	Country         string
	City            string
	PhysicalAddress string
	Longitude       *big.Int
	Latitude        *big.Int
}

type rawWall struct {
	Id                  *big.Int
	Owner               common.Address
	Location            rawWallLocation
	Size                *big.Int
	OwnershipPercentage *big.Int
	IsInGallery         bool
	GalleryId           *big.Int
	CreatedAt           *big.Int
	LastUpdated         *big.Int
}

// normalizeWall maps the raw tuple to the surfaced shape, or nil for a
// zero-owner slot. Every consumer relies on this normalization; phantom
// records must never leave this package.
func normalizeWall(raw rawWall) *Wall {
	if raw.Owner == (common.Address{}) {
		return nil
	}
	return &Wall{
		ID:    toU64(raw.Id),
		Owner: raw.Owner.Hex(),
		Location: WallLocation{
			Country:         raw.Location.Country,
			City:            raw.Location.City,
			PhysicalAddress: raw.Location.PhysicalAddress,
			Longitude:       degrees(raw.Location.Longitude),
			Latitude:        degrees(raw.Location.Latitude),
		},
		Size:                toU64(raw.Size),
		OwnershipPercentage: toU64(raw.OwnershipPercentage),
		IsInGallery:         raw.IsInGallery,
		GalleryID:           toU64(raw.GalleryId),
		CreatedAt:           toI64(raw.CreatedAt),
		LastUpdated:         toI64(raw.LastUpdated),
	}
}

// GetWall returns the wall snapshot, or (nil, nil) when the id maps to a
// zero-owner slot.
func (c *Client) GetWall(ctx context.Context, wallID uint64) (*Wall, error) {
	out, err := c.call(ctx, c.wall, "getWall", u256(wallID))
	if err != nil {
		return nil, err
	}
	return normalizeWall(*abi.ConvertType(out[0], new(rawWall)).(*rawWall)), nil
}

// GetWallsByOwner hydrates every wall id owned by addr. A wall that fails to
// load is logged and skipped so one bad read never empties the listing.
func (c *Client) GetWallsByOwner(ctx context.Context, owner string) ([]*Wall, error) {
	out, err := c.call(ctx, c.wall, "getWallsByOwner", common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	wallIDs := ids(*abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int))

	walls := make([]*Wall, 0, len(wallIDs))
	for _, id := range wallIDs {
		w, err := c.GetWall(ctx, id)
		if err != nil {
			log.Printf("chain: wall %d: %v", id, err)
			continue
		}
		if w != nil {
			walls = append(walls, w)
		}
	}
	return walls, nil
}

// RequestWall submits a new wall registration.
func (c *Client) RequestWall(ctx context.Context, s *Session, loc WallLocation, size, pct uint64) error {
	if pct < 1 || pct > maxWallPercent {
		return fmt.Errorf("%w: %d (wall bounds 1-%d)", ErrPercentOutOfRange, pct, maxWallPercent)
	}
	if size == 0 {
		return errors.New("wall size must be positive")
	}
	return c.transact(ctx, s, c.wall, "requestWall",
		loc.Country, loc.City, loc.PhysicalAddress,
		microdegrees(loc.Longitude), microdegrees(loc.Latitude),
		u256(size), u256(pct))
}

func (c *Client) SetOwnershipPercentage(ctx context.Context, s *Session, wallID, pct uint64) error {
	if pct < 1 || pct > maxWallPercent {
		return fmt.Errorf("%w: %d (wall bounds 1-%d)", ErrPercentOutOfRange, pct, maxWallPercent)
	}
	return c.transact(ctx, s, c.wall, "setOwnershipPercentage", u256(wallID), u256(pct))
}
