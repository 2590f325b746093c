package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

type rawGalleryLocation struct {
	City      string
	Country   string
	Longitude *big.Int
	Latitude  *big.Int
}

type rawGallery struct {
	Id                  *big.Int
	Name                string
	Description         string
	Location            rawGalleryLocation
	Owner               common.Address
	OwnershipPercentage *big.Int
	IsActive            bool
	CreatedAt           *big.Int
	LastUpdated         *big.Int
}

type rawWallRequest struct {
	WallId              *big.Int
	WallOwner           common.Address
	WallOwnerPercentage *big.Int
	Pending             bool
	Approved            bool
}

type rawGalleryParams struct {
	Name                string
	Description         string
	City                string
	Country             string
	Longitude           *big.Int
	Latitude            *big.Int
	OwnershipPercentage *big.Int
}

func normalizeGallery(raw rawGallery) *Gallery {
	if raw.Owner == (common.Address{}) {
		return nil
	}
	return &Gallery{
		ID:          toU64(raw.Id),
		Name:        raw.Name,
		Description: raw.Description,
		Location: GalleryLocation{
			City:      raw.Location.City,
			Country:   raw.Location.Country,
			Longitude: degrees(raw.Location.Longitude),
			Latitude:  degrees(raw.Location.Latitude),
		},
		Owner:               raw.Owner.Hex(),
		OwnershipPercentage: toU64(raw.OwnershipPercentage),
		IsActive:            raw.IsActive,
		CreatedAt:           toI64(raw.CreatedAt),
		LastUpdated:         toI64(raw.LastUpdated),
	}
}

// GetGallery returns the gallery snapshot, or (nil, nil) for zero-owner slots.
func (c *Client) GetGallery(ctx context.Context, galleryID uint64) (*Gallery, error) {
	out, err := c.call(ctx, c.gallery, "getGallery", u256(galleryID))
	if err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(out[0], new(rawGallery)).(*rawGallery)
	return normalizeGallery(raw), nil
}

// GetGalleriesByOwner returns the owner's active galleries. Inactive and
// zero-owner entries are filtered here, not by callers.
func (c *Client) GetGalleriesByOwner(ctx context.Context, owner string) ([]*Gallery, error) {
	out, err := c.call(ctx, c.gallery, "getGalleriesByOwner", common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	raws := *abi.ConvertType(out[0], new([]rawGallery)).(*[]rawGallery)

	galleries := make([]*Gallery, 0, len(raws))
	for _, raw := range raws {
		if g := normalizeGallery(raw); g != nil && g.IsActive {
			galleries = append(galleries, g)
		}
	}
	return galleries, nil
}

func (c *Client) GetGalleryWalls(ctx context.Context, galleryID uint64) ([]uint64, error) {
	out, err := c.call(ctx, c.gallery, "getGalleryWalls", u256(galleryID))
	if err != nil {
		return nil, err
	}
	return ids(*abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int)), nil
}

func (c *Client) GetPendingWallRequests(ctx context.Context, galleryID uint64) ([]WallToGalleryRequest, error) {
	out, err := c.call(ctx, c.gallery, "getPendingWallRequests", u256(galleryID))
	if err != nil {
		return nil, err
	}
	raws := *abi.ConvertType(out[0], new([]rawWallRequest)).(*[]rawWallRequest)

	reqs := make([]WallToGalleryRequest, 0, len(raws))
	for _, raw := range raws {
		reqs = append(reqs, WallToGalleryRequest{
			WallID:              toU64(raw.WallId),
			WallOwner:           raw.WallOwner.Hex(),
			WallOwnerPercentage: toU64(raw.WallOwnerPercentage),
			Pending:             raw.Pending,
			Approved:            raw.Approved,
		})
	}
	return reqs, nil
}

func (c *Client) GetPlatformPercentage(ctx context.Context) (uint64, error) {
	out, err := c.call(ctx, c.gallery, "getPlatformPercentage")
	if err != nil {
		return 0, err
	}
	return toU64(*abi.ConvertType(out[0], new(*big.Int)).(**big.Int)), nil
}

func (c *Client) IsGalleryActive(ctx context.Context, galleryID uint64) (bool, error) {
	out, err := c.call(ctx, c.gallery, "isGalleryActive", u256(galleryID))
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (c *Client) GetGalleryOwner(ctx context.Context, galleryID uint64) (string, error) {
	out, err := c.call(ctx, c.gallery, "getGalleryOwner", u256(galleryID))
	if err != nil {
		return "", err
	}
	addr := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return addr.Hex(), nil
}

// RequestGallery submits a new gallery registration.
func (c *Client) RequestGallery(ctx context.Context, s *Session, params GalleryParams) error {
	if params.OwnershipPercentage < 1 || params.OwnershipPercentage > maxGalleryPercent {
		return fmt.Errorf("%w: %d (gallery bounds 1-%d)",
			ErrPercentOutOfRange, params.OwnershipPercentage, maxGalleryPercent)
	}
	return c.transact(ctx, s, c.gallery, "requestGallery", rawGalleryParams{
		Name:                params.Name,
		Description:         params.Description,
		City:                params.City,
		Country:             params.Country,
		Longitude:           microdegrees(params.Longitude),
		Latitude:            microdegrees(params.Latitude),
		OwnershipPercentage: u256(params.OwnershipPercentage),
	})
}

func (c *Client) RequestWallToGallery(ctx context.Context, s *Session, galleryID, wallID uint64) error {
	return c.transact(ctx, s, c.gallery, "requestWallToGallery", u256(galleryID), u256(wallID))
}

func (c *Client) ApproveWallToGallery(ctx context.Context, s *Session, galleryID, wallID uint64) error {
	return c.transact(ctx, s, c.gallery, "approveWallToGallery", u256(galleryID), u256(wallID))
}

func (c *Client) RejectWallToGallery(ctx context.Context, s *Session, galleryID, wallID uint64) error {
	return c.transact(ctx, s, c.gallery, "rejectWallToGallery", u256(galleryID), u256(wallID))
}
