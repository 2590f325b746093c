package chain

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation failures must surface before anything reaches the backend, so a
// client with no backend at all is enough for these tests.
func testClient() *Client {
	return NewClient(nil, Addresses{})
}

func TestRequestWallPercentBounds(t *testing.T) {
	c := testClient()
	ctx := context.Background()
	s := ReadOnly("0x1111111111111111111111111111111111111111")
	loc := WallLocation{Country: "DE", City: "Berlin", PhysicalAddress: "Revaler Str. 99"}

	err := c.RequestWall(ctx, s, loc, 120, 0)
	assert.ErrorIs(t, err, ErrPercentOutOfRange)

	err = c.RequestWall(ctx, s, loc, 120, 91)
	assert.ErrorIs(t, err, ErrPercentOutOfRange)

	// In-bounds percent passes validation and then fails on the missing
	// signing key, proving the bound check ran first.
	err = c.RequestWall(ctx, s, loc, 120, 90)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRequestWallSizeRequired(t *testing.T) {
	c := testClient()
	s := ReadOnly("0x1111111111111111111111111111111111111111")

	err := c.RequestWall(context.Background(), s, WallLocation{}, 0, 50)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPercentOutOfRange)
}

func TestRequestGalleryPercentBounds(t *testing.T) {
	c := testClient()
	ctx := context.Background()
	s := ReadOnly("0x1111111111111111111111111111111111111111")

	params := GalleryParams{Name: "East Side", OwnershipPercentage: 51}
	err := c.RequestGallery(ctx, s, params)
	assert.ErrorIs(t, err, ErrPercentOutOfRange)

	params.OwnershipPercentage = 50
	err = c.RequestGallery(ctx, s, params)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSetOwnershipPercentageBounds(t *testing.T) {
	c := testClient()
	err := c.SetOwnershipPercentage(context.Background(),
		ReadOnly("0x1111111111111111111111111111111111111111"), 7, 95)
	assert.ErrorIs(t, err, ErrPercentOutOfRange)
}

func TestReadOnlySessionCannotSign(t *testing.T) {
	s := ReadOnly("0x1111111111111111111111111111111111111111")
	assert.False(t, s.CanSign())

	_, err := s.txOpts(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "none", StatusNone.String())
	assert.Equal(t, "requested", StatusRequested.String())
	assert.Equal(t, "in_process", StatusInProcess.String())
	assert.Equal(t, "completed", StatusCompleted.String())
}

func TestCoordinateScaling(t *testing.T) {
	raw := microdegrees(52.5)
	assert.Equal(t, int64(52500000), raw.Int64())
	assert.InDelta(t, 52.5, degrees(raw), 1e-6)

	neg := microdegrees(-13.25)
	assert.Equal(t, int64(-13250000), neg.Int64())
	assert.InDelta(t, -13.25, degrees(neg), 1e-6)

	// Binary-inexact degree values must round, not truncate, or the
	// read-back lands one microdegree off (1.000001*1e6 is
	// 1000000.9999999999 in float64).
	assert.Equal(t, int64(1000001), microdegrees(1.000001).Int64())
	assert.Equal(t, int64(-1000001), microdegrees(-1.000001).Int64())
	assert.InDelta(t, 1.000001, degrees(microdegrees(1.000001)), 1e-7)
}

func TestTransferSharesValidation(t *testing.T) {
	c := testClient()
	ctx := context.Background()
	s := ReadOnly("0x1111111111111111111111111111111111111111")

	err := c.TransferShares(ctx, s, 1, "0x2222222222222222222222222222222222222222", 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)

	err = c.TransferShares(ctx, s, 1, "not-an-address", 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)

	// Valid input passes validation and then fails on the missing key.
	err = c.TransferShares(ctx, s, 1, "0x2222222222222222222222222222222222222222", 5)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestBigIntHelpers(t *testing.T) {
	assert.Equal(t, uint64(0), toU64(nil))
	assert.Equal(t, int64(0), toI64(nil))
	assert.Equal(t, float64(0), degrees(nil))
	assert.Equal(t, []uint64{1, 2}, ids([]*big.Int{big.NewInt(1), big.NewInt(2)}))
}
