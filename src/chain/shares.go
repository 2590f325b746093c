package chain

import (
	"context"
	"errors"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// GetPainting returns the minted painting record, or (nil, nil) when the id
// maps to a zero-painter slot. Painting ids are assigned contiguously from 1,
// so the first absent id ends any enumeration.
func (c *Client) GetPainting(ctx context.Context, paintingID uint64) (*Painting, error) {
	out, err := c.call(ctx, c.painting, "paintings", u256(paintingID))
	if err != nil {
		return nil, err
	}
	painter := *abi.ConvertType(out[2], new(common.Address)).(*common.Address)
	if painter == (common.Address{}) {
		return nil, nil
	}
	return &Painting{
		ID:           toU64(*abi.ConvertType(out[0], new(*big.Int)).(**big.Int)),
		WallID:       toU64(*abi.ConvertType(out[1], new(*big.Int)).(**big.Int)),
		Painter:      painter.Hex(),
		Description:  *abi.ConvertType(out[3], new(string)).(*string),
		SharesMinted: *abi.ConvertType(out[4], new(bool)).(*bool),
		CreatedAt:    toI64(*abi.ConvertType(out[5], new(*big.Int)).(**big.Int)),
	}, nil
}

// GetShareInfo returns the share-token metadata for a painting.
func (c *Client) GetShareInfo(ctx context.Context, paintingID uint64) (*ShareInfo, error) {
	out, err := c.call(ctx, c.shares, "getShareInfo", u256(paintingID))
	if err != nil {
		return nil, err
	}
	return &ShareInfo{
		PaintingID:  paintingID,
		Name:        *abi.ConvertType(out[0], new(string)).(*string),
		Symbol:      *abi.ConvertType(out[1], new(string)).(*string),
		TotalSupply: toU64(*abi.ConvertType(out[2], new(*big.Int)).(**big.Int)),
	}, nil
}

// BalanceOf returns the holder's share balance for a painting.
func (c *Client) BalanceOf(ctx context.Context, holder string, paintingID uint64) (uint64, error) {
	out, err := c.call(ctx, c.shares, "balanceOf", common.HexToAddress(holder), u256(paintingID))
	if err != nil {
		return 0, err
	}
	return toU64(*abi.ConvertType(out[0], new(*big.Int)).(**big.Int)), nil
}

// shareSource is the slice of the client the holdings walk reads from.
type shareSource interface {
	GetPainting(ctx context.Context, paintingID uint64) (*Painting, error)
	GetShareInfo(ctx context.Context, paintingID uint64) (*ShareInfo, error)
	BalanceOf(ctx context.Context, holder string, paintingID uint64) (uint64, error)
}

// collectHoldings walks minted paintings from id 1 and keeps every share
// token the holder has a positive balance in. The first absent painting ends
// the walk; a painting whose share reads fail is logged and skipped.
func collectHoldings(ctx context.Context, src shareSource, holder string) ([]ShareHolding, error) {
	holdings := []ShareHolding{}
	for id := uint64(1); ; id++ {
		painting, err := src.GetPainting(ctx, id)
		if err != nil {
			return nil, err
		}
		if painting == nil {
			return holdings, nil
		}
		if !painting.SharesMinted {
			continue
		}
		balance, err := src.BalanceOf(ctx, holder, id)
		if err != nil {
			log.Printf("chain: shares balance %d: %v", id, err)
			continue
		}
		if balance == 0 {
			continue
		}
		info, err := src.GetShareInfo(ctx, id)
		if err != nil {
			log.Printf("chain: share info %d: %v", id, err)
			continue
		}
		holdings = append(holdings, ShareHolding{ShareInfo: *info, Balance: balance})
	}
}

// GetHoldings returns every share token the holder has a positive balance in.
func (c *Client) GetHoldings(ctx context.Context, holder string) ([]ShareHolding, error) {
	return collectHoldings(ctx, c, holder)
}

// TransferShares sends share units of one painting to another address.
func (c *Client) TransferShares(ctx context.Context, s *Session, paintingID uint64, to string, amount uint64) error {
	if amount == 0 {
		return errors.New("share amount must be positive")
	}
	if !common.IsHexAddress(to) {
		return errors.New("invalid recipient address")
	}
	return c.transact(ctx, s, c.shares, "transfer",
		u256(paintingID), common.HexToAddress(to), u256(amount))
}
