package chain

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the slice of the RPC surface the client needs. *ethclient.Client
// satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Addresses of the deployed platform contracts.
type Addresses struct {
	Wall           common.Address
	Gallery        common.Address
	PaintingNFT    common.Address
	PaintingShares common.Address
	RoleManager    common.Address
}

// Client is a typed client over the Wall, Gallery, PaintingNFT and
// RoleManager contracts. It holds no authoritative state: every read is a
// fresh snapshot and every write is a submitted transaction.
type Client struct {
	backend  Backend
	wall     *bind.BoundContract
	gallery  *bind.BoundContract
	painting *bind.BoundContract
	shares   *bind.BoundContract
	roles    *bind.BoundContract
	addrs    Addresses
}

// Dial connects to an RPC endpoint (http or ws) and binds the contracts.
func Dial(ctx context.Context, url string, addrs Addresses) (*Client, error) {
	ec, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("chain dial: %w", err)
	}
	return NewClient(ec, addrs), nil
}

// NewClient binds the contracts over an existing backend.
func NewClient(backend Backend, addrs Addresses) *Client {
	return &Client{
		backend:  backend,
		wall:     bind.NewBoundContract(addrs.Wall, wallABI, backend, backend, backend),
		gallery:  bind.NewBoundContract(addrs.Gallery, galleryABI, backend, backend, backend),
		painting: bind.NewBoundContract(addrs.PaintingNFT, paintingABI, backend, backend, backend),
		shares:   bind.NewBoundContract(addrs.PaintingShares, paintingSharesABI, backend, backend, backend),
		roles:    bind.NewBoundContract(addrs.RoleManager, roleManagerABI, backend, backend, backend),
	}
}

func (c *Client) call(ctx context.Context, bc *bind.BoundContract, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := bc.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return out, nil
}

// transact submits a state transition and waits for its receipt. There is no
// retry and no local timeout beyond ctx: once submitted, a transaction cannot
// be retracted, and confirmation timing belongs to the provider.
func (c *Client) transact(ctx context.Context, s *Session, bc *bind.BoundContract, method string, args ...interface{}) error {
	opts, err := s.txOpts(ctx)
	if err != nil {
		return err
	}
	tx, err := bc.Transact(opts, method, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return fmt.Errorf("%s confirm: %w", method, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%s: transaction %s reverted", method, tx.Hash())
	}
	return nil
}

func toU64(v *big.Int) uint64 {
	if v == nil {
		return 0
	}
	return v.Uint64()
}

func toI64(v *big.Int) int64 {
	if v == nil {
		return 0
	}
	return v.Int64()
}

// degrees converts an on-chain signed microdegree value to float degrees.
func degrees(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	return float64(v.Int64()) / coordScale
}

// microdegrees converts float degrees back to the on-chain representation.
// Rounded, not truncated: a binary-inexact degree value must not land one
// microdegree off on the read-back.
func microdegrees(deg float64) *big.Int {
	return big.NewInt(int64(math.Round(deg * coordScale)))
}

func ids(raw []*big.Int) []uint64 {
	out := make([]uint64, 0, len(raw))
	for _, id := range raw {
		out = append(out, toU64(id))
	}
	return out
}

func u256(v uint64) *big.Int { return new(big.Int).SetUint64(v) }
