package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrNoSession is returned when a transaction is attempted without a
// signing-capable wallet session.
var ErrNoSession = errors.New("no wallet session")

// Session is the explicit wallet-session value threaded through every call
// that touches the ledger. A session without a key is read-only; submitting
// through it fails with ErrNoSession instead of reaching the chain.
type Session struct {
	addr    common.Address
	key     *ecdsa.PrivateKey
	chainID *big.Int
}

// NewSession builds a signing session from a hex-encoded private key.
func NewSession(hexKey string, chainID int64) (*Session, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("session key: %w", err)
	}
	return &Session{
		addr:    crypto.PubkeyToAddress(key.PublicKey),
		key:     key,
		chainID: big.NewInt(chainID),
	}, nil
}

// ReadOnly builds a session bound to addr that can read but never sign.
func ReadOnly(addr string) *Session {
	return &Session{addr: common.HexToAddress(addr)}
}

func (s *Session) Address() common.Address {
	if s == nil {
		return common.Address{}
	}
	return s.addr
}

func (s *Session) CanSign() bool { return s != nil && s.key != nil }

func (s *Session) txOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if !s.CanSign() {
		return nil, ErrNoSession
	}
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, s.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}
