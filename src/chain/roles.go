package chain

import (
	"context"
	"log"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Role ids as registered in the deployed RoleManager.
var (
	RoleWallOwner    = common.HexToHash("0x329c74013ba5a00a181f8b3dc9d0ae428c8a88ad0625246c0382e31759b580db")
	RoleGalleryOwner = common.HexToHash("0x876bbbf5907d194533faadcead8cfa42ad0f2b1653cc89d94228f5c04f389a15")
	RolePainter      = common.HexToHash("0x709f71abb733aa2493d642ec84d615695650e6806fd401c97e1fecbd9c84c1d6")
)

// HasRole queries the role authority for a single role grant.
func (c *Client) HasRole(ctx context.Context, role common.Hash, addr string) (bool, error) {
	out, err := c.call(ctx, c.roles, "hasRole", [32]byte(role), common.HexToAddress(addr))
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// ResolveCapabilities resolves the caller's role set. Fails soft: a query
// error resolves that capability to false, since having no roles is the
// normal state for new users. Flags are advisory UI gating only; the ledger
// re-checks on every submitted transition.
func (c *Client) ResolveCapabilities(ctx context.Context, addr string) Capabilities {
	caps := Capabilities{}
	for _, q := range []struct {
		role common.Hash
		flag *bool
		name string
	}{
		{RoleWallOwner, &caps.IsWallOwner, "wall_owner"},
		{RoleGalleryOwner, &caps.IsGalleryOwner, "gallery_owner"},
		{RolePainter, &caps.IsPainter, "painter"},
	} {
		has, err := c.HasRole(ctx, q.role, addr)
		if err != nil {
			log.Printf("chain: role %s for %s: %v", q.name, addr, err)
			continue
		}
		*q.flag = has
	}
	return caps
}

type rawProfileInfo struct {
	FirstName     string
	LastName      string
	Email         string
	Organization  string
	WalletAddress common.Address
}

// GetUserInfo returns the verified profile, or (nil, nil) when none exists.
// An empty first name marks the unset slot.
func (c *Client) GetUserInfo(ctx context.Context, addr string) (*Profile, error) {
	out, err := c.call(ctx, c.roles, "userInfo", common.HexToAddress(addr))
	if err != nil {
		return nil, err
	}
	firstName := *abi.ConvertType(out[0], new(string)).(*string)
	if firstName == "" {
		return nil, nil
	}
	wallet := *abi.ConvertType(out[4], new(common.Address)).(*common.Address)
	return &Profile{
		FirstName:     firstName,
		LastName:      *abi.ConvertType(out[1], new(string)).(*string),
		Email:         *abi.ConvertType(out[2], new(string)).(*string),
		Organization:  *abi.ConvertType(out[3], new(string)).(*string),
		WalletAddress: wallet.Hex(),
	}, nil
}

// GetUserInfoRequest returns the pending verification request, or (nil, nil).
func (c *Client) GetUserInfoRequest(ctx context.Context, addr string) (*ProfileRequest, error) {
	out, err := c.call(ctx, c.roles, "userInfoRequests", common.HexToAddress(addr))
	if err != nil {
		return nil, err
	}
	requester := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	if requester == (common.Address{}) {
		return nil, nil
	}
	info := *abi.ConvertType(out[1], new(rawProfileInfo)).(*rawProfileInfo)
	return &ProfileRequest{
		Requester: requester.Hex(),
		Info: Profile{
			FirstName:     info.FirstName,
			LastName:      info.LastName,
			Email:         info.Email,
			Organization:  info.Organization,
			WalletAddress: info.WalletAddress.Hex(),
		},
		IsUpdate: *abi.ConvertType(out[2], new(bool)).(*bool),
		Pending:  *abi.ConvertType(out[3], new(bool)).(*bool),
		Approved: *abi.ConvertType(out[4], new(bool)).(*bool),
	}, nil
}

// RequestUserInfo submits profile fields for verification.
func (c *Client) RequestUserInfo(ctx context.Context, s *Session, p Profile) error {
	return c.transact(ctx, s, c.roles, "requestUserInfo",
		p.FirstName, p.LastName, p.Email, p.Organization)
}
