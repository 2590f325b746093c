// Read-only smoke test against the deployed contracts.
//
// Run from repo root:
//
//	go run ./scripts/chain/test_chain.go
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/streetcanvas/streetcanvas/src/chain"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := chain.Dial(ctx, getenv("RPC_URL", "https://rpc.sepolia.org"), chain.Addresses{
		Wall:           common.HexToAddress(getenv("WALL_CONTRACT", "0x377f17e2e00fc1419FbdEe9256dBEB2d10BF80B4")),
		Gallery:        common.HexToAddress(getenv("GALLERY_CONTRACT", "0x1A948eFfce9778a90B301D05BC877c353E2dd7c8")),
		PaintingNFT:    common.HexToAddress(getenv("PAINTINGNFT_CONTRACT", "0xa0704674d4174773f6b7ADcA2a6e3CafA5892DBc")),
		PaintingShares: common.HexToAddress(getenv("PAINTINGSHARES_CONTRACT", "0x8bEacf1DB7e487b5AC66918327305E4aab2b7C91")),
		RoleManager:    common.HexToAddress(getenv("ROLEMANAGER_CONTRACT", "0x0Ec3C186B24a9441dEc0323C95D736C15229D7F4")),
	})
	if err != nil {
		log.Fatalf("dial: %v", err)
	}

	pct, err := client.GetPlatformPercentage(ctx)
	if err != nil {
		log.Fatalf("platform percentage: %v", err)
	}
	log.Printf("platform percentage: %d", pct)

	wallID := uint64(1)
	wall, err := client.GetWall(ctx, wallID)
	if err != nil {
		log.Fatalf("wall %d: %v", wallID, err)
	}
	if wall == nil {
		log.Printf("wall %d: not registered", wallID)
	} else {
		log.Printf("wall %d: owner=%s size=%d pct=%d gallery=%v",
			wall.ID, wall.Owner, wall.Size, wall.OwnershipPercentage, wall.IsInGallery)
		ids, err := client.GetWallRequests(ctx, wall.ID)
		if err != nil {
			log.Fatalf("wall %d requests: %v", wall.ID, err)
		}
		log.Printf("wall %d: %d painting requests", wall.ID, len(ids))
	}

	galleryID := uint64(1)
	gallery, err := client.GetGallery(ctx, galleryID)
	if err != nil {
		log.Fatalf("gallery %d: %v", galleryID, err)
	}
	if gallery == nil {
		log.Printf("gallery %d: not registered", galleryID)
	} else {
		log.Printf("gallery %d: %q owner=%s active=%v",
			gallery.ID, gallery.Name, gallery.Owner, gallery.IsActive)
	}

	log.Printf("chain smoke test passed")
}
