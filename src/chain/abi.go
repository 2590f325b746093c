package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ABI fragments for the deployed platform contracts, trimmed to the call
// surface this client uses.

const wallABIJSON = `[
{"type":"function","name":"getWall","stateMutability":"view",
 "inputs":[{"name":"wallId","type":"uint256"}],
 "outputs":[{"name":"","type":"tuple","components":[
   {"name":"id","type":"uint256"},
   {"name":"owner","type":"address"},
   {"name":"location","type":"tuple","components":[
     {"name":"country","type":"string"},
     {"name":"city","type":"string"},
     {"name":"physicalAddress","type":"string"},
     {"name":"longitude","type":"int256"},
     {"name":"latitude","type":"int256"}]},
   {"name":"size","type":"uint256"},
   {"name":"ownershipPercentage","type":"uint256"},
   {"name":"isInGallery","type":"bool"},
   {"name":"galleryId","type":"uint256"},
   {"name":"createdAt","type":"uint256"},
   {"name":"lastUpdated","type":"uint256"}]}]},
{"type":"function","name":"getWallsByOwner","stateMutability":"view",
 "inputs":[{"name":"owner","type":"address"}],
 "outputs":[{"name":"","type":"uint256[]"}]},
{"type":"function","name":"requestWall","stateMutability":"nonpayable",
 "inputs":[
   {"name":"country","type":"string"},
   {"name":"city","type":"string"},
   {"name":"physicalAddress","type":"string"},
   {"name":"longitude","type":"int256"},
   {"name":"latitude","type":"int256"},
   {"name":"size","type":"uint256"},
   {"name":"ownershipPercentage","type":"uint256"}],
 "outputs":[]},
{"type":"function","name":"setOwnershipPercentage","stateMutability":"nonpayable",
 "inputs":[{"name":"wallId","type":"uint256"},{"name":"percentage","type":"uint256"}],
 "outputs":[]}
]`

const galleryABIJSON = `[
{"type":"function","name":"getGallery","stateMutability":"view",
 "inputs":[{"name":"galleryId","type":"uint256"}],
 "outputs":[{"name":"","type":"tuple","components":[
   {"name":"id","type":"uint256"},
   {"name":"name","type":"string"},
   {"name":"description","type":"string"},
   {"name":"location","type":"tuple","components":[
     {"name":"city","type":"string"},
     {"name":"country","type":"string"},
     {"name":"longitude","type":"int256"},
     {"name":"latitude","type":"int256"}]},
   {"name":"owner","type":"address"},
   {"name":"ownershipPercentage","type":"uint256"},
   {"name":"isActive","type":"bool"},
   {"name":"createdAt","type":"uint256"},
   {"name":"lastUpdated","type":"uint256"}]}]},
{"type":"function","name":"getGalleriesByOwner","stateMutability":"view",
 "inputs":[{"name":"owner","type":"address"}],
 "outputs":[{"name":"","type":"tuple[]","components":[
   {"name":"id","type":"uint256"},
   {"name":"name","type":"string"},
   {"name":"description","type":"string"},
   {"name":"location","type":"tuple","components":[
     {"name":"city","type":"string"},
     {"name":"country","type":"string"},
     {"name":"longitude","type":"int256"},
     {"name":"latitude","type":"int256"}]},
   {"name":"owner","type":"address"},
   {"name":"ownershipPercentage","type":"uint256"},
   {"name":"isActive","type":"bool"},
   {"name":"createdAt","type":"uint256"},
   {"name":"lastUpdated","type":"uint256"}]}]},
{"type":"function","name":"getGalleryWalls","stateMutability":"view",
 "inputs":[{"name":"galleryId","type":"uint256"}],
 "outputs":[{"name":"","type":"uint256[]"}]},
{"type":"function","name":"getPendingWallRequests","stateMutability":"view",
 "inputs":[{"name":"galleryId","type":"uint256"}],
 "outputs":[{"name":"","type":"tuple[]","components":[
   {"name":"wallId","type":"uint256"},
   {"name":"wallOwner","type":"address"},
   {"name":"wallOwnerPercentage","type":"uint256"},
   {"name":"pending","type":"bool"},
   {"name":"approved","type":"bool"}]}]},
{"type":"function","name":"getPlatformPercentage","stateMutability":"view",
 "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"isGalleryActive","stateMutability":"view",
 "inputs":[{"name":"galleryId","type":"uint256"}],
 "outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"getGalleryOwner","stateMutability":"view",
 "inputs":[{"name":"galleryId","type":"uint256"}],
 "outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"requestGallery","stateMutability":"nonpayable",
 "inputs":[{"name":"params","type":"tuple","components":[
   {"name":"name","type":"string"},
   {"name":"description","type":"string"},
   {"name":"city","type":"string"},
   {"name":"country","type":"string"},
   {"name":"longitude","type":"int256"},
   {"name":"latitude","type":"int256"},
   {"name":"ownershipPercentage","type":"uint256"}]}],
 "outputs":[]},
{"type":"function","name":"requestWallToGallery","stateMutability":"nonpayable",
 "inputs":[{"name":"galleryId","type":"uint256"},{"name":"wallId","type":"uint256"}],
 "outputs":[]},
{"type":"function","name":"approveWallToGallery","stateMutability":"nonpayable",
 "inputs":[{"name":"galleryId","type":"uint256"},{"name":"wallId","type":"uint256"}],
 "outputs":[]},
{"type":"function","name":"rejectWallToGallery","stateMutability":"nonpayable",
 "inputs":[{"name":"galleryId","type":"uint256"},{"name":"wallId","type":"uint256"}],
 "outputs":[]}
]`

const paintingABIJSON = `[
{"type":"function","name":"getPaintingRequest","stateMutability":"view",
 "inputs":[{"name":"requestId","type":"uint256"}],
 "outputs":[{"name":"","type":"tuple","components":[
   {"name":"requestId","type":"uint256"},
   {"name":"wallId","type":"uint256"},
   {"name":"painter","type":"address"},
   {"name":"description","type":"string"},
   {"name":"status","type":"uint8"},
   {"name":"timestamp","type":"uint256"}]}]},
{"type":"function","name":"getWallRequests","stateMutability":"view",
 "inputs":[{"name":"wallId","type":"uint256"}],
 "outputs":[{"name":"","type":"uint256[]"}]},
{"type":"function","name":"getWallCompletedRequests","stateMutability":"view",
 "inputs":[{"name":"wallId","type":"uint256"}],
 "outputs":[{"name":"","type":"uint256[]"}]},
{"type":"function","name":"getPainterPendingRequests","stateMutability":"view",
 "inputs":[{"name":"painter","type":"address"}],
 "outputs":[{"name":"","type":"uint256[]"}]},
{"type":"function","name":"getPainterAcceptedRequests","stateMutability":"view",
 "inputs":[{"name":"painter","type":"address"}],
 "outputs":[{"name":"","type":"uint256[]"}]},
{"type":"function","name":"requestPainting","stateMutability":"nonpayable",
 "inputs":[{"name":"wallId","type":"uint256"},{"name":"description","type":"string"}],
 "outputs":[]},
{"type":"function","name":"approvePaintingRequest","stateMutability":"nonpayable",
 "inputs":[{"name":"requestId","type":"uint256"}],"outputs":[]},
{"type":"function","name":"rejectPaintingRequest","stateMutability":"nonpayable",
 "inputs":[{"name":"requestId","type":"uint256"}],"outputs":[]},
{"type":"function","name":"submitPaintingCompletion","stateMutability":"nonpayable",
 "inputs":[{"name":"requestId","type":"uint256"}],"outputs":[]},
{"type":"function","name":"finalizePainting","stateMutability":"nonpayable",
 "inputs":[{"name":"requestId","type":"uint256"}],"outputs":[]},
{"type":"function","name":"paintings","stateMutability":"view",
 "inputs":[{"name":"paintingId","type":"uint256"}],
 "outputs":[
   {"name":"id","type":"uint256"},
   {"name":"wallId","type":"uint256"},
   {"name":"painter","type":"address"},
   {"name":"description","type":"string"},
   {"name":"sharesMinted","type":"bool"},
   {"name":"createdAt","type":"uint256"}]}
]`

const paintingSharesABIJSON = `[
{"type":"function","name":"getShareInfo","stateMutability":"view",
 "inputs":[{"name":"paintingId","type":"uint256"}],
 "outputs":[
   {"name":"name","type":"string"},
   {"name":"symbol","type":"string"},
   {"name":"totalSupply","type":"uint256"}]},
{"type":"function","name":"balanceOf","stateMutability":"view",
 "inputs":[{"name":"account","type":"address"},{"name":"paintingId","type":"uint256"}],
 "outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"transfer","stateMutability":"nonpayable",
 "inputs":[
   {"name":"paintingId","type":"uint256"},
   {"name":"to","type":"address"},
   {"name":"amount","type":"uint256"}],
 "outputs":[]}
]`

const roleManagerABIJSON = `[
{"type":"function","name":"hasRole","stateMutability":"view",
 "inputs":[{"name":"role","type":"bytes32"},{"name":"account","type":"address"}],
 "outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"userInfo","stateMutability":"view",
 "inputs":[{"name":"account","type":"address"}],
 "outputs":[
   {"name":"firstName","type":"string"},
   {"name":"lastName","type":"string"},
   {"name":"email","type":"string"},
   {"name":"organization","type":"string"},
   {"name":"walletAddress","type":"address"}]},
{"type":"function","name":"userInfoRequests","stateMutability":"view",
 "inputs":[{"name":"account","type":"address"}],
 "outputs":[
   {"name":"requester","type":"address"},
   {"name":"info","type":"tuple","components":[
     {"name":"firstName","type":"string"},
     {"name":"lastName","type":"string"},
     {"name":"email","type":"string"},
     {"name":"organization","type":"string"},
     {"name":"walletAddress","type":"address"}]},
   {"name":"isUpdate","type":"bool"},
   {"name":"pending","type":"bool"},
   {"name":"approved","type":"bool"}]},
{"type":"function","name":"requestUserInfo","stateMutability":"nonpayable",
 "inputs":[
   {"name":"firstName","type":"string"},
   {"name":"lastName","type":"string"},
   {"name":"email","type":"string"},
   {"name":"organization","type":"string"}],
 "outputs":[]}
]`

var (
	wallABI           = mustABI(wallABIJSON)
	galleryABI        = mustABI(galleryABIJSON)
	paintingABI       = mustABI(paintingABIJSON)
	paintingSharesABI = mustABI(paintingSharesABIJSON)
	roleManagerABI    = mustABI(roleManagerABIJSON)
)

func mustABI(src string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(src))
	if err != nil {
		panic(err)
	}
	return parsed
}
