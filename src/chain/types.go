package chain

// PaintingStatus mirrors the PaintingNFT contract enum. Zero is the
// uninitialized slot the contract returns for unknown request ids.
type PaintingStatus uint8

const (
	StatusNone PaintingStatus = iota
	StatusRequested
	StatusInProcess
	StatusCompleted
)

func (s PaintingStatus) String() string {
	switch s {
	case StatusRequested:
		return "requested"
	case StatusInProcess:
		return "in_process"
	case StatusCompleted:
		return "completed"
	default:
		return "none"
	}
}

// Coordinates are stored on-chain as signed microdegrees.
const coordScale = 1e6

type WallLocation struct {
	Country         string  `json:"country"`
	City            string  `json:"city"`
	PhysicalAddress string  `json:"physicalAddress"`
	Longitude       float64 `json:"longitude"`
	Latitude        float64 `json:"latitude"`
}

type Wall struct {
	ID                  uint64       `json:"id"`
	Owner               string       `json:"owner"`
	Location            WallLocation `json:"location"`
	Size                uint64       `json:"size"`
	OwnershipPercentage uint64       `json:"ownershipPercentage"`
	IsInGallery         bool         `json:"isInGallery"`
	GalleryID           uint64       `json:"galleryId"`
	CreatedAt           int64        `json:"createdAt"`
	LastUpdated         int64        `json:"lastUpdated"`
}

type GalleryLocation struct {
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type Gallery struct {
	ID                  uint64          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Location            GalleryLocation `json:"location"`
	Owner               string          `json:"owner"`
	OwnershipPercentage uint64          `json:"ownershipPercentage"`
	IsActive            bool            `json:"isActive"`
	CreatedAt           int64           `json:"createdAt"`
	LastUpdated         int64           `json:"lastUpdated"`
}

// GalleryParams is the creation payload for requestGallery.
type GalleryParams struct {
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	City                string  `json:"city"`
	Country             string  `json:"country"`
	Longitude           float64 `json:"longitude"`
	Latitude            float64 `json:"latitude"`
	OwnershipPercentage uint64  `json:"ownershipPercentage"`
}

// WallToGalleryRequest is a pending wall admission into a gallery.
type WallToGalleryRequest struct {
	WallID              uint64 `json:"wallId"`
	WallOwner           string `json:"wallOwner"`
	WallOwnerPercentage uint64 `json:"wallOwnerPercentage"`
	Pending             bool   `json:"pending"`
	Approved            bool   `json:"approved"`
}

type PaintingRequest struct {
	RequestID   uint64         `json:"requestId"`
	WallID      uint64         `json:"wallId"`
	Painter     string         `json:"painter"`
	Description string         `json:"description"`
	Status      PaintingStatus `json:"status"`
	Timestamp   int64          `json:"timestamp"`
}

// Painting is a minted artwork record on the PaintingNFT contract, distinct
// from the request that produced it.
type Painting struct {
	ID           uint64 `json:"id"`
	WallID       uint64 `json:"wallId"`
	Painter      string `json:"painter"`
	Description  string `json:"description"`
	SharesMinted bool   `json:"sharesMinted"`
	CreatedAt    int64  `json:"createdAt"`
}

// ShareInfo is the fractional-share token metadata for one painting.
type ShareInfo struct {
	PaintingID  uint64 `json:"paintingId"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	TotalSupply uint64 `json:"totalSupply"`
}

// ShareHolding pairs a share token with the holder's balance.
type ShareHolding struct {
	ShareInfo
	Balance uint64 `json:"balance"`
}

type Profile struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Organization  string `json:"organization"`
	WalletAddress string `json:"walletAddress"`
}

type ProfileRequest struct {
	Requester string  `json:"requester"`
	Info      Profile `json:"info"`
	IsUpdate  bool    `json:"isUpdate"`
	Pending   bool    `json:"pending"`
	Approved  bool    `json:"approved"`
}

// Capabilities are the caller's platform roles. Advisory only: the
// RoleManager contract re-checks on every submitted transaction.
type Capabilities struct {
	IsWallOwner    bool `json:"isWallOwner"`
	IsGalleryOwner bool `json:"isGalleryOwner"`
	IsPainter      bool `json:"isPainter"`
}
