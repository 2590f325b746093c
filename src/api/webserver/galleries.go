package webserver

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/streetcanvas/streetcanvas/src/api/data"
	"github.com/streetcanvas/streetcanvas/src/chain"
	"github.com/streetcanvas/streetcanvas/src/views"
)

type Galleries struct {
	chain     *chain.Client
	views     *views.Views
	snaps     *data.Snapshots
	signer    *chain.Session
	sanitizer *bluemonday.Policy
}

func NewGalleries(c *chain.Client, v *views.Views, snaps *data.Snapshots, signer *chain.Session) Galleries {
	return Galleries{chain: c, views: v, snaps: snaps, signer: signer, sanitizer: bluemonday.StrictPolicy()}
}

func (h Galleries) List(c *gin.Context) {
	galleries, err := h.chain.GetGalleriesByOwner(c, callerAddr(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, galleries)
}

func (h Galleries) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if g, hit := h.snaps.GetGallery(c, id); hit {
		c.JSON(http.StatusOK, g)
		return
	}
	g, err := h.chain.GetGallery(c, id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	if g == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "gallery not found"})
		return
	}
	h.snaps.PutGallery(c, g)
	c.JSON(http.StatusOK, g)
}

// Overview returns the merged gallery shape: walls, pending wall admissions
// and bucketed painting requests.
func (h Galleries) Overview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	overview, err := h.views.GalleryOverview(c, id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	if overview == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "gallery not found"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h Galleries) Request(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		City        string  `json:"city" binding:"required"`
		Country     string  `json:"country" binding:"required"`
		Longitude   float64 `json:"longitude"`
		Latitude    float64 `json:"latitude"`
		Percentage  uint64  `json:"ownershipPercentage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	params := chain.GalleryParams{
		Name:                h.sanitizer.Sanitize(req.Name),
		Description:         h.sanitizer.Sanitize(req.Description),
		City:                h.sanitizer.Sanitize(req.City),
		Country:             h.sanitizer.Sanitize(req.Country),
		Longitude:           req.Longitude,
		Latitude:            req.Latitude,
		OwnershipPercentage: req.Percentage,
	}
	s := sessionFor(h.signer, callerAddr(c))
	if err := h.chain.RequestGallery(c, s, params); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "submitted"})
}

func (h Galleries) RequestWall(c *gin.Context) {
	galleryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		WallID uint64 `json:"wallId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	// Advisory gate: admission into an inactive gallery always reverts, so
	// reject early with a readable error. The ledger re-checks on submit.
	if active, err := h.chain.IsGalleryActive(c, galleryID); err == nil && !active {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"err": "gallery is not active"})
		return
	}
	s := sessionFor(h.signer, callerAddr(c))
	if err := h.chain.RequestWallToGallery(c, s, galleryID, req.WallID); err != nil {
		writeErr(c, err)
		return
	}
	h.snaps.InvalidateGallery(c, galleryID)
	c.JSON(http.StatusAccepted, gin.H{"status": "submitted"})
}

func (h Galleries) wallDecision(c *gin.Context, decide func(*gin.Context, *chain.Session, uint64, uint64) error) {
	galleryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	wallID, ok := pathID(c, "wallId")
	if !ok {
		return
	}
	// Advisory gate: only the gallery owner can decide admissions.
	if owner, err := h.chain.GetGalleryOwner(c, galleryID); err == nil &&
		common.HexToAddress(owner) != (common.Address{}) &&
		!strings.EqualFold(owner, callerAddr(c)) {
		c.JSON(http.StatusForbidden, gin.H{"err": "not the gallery owner"})
		return
	}
	s := sessionFor(h.signer, callerAddr(c))
	if err := decide(c, s, galleryID, wallID); err != nil {
		writeErr(c, err)
		return
	}
	h.snaps.InvalidateGallery(c, galleryID)
	h.snaps.InvalidateWall(c, wallID)
	c.JSON(http.StatusOK, gin.H{"status": "done"})
}

func (h Galleries) ApproveWall(c *gin.Context) {
	h.wallDecision(c, func(ctx *gin.Context, s *chain.Session, galleryID, wallID uint64) error {
		return h.chain.ApproveWallToGallery(ctx, s, galleryID, wallID)
	})
}

func (h Galleries) RejectWall(c *gin.Context) {
	h.wallDecision(c, func(ctx *gin.Context, s *chain.Session, galleryID, wallID uint64) error {
		return h.chain.RejectWallToGallery(ctx, s, galleryID, wallID)
	})
}

func (h Galleries) PlatformPercentage(c *gin.Context) {
	pct, err := h.chain.GetPlatformPercentage(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"platformPercentage": pct})
}
