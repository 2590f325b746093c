package webserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/streetcanvas/streetcanvas/src/api/data"
	"github.com/streetcanvas/streetcanvas/src/chain"
	"github.com/streetcanvas/streetcanvas/src/lifecycle"
	"github.com/streetcanvas/streetcanvas/src/views"
)

type Walls struct {
	chain     *chain.Client
	manager   *lifecycle.Manager
	views     *views.Views
	snaps     *data.Snapshots
	signer    *chain.Session
	sanitizer *bluemonday.Policy
}

func NewWalls(c *chain.Client, m *lifecycle.Manager, v *views.Views, snaps *data.Snapshots, signer *chain.Session) Walls {
	return Walls{chain: c, manager: m, views: v, snaps: snaps, signer: signer, sanitizer: bluemonday.StrictPolicy()}
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad " + name})
		return 0, false
	}
	return id, true
}

// List returns the caller's walls with bucketed painting requests.
func (h Walls) List(c *gin.Context) {
	entries, err := h.views.OwnerDashboard(c, callerAddr(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h Walls) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if w, hit := h.snaps.GetWall(c, id); hit {
		c.JSON(http.StatusOK, w)
		return
	}
	w, err := h.chain.GetWall(c, id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	if w == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "wall not found"})
		return
	}
	h.snaps.PutWall(c, w)
	c.JSON(http.StatusOK, w)
}

func (h Walls) Requests(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	buckets, err := h.views.WallRequests(c, id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"requests":           buckets,
		"newRequestInFlight": h.manager.WallInFlight(id),
	})
}

// Completed lists the wall's completed painting requests from the dedicated
// contract index, in index order.
func (h Walls) Completed(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ids, err := h.chain.GetWallCompletedRequests(c, id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	reqs := make([]chain.PaintingRequest, 0, len(ids))
	for _, requestID := range ids {
		req, err := h.chain.GetPaintingRequest(c, requestID)
		if err != nil {
			log.Printf("walls: completed request %d: %v", requestID, err)
			continue
		}
		if req != nil {
			reqs = append(reqs, *req)
		}
	}
	c.JSON(http.StatusOK, reqs)
}

func (h Walls) Request(c *gin.Context) {
	var req struct {
		Country         string  `json:"country" binding:"required"`
		City            string  `json:"city" binding:"required"`
		PhysicalAddress string  `json:"physicalAddress" binding:"required"`
		Longitude       float64 `json:"longitude"`
		Latitude        float64 `json:"latitude"`
		Size            uint64  `json:"size" binding:"required"`
		Percentage      uint64  `json:"ownershipPercentage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	loc := chain.WallLocation{
		Country:         h.sanitizer.Sanitize(req.Country),
		City:            h.sanitizer.Sanitize(req.City),
		PhysicalAddress: h.sanitizer.Sanitize(req.PhysicalAddress),
		Longitude:       req.Longitude,
		Latitude:        req.Latitude,
	}
	s := sessionFor(h.signer, callerAddr(c))
	if err := h.chain.RequestWall(c, s, loc, req.Size, req.Percentage); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "submitted"})
}

func (h Walls) SetPercentage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Percentage uint64 `json:"percentage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	s := sessionFor(h.signer, callerAddr(c))
	if err := h.chain.SetOwnershipPercentage(c, s, id, req.Percentage); err != nil {
		writeErr(c, err)
		return
	}
	h.snaps.InvalidateWall(c, id)
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
