package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/streetcanvas/streetcanvas/src/api/data"
	"github.com/streetcanvas/streetcanvas/src/chain"
	"github.com/streetcanvas/streetcanvas/src/lifecycle"
	"github.com/streetcanvas/streetcanvas/src/views"
)

type Paintings struct {
	chain     *chain.Client
	manager   *lifecycle.Manager
	views     *views.Views
	snaps     *data.Snapshots
	signer    *chain.Session
	sanitizer *bluemonday.Policy
}

func NewPaintings(c *chain.Client, m *lifecycle.Manager, v *views.Views, snaps *data.Snapshots, signer *chain.Session) Paintings {
	return Paintings{chain: c, manager: m, views: v, snaps: snaps, signer: signer, sanitizer: bluemonday.StrictPolicy()}
}

// Get returns a request snapshot plus whether a transition for it is still
// awaiting confirmation.
func (h Paintings) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, hit := h.snaps.GetPainting(c, id)
	if !hit {
		var err error
		req, err = h.chain.GetPaintingRequest(c, id)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
			return
		}
		h.snaps.PutPainting(c, req)
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "painting request not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req, "inFlight": h.manager.InFlight(id)})
}

// Mine returns the caller's requests across all walls.
func (h Paintings) Mine(c *gin.Context) {
	buckets, err := h.views.PainterRequests(c, callerAddr(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func (h Paintings) Request(c *gin.Context) {
	var req struct {
		WallID      uint64 `json:"wallId" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	s := sessionFor(h.signer, callerAddr(c))
	created, err := h.manager.Request(c, s, req.WallID, h.sanitizer.Sanitize(req.Description))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type transitionFunc func(c *gin.Context, s *chain.Session, id uint64) (*chain.PaintingRequest, error)

func (h Paintings) transition(c *gin.Context, do transitionFunc) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s := sessionFor(h.signer, callerAddr(c))
	updated, err := do(c, s, id)
	if err != nil {
		writeErr(c, err)
		return
	}
	if updated == nil {
		// Terminal: the ledger no longer tracks the request.
		c.JSON(http.StatusOK, gin.H{"status": "closed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h Paintings) Approve(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, s *chain.Session, id uint64) (*chain.PaintingRequest, error) {
		return h.manager.Approve(ctx, s, id)
	})
}

func (h Paintings) Reject(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, s *chain.Session, id uint64) (*chain.PaintingRequest, error) {
		return h.manager.Reject(ctx, s, id)
	})
}

func (h Paintings) Complete(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, s *chain.Session, id uint64) (*chain.PaintingRequest, error) {
		return h.manager.SubmitCompletion(ctx, s, id)
	})
}

func (h Paintings) Finalize(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, s *chain.Session, id uint64) (*chain.PaintingRequest, error) {
		return h.manager.Finalize(ctx, s, id)
	})
}
