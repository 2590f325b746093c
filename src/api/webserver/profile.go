package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/streetcanvas/streetcanvas/src/chain"
)

type Profile struct {
	chain     *chain.Client
	signer    *chain.Session
	sanitizer *bluemonday.Policy
}

func NewProfile(c *chain.Client, signer *chain.Session) Profile {
	return Profile{chain: c, signer: signer, sanitizer: bluemonday.StrictPolicy()}
}

// Me returns the caller's address and advisory capability flags.
func (h Profile) Me(c *gin.Context) {
	addr := callerAddr(c)
	caps := h.chain.ResolveCapabilities(c, addr)
	c.JSON(http.StatusOK, gin.H{"address": addr, "capabilities": caps})
}

func (h Profile) Get(c *gin.Context) {
	profile, err := h.chain.GetUserInfo(c, callerAddr(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "no verified profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h Profile) GetRequest(c *gin.Context) {
	req, err := h.chain.GetUserInfoRequest(c, callerAddr(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "no pending profile request"})
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h Profile) Submit(c *gin.Context) {
	var req struct {
		FirstName    string `json:"firstName" binding:"required"`
		LastName     string `json:"lastName" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		Organization string `json:"organization"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	s := sessionFor(h.signer, callerAddr(c))
	err := h.chain.RequestUserInfo(c, s, chain.Profile{
		FirstName:    h.sanitizer.Sanitize(req.FirstName),
		LastName:     h.sanitizer.Sanitize(req.LastName),
		Email:        h.sanitizer.Sanitize(req.Email),
		Organization: h.sanitizer.Sanitize(req.Organization),
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "submitted"})
}
