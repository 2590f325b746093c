package webserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streetcanvas/streetcanvas/src/chain"
	"github.com/streetcanvas/streetcanvas/src/lifecycle"
)

// writeErr maps client errors onto HTTP statuses. Ledger denial reasons are
// deliberately not distinguished from other submission failures.
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chain.ErrNoSession):
		c.JSON(http.StatusForbidden, gin.H{"err": "no signing session; connect a wallet"})
	case errors.Is(err, lifecycle.ErrInFlight):
		c.JSON(http.StatusConflict, gin.H{"err": err.Error()})
	case errors.Is(err, lifecycle.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"err": err.Error()})
	case errors.Is(err, lifecycle.ErrBadState), errors.Is(err, chain.ErrPercentOutOfRange):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"err": err.Error()})
	case errors.Is(err, lifecycle.ErrNoCapability), errors.Is(err, lifecycle.ErrNotPainter):
		c.JSON(http.StatusForbidden, gin.H{"err": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"err": "submission failed: " + err.Error()})
	}
}

// sessionFor returns the signing session when the operator key belongs to
// the authenticated address, else a read-only session for that address.
// Submissions through a read-only session fail with chain.ErrNoSession.
func sessionFor(signer *chain.Session, addr string) *chain.Session {
	if signer != nil && strings.EqualFold(signer.Address().Hex(), addr) {
		return signer
	}
	return chain.ReadOnly(addr)
}

func callerAddr(c *gin.Context) string { return c.GetString("addr") }
