package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streetcanvas/streetcanvas/src/chain"
)

type Assets struct {
	chain  *chain.Client
	signer *chain.Session
}

func NewAssets(c *chain.Client, signer *chain.Session) Assets {
	return Assets{chain: c, signer: signer}
}

// List returns every share token the caller holds a positive balance in.
func (h Assets) List(c *gin.Context) {
	holdings, err := h.chain.GetHoldings(c, callerAddr(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, holdings)
}

// Transfer sends share units of one painting to another address. Balance
// sufficiency is the ledger's call.
func (h Assets) Transfer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		To     string `json:"to" binding:"required"`
		Amount uint64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	s := sessionFor(h.signer, callerAddr(c))
	if err := h.chain.TransferShares(c, s, id, req.To, req.Amount); err != nil {
		writeErr(c, err)
		return
	}
	balance, err := h.chain.BalanceOf(c, callerAddr(c), id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "transferred"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "transferred", "balance": balance})
}
