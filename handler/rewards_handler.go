package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/eco_rewards/service"
)

// RewardsHandler exposes the core operation surface: wallet binding,
// settlement, chain scans, and the combined rewards view.
type RewardsHandler struct {
	binding    *service.BindingService
	settlement *service.SettlementService
	scanner    *service.Scanner
	rewards    *service.RewardsService

	defaultWindowBlocks uint64
	defaultMaxResults   int
	scanTimeout         time.Duration
}

func NewRewardsHandler(binding *service.BindingService, settlement *service.SettlementService,
	scanner *service.Scanner, rewards *service.RewardsService,
	defaultWindowBlocks uint64, defaultMaxResults int, scanTimeout time.Duration) *RewardsHandler {
	return &RewardsHandler{
		binding:             binding,
		settlement:          settlement,
		scanner:             scanner,
		rewards:             rewards,
		defaultWindowBlocks: defaultWindowBlocks,
		defaultMaxResults:   defaultMaxResults,
		scanTimeout:         scanTimeout,
	}
}

// POST /api/rewards/wallet/bind
func (h *RewardsHandler) BindWallet(c *gin.Context) {
	var req struct {
		UserID  string `json:"userId" binding:"required"`
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address, err := h.binding.Bind(c.Request.Context(), req.UserID, req.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address})
}

// POST /api/rewards/wallet/unbind
func (h *RewardsHandler) UnbindWallet(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.binding.Unbind(c.Request.Context(), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/rewards/wallet/binding
func (h *RewardsHandler) GetBinding(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId"})
		return
	}
	address, err := h.binding.GetBinding(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address})
}

// POST /api/rewards/settle
func (h *RewardsHandler) Settle(c *gin.Context) {
	var req struct {
		TripID      string `json:"tripId" binding:"required"`
		ItineraryID string `json:"itineraryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := h.settlement.Settle(c.Request.Context(), req.TripID, req.ItineraryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GET /api/rewards/chain/transactions
func (h *RewardsHandler) ScanTransactions(c *gin.Context) {
	address := c.Query("address")
	if !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}
	windowBlocks := h.defaultWindowBlocks
	if v := c.Query("windowBlocks"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid windowBlocks"})
			return
		}
		windowBlocks = n
	}
	maxResults := h.defaultMaxResults
	if v := c.Query("maxResults"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxResults"})
			return
		}
		maxResults = n
	}

	ctx, cancel := h.scanContext(c.Request.Context())
	defer cancel()
	txs, err := h.scanner.ScanRecent(ctx, address, windowBlocks, maxResults)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(txs), "transactions": txs})
}

// GET /api/rewards/view
func (h *RewardsHandler) View(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId"})
		return
	}
	ctx, cancel := h.scanContext(c.Request.Context())
	defer cancel()
	view, err := h.rewards.View(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *RewardsHandler) scanContext(parent context.Context) (context.Context, context.CancelFunc) {
	if h.scanTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.scanTimeout)
}
