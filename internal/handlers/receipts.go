package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitroom/splitroom/internal/middleware"
	"github.com/splitroom/splitroom/internal/models"
	"github.com/splitroom/splitroom/internal/service"
)

// ReceiptHandler serves receipt entry, item assignment, and settlement.
type ReceiptHandler struct {
	receipts *service.ReceiptService
}

func NewReceiptHandler(receipts *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

type itemReq struct {
	Name     string   `json:"name" binding:"required"`
	Quantity int64    `json:"quantity"`
	Cost     float64  `json:"cost"`
	UserIDs  []string `json:"user_ids"`
}

type createReceiptReq struct {
	Name         string    `json:"name" binding:"required"`
	RoomCode     string    `json:"room_code"`
	MerchantName string    `json:"merchant_name"`
	Date         string    `json:"date"`
	TotalAmount  float64   `json:"total_amount"`
	TaxAmount    float64   `json:"tax_amount"`
	TipAmount    float64   `json:"tip_amount"`
	Items        []itemReq `json:"items"`
}

type itemResp struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Quantity int64    `json:"quantity"`
	Cost     float64  `json:"cost"`
	UserIDs  []string `json:"user_ids"`
}

type receiptResp struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	RoomCode     string     `json:"room_code,omitempty"`
	OwnerID      string     `json:"owner_id"`
	MerchantName string     `json:"merchant_name"`
	Date         string     `json:"date"`
	TotalAmount  float64    `json:"total_amount"`
	TaxAmount    float64    `json:"tax_amount"`
	TipAmount    float64    `json:"tip_amount"`
	Items        []itemResp `json:"items"`
	CreatedAt    int64      `json:"created_at"`
}

func toReceiptResp(receipt *models.Receipt) receiptResp {
	items := make([]itemResp, len(receipt.Items))
	for i, item := range receipt.Items {
		items[i] = itemResp{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Cost:     item.Cost,
			UserIDs:  item.UserIDs,
		}
	}
	return receiptResp{
		ID:           receipt.ID,
		Name:         receipt.Name,
		RoomCode:     receipt.RoomCode,
		OwnerID:      receipt.OwnerID,
		MerchantName: receipt.MerchantName,
		Date:         receipt.Date,
		TotalAmount:  receipt.TotalAmount,
		TaxAmount:    receipt.TaxAmount,
		TipAmount:    receipt.TipAmount,
		Items:        items,
		CreatedAt:    receipt.CreatedAt,
	}
}

// CreateReceipt persists a receipt owned by the authenticated user and
// returns it with generated IDs.
func (h *ReceiptHandler) CreateReceipt(c *gin.Context) {
	var req createReceiptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]models.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.Item{
			Name:     item.Name,
			Quantity: item.Quantity,
			Cost:     item.Cost,
			UserIDs:  item.UserIDs,
		}
	}

	receipt := &models.Receipt{
		Name:         req.Name,
		RoomCode:     req.RoomCode,
		OwnerID:      middleware.GetUserID(c),
		MerchantName: req.MerchantName,
		Date:         req.Date,
		TotalAmount:  req.TotalAmount,
		TaxAmount:    req.TaxAmount,
		TipAmount:    req.TipAmount,
		Items:        items,
	}

	if err := h.receipts.CreateReceipt(c.Request.Context(), receipt); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReceiptResp(receipt))
}

// GetReceipt returns a receipt with items and assignments.
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	receipt, err := h.receipts.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReceiptResp(receipt))
}

// Settle recomputes and persists the receipt's shares, returning each
// user's settled total.
func (h *ReceiptHandler) Settle(c *gin.Context) {
	totals, err := h.receipts.Settle(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": totals})
}

type assignItemReq struct {
	UserIDs []string `json:"user_ids"`
}

// AssignItem replaces an item's assigned users and re-settles the receipt.
func (h *ReceiptHandler) AssignItem(c *gin.Context) {
	var req assignItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	totals, err := h.receipts.AssignItem(c.Request.Context(), c.Param("id"), req.UserIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": totals})
}
