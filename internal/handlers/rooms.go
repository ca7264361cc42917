package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitroom/splitroom/internal/middleware"
	"github.com/splitroom/splitroom/internal/models"
	"github.com/splitroom/splitroom/internal/service"
)

// RoomHandler serves room creation, joining, and the balance sheet.
type RoomHandler struct {
	rooms    *service.RoomService
	receipts *service.ReceiptService
}

func NewRoomHandler(rooms *service.RoomService, receipts *service.ReceiptService) *RoomHandler {
	return &RoomHandler{rooms: rooms, receipts: receipts}
}

type roomResp struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	OwnerID   string `json:"owner_id"`
	CreatedAt int64  `json:"created_at"`
}

// toRoomResp strips the password hash from API responses.
func toRoomResp(room *models.Room) roomResp {
	return roomResp{
		ID:        room.ID,
		Name:      room.Name,
		Code:      room.Code,
		OwnerID:   room.OwnerID,
		CreatedAt: room.CreatedAt,
	}
}

type createRoomReq struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateRoom creates a room owned by the authenticated user.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req createRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.rooms.CreateRoom(c.Request.Context(), req.Name, req.Password, middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRoomResp(room))
}

type joinRoomReq struct {
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// JoinRoom adds the authenticated user to a room by code and password.
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req joinRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.rooms.JoinRoom(c.Request.Context(), req.Code, req.Password, middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResp(room))
}

// GetRoom returns a room by its join code.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.rooms.GetRoomByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResp(room))
}

// ListMembers returns the users in a room.
func (h *RoomHandler) ListMembers(c *gin.Context) {
	members, err := h.rooms.ListMembers(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]userResp, len(members))
	for i, member := range members {
		resp[i] = toUserResp(member)
	}
	c.JSON(http.StatusOK, resp)
}

// ListMyRooms returns the rooms the authenticated user belongs to.
func (h *RoomHandler) ListMyRooms(c *gin.Context) {
	rooms, err := h.rooms.ListUserRooms(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]roomResp, len(rooms))
	for i, room := range rooms {
		resp[i] = toRoomResp(room)
	}
	c.JSON(http.StatusOK, resp)
}

// ListRoomReceipts returns the receipts attached to a room.
func (h *RoomHandler) ListRoomReceipts(c *gin.Context) {
	if _, err := h.rooms.GetRoomByCode(c.Request.Context(), c.Param("code")); err != nil {
		writeError(c, err)
		return
	}
	receipts, err := h.receipts.ListRoomReceipts(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]receiptResp, len(receipts))
	for i, receipt := range receipts {
		resp[i] = toReceiptResp(receipt)
	}
	c.JSON(http.StatusOK, resp)
}

// BalanceSheet returns each member's aggregate settled share in the room.
func (h *RoomHandler) BalanceSheet(c *gin.Context) {
	sheet, err := h.rooms.BalanceSheet(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_costs": sheet})
}
