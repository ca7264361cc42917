package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/splitroom/splitroom/internal/middleware"
	"github.com/splitroom/splitroom/internal/models"
	"github.com/splitroom/splitroom/internal/service"
)

// UserHandler serves verification and profile endpoints.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type userResp struct {
	ID                string `json:"id"`
	PhoneNumber       string `json:"phone_number"`
	Name              string `json:"name,omitempty"`
	Username          string `json:"username,omitempty"`
	Email             string `json:"email,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

func toUserResp(user *models.User) userResp {
	return userResp{
		ID:                user.ID,
		PhoneNumber:       user.PhoneNumber,
		Name:              user.Name,
		Username:          user.Username,
		Email:             user.Email,
		ProfilePictureURL: user.ProfilePictureURL,
	}
}

type initVerificationReq struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// InitializeVerification sends a one-time code to the phone number.
func (h *UserHandler) InitializeVerification(c *gin.Context) {
	var req initVerificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.users.InitializeVerification(c.Request.Context(), req.PhoneNumber); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification code has been sent"})
}

type completeVerificationReq struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
}

// CompleteVerification checks the code and returns the user with a session
// token, creating the account on first verification.
func (h *UserHandler) CompleteVerification(c *gin.Context) {
	var req completeVerificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, token, err := h.users.CompleteVerification(c.Request.Context(), req.PhoneNumber, req.OTP)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         toUserResp(user),
		"access_token": token,
		"token_type":   "bearer",
	})
}

// GetUser returns one user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResp(user))
}

// ListUsers returns users paginated with skip/limit query params.
func (h *UserHandler) ListUsers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	users, err := h.users.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]userResp, len(users))
	for i, user := range users {
		resp[i] = toUserResp(user)
	}
	c.JSON(http.StatusOK, resp)
}

type updateProfileReq struct {
	Name              string `json:"name"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// UpdateProfile updates the authenticated user's own profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if c.Param("id") != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "can only update your own profile"})
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	user.Name = req.Name
	user.Username = req.Username
	user.Email = req.Email
	user.ProfilePictureURL = req.ProfilePictureURL

	if err := h.users.UpdateProfile(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResp(user))
}
