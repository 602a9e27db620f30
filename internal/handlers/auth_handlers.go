package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rudra-dhamecha/groww-financial-tracker/internal/auth"
	"github.com/rudra-dhamecha/groww-financial-tracker/internal/database"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid register body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := h.auth.HashPassword(req.Password)
	if err != nil {
		h.log.Errorf("hash password failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	user, err := h.repo.CreateUser(c.Request.Context(), strings.ToLower(req.Email), hashed)
	if err != nil {
		if err == database.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		h.log.Errorf("create user failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid login body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.repo.GetUserByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil || !h.auth.CheckPassword(user.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account is inactive"})
		return
	}

	token, err := h.auth.SignToken(user.ID)
	if err != nil {
		h.log.Errorf("sign token failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c))
}
