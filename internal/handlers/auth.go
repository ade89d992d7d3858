package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
)

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// respondWithToken issues a token for user and returns it in both the body
// and the token cookie.
func (h *Handler) respondWithToken(ctx *gin.Context, status int, user *models.User) {
	token, expiresAt, err := h.tokens.Generate(user.ID, user.Email)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setTokenCookie(ctx, token, expiresAt)

	ctx.JSON(status, gin.H{
		"user":       types.NewUserResponse(*user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

func (h *Handler) Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.respondBadRequest(ctx, "Invalid request")
		return
	}

	user, err := h.svc.Register(ctx.Request.Context(), services.RegisterParams{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Password:  body.Password,
	})

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondWithToken(ctx, http.StatusCreated, user)
}

func (h *Handler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.respondBadRequest(ctx, "Invalid request")
		return
	}

	user, err := h.svc.Authenticate(ctx.Request.Context(), body.Email, body.Password)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondWithToken(ctx, http.StatusOK, user)
}

func (h *Handler) Me(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": types.NewUserResponse(*user)})
}

func (h *Handler) Logout(ctx *gin.Context) {
	h.clearTokenCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// DeleteAccount removes the caller and everything they own. The current
// password is required.
func (h *Handler) DeleteAccount(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	var body DeleteAccountRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.respondBadRequest(ctx, "Password is required for account deletion")
		return
	}

	if err := h.svc.DeleteUser(ctx.Request.Context(), userID, body.Password); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.clearTokenCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
