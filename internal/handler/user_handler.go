package handler

import (
	"log/slog"
	"net/http"
	"time"

	"gamebase/backend/internal/auth"
	"gamebase/backend/internal/models"
	"gamebase/backend/internal/service"
	"gamebase/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Nickname string `json:"nickname" binding:"required,max=64" example:"meeple"`
	Email    string `json:"email" binding:"required,email" example:"meeple@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for user login. Email is the only login
// identifier.
type LoginInput struct {
	Email    string `json:"email" binding:"required" example:"meeple@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// TokenResponse carries a freshly issued token.
type TokenResponse struct {
	Token string `json:"token"`
}

// PlayerResponse is the public view of a user.
type PlayerResponse struct {
	ID       uint   `json:"id" example:"1"`
	Nickname string `json:"nickname" example:"meeple"`
}

func newPlayerResponse(user models.User) PlayerResponse {
	return PlayerResponse{ID: user.ID, Nickname: user.Nickname}
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID             uint        `json:"id" example:"1"`
	Nickname       string      `json:"nickname" example:"meeple"`
	Email          string      `json:"email" example:"meeple@example.com"`
	Role           models.Role `json:"role" example:"user"`
	CollectionSize int64       `json:"collection_size"`
	DateJoined     time.Time   `json:"date_joined"`
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  TokenResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := userService().Register(c.Request.Context(), service.RegisterInput{
		Email:    input.Email,
		Nickname: input.Nickname,
		Password: input.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{Token: token})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := userService().Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// LogoutUser godoc
// @Summary      Log out
// @Description  Revokes the presented token until it expires.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string "{"message": "Logged out"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/logout [post]
func LogoutUser(c *gin.Context) {
	claims, ok := auth.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if Revocations != nil {
		if err := Revocations.Revoke(c.Request.Context(), claims.TokenID, claims.ExpiresAt); err != nil {
			slog.Error("revoke token", "user_id", claims.UserID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// endregion

// region --- Profile Handlers ---

// GetMe godoc
// @Summary      Get current user's profile
// @Description  Retrieves the profile of the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	user, err := userService().Get(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	size, err := collectionService().Count(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, PrivateUserResponse{
		ID:             user.ID,
		Nickname:       user.Nickname,
		Email:          user.Email,
		Role:           user.Role,
		CollectionSize: size,
		DateJoined:     user.CreatedAt,
	})
}

// endregion
