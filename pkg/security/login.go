package security

import (
	"context"
	"errors"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type LoginHandler struct {
	users  UserFinder
	tokens *TokenIssuer
	logger *zap.Logger
}

func NewLoginHandler(users UserFinder, tokens *TokenIssuer, logger *zap.Logger) *LoginHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LoginHandler{users: users, tokens: tokens, logger: logger}
}

// RegisterRoutes mounts POST /login behind the given middleware, typically a
// rate limiter.
func (l *LoginHandler) RegisterRoutes(router gin.IRoutes, middleware ...gin.HandlerFunc) {
	router.POST("/login", append(middleware, l.Login)...)
}

func (l *LoginHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, err := l.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		l.logger.Error("Error during authentication", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := l.tokens.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (l *LoginHandler) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	user, err := l.users.GetByUsername(ctx, username)
	if err != nil {
		var notFound *custom_error.NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
