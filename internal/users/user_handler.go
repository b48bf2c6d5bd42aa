package users

import (
	"errors"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"
	"inventory/pkg/roles"
	"inventory/pkg/security"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type UsersHandler struct {
	Repository UserRepository
}

func NewHandler(r UserRepository) *UsersHandler {
	return &UsersHandler{
		Repository: r,
	}
}

func (h *UsersHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/users", security.Authorize(roles.Admin), h.RegisterUser)
	router.GET("/users", security.Authorize(roles.Moderator), h.GetUserList)
	router.GET("/users/:id", security.Authorize(roles.User), h.GetUser)
}

func (h *UsersHandler) RegisterUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	req.Role = roles.NewRole(req.Role.String())
	if !req.Role.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user, err := h.Repository.PersistUser(c.Request.Context(), req, hashedPassword)
	if err != nil {
		var duplicate *custom_error.UniqueViolationError
		if errors.As(err, &duplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create user",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.Repository.GetUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UsersHandler) GetUser(c *gin.Context) {
	user, err := h.Repository.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		var notFound *custom_error.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find user", "details": err.Error(), "code": "USER_NOT_FOUND"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to get user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
