package api

import (
	"errors"
	"net/http" // HTTP status codes

	"arb_backend/internal/service" // Business services

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRequest is the JSON body for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`    // Username must be provided
	Email    string `json:"email" binding:"required,email"` // Must be a syntactically valid email
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// LoginRequest carries the form-data credentials for login
type LoginRequest struct {
	Username string `form:"username" binding:"required"` // Username must be provided
	Password string `form:"password" binding:"required"` // Password must be provided
}

// UserResponse is the public view of a user, without credentials
type UserResponse struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email address
}

// TokenResponse is returned after a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"` // Signed bearer token
	TokenType   string `json:"token_type"`   // Always "bearer"
}

// RegisterHandler creates a new user account
func RegisterHandler(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := authSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUsernameTaken):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			case errors.Is(err, service.ErrEmailTaken):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			}
			return
		}
		// Return the created user, never the password or hash
		c.JSON(http.StatusCreated, UserResponse{ID: user.ID, Username: user.Username, Email: user.Email})
	}
}

// LoginHandler authenticates a user and returns a bearer token
func LoginHandler(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind form fields to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		token, err := authSvc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			// Unknown username and wrong password collapse into one response
			if errors.Is(err, service.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// MeHandler returns the account of the authenticated token subject
func MeHandler(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, exists := c.Get("username") // Set by the JWT middleware
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := authSvc.UserByUsername(c.Request.Context(), username.(string))
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, UserResponse{ID: user.ID, Username: user.Username, Email: user.Email})
	}
}
