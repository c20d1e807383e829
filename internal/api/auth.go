package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"event_booking/internal/domain"     // Importing domain models
	"event_booking/internal/middleware" // Denylist key format
	"event_booking/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library
)

// RegisterRequest is the payload of a new account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`        // Display name must be provided
	Email    string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	Password string `json:"password" binding:"required,min=8"` // Password must be at least 8 characters
}

// LoginRequest is the payload of a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the issued token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// RegisterHandler creates a new account with the user role
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return the field errors
			handleBindingError(c, err)
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		// Create user with lowercase email to ensure uniqueness
		user := domain.User{
			Name:     req.Name,                    // Display name
			Email:    strings.ToLower(req.Email),  // Normalized email
			Password: string(hash),                // Hashed password
			Role:     domain.RoleUser,             // Registration always yields the user role
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// If creation fails (e.g., duplicate email), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
			return
		}
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // New user email
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return the field errors
			handleBindingError(c, err)
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// LogoutHandler revokes the presented token until it expires
func LogoutHandler(jwtSecret string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenVal, exists := c.Get("token") // Raw token stored by the JWT middleware
		// Check if the token exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		tokenStr := tokenVal.(string)                     // Raw token string
		claims, err := utils.ParseJWT(tokenStr, jwtSecret) // Parse for the expiry claim
		if err != nil {
			// If parsing fails, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		// Deny the token for as long as it would stay valid
		if ttl := utils.TokenRemaining(claims); ttl > 0 {
			if err := rdb.Set(context.Background(), middleware.DenylistKey(tokenStr), "1", ttl).Err(); err != nil {
				// If the denylist write fails, return internal server error
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log out"})
				return
			}
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// MeHandler returns the authenticated user
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Authenticated user id
		if !ok {
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, user) // Return the user, password is never serialized
	}
}
