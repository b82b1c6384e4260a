package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"arb_backend/internal/cache" // Redis cache helpers
	"arb_backend/internal/store" // Persistence interfaces

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

const usersCacheKey = "debug:users" // Cache key for the user listing

// RootHandler reports that the backend is up
func RootHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Crypto Arbitrage Backend is running"})
	}
}

// ListUsersHandler returns all users. Development aid only; password hashes
// are never included.
func ListUsersHandler(users store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []UserResponse   // Cached listing, if any
		found, err := cache.Get(ctx, rdb, usersCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"users": cached, "cached": true})
			return
		}
		all, err := users.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		resp := make([]UserResponse, len(all))
		for i, u := range all {
			resp[i] = UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
		}
		_ = cache.Set(ctx, rdb, usersCacheKey, resp, 60*time.Second) // Cache the listing
		c.JSON(http.StatusOK, gin.H{"users": resp, "cached": false})
	}
}
