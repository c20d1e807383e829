package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"event_booking/internal/service" // Domain services
	"event_booking/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// invalidateCategoryCache drops the cached category list after a mutation
func invalidateCategoryCache(rdb *redis.Client) {
	_ = utils.DeleteCache(context.Background(), rdb, categoriesKey)
}

// CreateCategoryHandler creates a category from a multipart form with an
// optional image. Admin only.
func CreateCategoryHandler(svc *service.CategoryService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")      // Category name from the form
		image, _ := c.FormFile("image") // Optional image upload, nil when absent
		category, err := svc.Create(c.Request.Context(), name, image)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		// Log the mutation
		logrus.WithFields(logrus.Fields{
			"category_id": category.ID,   // New category ID
			"name":        category.Name, // New category name
		}).Info("Category created")
		invalidateCategoryCache(rdb)          // Cached list is stale now
		c.JSON(http.StatusCreated, category) // Return the new category
	}
}

// UpdateCategoryHandler renames a category and optionally replaces its image.
// Admin only.
func UpdateCategoryHandler(svc *service.CategoryService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id") // Category id from the path
		if !ok {
			return
		}
		name := c.PostForm("name")      // Category name from the form
		image, _ := c.FormFile("image") // Optional replacement image, nil when absent
		category, err := svc.Update(c.Request.Context(), id, name, image)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		// Log the mutation
		logrus.WithFields(logrus.Fields{
			"category_id": category.ID, // Updated category ID
		}).Info("Category updated")
		invalidateCategoryCache(rdb)     // Cached list is stale now
		c.JSON(http.StatusOK, category) // Return the updated category
	}
}

// DeleteCategoryHandler removes a category and its stored image. Admin only.
func DeleteCategoryHandler(svc *service.CategoryService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id") // Category id from the path
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		// Log the mutation
		logrus.WithFields(logrus.Fields{
			"category_id": id, // Deleted category ID
		}).Info("Category deleted")
		invalidateCategoryCache(rdb) // Cached list is stale now
		c.Status(http.StatusNoContent) // Deleted, no body
	}
}
