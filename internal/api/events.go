package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Cache key formatting

	"event_booking/internal/domain"  // Importing domain models
	"event_booking/internal/service" // Domain services
	"event_booking/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Cache key prefixes for the public read surface
const (
	eventsPagePrefix = "events"       // Paginated event list, key events:page:N
	eventDetailKey   = "events:id:"   // Single event, key events:id:N
	categoriesKey    = "categories"   // Full category list
)

// ListEventsHandler returns one page of events in the shared pagination
// envelope. Default-sized pages are cached.
func ListEventsHandler(svc *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, perPage := pageQuery(c) // Pagination parameters
		ctx := context.Background()   // Context for Redis operations
		cacheKey := eventsPagePrefix + ":page:" + strconv.Itoa(page)
		// Only default-sized pages are cached so invalidation stays simple
		cacheable := perPage == service.DefaultPerPage
		if cacheable {
			var cached struct {
				Items []domain.Event `json:"items"` // Page contents
				service.Pagination                  // Envelope fields
			}
			// If cached data found, return it
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, pageResponse(cached.Items, cached.Pagination))
				return
			}
		}
		events, pagination, err := svc.List(c.Request.Context(), page, perPage)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		resp := pageResponse(events, pagination)
		if cacheable {
			// Cache the page for future requests
			_ = utils.SetCache(ctx, rdb, cacheKey, resp, utils.CacheTTL)
		}
		c.JSON(http.StatusOK, resp) // Return the page
	}
}

// GetEventHandler returns a single event with its category embedded
func GetEventHandler(svc *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id") // Event id from the path
		if !ok {
			return
		}
		ctx := context.Background() // Context for Redis operations
		cacheKey := eventDetailKey + strconv.Itoa(int(id))
		var cached domain.Event // Try the cache first
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		event, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, event, utils.CacheTTL) // Cache the event
		c.JSON(http.StatusOK, event)                                  // Return the event
	}
}

// SearchEventsHandler returns events matching the query by name or description
func SearchEventsHandler(svc *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.Search(c.Request.Context(), c.Query("query"))
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		c.JSON(http.StatusOK, events) // Return matching events
	}
}

// FilterEventsByDateHandler returns the events on an exact date
func FilterEventsByDateHandler(svc *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.FilterByDate(c.Request.Context(), c.Query("date"))
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		c.JSON(http.StatusOK, events) // Return matching events
	}
}

// FilterEventsByLocationHandler returns events whose location contains the substring
func FilterEventsByLocationHandler(svc *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.FilterByLocation(c.Request.Context(), c.Query("location"))
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		c.JSON(http.StatusOK, events) // Return matching events
	}
}

// FilterEventsByCategoryHandler returns events whose category name contains the substring
func FilterEventsByCategoryHandler(svc *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.FilterByCategory(c.Request.Context(), c.Query("category"))
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		c.JSON(http.StatusOK, events) // Return matching events
	}
}

// ListCategoriesHandler returns the full category list, cached
func ListCategoriesHandler(svc *service.CategoryService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []domain.Category
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, categoriesKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		categories, err := svc.List(c.Request.Context())
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		_ = utils.SetCache(ctx, rdb, categoriesKey, categories, utils.CacheTTL) // Cache the list
		c.JSON(http.StatusOK, categories)                                       // Return all categories
	}
}
