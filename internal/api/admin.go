package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Cache key formatting

	"event_booking/internal/service" // Domain services
	"event_booking/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// invalidateEventCache drops the cached event pages, and the detail entry when
// an id is given, after an admin mutation
func invalidateEventCache(rdb *redis.Client, id uint) {
	ctx := context.Background()                          // Context for Redis operations
	utils.DeleteCachePages(ctx, rdb, eventsPagePrefix)   // Drop cached list pages
	if id != 0 {
		_ = utils.DeleteCache(ctx, rdb, eventDetailKey+strconv.Itoa(int(id))) // Drop the detail entry
	}
}

// CreateEventHandler creates an event from a multipart form with an optional
// image. Admin only.
func CreateEventHandler(svc *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateEventInput // Bind form fields to the input
		if err := c.ShouldBind(&in); err != nil {
			// If binding fails, return the field errors
			handleBindingError(c, err)
			return
		}
		image, _ := c.FormFile("image") // Optional image upload, nil when absent
		event, err := svc.Create(c.Request.Context(), in, image)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		// Log the mutation
		logrus.WithFields(logrus.Fields{
			"event_id": event.ID,   // New event ID
			"name":     event.Name, // New event name
		}).Info("Event created")
		invalidateEventCache(rdb, 0) // Cached pages are stale now
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully", "event": event})
	}
}

// UpdateEventHandler applies a partial event update from a multipart form.
// Admin only.
func UpdateEventHandler(svc *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id") // Event id from the path
		if !ok {
			return
		}
		var in service.UpdateEventInput // Bind present form fields to the input
		if err := c.ShouldBind(&in); err != nil {
			// If binding fails, return the field errors
			handleBindingError(c, err)
			return
		}
		image, _ := c.FormFile("image") // Optional replacement image, nil when absent
		event, err := svc.Update(c.Request.Context(), id, in, image)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		// Log the mutation
		logrus.WithFields(logrus.Fields{
			"event_id": event.ID, // Updated event ID
		}).Info("Event updated")
		invalidateEventCache(rdb, id) // Cached pages and detail are stale now
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully", "event": event})
	}
}

// DeleteEventHandler removes an event and its bookings. Admin only.
func DeleteEventHandler(svc *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id") // Event id from the path
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		// Log the mutation
		logrus.WithFields(logrus.Fields{
			"event_id": id, // Deleted event ID
		}).Info("Event deleted")
		invalidateEventCache(rdb, id) // Cached pages and detail are stale now
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
	}
}

// RevenueSummaryHandler returns the per-event revenue report. Admin only.
func RevenueSummaryHandler(svc *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := svc.RevenueSummary(c.Request.Context())
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": report}) // Return the report
	}
}

// ListAllBookingsHandler returns every booking with user and event embedded.
// Admin read-only.
func ListAllBookingsHandler(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svc.ListAll(c.Request.Context())
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings}) // Return all bookings
	}
}

// TotalBookingsHandler returns the count of all bookings. Admin read-only.
func TotalBookingsHandler(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := svc.Total(c.Request.Context())
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total}) // Return the count
	}
}

// EventBookingsHandler returns the bookings of one event with users embedded.
// Admin read-only.
func EventBookingsHandler(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id") // Event id from the path
		if !ok {
			return
		}
		bookings, err := svc.ListForEvent(c.Request.Context(), id)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings}) // Return the event's bookings
	}
}
