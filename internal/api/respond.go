package api

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // Field name formatting
	"unicode"  // Field name formatting

	"event_booking/internal/service" // Domain service errors

	"github.com/gin-gonic/gin"                 // Gin web framework
	"github.com/go-playground/validator/v10"   // Validation errors from binding
	"github.com/sirupsen/logrus"               // Logging library
)

// handleServiceError maps domain errors onto HTTP responses:
// validation -> 422, not found -> 404, business-rule conflict -> 400,
// storage failure and everything unexpected -> 500.
func handleServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		// Per-field messages for the client form
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The given data was invalid", "errors": verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, service.ErrAlreadyBooked):
		c.JSON(http.StatusBadRequest, gin.H{"message": "You have already booked this event"})
	case errors.Is(err, service.ErrCategoryInUse):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category still has events and cannot be deleted"})
	case errors.Is(err, service.ErrStorage):
		// Log the storage failure with context
		logrus.WithFields(logrus.Fields{"path": c.FullPath(), "error": err.Error()}).Error("Storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "File failed to upload"})
	default:
		// Log the unexpected failure with context
		logrus.WithFields(logrus.Fields{"path": c.FullPath(), "error": err.Error()}).Error("Unexpected failure")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
	}
}

// bindingFieldErrors converts validator errors from request binding into the
// same per-field map the service layer produces.
func bindingFieldErrors(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["request"] = "invalid request body" // Malformed body, no field detail
		return fields
	}
	for _, fe := range verrs {
		name := snakeCase(fe.Field()) // Struct field name to JSON field name
		switch fe.Tag() {
		case "required":
			fields[name] = name + " is required"
		case "min":
			fields[name] = name + " must be at least " + fe.Param()
		case "email":
			fields[name] = name + " must be a valid email address"
		default:
			fields[name] = name + " is invalid"
		}
	}
	return fields
}

// handleBindingError surfaces binding failures as 422 with field messages
func handleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The given data was invalid", "errors": bindingFieldErrors(err)})
}

// snakeCase converts a Go struct field name to its snake_case JSON name
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseID reads a numeric path parameter, answering 404 for anything that does
// not resolve to an entity id.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// pageQuery reads the page and per_page query parameters with defaults
func pageQuery(c *gin.Context) (int, int) {
	page := 1                          // Default page
	perPage := service.DefaultPerPage // Default page size
	// If page exists in query
	if p := c.Query("page"); p != "" {
		// Convert page to integer
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// If per_page exists in query
	if ps := c.Query("per_page"); ps != "" {
		// Convert per_page to integer
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			perPage = v // Set page size if valid
		}
	}
	return page, perPage
}

// pageResponse flattens items and the pagination envelope into one body
func pageResponse(items any, p service.Pagination) gin.H {
	return gin.H{
		"items":        items,         // Page contents
		"current_page": p.CurrentPage, // Current page
		"last_page":    p.LastPage,    // Last page
		"per_page":     p.PerPage,     // Page size
		"total":        p.Total,       // Total rows
	}
}

// currentUserID reads the authenticated user id set by the JWT middleware
func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("userID")
	// Check if userID exists in context
	if !exists {
		// If not, return unauthorized
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return 0, false
	}
	return userID.(uint), true
}
