package api

import (
	"net/http" // HTTP status codes

	"event_booking/internal/service" // Domain services

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// BookingRequest is the payload of a booking create or update
type BookingRequest struct {
	NumberOfTickets int `json:"number_of_tickets" binding:"required,min=1"` // Ticket count, at least 1
}

// CreateBookingHandler books tickets on an event for the authenticated user
func CreateBookingHandler(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Authenticated user id
		if !ok {
			return
		}
		eventID, ok := parseID(c, "id") // Event id from the path
		if !ok {
			return
		}
		var req BookingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return the field errors
			handleBindingError(c, err)
			return
		}
		booking, err := svc.Create(c.Request.Context(), userID, eventID, req.NumberOfTickets)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		// Log the booking
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,              // Booking owner
			"event_id":    eventID,             // Booked event
			"tickets":     req.NumberOfTickets, // Ticket count
			"total_price": booking.TotalPrice,  // Derived total
		}).Info("Booking created")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": booking})
	}
}

// GetUserBookingsHandler returns one page of the authenticated user's bookings
func GetUserBookingsHandler(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Authenticated user id
		if !ok {
			return
		}
		page, perPage := pageQuery(c) // Pagination parameters
		bookings, pagination, err := svc.ListForUser(c.Request.Context(), userID, page, perPage)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		c.JSON(http.StatusOK, pageResponse(bookings, pagination)) // Return the page
	}
}

// UpdateBookingHandler changes the ticket count of a booking the user owns
func UpdateBookingHandler(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Authenticated user id
		if !ok {
			return
		}
		bookingID, ok := parseID(c, "id") // Booking id from the path
		if !ok {
			return
		}
		var req BookingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return the field errors
			handleBindingError(c, err)
			return
		}
		booking, err := svc.Update(c.Request.Context(), userID, bookingID, req.NumberOfTickets)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		// Log the update
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,              // Booking owner
			"booking_id":  bookingID,           // Updated booking
			"tickets":     req.NumberOfTickets, // New ticket count
			"total_price": booking.TotalPrice,  // Recomputed total
		}).Info("Booking updated")
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "booking": booking})
	}
}

// DeleteBookingHandler cancels a booking the user owns
func DeleteBookingHandler(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Authenticated user id
		if !ok {
			return
		}
		bookingID, ok := parseID(c, "id") // Booking id from the path
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), userID, bookingID); err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		// Log the cancellation
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,    // Booking owner
			"booking_id": bookingID, // Cancelled booking
		}).Info("Booking deleted")
		c.Status(http.StatusNoContent) // Deleted, no body
	}
}

// CheckBookingHandler reports whether the user already booked the event.
// Advisory for the client, the create endpoint still enforces uniqueness.
func CheckBookingHandler(svc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Authenticated user id
		if !ok {
			return
		}
		eventID, ok := parseID(c, "id") // Event id from the path
		if !ok {
			return
		}
		booked, err := svc.HasBooked(c.Request.Context(), userID, eventID)
		if err != nil {
			handleServiceError(c, err) // Map the failure
			return
		}
		c.JSON(http.StatusOK, gin.H{"booked": booked}) // Return the flag
	}
}
