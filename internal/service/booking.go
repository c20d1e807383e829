package service

import (
	"context"
	"errors"

	"event_booking/internal/domain"

	"gorm.io/gorm"
)

// BookingService implements the booking lifecycle: at most one booking per
// (user, event) pair, with the total price derived from the event's ticket
// price on every create and update.
type BookingService struct {
	db *gorm.DB // Data store
}

// NewBookingService constructs a BookingService.
func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// validateTickets enforces the minimum ticket count.
func validateTickets(tickets int, verr *ValidationError) {
	if tickets < 1 {
		verr.Add("number_of_tickets", "number_of_tickets must be at least 1")
	}
}

// Create books tickets for a user on an event. The advisory existence check
// keeps the common error message friendly; the unique index on
// (user_id, event_id) closes the race when two requests book concurrently.
func (s *BookingService) Create(ctx context.Context, userID, eventID uint, tickets int) (*domain.Booking, error) {
	verr := NewValidationError()
	validateTickets(tickets, verr)
	if !verr.Empty() {
		return nil, verr
	}
	var event domain.Event
	if err := s.db.WithContext(ctx).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var existing int64
	if err := s.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyBooked
	}
	booking := domain.Booking{
		UserID:          userID,
		EventID:         eventID,
		NumberOfTickets: tickets,
		TotalPrice:      event.TicketPrice * float64(tickets),
	}
	if err := s.db.WithContext(ctx).Create(&booking).Error; err != nil {
		// A concurrent create for the same pair hits the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}
	return &booking, nil
}

// ListForUser returns one page of the user's bookings with event and category
// embedded, in insertion order.
func (s *BookingService) ListForUser(ctx context.Context, userID uint, page, perPage int) ([]domain.Booking, Pagination, error) {
	page, perPage = normalizePage(page, perPage)
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	bookings := []domain.Booking{}
	if err := s.db.WithContext(ctx).Preload("Event").Preload("Event.Category").
		Where("user_id = ?", userID).
		Order("id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&bookings).Error; err != nil {
		return nil, Pagination{}, err
	}
	return bookings, paginate(page, perPage, total), nil
}

// Update changes the ticket count of a booking the user owns. The total price
// is recomputed from the event's current ticket price.
func (s *BookingService) Update(ctx context.Context, userID, bookingID uint, tickets int) (*domain.Booking, error) {
	verr := NewValidationError()
	validateTickets(tickets, verr)
	if !verr.Empty() {
		return nil, verr
	}
	var booking domain.Booking
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound // Absent and not-owned look the same to the caller
		}
		return nil, err
	}
	var event domain.Event
	if err := s.db.WithContext(ctx).First(&event, booking.EventID).Error; err != nil {
		return nil, err
	}
	booking.NumberOfTickets = tickets
	booking.TotalPrice = event.TicketPrice * float64(tickets)
	if err := s.db.WithContext(ctx).Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// Delete cancels a booking the user owns.
func (s *BookingService) Delete(ctx context.Context, userID, bookingID uint) error {
	var booking domain.Booking
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&booking).Error
}

// HasBooked reports whether the user holds a booking for the event. Advisory
// only, Create re-checks under the unique index.
func (s *BookingService) HasBooked(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

// ListAll returns every booking with user and event embedded. Admin read-only.
func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	if err := s.db.WithContext(ctx).Preload("User").Preload("Event").
		Order("id").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListForEvent returns the bookings of one event with users embedded. Admin
// read-only. The event must exist.
func (s *BookingService) ListForEvent(ctx context.Context, eventID uint) ([]domain.Booking, error) {
	var event domain.Event
	if err := s.db.WithContext(ctx).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	bookings := []domain.Booking{}
	if err := s.db.WithContext(ctx).Preload("User").
		Where("event_id = ?", eventID).
		Order("id").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Total returns the count of all bookings. Admin read-only.
func (s *BookingService) Total(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.Booking{}).Count(&total).Error
	return total, err
}
