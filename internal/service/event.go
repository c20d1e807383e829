package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"event_booking/internal/domain"
	"event_booking/internal/storage"

	"gorm.io/gorm"
)

// eventImagePrefix is the blob store prefix for event images.
const eventImagePrefix = "event_images"

// Layouts for the date and time fields of an event.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// EventService implements the admin-managed event catalog and its
// public read surface.
type EventService struct {
	db    *gorm.DB      // Data store
	store storage.Store // Blob store for event images
}

// NewEventService constructs an EventService.
func NewEventService(db *gorm.DB, store storage.Store) *EventService {
	return &EventService{db: db, store: store}
}

// CreateEventInput carries the fields of a new event. TicketPrice and
// CategoryID are pointers so a missing field is told apart from a zero value.
type CreateEventInput struct {
	Name        string   `form:"name"`
	Description string   `form:"description"`
	Date        string   `form:"date"`
	StartTime   string   `form:"start_time"`
	EndTime     string   `form:"end_time"`
	Location    string   `form:"location"`
	Organizer   string   `form:"organizer"`
	VenueName   string   `form:"venue_name"`
	TicketPrice *float64 `form:"ticket_price"`
	CategoryID  *uint    `form:"category_id"`
}

// UpdateEventInput carries a partial event update. Only non-nil fields are
// validated and applied.
type UpdateEventInput struct {
	Name        *string  `form:"name"`
	Description *string  `form:"description"`
	Date        *string  `form:"date"`
	StartTime   *string  `form:"start_time"`
	EndTime     *string  `form:"end_time"`
	Location    *string  `form:"location"`
	Organizer   *string  `form:"organizer"`
	VenueName   *string  `form:"venue_name"`
	TicketPrice *float64 `form:"ticket_price"`
	Status      *string  `form:"status"`
	CategoryID  *uint    `form:"category_id"`
}

// validStatuses are the accepted event statuses.
var validStatuses = map[string]bool{
	domain.StatusUpcoming:  true,
	domain.StatusOngoing:   true,
	domain.StatusCompleted: true,
}

// requireString validates a required string field capped at 255 characters.
func requireString(field, value string, verr *ValidationError) {
	if value == "" {
		verr.Add(field, field+" is required")
	} else if len(value) > 255 {
		verr.Add(field, field+" may not be longer than 255 characters")
	}
}

// requireDate validates a required YYYY-MM-DD field.
func requireDate(field, value string, verr *ValidationError) {
	if value == "" {
		verr.Add(field, field+" is required")
		return
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		verr.Add(field, field+" is not a valid date")
	}
}

// requireTime validates a required HH:MM field.
func requireTime(field, value string, verr *ValidationError) {
	if value == "" {
		verr.Add(field, field+" is required")
		return
	}
	if _, err := time.Parse(timeLayout, value); err != nil {
		verr.Add(field, field+" does not match the format HH:MM")
	}
}

// validateTimeOrder rejects an end time that is not strictly after the start
// time. Both values must already be well-formed.
func validateTimeOrder(start, end string, verr *ValidationError) {
	s, errS := time.Parse(timeLayout, start)
	e, errE := time.Parse(timeLayout, end)
	if errS != nil || errE != nil {
		return // Format failures were already recorded
	}
	if !e.After(s) {
		verr.Add("end_time", "end_time must be after start_time")
	}
}

// categoryExists reports whether a category row exists.
func (s *EventService) categoryExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List returns one page of events in insertion order with their categories.
func (s *EventService) List(ctx context.Context, page, perPage int) ([]domain.Event, Pagination, error) {
	page, perPage = normalizePage(page, perPage)
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.Event{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}
	events := []domain.Event{}
	if err := s.db.WithContext(ctx).Preload("Category").
		Order("id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&events).Error; err != nil {
		return nil, Pagination{}, err
	}
	return events, paginate(page, perPage, total), nil
}

// Get returns a single event with its category embedded.
func (s *EventService) Get(ctx context.Context, id uint) (*domain.Event, error) {
	var event domain.Event
	if err := s.db.WithContext(ctx).Preload("Category").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// Search returns events whose name or description contains the query.
func (s *EventService) Search(ctx context.Context, query string) ([]domain.Event, error) {
	events := []domain.Event{}
	if err := s.db.WithContext(ctx).Preload("Category").
		Where("name LIKE ? OR description LIKE ?", "%"+query+"%", "%"+query+"%").
		Order("id").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FilterByDate returns the events on an exact date.
func (s *EventService) FilterByDate(ctx context.Context, date string) ([]domain.Event, error) {
	events := []domain.Event{}
	if err := s.db.WithContext(ctx).Preload("Category").
		Where("date = ?", date).
		Order("id").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FilterByLocation returns events whose location contains the substring.
func (s *EventService) FilterByLocation(ctx context.Context, location string) ([]domain.Event, error) {
	events := []domain.Event{}
	if err := s.db.WithContext(ctx).Preload("Category").
		Where("location LIKE ?", "%"+location+"%").
		Order("id").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FilterByCategory returns events whose category name contains the substring.
func (s *EventService) FilterByCategory(ctx context.Context, category string) ([]domain.Event, error) {
	events := []domain.Event{}
	if err := s.db.WithContext(ctx).Preload("Category").
		Joins("JOIN categories ON categories.id = events.category_id").
		Where("categories.name LIKE ?", "%"+category+"%").
		Order("events.id").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Create validates every field, stores the optional image, and persists the
// event with the default upcoming status. A failed row insert triggers a
// compensating delete of the stored blob.
func (s *EventService) Create(ctx context.Context, in CreateEventInput, image *multipart.FileHeader) (*domain.Event, error) {
	verr := NewValidationError()
	requireString("name", in.Name, verr)
	if in.Description == "" {
		verr.Add("description", "description is required")
	}
	requireDate("date", in.Date, verr)
	requireTime("start_time", in.StartTime, verr)
	requireTime("end_time", in.EndTime, verr)
	validateTimeOrder(in.StartTime, in.EndTime, verr)
	requireString("location", in.Location, verr)
	requireString("organizer", in.Organizer, verr)
	requireString("venue_name", in.VenueName, verr)
	if in.TicketPrice == nil {
		verr.Add("ticket_price", "ticket_price is required")
	} else if *in.TicketPrice < 0 {
		verr.Add("ticket_price", "ticket_price must be at least 0")
	}
	if in.CategoryID == nil {
		verr.Add("category_id", "category_id is required")
	} else {
		exists, err := s.categoryExists(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			verr.Add("category_id", "the selected category_id is invalid")
		}
	}
	if image != nil {
		validateImage(image, verr)
	}
	if !verr.Empty() {
		return nil, verr
	}
	event := domain.Event{
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Location:    in.Location,
		Organizer:   in.Organizer,
		VenueName:   in.VenueName,
		TicketPrice: *in.TicketPrice,
		Status:      domain.StatusUpcoming,
		CategoryID:  *in.CategoryID,
	}
	if image != nil {
		path, err := storeImage(s.store, eventImagePrefix, image)
		if err != nil {
			return nil, err
		}
		event.Image = &path
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		// The row failed, do not leave an orphaned blob behind
		if event.Image != nil {
			_ = s.store.Delete(*event.Image)
		}
		return nil, err
	}
	return s.Get(ctx, event.ID)
}

// Update applies a partial update. Present fields follow the same rules as
// Create, and the time ordering is checked against the merged values. A
// replacement image does not delete the prior blob.
func (s *EventService) Update(ctx context.Context, id uint, in UpdateEventInput, image *multipart.FileHeader) (*domain.Event, error) {
	var event domain.Event
	if err := s.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	verr := NewValidationError()
	if in.Name != nil {
		requireString("name", *in.Name, verr)
	}
	if in.Description != nil && *in.Description == "" {
		verr.Add("description", "description is required")
	}
	if in.Date != nil {
		requireDate("date", *in.Date, verr)
	}
	if in.StartTime != nil {
		requireTime("start_time", *in.StartTime, verr)
	}
	if in.EndTime != nil {
		requireTime("end_time", *in.EndTime, verr)
	}
	// Compare the merged start and end whenever either changes
	if in.StartTime != nil || in.EndTime != nil {
		start, end := event.StartTime, event.EndTime
		if in.StartTime != nil {
			start = *in.StartTime
		}
		if in.EndTime != nil {
			end = *in.EndTime
		}
		validateTimeOrder(start, end, verr)
	}
	if in.Location != nil {
		requireString("location", *in.Location, verr)
	}
	if in.Organizer != nil {
		requireString("organizer", *in.Organizer, verr)
	}
	if in.VenueName != nil {
		requireString("venue_name", *in.VenueName, verr)
	}
	if in.TicketPrice != nil && *in.TicketPrice < 0 {
		verr.Add("ticket_price", "ticket_price must be at least 0")
	}
	if in.Status != nil && !validStatuses[*in.Status] {
		verr.Add("status", "status must be one of: upcoming, ongoing, completed")
	}
	if in.CategoryID != nil {
		exists, err := s.categoryExists(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			verr.Add("category_id", "the selected category_id is invalid")
		}
	}
	if image != nil {
		validateImage(image, verr)
	}
	if !verr.Empty() {
		return nil, verr
	}
	if in.Name != nil {
		event.Name = *in.Name
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Date != nil {
		event.Date = *in.Date
	}
	if in.StartTime != nil {
		event.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		event.EndTime = *in.EndTime
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.Organizer != nil {
		event.Organizer = *in.Organizer
	}
	if in.VenueName != nil {
		event.VenueName = *in.VenueName
	}
	if in.TicketPrice != nil {
		event.TicketPrice = *in.TicketPrice
	}
	if in.Status != nil {
		event.Status = *in.Status
	}
	if in.CategoryID != nil {
		event.CategoryID = *in.CategoryID
	}
	if image != nil {
		// The prior blob stays on disk, only the stored path moves to the new file
		path, err := storeImage(s.store, eventImagePrefix, image)
		if err != nil {
			return nil, err
		}
		event.Image = &path
	}
	if err := s.db.WithContext(ctx).Save(&event).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, event.ID)
}

// Delete removes an event and its bookings. The bookings are deleted in the
// same transaction so no orphaned booking survives.
func (s *EventService) Delete(ctx context.Context, id uint) error {
	var event domain.Event
	if err := s.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Explicit pre-delete cleanup of the event's bookings
		if err := tx.Where("event_id = ?", id).Delete(&domain.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
}

// EventRevenue is one row of the admin revenue report.
type EventRevenue struct {
	ID               uint             `json:"id"`                // Event ID
	Name             string           `json:"name"`              // Event name
	PotentialRevenue float64          `json:"potential_revenue"` // Sum of total_price across bookings, 0 when none
	TicketPrice      float64          `json:"ticket_price"`      // Price per ticket
	BookingsCount    int64            `json:"bookings_count"`    // Number of bookings
	Category         *domain.Category `json:"category"`          // Embedded category
}

// RevenueSummary aggregates booking revenue per event at query time. Nothing
// is cached or stored, so the numbers never go stale.
func (s *EventService) RevenueSummary(ctx context.Context) ([]EventRevenue, error) {
	events := []domain.Event{}
	if err := s.db.WithContext(ctx).Preload("Category").Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	// One grouped pass over the bookings table
	var rows []struct {
		EventID uint
		Revenue float64
		Count   int64
	}
	if err := s.db.WithContext(ctx).Model(&domain.Booking{}).
		Select("event_id, COALESCE(SUM(total_price), 0) AS revenue, COUNT(*) AS count").
		Group("event_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	type agg struct {
		revenue float64
		count   int64
	}
	byEvent := make(map[uint]agg, len(rows))
	for _, r := range rows {
		byEvent[r.EventID] = agg{revenue: r.Revenue, count: r.Count}
	}
	report := make([]EventRevenue, len(events))
	for i, e := range events {
		a := byEvent[e.ID]
		report[i] = EventRevenue{
			ID:               e.ID,
			Name:             e.Name,
			PotentialRevenue: a.revenue,
			TicketPrice:      e.TicketPrice,
			BookingsCount:    a.count,
			Category:         e.Category,
		}
	}
	return report, nil
}
