package service

import (
	"context"
	"fmt"
	"testing"

	"event_booking/internal/domain"
	"event_booking/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEventService(t *testing.T) (*EventService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewEventService(db, storage.NewDiskStore(t.TempDir())), db
}

func validEventInput(categoryID uint) CreateEventInput {
	return CreateEventInput{
		Name:        "Jazz Night",
		Description: "An evening of jazz",
		Date:        "2026-09-12",
		StartTime:   "18:00",
		EndTime:     "20:00",
		Location:    "Cairo",
		Organizer:   "Jazz Society",
		VenueName:   "Opera House",
		TicketPrice: floatPtr(25),
		CategoryID:  uintPtr(categoryID),
	}
}

func TestEventCreateDefaultsToUpcoming(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")

	event, err := svc.Create(context.Background(), validEventInput(category.ID), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUpcoming, event.Status)
	require.NotNil(t, event.Category)
	assert.Equal(t, "Music", event.Category.Name)
}

func TestEventCreateRequiresFields(t *testing.T) {
	svc, _ := newEventService(t)

	_, err := svc.Create(context.Background(), CreateEventInput{}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{
		"name", "description", "date", "start_time", "end_time",
		"location", "organizer", "venue_name", "ticket_price", "category_id",
	} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestEventCreateRejectsEndBeforeStart(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")

	in := validEventInput(category.ID)
	in.StartTime = "20:00"
	in.EndTime = "18:00"
	_, err := svc.Create(context.Background(), in, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_time")

	// Equal times are rejected as well, end must be strictly after start
	in.EndTime = "20:00"
	_, err = svc.Create(context.Background(), in, nil)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_time")
}

func TestEventCreateRejectsNegativePrice(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")

	in := validEventInput(category.ID)
	in.TicketPrice = floatPtr(-1)
	_, err := svc.Create(context.Background(), in, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ticket_price")
}

func TestEventCreateRejectsUnknownCategory(t *testing.T) {
	svc, _ := newEventService(t)

	in := validEventInput(9999)
	_, err := svc.Create(context.Background(), in, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category_id")
}

func TestEventUpdatePartialFields(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)

	updated, err := svc.Update(context.Background(), event.ID, UpdateEventInput{Name: strPtr("Blues Night")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Blues Night", updated.Name)
	// Untouched fields survive
	assert.Equal(t, "18:00", updated.StartTime)
	assert.Equal(t, float64(25), updated.TicketPrice)
}

func TestEventUpdateRejectsInvertedTimesAndLeavesEventUnchanged(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)

	_, err := svc.Update(context.Background(), event.ID, UpdateEventInput{
		StartTime: strPtr("10:00"),
		EndTime:   strPtr("09:00"),
	}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_time")

	// The stored event keeps its original times
	var stored domain.Event
	require.NoError(t, db.First(&stored, event.ID).Error)
	assert.Equal(t, "18:00", stored.StartTime)
	assert.Equal(t, "20:00", stored.EndTime)
}

func TestEventUpdateChecksMergedTimes(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)

	// New end time before the existing 18:00 start must be rejected
	_, err := svc.Update(context.Background(), event.ID, UpdateEventInput{EndTime: strPtr("17:00")}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_time")
}

func TestEventUpdateNotFound(t *testing.T) {
	svc, _ := newEventService(t)
	_, err := svc.Update(context.Background(), 9999, UpdateEventInput{}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventGetNotFound(t *testing.T) {
	svc, _ := newEventService(t)
	_, err := svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventListPagination(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")
	for i := 1; i <= 25; i++ {
		makeEvent(t, db, fmt.Sprintf("Event %02d", i), 10, category.ID)
	}

	var seen []string
	for page := 1; page <= 3; page++ {
		events, pagination, err := svc.List(context.Background(), page, 10)
		require.NoError(t, err)
		assert.Equal(t, page, pagination.CurrentPage)
		assert.Equal(t, 3, pagination.LastPage)
		assert.Equal(t, 10, pagination.PerPage)
		assert.EqualValues(t, 25, pagination.Total)
		assert.LessOrEqual(t, len(events), pagination.PerPage)
		for _, e := range events {
			seen = append(seen, e.Name)
		}
	}
	// Concatenating the pages reproduces the full set in insertion order
	require.Len(t, seen, 25)
	for i, name := range seen {
		assert.Equal(t, fmt.Sprintf("Event %02d", i+1), name)
	}
}

func TestEventListClampsBadPageArguments(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")
	makeEvent(t, db, "Solo", 10, category.ID)

	events, pagination, err := svc.List(context.Background(), -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, DefaultPerPage, pagination.PerPage)
	assert.Len(t, events, 1)
}

func TestEventSearchMatchesNameOrDescription(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")
	makeEvent(t, db, "Jazz Night", 25, category.ID)
	rock := domain.Event{
		Name: "Rock Fest", Description: "Loud jazz-free evening", Date: "2026-09-13",
		StartTime: "19:00", EndTime: "22:00", Location: "Giza", Organizer: "Org",
		VenueName: "Stadium", TicketPrice: 40, Status: domain.StatusUpcoming, CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&rock).Error)

	events, err := svc.Search(context.Background(), "jazz")
	require.NoError(t, err)
	// Both match: one by name, one by description
	assert.Len(t, events, 2)

	events, err = svc.Search(context.Background(), "Stadium")
	require.NoError(t, err)
	assert.Empty(t, events) // Venue is not searched
}

func TestEventFilters(t *testing.T) {
	svc, db := newEventService(t)
	music := makeCategory(t, db, "Music")
	theatre := makeCategory(t, db, "Theatre")
	makeEvent(t, db, "Jazz Night", 25, music.ID)
	play := domain.Event{
		Name: "Hamlet", Description: "A play", Date: "2026-10-01",
		StartTime: "19:00", EndTime: "21:30", Location: "Alexandria", Organizer: "Org",
		VenueName: "Old Theatre", TicketPrice: 15, Status: domain.StatusUpcoming, CategoryID: theatre.ID,
	}
	require.NoError(t, db.Create(&play).Error)

	byDate, err := svc.FilterByDate(context.Background(), "2026-10-01")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "Hamlet", byDate[0].Name)

	byLocation, err := svc.FilterByLocation(context.Background(), "Alex")
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, "Hamlet", byLocation[0].Name)

	byCategory, err := svc.FilterByCategory(context.Background(), "Theat")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Hamlet", byCategory[0].Name)
	require.NotNil(t, byCategory[0].Category)
	assert.Equal(t, "Theatre", byCategory[0].Category.Name)
}

func TestEventDeleteRemovesBookings(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)
	user := makeUser(t, db, "fan@example.com", domain.RoleUser)
	booking := domain.Booking{UserID: user.ID, EventID: event.ID, NumberOfTickets: 2, TotalPrice: 50}
	require.NoError(t, db.Create(&booking).Error)

	require.NoError(t, svc.Delete(context.Background(), event.ID))

	var orphans int64
	require.NoError(t, db.Model(&domain.Booking{}).Where("event_id = ?", event.ID).Count(&orphans).Error)
	assert.Zero(t, orphans) // No orphaned bookings survive
}

func TestEventDeleteNotFound(t *testing.T) {
	svc, _ := newEventService(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), 9999), ErrNotFound)
}

func TestRevenueSummary(t *testing.T) {
	svc, db := newEventService(t)
	category := makeCategory(t, db, "Music")
	jazz := makeEvent(t, db, "Jazz Night", 25, category.ID)
	quiet := makeEvent(t, db, "Quiet Night", 10, category.ID)
	alice := makeUser(t, db, "alice@example.com", domain.RoleUser)
	bob := makeUser(t, db, "bob@example.com", domain.RoleUser)
	require.NoError(t, db.Create(&domain.Booking{UserID: alice.ID, EventID: jazz.ID, NumberOfTickets: 2, TotalPrice: 50}).Error)
	require.NoError(t, db.Create(&domain.Booking{UserID: bob.ID, EventID: jazz.ID, NumberOfTickets: 1, TotalPrice: 25}).Error)

	report, err := svc.RevenueSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)

	assert.Equal(t, jazz.ID, report[0].ID)
	assert.Equal(t, float64(75), report[0].PotentialRevenue)
	assert.EqualValues(t, 2, report[0].BookingsCount)
	require.NotNil(t, report[0].Category)
	assert.Equal(t, "Music", report[0].Category.Name)

	// An event with no bookings reports zero revenue, not a missing row
	assert.Equal(t, quiet.ID, report[1].ID)
	assert.Zero(t, report[1].PotentialRevenue)
	assert.Zero(t, report[1].BookingsCount)
}
