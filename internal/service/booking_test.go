package service

import (
	"context"
	"fmt"
	"testing"

	"event_booking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBookingService(t *testing.T) (*BookingService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewBookingService(db), db
}

func TestBookingCreateComputesTotalPrice(t *testing.T) {
	svc, db := newBookingService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)
	user := makeUser(t, db, "fan@example.com", domain.RoleUser)

	booking, err := svc.Create(context.Background(), user.ID, event.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, float64(50), booking.TotalPrice)
	assert.Equal(t, 2, booking.NumberOfTickets)
}

func TestBookingCreateRejectsZeroTickets(t *testing.T) {
	svc, db := newBookingService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)
	user := makeUser(t, db, "fan@example.com", domain.RoleUser)

	_, err := svc.Create(context.Background(), user.ID, event.ID, 0)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "number_of_tickets")
}

func TestBookingCreateUnknownEvent(t *testing.T) {
	svc, db := newBookingService(t)
	user := makeUser(t, db, "fan@example.com", domain.RoleUser)

	_, err := svc.Create(context.Background(), user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingCreateDuplicateConflict(t *testing.T) {
	svc, db := newBookingService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)
	user := makeUser(t, db, "fan@example.com", domain.RoleUser)

	_, err := svc.Create(context.Background(), user.ID, event.ID, 2)
	require.NoError(t, err)

	// The second booking for the same pair is rejected and adds no row
	_, err = svc.Create(context.Background(), user.ID, event.ID, 1)
	assert.ErrorIs(t, err, ErrAlreadyBooked)

	var count int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookingUniqueIndexClosesTheRace(t *testing.T) {
	svc, db := newBookingService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)
	user := makeUser(t, db, "fan@example.com", domain.RoleUser)

	_, err := svc.Create(context.Background(), user.ID, event.ID, 2)
	require.NoError(t, err)

	// Even a raw insert that skips the advisory check hits the unique index
	dup := domain.Booking{UserID: user.ID, EventID: event.ID, NumberOfTickets: 1, TotalPrice: 25}
	err = db.Create(&dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestBookingSamePairAllowedAcrossUsersAndEvents(t *testing.T) {
	svc, db := newBookingService(t)
	category := makeCategory(t, db, "Music")
	jazz := makeEvent(t, db, "Jazz Night", 25, category.ID)
	rock := makeEvent(t, db, "Rock Fest", 40, category.ID)
	alice := makeUser(t, db, "alice@example.com", domain.RoleUser)
	bob := makeUser(t, db, "bob@example.com", domain.RoleUser)

	_, err := svc.Create(context.Background(), alice.ID, jazz.ID, 1)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob.ID, jazz.ID, 1) // Same event, other user
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), alice.ID, rock.ID, 1) // Same user, other event
	require.NoError(t, err)
}

func TestBookingUpdateRecomputesFromCurrentPrice(t *testing.T) {
	svc, db := newBookingService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)
	user := makeUser(t, db, "fan@example.com", domain.RoleUser)

	booking, err := svc.Create(context.Background(), user.ID, event.ID, 2)
	require.NoError(t, err)
	require.Equal(t, float64(50), booking.TotalPrice)

	// The admin raises the ticket price after the booking was made
	require.NoError(t, db.Model(&domain.Event{}).Where("id = ?", event.ID).Update("ticket_price", 30).Error)

	updated, err := svc.Update(context.Background(), user.ID, booking.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.NumberOfTickets)
	assert.Equal(t, float64(90), updated.TotalPrice) // Current price, not the old one
}

func TestBookingUpdateOwnershipScoped(t *testing.T) {
	svc, db := newBookingService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)
	alice := makeUser(t, db, "alice@example.com", domain.RoleUser)
	bob := makeUser(t, db, "bob@example.com", domain.RoleUser)

	booking, err := svc.Create(context.Background(), alice.ID, event.ID, 2)
	require.NoError(t, err)

	// Another user cannot touch the booking, absent and not-owned look alike
	_, err = svc.Update(context.Background(), bob.ID, booking.ID, 3)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), bob.ID, booking.ID), ErrNotFound)
}

func TestBookingDeleteThenCheckIsFalse(t *testing.T) {
	svc, db := newBookingService(t)
	category := makeCategory(t, db, "Music")
	event := makeEvent(t, db, "Jazz Night", 25, category.ID)
	user := makeUser(t, db, "fan@example.com", domain.RoleUser)

	booking, err := svc.Create(context.Background(), user.ID, event.ID, 2)
	require.NoError(t, err)

	booked, err := svc.HasBooked(context.Background(), user.ID, event.ID)
	require.NoError(t, err)
	assert.True(t, booked)

	require.NoError(t, svc.Delete(context.Background(), user.ID, booking.ID))

	booked, err = svc.HasBooked(context.Background(), user.ID, event.ID)
	require.NoError(t, err)
	assert.False(t, booked)

	// The pair is free again after cancellation
	_, err = svc.Create(context.Background(), user.ID, event.ID, 1)
	assert.NoError(t, err)
}

func TestBookingListForUserPaginatesWithEmbeddedEvent(t *testing.T) {
	svc, db := newBookingService(t)
	category := makeCategory(t, db, "Music")
	user := makeUser(t, db, "fan@example.com", domain.RoleUser)
	for i := 1; i <= 12; i++ {
		event := makeEvent(t, db, fmt.Sprintf("Event %02d", i), 10, category.ID)
		_, err := svc.Create(context.Background(), user.ID, event.ID, 1)
		require.NoError(t, err)
	}

	first, pagination, err := svc.ListForUser(context.Background(), user.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, first, 10)
	assert.Equal(t, 2, pagination.LastPage)
	assert.EqualValues(t, 12, pagination.Total)
	require.NotNil(t, first[0].Event)
	require.NotNil(t, first[0].Event.Category)
	assert.Equal(t, "Music", first[0].Event.Category.Name)

	second, _, err := svc.ListForUser(context.Background(), user.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestBookingAdminReads(t *testing.T) {
	svc, db := newBookingService(t)
	category := makeCategory(t, db, "Music")
	jazz := makeEvent(t, db, "Jazz Night", 25, category.ID)
	rock := makeEvent(t, db, "Rock Fest", 40, category.ID)
	alice := makeUser(t, db, "alice@example.com", domain.RoleUser)
	bob := makeUser(t, db, "bob@example.com", domain.RoleUser)
	_, err := svc.Create(context.Background(), alice.ID, jazz.ID, 2)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob.ID, rock.ID, 1)
	require.NoError(t, err)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].User)
	assert.Equal(t, "alice@example.com", all[0].User.Email)
	require.NotNil(t, all[0].Event)

	forJazz, err := svc.ListForEvent(context.Background(), jazz.ID)
	require.NoError(t, err)
	require.Len(t, forJazz, 1)
	assert.Equal(t, alice.ID, forJazz[0].UserID)

	_, err = svc.ListForEvent(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	total, err := svc.Total(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
