package service

import (
	"bytes"
	"mime/multipart"
	"testing"

	"event_booking/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a fresh in-memory database with the full schema, including
// the unique booking index, so duplicate-key translation behaves like
// production.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one shared in-memory database
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.Event{}, &domain.Booking{}))
	return db
}

func makeUser(t *testing.T, db *gorm.DB, email, role string) domain.User {
	t.Helper()
	user := domain.User{Name: "Test User", Email: email, Password: "irrelevant-hash", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func makeCategory(t *testing.T, db *gorm.DB, name string) domain.Category {
	t.Helper()
	category := domain.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func makeEvent(t *testing.T, db *gorm.DB, name string, price float64, categoryID uint) domain.Event {
	t.Helper()
	event := domain.Event{
		Name:        name,
		Description: "A test event",
		Date:        "2026-09-12",
		StartTime:   "18:00",
		EndTime:     "20:00",
		Location:    "Cairo",
		Organizer:   "Org",
		VenueName:   "Main Hall",
		TicketPrice: price,
		Status:      domain.StatusUpcoming,
		CategoryID:  categoryID,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

// makeImageUpload builds a real multipart.FileHeader of the given size by
// writing and re-reading a multipart form.
func makeImageUpload(t *testing.T, filename string, size int) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte{'a'}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }
func uintPtr(u uint) *uint       { return &u }
