package domain

// Event statuses
const (
	StatusUpcoming  = "upcoming"  // Default status on creation
	StatusOngoing   = "ongoing"   // Event currently running
	StatusCompleted = "completed" // Event finished
)

// Event Model
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`               // Primary key
	Name        string    `gorm:"size:255;not null" json:"name"`      // Event name
	Description string    `gorm:"not null" json:"description"`        // Event description
	Date        string    `gorm:"size:10;not null" json:"date"`       // Event date, YYYY-MM-DD
	StartTime   string    `gorm:"size:5;not null" json:"start_time"`  // Start time, HH:MM
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`    // End time, HH:MM, strictly after StartTime
	Location    string    `gorm:"size:255;not null" json:"location"`  // Event location
	Organizer   string    `gorm:"size:255;not null" json:"organizer"` // Organizer name
	VenueName   string    `gorm:"size:255;not null" json:"venue_name"` // Venue name
	TicketPrice float64   `gorm:"not null" json:"ticket_price"`       // Price per ticket, never negative
	Status      string    `gorm:"size:32;default:upcoming" json:"status"` // upcoming, ongoing or completed
	Image       *string   `json:"image"`                              // Blob store path of the event image, nil when none
	CategoryID  uint      `gorm:"not null" json:"category_id"`        // Foreign key to Category, required
	Category    *Category `json:"category,omitempty"`                 // Embedded category on reads
	Bookings    []Booking `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Bookings cascade when the event is deleted
}
