package domain

// Booking Model
type Booking struct {
	ID              uint    `gorm:"primaryKey" json:"id"`                              // Primary key
	UserID          uint    `gorm:"not null;uniqueIndex:idx_user_event" json:"user_id"` // Foreign key to User
	EventID         uint    `gorm:"not null;uniqueIndex:idx_user_event" json:"event_id"` // Foreign key to Event
	NumberOfTickets int     `gorm:"not null" json:"number_of_tickets"`                 // Ticket count, at least 1
	TotalPrice      float64 `gorm:"not null" json:"total_price"`                       // Derived: event ticket price times ticket count
	User            *User   `json:"user,omitempty"`                                    // Embedded user on admin reads
	Event           *Event  `json:"event,omitempty"`                                   // Embedded event on user reads
	CreatedAt       int64   `gorm:"autoCreateTime:milli" json:"created_at"`            // Timestamp of creation in milliseconds
	UpdatedAt       int64   `gorm:"autoUpdateTime:milli" json:"updated_at"`            // Timestamp of last update in milliseconds
}
