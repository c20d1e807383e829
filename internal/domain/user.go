package domain

// User roles
const (
	RoleAdmin = "admin" // Can mutate events/categories and read all bookings
	RoleUser  = "user"  // Can create and manage only their own bookings
)

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`         // Primary key
	Name     string `gorm:"not null" json:"name"`         // Display name
	Email    string `gorm:"unique;not null" json:"email"` // Unique email address
	Password string `gorm:"not null" json:"-"`            // Hashed password, never serialized
	Role     string `gorm:"default:user" json:"role"`     // Role: user or admin, immutable after registration
}
