package domain

// Category Model
type Category struct {
	ID     uint    `gorm:"primaryKey" json:"id"`         // Primary key
	Name   string  `gorm:"size:255;not null" json:"name"` // Category name, max 255 characters
	Image  *string `json:"image"`                        // Blob store path of the category image, nil when none
	Events []Event `json:"-"`                            // Events grouped under this category, delete is blocked while any exist
}
