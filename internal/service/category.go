package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"event_booking/internal/domain"
	"event_booking/internal/storage"

	"gorm.io/gorm"
)

// categoryImagePrefix is the blob store prefix for category images.
const categoryImagePrefix = "category_images"

// CategoryService implements the admin-managed category catalog.
type CategoryService struct {
	db    *gorm.DB      // Data store
	store storage.Store // Blob store for category images
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(db *gorm.DB, store storage.Store) *CategoryService {
	return &CategoryService{db: db, store: store}
}

// validateCategoryName enforces the name rules shared by create and update.
func validateCategoryName(name string, verr *ValidationError) {
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "name is required")
	} else if len(name) > 255 {
		verr.Add("name", "name may not be longer than 255 characters")
	}
}

// List returns all categories with no pagination. An empty slice is returned
// when none exist.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create validates the name and optional image, stores the image in the blob
// store, and persists the category. A failed row insert triggers a
// compensating delete of the stored blob.
func (s *CategoryService) Create(ctx context.Context, name string, image *multipart.FileHeader) (*domain.Category, error) {
	verr := NewValidationError()
	validateCategoryName(name, verr)
	if image != nil {
		validateImage(image, verr)
	}
	if !verr.Empty() {
		return nil, verr
	}
	category := domain.Category{Name: name}
	if image != nil {
		path, err := storeImage(s.store, categoryImagePrefix, image)
		if err != nil {
			return nil, err
		}
		category.Image = &path
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		// The row failed, do not leave an orphaned blob behind
		if category.Image != nil {
			_ = s.store.Delete(*category.Image)
		}
		return nil, err
	}
	return &category, nil
}

// Update renames a category and optionally replaces its image. The prior blob
// is deleted before the replacement is stored.
func (s *CategoryService) Update(ctx context.Context, id uint, name string, image *multipart.FileHeader) (*domain.Category, error) {
	var category domain.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	verr := NewValidationError()
	validateCategoryName(name, verr)
	if image != nil {
		validateImage(image, verr)
	}
	if !verr.Empty() {
		return nil, verr
	}
	category.Name = name
	if image != nil {
		// Replacement deletes the prior blob first
		if category.Image != nil {
			_ = s.store.Delete(*category.Image)
		}
		path, err := storeImage(s.store, categoryImagePrefix, image)
		if err != nil {
			return nil, err
		}
		category.Image = &path
	}
	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category and its stored image. Deletion is blocked while
// events still reference the category.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	var category domain.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	var events int64
	if err := s.db.WithContext(ctx).Model(&domain.Event{}).Where("category_id = ?", id).Count(&events).Error; err != nil {
		return err
	}
	if events > 0 {
		return ErrCategoryInUse
	}
	if err := s.db.WithContext(ctx).Delete(&category).Error; err != nil {
		return err
	}
	// Row is gone, the blob follows
	if category.Image != nil {
		_ = s.store.Delete(*category.Image)
	}
	return nil
}
