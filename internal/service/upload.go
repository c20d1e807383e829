package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"event_booking/internal/storage"
)

// maxImageBytes caps uploaded images at 2MB, matching the catalog rules.
const maxImageBytes = 2 << 20

// allowedImageExts are the accepted image file extensions.
var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// validateImage checks the upload against the size and type rules, recording
// failures on the "image" field.
func validateImage(file *multipart.FileHeader, verr *ValidationError) {
	if file.Size > maxImageBytes {
		verr.Add("image", "image may not be larger than 2MB")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		verr.Add("image", "image must be a file of type: jpeg, png, jpg, gif")
	}
}

// storeImage writes the upload into the blob store under the given prefix using
// a timestamp-plus-original-name key, then verifies the store holds it. The
// relative path of the stored blob is returned. Any failure surfaces as
// ErrStorage with no blob left behind.
func storeImage(store storage.Store, prefix string, file *multipart.FileHeader) (string, error) {
	// Collision-resistant key: timestamp + original file name
	path := fmt.Sprintf("%s/%d_%s", prefix, time.Now().Unix(), filepath.Base(file.Filename))
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer src.Close()
	if err := store.Save(path, src); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	// Verify the store confirms existence after the write
	if !store.Exists(path) {
		return "", ErrStorage
	}
	return path, nil
}
