// Package uploads receives a single multipart image attachment and stages it
// to a temporary file for the media store to pick up.
package uploads

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"campground_backend/platform/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedExtensions is the image allow-list, checked case-insensitively
// before anything is staged or sent upstream.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// AllowedExtensions returns the accepted image file extensions.
func AllowedExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif"}
}

// StagedFile is an uploaded attachment staged on local disk. It is a
// per-request resource; callers defer Remove.
type StagedFile struct {
	Path         string
	OriginalName string
	Size         int64
}

// Remove deletes the staged file. Safe to call after a successful upload.
func (f *StagedFile) Remove() {
	if f == nil || f.Path == "" {
		return
	}
	_ = os.Remove(f.Path)
}

// Receiver stages incoming image attachments.
type Receiver struct {
	dir string
}

// NewReceiver creates a receiver staging files under the OS temp directory.
func NewReceiver() *Receiver {
	return &Receiver{dir: os.TempDir()}
}

// Receive extracts the named attachment from the request, validates its
// extension, and stages it under a collision-resistant name.
// Returns a validation error for disallowed file types and a bad-request
// error when the attachment is missing.
func (r *Receiver) Receive(c *gin.Context, field string) (*StagedFile, error) {
	staged, err := r.ReceiveOptional(c, field)
	if err != nil {
		return nil, err
	}
	if staged == nil {
		return nil, apperr.BadRequest("image attachment is required")
	}
	return staged, nil
}

// ReceiveOptional behaves like Receive but returns (nil, nil) when the
// request carries no attachment under the given field.
func (r *Receiver) ReceiveOptional(c *gin.Context, field string) (*StagedFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindBadRequest, "invalid multipart request", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return nil, apperr.Validation("only image files are allowed (jpg, jpeg, png, gif)")
	}

	// UUID in the staged name prevents collisions between concurrent requests.
	path := filepath.Join(r.dir, uuid.New().String()+ext)
	if err := c.SaveUploadedFile(header, path); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to stage uploaded file", err)
	}

	return &StagedFile{
		Path:         path,
		OriginalName: header.Filename,
		Size:         header.Size,
	}, nil
}
