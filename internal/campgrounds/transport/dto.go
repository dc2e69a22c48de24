package transport

import "github.com/google/uuid"

// CreateCampgroundRequest carries the multipart form fields for creating a
// campground. The image attachment travels separately under the "image" field.
type CreateCampgroundRequest struct {
	Name        string  `form:"name" validate:"required,min=1,max=100"`
	Price       float64 `form:"price" validate:"gte=0"`
	Description string  `form:"description" validate:"required,max=2000"`
	Location    string  `form:"location" validate:"required,min=1,max=255"`
}

// UpdateCampgroundRequest carries the multipart form fields for updating a
// campground. All listed fields overwrite; a new image is optional.
type UpdateCampgroundRequest struct {
	Name        string  `form:"name" validate:"required,min=1,max=100"`
	Price       float64 `form:"price" validate:"gte=0"`
	Description string  `form:"description" validate:"required,max=2000"`
	Location    string  `form:"location" validate:"required,min=1,max=255"`
}

// ListCampgroundsRequest carries the optional search query.
type ListCampgroundsRequest struct {
	Search string `form:"search"`
}

// AuthorResponse is the embedded author reference.
type AuthorResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// CommentResponse represents a comment in API responses.
type CommentResponse struct {
	ID        uuid.UUID      `json:"id"`
	Author    AuthorResponse `json:"author"`
	Text      string         `json:"text"`
	CreatedAt string         `json:"createdAt"`
}

// CampgroundResponse represents a campground in API responses. The image
// deletion key is deliberately not exposed.
type CampgroundResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Price       float64           `json:"price"`
	Description string            `json:"description"`
	ImageURL    string            `json:"imageUrl"`
	Location    string            `json:"location"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Author      AuthorResponse    `json:"author"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
	Comments    []CommentResponse `json:"comments,omitempty"`
}

// CampgroundListResponse wraps the list view. Notice carries the no-match
// message when a search produced zero results and is omitted otherwise.
type CampgroundListResponse struct {
	Items  []CampgroundResponse `json:"items"`
	Total  int                  `json:"total"`
	Notice string               `json:"notice,omitempty"`
}

// NewFormResponse describes the creation form for clients.
type NewFormResponse struct {
	Fields            []string `json:"fields"`
	AllowedExtensions []string `json:"allowedExtensions"`
}

// DeleteCampgroundResponse reports the outcome of a delete.
type DeleteCampgroundResponse struct {
	Status string `json:"status"`
}
