package repository

import (
	"context"

	"github.com/google/uuid"
)

// Campground is the persisted campground record. The author reference is
// embedded at creation time and never changes afterwards.
type Campground struct {
	ID             uuid.UUID `db:"id"`
	Name           string    `db:"name"`
	Price          float64   `db:"price"`
	Description    string    `db:"description"`
	ImageURL       string    `db:"image_url"`
	ImageKey       string    `db:"image_key"`
	Location       string    `db:"location"`
	Latitude       float64   `db:"latitude"`
	Longitude      float64   `db:"longitude"`
	AuthorID       uuid.UUID `db:"author_id"`
	AuthorUsername string    `db:"author_username"`
	CreatedAt      string    `db:"created_at"`
	UpdatedAt      string    `db:"updated_at"`
	Comments       []Comment
}

// Comment is a campground comment. Comments are owned by their own bounded
// context; the campground is only their parent for population purposes.
type Comment struct {
	ID             uuid.UUID `db:"id"`
	AuthorID       uuid.UUID `db:"author_id"`
	AuthorUsername string    `db:"author_username"`
	Text           string    `db:"text"`
	CreatedAt      string    `db:"created_at"`
}

// ImageParams carries both image fields of one uploaded asset. Keeping them
// in a single struct guarantees the URL and the deletion key are written
// together or not at all.
type ImageParams struct {
	URL string
	Key string
}

// CreateParams contains parameters for creating a campground.
type CreateParams struct {
	Name           string
	Price          float64
	Description    string
	Image          ImageParams
	Location       string
	Latitude       float64
	Longitude      float64
	AuthorID       uuid.UUID
	AuthorUsername string
}

// UpdateParams contains parameters for updating a campground. Name, price,
// description, and the geocode triple always overwrite; Image only when a
// new attachment was supplied.
type UpdateParams struct {
	ID          uuid.UUID
	Name        string
	Price       float64
	Description string
	Location    string
	Latitude    float64
	Longitude   float64
	Image       *ImageParams
}

// CampgroundReader provides read operations for campgrounds.
type CampgroundReader interface {
	// GetByID returns a campground with its ordered comment sequence.
	GetByID(ctx context.Context, id uuid.UUID) (Campground, error)
	// SearchByName returns campgrounds whose name contains the search text
	// as a literal, case-insensitive substring.
	SearchByName(ctx context.Context, search string) ([]Campground, error)
	List(ctx context.Context) ([]Campground, error)
}

// CampgroundWriter provides write operations for campgrounds.
type CampgroundWriter interface {
	Create(ctx context.Context, params CreateParams) (Campground, error)
	Update(ctx context.Context, params UpdateParams) (Campground, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository combines all campground repository operations.
type Repository interface {
	CampgroundReader
	CampgroundWriter
}
