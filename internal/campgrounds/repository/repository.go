package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campground_backend/platform/apperr"
)

const campgroundNotFoundMessage = "campground not found"

const campgroundColumns = `id, name, price, description, image_url, image_key,
		location, latitude, longitude, author_id, author_username, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new campgrounds repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a campground by its ID with comments populated.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Campground, error) {
	query := `
		SELECT ` + campgroundColumns + `
		FROM campgrounds
		WHERE id = $1`

	cg, err := scanCampground(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Campground{}, apperr.NotFound(campgroundNotFoundMessage)
		}
		return Campground{}, fmt.Errorf("get campground by id: %w", err)
	}

	comments, err := r.listComments(ctx, id)
	if err != nil {
		return Campground{}, err
	}
	cg.Comments = comments

	return cg, nil
}

// SearchByName retrieves campgrounds whose name contains the search text as a
// literal substring, case-insensitively. Pattern metacharacters in the search
// text are escaped so they match verbatim.
func (r *Repo) SearchByName(ctx context.Context, search string) ([]Campground, error) {
	query := `
		SELECT ` + campgroundColumns + `
		FROM campgrounds
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY created_at DESC`

	pattern := "%" + escapePattern(search) + "%"
	rows, err := r.pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("search campgrounds: %w", err)
	}
	defer rows.Close()

	return scanCampgrounds(rows)
}

// List retrieves all campgrounds, newest first.
func (r *Repo) List(ctx context.Context) ([]Campground, error) {
	query := `
		SELECT ` + campgroundColumns + `
		FROM campgrounds
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campgrounds: %w", err)
	}
	defer rows.Close()

	return scanCampgrounds(rows)
}

// Create inserts a new campground; the database assigns the identifier.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Campground, error) {
	query := `
		INSERT INTO campgrounds (name, price, description, image_url, image_key,
			location, latitude, longitude, author_id, author_username)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + campgroundColumns

	cg, err := scanCampground(r.pool.QueryRow(ctx, query,
		params.Name, params.Price, params.Description, params.Image.URL, params.Image.Key,
		params.Location, params.Latitude, params.Longitude, params.AuthorID, params.AuthorUsername,
	))
	if err != nil {
		return Campground{}, fmt.Errorf("create campground: %w", err)
	}

	return cg, nil
}

// Update overwrites the mutable fields. The image columns change only when
// an ImageParams was supplied; author fields are never touched.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Campground, error) {
	query := `
		UPDATE campgrounds SET
			name = $2,
			price = $3,
			description = $4,
			location = $5,
			latitude = $6,
			longitude = $7,
			image_url = COALESCE($8, image_url),
			image_key = COALESCE($9, image_key),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + campgroundColumns

	var imageURL, imageKey *string
	if params.Image != nil {
		imageURL = &params.Image.URL
		imageKey = &params.Image.Key
	}

	cg, err := scanCampground(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Price, params.Description,
		params.Location, params.Latitude, params.Longitude, imageURL, imageKey,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Campground{}, apperr.NotFound(campgroundNotFoundMessage)
		}
		return Campground{}, fmt.Errorf("update campground: %w", err)
	}

	return cg, nil
}

// Delete removes a campground by ID. Comments cascade at the schema level.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM campgrounds WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete campground: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(campgroundNotFoundMessage)
	}

	return nil
}

// listComments returns a campground's comments in creation order.
func (r *Repo) listComments(ctx context.Context, campgroundID uuid.UUID) ([]Comment, error) {
	query := `
		SELECT id, author_id, author_username, text, created_at
		FROM comments
		WHERE campground_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, campgroundID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var results []Comment
	for rows.Next() {
		var cm Comment
		var createdAt time.Time

		if err := rows.Scan(&cm.ID, &cm.AuthorID, &cm.AuthorUsername, &cm.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}

		cm.CreatedAt = createdAt.Format(time.RFC3339)
		results = append(results, cm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return results, nil
}

// escapePattern escapes ILIKE metacharacters so the search text matches only
// literal substring occurrences.
func escapePattern(text string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(text)
}

func scanCampground(row pgx.Row) (Campground, error) {
	var cg Campground
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&cg.ID, &cg.Name, &cg.Price, &cg.Description, &cg.ImageURL, &cg.ImageKey,
		&cg.Location, &cg.Latitude, &cg.Longitude, &cg.AuthorID, &cg.AuthorUsername,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Campground{}, err
	}

	cg.CreatedAt = createdAt.Format(time.RFC3339)
	cg.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cg, nil
}

// scanCampgrounds is a helper to scan multiple rows into a Campground slice.
func scanCampgrounds(rows pgx.Rows) ([]Campground, error) {
	var results []Campground

	for rows.Next() {
		cg, err := scanCampground(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campground: %w", err)
		}
		results = append(results, cg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campgrounds: %w", err)
	}

	return results, nil
}
