package service

import (
	"context"

	"github.com/google/uuid"

	"campground_backend/internal/adapters/storage"
	"campground_backend/internal/campgrounds/repository"
	"campground_backend/internal/campgrounds/transport"
	"campground_backend/internal/geocoder"
	"campground_backend/internal/uploads"
	"campground_backend/platform/apperr"
	"campground_backend/platform/config"
	"campground_backend/platform/logger"
)

const noMatchNotice = "No campgrounds match that query, please try again."

// Geocoder resolves a free-text location into candidate coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]geocoder.Result, error)
}

// Author identifies the authenticated caller creating a campground. The
// reference is embedded into the record and immutable afterwards.
type Author struct {
	ID       uuid.UUID
	Username string
}

// Service provides business logic for campgrounds. Each mutating operation is
// a linear pipeline of dependent external calls; a failing stage terminates
// the request and compensates any remote side effect it already caused.
type Service struct {
	repo  repository.Repository
	geo   Geocoder
	media storage.MediaStore
	cfg   config.CampgroundsConfig
	log   *logger.Logger
}

// New creates a new campgrounds service.
func New(repo repository.Repository, geo Geocoder, media storage.MediaStore, cfg config.CampgroundsConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, geo: geo, media: media, cfg: cfg, log: log}
}

// List retrieves all campgrounds, or those matching the search text as a
// literal substring. A search with zero matches carries a no-match notice.
// Read failures follow the configured policy: surfaced as errors, or logged
// with an empty page returned.
func (s *Service) List(ctx context.Context, search string) (transport.CampgroundListResponse, error) {
	var items []repository.Campground
	var err error

	if search != "" {
		items, err = s.repo.SearchByName(ctx, search)
	} else {
		items, err = s.repo.List(ctx)
	}
	if err != nil {
		if s.cfg.GetReadErrorPolicy() == config.ReadErrorLenient {
			s.log.DatabaseError("list campgrounds", err)
			return transport.CampgroundListResponse{Items: []transport.CampgroundResponse{}}, nil
		}
		return transport.CampgroundListResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load campgrounds", err)
	}

	resp := toListResponse(items)
	if search != "" && len(items) == 0 {
		resp.Notice = noMatchNotice
	}
	return resp, nil
}

// Get retrieves a campground by ID with its comments populated.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.CampgroundResponse, error) {
	cg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CampgroundResponse{}, err
	}
	return toResponse(cg, true), nil
}

// Create runs the creation pipeline: geocode the location, upload the staged
// image, persist the record. Geocoding runs first so a bad location never
// leaves an orphaned remote image; if persistence fails after the upload, the
// just-uploaded asset is destroyed.
func (s *Service) Create(ctx context.Context, author Author, req transport.CreateCampgroundRequest, staged *uploads.StagedFile) (transport.CampgroundResponse, error) {
	place, err := s.resolveLocation(ctx, req.Location)
	if err != nil {
		return transport.CampgroundResponse{}, err
	}

	asset, err := s.media.Upload(ctx, staged.Path, staged.OriginalName)
	if err != nil {
		s.log.UpstreamError("media store", "upload", err)
		return transport.CampgroundResponse{}, apperr.Upstream("image upload failed: "+err.Error(), err)
	}

	created, err := s.repo.Create(ctx, repository.CreateParams{
		Name:           req.Name,
		Price:          req.Price,
		Description:    req.Description,
		Image:          repository.ImageParams{URL: asset.URL, Key: asset.Key},
		Location:       place.FormattedAddress,
		Latitude:       place.Latitude,
		Longitude:      place.Longitude,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	})
	if err != nil {
		s.compensateUpload(ctx, asset.Key)
		return transport.CampgroundResponse{}, err
	}

	s.log.Info("campground created", "id", created.ID, "name", created.Name, "author", author.Username)
	return toResponse(created, false), nil
}

// GetForEdit retrieves a campground for editing. Only the owner may edit.
func (s *Service) GetForEdit(ctx context.Context, id uuid.UUID, userID uuid.UUID) (transport.CampgroundResponse, error) {
	cg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CampgroundResponse{}, err
	}
	if err := authorizeOwner(cg, userID); err != nil {
		return transport.CampgroundResponse{}, err
	}
	return toResponse(cg, false), nil
}

// Update overwrites a campground. The pipeline: fetch and authorize, geocode
// the submitted location, optionally swap the image (destroy old asset,
// upload new one), persist everything in one write. Any stage failing aborts
// before the write, so the stored record never holds a partial update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, req transport.UpdateCampgroundRequest, staged *uploads.StagedFile) (transport.CampgroundResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CampgroundResponse{}, err
	}
	if err := authorizeOwner(existing, userID); err != nil {
		return transport.CampgroundResponse{}, err
	}

	place, err := s.resolveLocation(ctx, req.Location)
	if err != nil {
		return transport.CampgroundResponse{}, err
	}

	var image *repository.ImageParams
	if staged != nil {
		if err := s.media.Destroy(ctx, existing.ImageKey); err != nil {
			s.log.UpstreamError("media store", "destroy", err)
			return transport.CampgroundResponse{}, apperr.Upstream("failed to replace campground image: "+err.Error(), err)
		}

		asset, err := s.media.Upload(ctx, staged.Path, staged.OriginalName)
		if err != nil {
			s.log.UpstreamError("media store", "upload", err)
			return transport.CampgroundResponse{}, apperr.Upstream("image upload failed: "+err.Error(), err)
		}
		image = &repository.ImageParams{URL: asset.URL, Key: asset.Key}
	}

	updated, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Location:    place.FormattedAddress,
		Latitude:    place.Latitude,
		Longitude:   place.Longitude,
		Image:       image,
	})
	if err != nil {
		if image != nil {
			s.compensateUpload(ctx, image.Key)
		}
		return transport.CampgroundResponse{}, err
	}

	s.log.Info("campground updated", "id", updated.ID, "name", updated.Name)
	return toResponse(updated, false), nil
}

// Delete removes a campground. Deletion is atomic across asset and record,
// asset-first: if the remote asset cannot be destroyed, the record stays
// untouched and a retry after the upstream recovers succeeds.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) (transport.DeleteCampgroundResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.DeleteCampgroundResponse{}, err
	}
	if err := authorizeOwner(existing, userID); err != nil {
		return transport.DeleteCampgroundResponse{}, err
	}

	if err := s.media.Destroy(ctx, existing.ImageKey); err != nil {
		s.log.UpstreamError("media store", "destroy", err)
		return transport.DeleteCampgroundResponse{}, apperr.Upstream("failed to delete campground image: "+err.Error(), err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return transport.DeleteCampgroundResponse{}, err
	}

	s.log.Info("campground deleted", "id", id)
	return transport.DeleteCampgroundResponse{Status: "deleted"}, nil
}

// resolveLocation geocodes the submitted location text. An upstream failure
// and an empty result set are distinct errors: the first is a gateway
// problem, the second means the caller typed an unresolvable location.
func (s *Service) resolveLocation(ctx context.Context, location string) (geocoder.Result, error) {
	matches, err := s.geo.Geocode(ctx, location)
	if err != nil {
		return geocoder.Result{}, apperr.Upstream("location lookup failed", err)
	}
	if len(matches) == 0 {
		return geocoder.Result{}, apperr.Validation("invalid location")
	}
	return matches[0], nil
}

// compensateUpload removes an asset uploaded by a pipeline whose later stage
// failed. Best effort; a failure here is logged and the request error stands.
func (s *Service) compensateUpload(ctx context.Context, key string) {
	if err := s.media.Destroy(ctx, key); err != nil {
		s.log.UpstreamError("media store", "compensating destroy", err)
	}
}

// authorizeOwner is the explicit capability check: only the stored author may
// mutate a campground.
func authorizeOwner(cg repository.Campground, userID uuid.UUID) error {
	if cg.AuthorID != userID {
		return apperr.Forbidden("you do not own this campground")
	}
	return nil
}

// toResponse converts a repository Campground to a transport response.
func toResponse(cg repository.Campground, withComments bool) transport.CampgroundResponse {
	resp := transport.CampgroundResponse{
		ID:          cg.ID,
		Name:        cg.Name,
		Price:       cg.Price,
		Description: cg.Description,
		ImageURL:    cg.ImageURL,
		Location:    cg.Location,
		Latitude:    cg.Latitude,
		Longitude:   cg.Longitude,
		Author: transport.AuthorResponse{
			ID:       cg.AuthorID,
			Username: cg.AuthorUsername,
		},
		CreatedAt: cg.CreatedAt,
		UpdatedAt: cg.UpdatedAt,
	}

	if withComments {
		resp.Comments = make([]transport.CommentResponse, len(cg.Comments))
		for i, cm := range cg.Comments {
			resp.Comments[i] = transport.CommentResponse{
				ID: cm.ID,
				Author: transport.AuthorResponse{
					ID:       cm.AuthorID,
					Username: cm.AuthorUsername,
				},
				Text:      cm.Text,
				CreatedAt: cm.CreatedAt,
			}
		}
	}

	return resp
}

func toListResponse(items []repository.Campground) transport.CampgroundListResponse {
	responses := make([]transport.CampgroundResponse, len(items))
	for i, item := range items {
		responses[i] = toResponse(item, false)
	}
	return transport.CampgroundListResponse{
		Items: responses,
		Total: len(responses),
	}
}
