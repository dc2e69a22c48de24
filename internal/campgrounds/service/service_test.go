package service

import (
	"context"
	"errors"
	"testing"

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

type fakeRepo struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (repository.Campground, error)
	searchFn  func(ctx context.Context, search string) ([]repository.Campground, error)
	listFn    func(ctx context.Context) ([]repository.Campground, error)
	createFn  func(ctx context.Context, params repository.CreateParams) (repository.Campground, error)
	updateFn  func(ctx context.Context, params repository.UpdateParams) (repository.Campground, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error

	deleteCalls int
	updateCalls int
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Campground, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeRepo) SearchByName(ctx context.Context, search string) ([]repository.Campground, error) {
	return f.searchFn(ctx, search)
}

func (f *fakeRepo) List(ctx context.Context) ([]repository.Campground, error) {
	return f.listFn(ctx)
}

func (f *fakeRepo) Create(ctx context.Context, params repository.CreateParams) (repository.Campground, error) {
	return f.createFn(ctx, params)
}

func (f *fakeRepo) Update(ctx context.Context, params repository.UpdateParams) (repository.Campground, error) {
	f.updateCalls++
	return f.updateFn(ctx, params)
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleteCalls++
	return f.deleteFn(ctx, id)
}

type fakeGeocoder struct {
	geocodeFn func(ctx context.Context, query string) ([]geocoder.Result, error)
	calls     int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) ([]geocoder.Result, error) {
	f.calls++
	return f.geocodeFn(ctx, query)
}

type fakeMediaStore struct {
	uploadFn  func(ctx context.Context, localPath, originalName string) (storage.Asset, error)
	destroyFn func(ctx context.Context, key string) error

	uploadCalls  int
	destroyCalls []string
}

func (f *fakeMediaStore) Upload(ctx context.Context, localPath, originalName string) (storage.Asset, error) {
	f.uploadCalls++
	return f.uploadFn(ctx, localPath, originalName)
}

func (f *fakeMediaStore) Destroy(ctx context.Context, key string) error {
	f.destroyCalls = append(f.destroyCalls, key)
	return f.destroyFn(ctx, key)
}

func (f *fakeMediaStore) EnsureBucket(ctx context.Context) error { return nil }

func (f *fakeMediaStore) ValidateContentType(contentType string) error { return nil }

func (f *fakeMediaStore) ValidateFileSize(sizeBytes int64) error { return nil }

type fakeConfig struct {
	policy config.ReadErrorPolicy
}

func (f fakeConfig) GetReadErrorPolicy() config.ReadErrorPolicy { return f.policy }

func okGeocoder() *fakeGeocoder {
	return &fakeGeocoder{
		geocodeFn: func(ctx context.Context, query string) ([]geocoder.Result, error) {
			return []geocoder.Result{{Latitude: 52.37, Longitude: 4.9, FormattedAddress: "Amsterdam, Netherlands"}}, nil
		},
	}
}

func okMediaStore() *fakeMediaStore {
	return &fakeMediaStore{
		uploadFn: func(ctx context.Context, localPath, originalName string) (storage.Asset, error) {
			return storage.Asset{URL: "http://minio/campground-images/abc_tent.jpg", Key: "abc_tent.jpg"}, nil
		},
		destroyFn: func(ctx context.Context, key string) error { return nil },
	}
}

func newTestService(repo *fakeRepo, geo *fakeGeocoder, media *fakeMediaStore) *Service {
	return New(repo, geo, media, fakeConfig{policy: config.ReadErrorSurface}, logger.New("development"))
}

func stagedFile() *uploads.StagedFile {
	return &uploads.StagedFile{Path: "/tmp/staged-abc", OriginalName: "tent.jpg", Size: 1024}
}

func ownedCampground(authorID uuid.UUID) repository.Campground {
	return repository.Campground{
		ID:             uuid.New(),
		Name:           "Cedar Creek",
		Price:          25,
		ImageURL:       "http://minio/campground-images/old_tent.jpg",
		ImageKey:       "old_tent.jpg",
		Location:       "Amsterdam, Netherlands",
		AuthorID:       authorID,
		AuthorUsername: "alice",
	}
}

func TestCreateGeocodeFailureSkipsUpload(t *testing.T) {
	geo := &fakeGeocoder{
		geocodeFn: func(ctx context.Context, query string) ([]geocoder.Result, error) {
			return nil, errors.New("nominatim: connection refused")
		},
	}
	media := okMediaStore()
	repo := &fakeRepo{}
	svc := newTestService(repo, geo, media)

	_, err := svc.Create(context.Background(), Author{ID: uuid.New(), Username: "alice"},
		transport.CreateCampgroundRequest{Name: "Cedar Creek", Price: 25, Location: "Amsterdam"}, stagedFile())

	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if media.uploadCalls != 0 {
		t.Errorf("expected no upload after geocode failure, got %d uploads", media.uploadCalls)
	}
}

func TestCreateUnresolvableLocation(t *testing.T) {
	geo := &fakeGeocoder{
		geocodeFn: func(ctx context.Context, query string) ([]geocoder.Result, error) {
			return []geocoder.Result{}, nil
		},
	}
	media := okMediaStore()
	svc := newTestService(&fakeRepo{}, geo, media)

	_, err := svc.Create(context.Background(), Author{ID: uuid.New(), Username: "alice"},
		transport.CreateCampgroundRequest{Name: "Cedar Creek", Price: 25, Location: "xyzzy"}, stagedFile())

	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if media.uploadCalls != 0 {
		t.Errorf("expected no upload for unresolvable location, got %d uploads", media.uploadCalls)
	}
}

func TestCreatePersistFailureDestroysUpload(t *testing.T) {
	media := okMediaStore()
	repo := &fakeRepo{
		createFn: func(ctx context.Context, params repository.CreateParams) (repository.Campground, error) {
			return repository.Campground{}, errors.New("pq: connection lost")
		},
	}
	svc := newTestService(repo, okGeocoder(), media)

	_, err := svc.Create(context.Background(), Author{ID: uuid.New(), Username: "alice"},
		transport.CreateCampgroundRequest{Name: "Cedar Creek", Price: 25, Location: "Amsterdam"}, stagedFile())

	if err == nil {
		t.Fatal("expected error from failed persist")
	}
	if len(media.destroyCalls) != 1 || media.destroyCalls[0] != "abc_tent.jpg" {
		t.Errorf("expected compensating destroy of uploaded asset, got %v", media.destroyCalls)
	}
}

func TestCreatePersistsGeocodedLocation(t *testing.T) {
	authorID := uuid.New()
	var gotParams repository.CreateParams
	repo := &fakeRepo{
		createFn: func(ctx context.Context, params repository.CreateParams) (repository.Campground, error) {
			gotParams = params
			return repository.Campground{
				ID:             uuid.New(),
				Name:           params.Name,
				Price:          params.Price,
				ImageURL:       params.Image.URL,
				ImageKey:       params.Image.Key,
				Location:       params.Location,
				Latitude:       params.Latitude,
				Longitude:      params.Longitude,
				AuthorID:       params.AuthorID,
				AuthorUsername: params.AuthorUsername,
			}, nil
		},
	}
	svc := newTestService(repo, okGeocoder(), okMediaStore())

	resp, err := svc.Create(context.Background(), Author{ID: authorID, Username: "alice"},
		transport.CreateCampgroundRequest{Name: "Cedar Creek", Price: 25, Description: "quiet", Location: "Amsterdam"}, stagedFile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotParams.Location != "Amsterdam, Netherlands" {
		t.Errorf("expected geocoded address persisted, got %q", gotParams.Location)
	}
	if gotParams.Latitude != 52.37 || gotParams.Longitude != 4.9 {
		t.Errorf("expected geocoded coordinates persisted, got %v/%v", gotParams.Latitude, gotParams.Longitude)
	}
	if gotParams.Image.URL == "" || gotParams.Image.Key == "" {
		t.Errorf("expected image url and key stored together, got %+v", gotParams.Image)
	}
	if resp.ImageURL != "http://minio/campground-images/abc_tent.jpg" {
		t.Errorf("unexpected image url in response: %q", resp.ImageURL)
	}
	if resp.Author.ID != authorID || resp.Author.Username != "alice" {
		t.Errorf("unexpected author in response: %+v", resp.Author)
	}
}

func TestUpdateWithoutNewImageKeepsImageFields(t *testing.T) {
	authorID := uuid.New()
	existing := ownedCampground(authorID)
	media := okMediaStore()
	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (repository.Campground, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, params repository.UpdateParams) (repository.Campground, error) {
			if params.Image != nil {
				t.Errorf("expected nil image params without a new upload, got %+v", params.Image)
			}
			existing.Name = params.Name
			return existing, nil
		},
	}
	svc := newTestService(repo, okGeocoder(), media)

	_, err := svc.Update(context.Background(), existing.ID, authorID,
		transport.UpdateCampgroundRequest{Name: "Cedar Creek II", Price: 30, Location: "Amsterdam"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if media.uploadCalls != 0 || len(media.destroyCalls) != 0 {
		t.Errorf("expected no media calls without a new image, got %d uploads %v destroys",
			media.uploadCalls, media.destroyCalls)
	}
}

func TestUpdateReplaceImageDestroyFailureAborts(t *testing.T) {
	authorID := uuid.New()
	existing := ownedCampground(authorID)
	media := okMediaStore()
	media.destroyFn = func(ctx context.Context, key string) error {
		return errors.New("minio: bucket unreachable")
	}
	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (repository.Campground, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, params repository.UpdateParams) (repository.Campground, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo, okGeocoder(), media)

	_, err := svc.Update(context.Background(), existing.ID, authorID,
		transport.UpdateCampgroundRequest{Name: "Cedar Creek", Price: 25, Location: "Amsterdam"}, stagedFile())

	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if media.uploadCalls != 0 {
		t.Errorf("expected no upload after destroy failure, got %d", media.uploadCalls)
	}
	if repo.updateCalls != 0 {
		t.Errorf("expected no persist after destroy failure, got %d", repo.updateCalls)
	}
}

func TestUpdatePersistFailureDestroysNewUpload(t *testing.T) {
	authorID := uuid.New()
	existing := ownedCampground(authorID)
	media := okMediaStore()
	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (repository.Campground, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, params repository.UpdateParams) (repository.Campground, error) {
			return repository.Campground{}, errors.New("pq: connection lost")
		},
	}
	svc := newTestService(repo, okGeocoder(), media)

	_, err := svc.Update(context.Background(), existing.ID, authorID,
		transport.UpdateCampgroundRequest{Name: "Cedar Creek", Price: 25, Location: "Amsterdam"}, stagedFile())

	if err == nil {
		t.Fatal("expected error from failed persist")
	}
	// First destroy removes the old asset, second compensates the new upload.
	if len(media.destroyCalls) != 2 || media.destroyCalls[1] != "abc_tent.jpg" {
		t.Errorf("expected compensating destroy of new asset, got %v", media.destroyCalls)
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	existing := ownedCampground(uuid.New())
	media := okMediaStore()
	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (repository.Campground, error) {
			return existing, nil
		},
	}
	geo := okGeocoder()
	svc := newTestService(repo, geo, media)

	_, err := svc.Update(context.Background(), existing.ID, uuid.New(),
		transport.UpdateCampgroundRequest{Name: "Hijacked", Price: 1, Location: "Amsterdam"}, nil)

	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if geo.calls != 0 {
		t.Errorf("expected no geocode call for a non-owner, got %d", geo.calls)
	}
}

func TestDeleteAssetDestroyFailureLeavesRecord(t *testing.T) {
	authorID := uuid.New()
	existing := ownedCampground(authorID)
	media := okMediaStore()
	media.destroyFn = func(ctx context.Context, key string) error {
		return errors.New("minio: bucket unreachable")
	}
	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (repository.Campground, error) {
			return existing, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	svc := newTestService(repo, okGeocoder(), media)

	_, err := svc.Delete(context.Background(), existing.ID, authorID)

	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if repo.deleteCalls != 0 {
		t.Errorf("expected record untouched after asset destroy failure, got %d deletes", repo.deleteCalls)
	}

	// Upstream recovers; the retry removes asset and record.
	media.destroyFn = func(ctx context.Context, key string) error { return nil }
	resp, err := svc.Delete(context.Background(), existing.ID, authorID)
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if repo.deleteCalls != 1 {
		t.Errorf("expected one record delete on retry, got %d", repo.deleteCalls)
	}
	if resp.Status != "deleted" {
		t.Errorf("unexpected delete status: %q", resp.Status)
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	existing := ownedCampground(uuid.New())
	media := okMediaStore()
	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (repository.Campground, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo, okGeocoder(), media)

	_, err := svc.Delete(context.Background(), existing.ID, uuid.New())

	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if len(media.destroyCalls) != 0 {
		t.Errorf("expected no asset destroy for a non-owner, got %v", media.destroyCalls)
	}
}

func TestListSearchNoMatchesCarriesNotice(t *testing.T) {
	repo := &fakeRepo{
		searchFn: func(ctx context.Context, search string) ([]repository.Campground, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo, okGeocoder(), okMediaStore())

	resp, err := svc.List(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Notice == "" {
		t.Error("expected a no-match notice for an empty search result")
	}
	if resp.Total != 0 {
		t.Errorf("expected zero results, got %d", resp.Total)
	}
}

func TestListReadErrorSurfaced(t *testing.T) {
	repo := &fakeRepo{
		listFn: func(ctx context.Context) ([]repository.Campground, error) {
			return nil, errors.New("pq: connection lost")
		},
	}
	svc := newTestService(repo, okGeocoder(), okMediaStore())

	_, err := svc.List(context.Background(), "")
	if err == nil {
		t.Fatal("expected surfaced read error with default policy")
	}
}

func TestListReadErrorLenientReturnsEmptyPage(t *testing.T) {
	repo := &fakeRepo{
		listFn: func(ctx context.Context) ([]repository.Campground, error) {
			return nil, errors.New("pq: connection lost")
		},
	}
	svc := New(repo, okGeocoder(), okMediaStore(), fakeConfig{policy: config.ReadErrorLenient}, logger.New("development"))

	resp, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("expected lenient policy to swallow the read error, got %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("expected empty page, got %d items", len(resp.Items))
	}
}
