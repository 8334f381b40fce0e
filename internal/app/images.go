package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"placebook/internal/domain"
)

// ImageService stores image files on disk and their metadata in the image
// repository. Place images and category images live in separate directories;
// reads by bare file name try the place directory first and fall back to the
// category one.
type ImageService struct {
	repo       domain.ImageRepository
	places     domain.PlaceRepository
	categories domain.CategoryRepository

	placeDir    string
	categoryDir string
}

func NewImageService(r domain.ImageRepository, p domain.PlaceRepository, c domain.CategoryRepository, placeDir, categoryDir string) *ImageService {
	return &ImageService{repo: r, places: p, categories: c, placeDir: placeDir, categoryDir: categoryDir}
}

func (s *ImageService) UploadForPlace(ctx context.Context, placeID int64, filename string, src io.Reader) (domain.Image, error) {
	if err := checkFilename(filename); err != nil {
		return domain.Image{}, err
	}
	if _, err := s.places.Get(ctx, placeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Image{}, domain.NotFound("idnotfound", "place not found")
		}
		return domain.Image{}, err
	}
	stored, err := s.store(s.placeDir, filename, src)
	if err != nil {
		return domain.Image{}, err
	}
	img, err := s.repo.Create(ctx, domain.Image{ImageURL: stored, PlaceID: &placeID})
	if err != nil {
		_ = os.Remove(filepath.Join(s.placeDir, stored))
		return domain.Image{}, err
	}
	return img, nil
}

func (s *ImageService) UploadForCategory(ctx context.Context, categoryID int64, filename string, src io.Reader) (domain.Image, error) {
	if err := checkFilename(filename); err != nil {
		return domain.Image{}, err
	}
	if _, err := s.categories.Get(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Image{}, domain.NotFound("idnotfound", "category not found")
		}
		return domain.Image{}, err
	}
	stored, err := s.store(s.categoryDir, filename, src)
	if err != nil {
		return domain.Image{}, err
	}
	img, err := s.repo.Create(ctx, domain.Image{ImageURL: stored, CategoryID: &categoryID})
	if err != nil {
		_ = os.Remove(filepath.Join(s.categoryDir, stored))
		return domain.Image{}, err
	}
	return img, nil
}

// SetMainForPlace promotes imageID to the main image of the place the image
// record itself points at. The demote-then-promote runs in one transaction
// inside the repository.
func (s *ImageService) SetMainForPlace(ctx context.Context, imageID int64) (domain.Image, error) {
	img, err := s.get(ctx, imageID)
	if err != nil {
		return domain.Image{}, err
	}
	if img.PlaceID == nil {
		return domain.Image{}, domain.Validation("notplaceimage", "image does not belong to a place")
	}
	return s.repo.SetMain(ctx, domain.OwnerPlace, *img.PlaceID, imageID)
}

func (s *ImageService) SetMainForCategory(ctx context.Context, imageID int64) (domain.Image, error) {
	img, err := s.get(ctx, imageID)
	if err != nil {
		return domain.Image{}, err
	}
	if img.CategoryID == nil {
		return domain.Image{}, domain.Validation("notcategoryimage", "image does not belong to a category")
	}
	return s.repo.SetMain(ctx, domain.OwnerCategory, *img.CategoryID, imageID)
}

func (s *ImageService) Get(ctx context.Context, id int64) (domain.Image, error) {
	return s.get(ctx, id)
}

// Delete removes the metadata record only; the file stays on disk so dangling
// links in already-served pages keep resolving.
func (s *ImageService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ImageService) Find(ctx context.Context, crit *domain.ImageCriteria) ([]domain.Image, error) {
	return s.repo.FindByCriteria(ctx, crit)
}

func (s *ImageService) FindPage(ctx context.Context, crit *domain.ImageCriteria, pg domain.Page) (domain.Paged[domain.Image], error) {
	return s.repo.FindPageByCriteria(ctx, crit, pg)
}

func (s *ImageService) Count(ctx context.Context, crit *domain.ImageCriteria) (int64, error) {
	return s.repo.CountByCriteria(ctx, crit)
}

// OpenByName resolves the image record for the stored name and opens its
// file, trying the place directory before the category one. A name with no
// record is not served even when a file with that name exists on disk.
func (s *ImageService) OpenByName(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := checkFilename(name); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByURL(ctx, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("filenotfound", "image not found")
		}
		return nil, err
	}
	return s.open(name)
}

// open reads the file backing an already-resolved record. The record exists
// at this point, so any miss on disk is a storage fault, not a 404.
func (s *ImageService) open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.placeDir, name))
	if err == nil {
		return f, nil
	}
	if !os.IsNotExist(err) {
		return nil, domain.Storage("fileread", "cannot read image file", err)
	}
	f, err = os.Open(filepath.Join(s.categoryDir, name))
	if err != nil {
		return nil, domain.Storage("fileread", "cannot read image file", err)
	}
	return f, nil
}

func (s *ImageService) OpenMainForPlace(ctx context.Context, placeID int64) (io.ReadCloser, error) {
	img, err := s.repo.FindMain(ctx, domain.OwnerPlace, placeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("nomainimage", "place has no main image")
		}
		return nil, err
	}
	return s.open(img.ImageURL)
}

func (s *ImageService) OpenMainForCategory(ctx context.Context, categoryID int64) (io.ReadCloser, error) {
	img, err := s.repo.FindMain(ctx, domain.OwnerCategory, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("nomainimage", "category has no main image")
		}
		return nil, err
	}
	return s.open(img.ImageURL)
}

func (s *ImageService) get(ctx context.Context, id int64) (domain.Image, error) {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Image{}, domain.NotFound("idnotfound", "image not found")
		}
		return domain.Image{}, err
	}
	return img, nil
}

// store writes src under dir as a random name keeping the original extension.
// Nothing touches the disk until the name has been vetted.
func (s *ImageService) store(dir, filename string, src io.Reader) (string, error) {
	stored := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.Storage("filewrite", "cannot create image directory", err)
	}
	dst, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", domain.Storage("filewrite", "cannot create image file", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(filepath.Join(dir, stored))
		return "", domain.Storage("filewrite", "cannot write image file", err)
	}
	if err := dst.Close(); err != nil {
		return "", domain.Storage("filewrite", "cannot write image file", err)
	}
	return stored, nil
}

func checkFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Storage("filenameempty", "file name is required", nil)
	}
	if strings.Contains(name, "..") {
		return domain.Storage("filenameinvalid", "file name must not contain a path sequence", nil)
	}
	return nil
}
