package app_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placebook/internal/app"
	"placebook/internal/domain"
)

func newImageService(t *testing.T) (*app.ImageService, *fakeImageRepo, *fakePlaceRepo, *fakeCategoryRepo, string, string) {
	t.Helper()
	placeDir := filepath.Join(t.TempDir(), "places")
	categoryDir := filepath.Join(t.TempDir(), "categories")
	images := newFakeImageRepo()
	places := newFakePlaceRepo(newFakeLocationRepo())
	categories := newFakeCategoryRepo()
	svc := app.NewImageService(images, places, categories, placeDir, categoryDir)
	return svc, images, places, categories, placeDir, categoryDir
}

func TestUploadForPlace_StoresFileAndRecord(t *testing.T) {
	svc, images, places, _, placeDir, _ := newImageService(t)
	p, _, err := places.CreateWithLocation(context.Background(), domain.Place{Name: "Loft", Specification: "studio"}, domain.Location{})
	require.NoError(t, err)

	img, err := svc.UploadForPlace(context.Background(), p.ID, "photo.JPG", strings.NewReader("bytes"))
	require.NoError(t, err)
	require.NotZero(t, img.ID)
	require.NotNil(t, img.PlaceID)
	assert.Equal(t, p.ID, *img.PlaceID)
	assert.False(t, img.Main)

	// stored under a random name, extension preserved and lowered
	assert.NotEqual(t, "photo.JPG", img.ImageURL)
	assert.True(t, strings.HasSuffix(img.ImageURL, ".jpg"), img.ImageURL)

	data, err := os.ReadFile(filepath.Join(placeDir, img.ImageURL))
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))

	got, err := images.Get(context.Background(), img.ID)
	require.NoError(t, err)
	assert.Equal(t, img, got)
}

func TestUploadForPlace_RejectsBadFilenamesBeforeWriting(t *testing.T) {
	svc, _, places, _, placeDir, _ := newImageService(t)
	p, _, err := places.CreateWithLocation(context.Background(), domain.Place{Name: "Loft", Specification: "studio"}, domain.Location{})
	require.NoError(t, err)

	for _, name := range []string{"", "  ", "../../etc/passwd", "a/../b.jpg"} {
		_, err := svc.UploadForPlace(context.Background(), p.ID, name, strings.NewReader("x"))
		require.Error(t, err, name)
		assert.Equal(t, domain.KindStorage, domain.KindOf(err), name)
	}

	// nothing reached the disk
	_, err = os.Stat(placeDir)
	assert.True(t, os.IsNotExist(err))
}

func TestUploadForPlace_UnknownPlace(t *testing.T) {
	svc, _, _, _, _, _ := newImageService(t)

	_, err := svc.UploadForPlace(context.Background(), 42, "photo.jpg", strings.NewReader("x"))
	assert.True(t, domain.IsNotFound(err))
}

func TestSetMainForPlace_ResolvesOwnerFromRecord(t *testing.T) {
	svc, images, places, _, _, _ := newImageService(t)
	p, _, err := places.CreateWithLocation(context.Background(), domain.Place{Name: "Loft", Specification: "studio"}, domain.Location{})
	require.NoError(t, err)

	a, err := svc.UploadForPlace(context.Background(), p.ID, "a.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := svc.UploadForPlace(context.Background(), p.ID, "b.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	promoted, err := svc.SetMainForPlace(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, promoted.Main)

	// promoting b demotes a
	_, err = svc.SetMainForPlace(context.Background(), b.ID)
	require.NoError(t, err)
	gotA, err := images.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.False(t, gotA.Main)
	main, err := images.FindMain(context.Background(), domain.OwnerPlace, p.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, main.ID)
}

func TestSetMainForPlace_CategoryImageRejected(t *testing.T) {
	svc, _, _, categories, _, _ := newImageService(t)
	c, err := categories.Create(context.Background(), domain.Category{Name: "Lofts"})
	require.NoError(t, err)

	img, err := svc.UploadForCategory(context.Background(), c.ID, "c.jpg", strings.NewReader("c"))
	require.NoError(t, err)

	_, err = svc.SetMainForPlace(context.Background(), img.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestOpenByName_FallsBackToCategoryDir(t *testing.T) {
	svc, _, places, categories, _, _ := newImageService(t)
	p, _, err := places.CreateWithLocation(context.Background(), domain.Place{Name: "Loft", Specification: "studio"}, domain.Location{})
	require.NoError(t, err)
	c, err := categories.Create(context.Background(), domain.Category{Name: "Lofts"})
	require.NoError(t, err)

	pImg, err := svc.UploadForPlace(context.Background(), p.ID, "p.jpg", strings.NewReader("place bytes"))
	require.NoError(t, err)
	cImg, err := svc.UploadForCategory(context.Background(), c.ID, "c.jpg", strings.NewReader("category bytes"))
	require.NoError(t, err)

	for name, want := range map[string]string{
		pImg.ImageURL: "place bytes",
		cImg.ImageURL: "category bytes",
	} {
		rc, err := svc.OpenByName(context.Background(), name)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, want, string(data))
	}

	_, err = svc.OpenByName(context.Background(), "missing.jpg")
	assert.True(t, domain.IsNotFound(err))
}

func TestOpenByName_RequiresRecord(t *testing.T) {
	svc, _, _, _, placeDir, _ := newImageService(t)

	// a file on disk with no record is not served
	require.NoError(t, os.MkdirAll(placeDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(placeDir, "orphan.jpg"), []byte("x"), 0o644))

	_, err := svc.OpenByName(context.Background(), "orphan.jpg")
	assert.True(t, domain.IsNotFound(err))
}

func TestOpenByName_RecordWithoutFileIsStorageFault(t *testing.T) {
	svc, _, places, _, placeDir, _ := newImageService(t)
	p, _, err := places.CreateWithLocation(context.Background(), domain.Place{Name: "Loft", Specification: "studio"}, domain.Location{})
	require.NoError(t, err)

	img, err := svc.UploadForPlace(context.Background(), p.ID, "p.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(placeDir, img.ImageURL)))

	_, err = svc.OpenByName(context.Background(), img.ImageURL)
	require.Error(t, err)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
}

func TestDelete_RemovesRecordOnly(t *testing.T) {
	svc, images, places, _, placeDir, _ := newImageService(t)
	p, _, err := places.CreateWithLocation(context.Background(), domain.Place{Name: "Loft", Specification: "studio"}, domain.Location{})
	require.NoError(t, err)

	img, err := svc.UploadForPlace(context.Background(), p.ID, "p.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), img.ID))
	_, err = images.Get(context.Background(), img.ID)
	assert.True(t, domain.IsNotFound(err))

	_, err = os.Stat(filepath.Join(placeDir, img.ImageURL))
	assert.NoError(t, err)
}
