package photos

import (
	"bytes"
	"context"
	"errors"
	"path"
	"sort"
	"strings"

	"github.com/leasedesk/rental-portal/internal/platform/storage"
	"github.com/leasedesk/rental-portal/pkg/model"
	"github.com/leasedesk/rental-portal/pkg/util"
)

// FolderRoot is the storage directory that holds one folder per unit.
const FolderRoot = "rental_units"

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"jfif": true,
}

// FolderStrategy lists the image files of the unit's mapped storage folder.
type FolderStrategy struct {
	mappings MappingStore
	disk     storage.PhotoStorage
}

func NewFolderStrategy(mappings MappingStore, disk storage.PhotoStorage) *FolderStrategy {
	return &FolderStrategy{mappings: mappings, disk: disk}
}

func (s *FolderStrategy) Name() string { return "folder" }

func (s *FolderStrategy) Photos(ctx context.Context, unit model.RentalUnit) ([]string, error) {
	folder, err := s.mappings.Get(ctx, unitKey(unit.ID))
	if err != nil {
		return nil, err
	}
	files, err := s.disk.Files(ctx, path.Join(FolderRoot, folder))
	if err != nil {
		return nil, err
	}

	images := SortImages(files)
	urls := make([]string, 0, len(images))
	for _, f := range images {
		urls = append(urls, s.disk.URL(f))
	}
	return urls, nil
}

// SortImages keeps image files only and orders them with "main" first, then
// by lowercase name without extension.
func SortImages(files []string) []string {
	images := make([]string, 0, len(files))
	for _, f := range files {
		if imageExtensions[extension(f)] {
			images = append(images, f)
		}
	}
	sort.SliceStable(images, func(i, j int) bool {
		a, b := stem(images[i]), stem(images[j])
		if a == "main" || b == "main" {
			return a == "main" && b != "main"
		}
		if a != b {
			return a < b
		}
		return images[i] < images[j]
	})
	return images
}

func extension(p string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}

func stem(p string) string {
	base := path.Base(p)
	return strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
}

// ErrMalformedPhotos is returned when unit_photos holds neither a list nor an encoded list.
var ErrMalformedPhotos = errors.New("unit_photos is not a photo list")

// StoredStrategy reads the unit_photos column.
type StoredStrategy struct{}

func (StoredStrategy) Name() string { return "stored" }

func (StoredStrategy) Photos(_ context.Context, unit model.RentalUnit) ([]string, error) {
	raw := bytes.TrimSpace(unit.UnitPhotos)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	list := util.DecodePhotoList(raw)
	if list == nil {
		return nil, ErrMalformedPhotos
	}
	return list, nil
}
