package photos

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leasedesk/rental-portal/internal/platform/storage"
	"github.com/leasedesk/rental-portal/internal/repository"
	"github.com/leasedesk/rental-portal/pkg/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/datatypes"
)

type fakeMappings struct {
	data map[string]string
	err  error
}

func (f *fakeMappings) Get(_ context.Context, unitID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	folder, ok := f.data[unitID]
	if !ok {
		return "", repository.ErrMappingNotFound
	}
	return folder, nil
}

func (f *fakeMappings) Set(_ context.Context, unitID, folder string) error {
	if f.data == nil {
		f.data = map[string]string{}
	}
	f.data[unitID] = folder
	return nil
}

type fakeDisk struct {
	folders map[string][]string
}

func (f *fakeDisk) Files(_ context.Context, dir string) ([]string, error) {
	files, ok := f.folders[dir]
	if !ok {
		return nil, storage.ErrFolderNotFound
	}
	return files, nil
}

func (f *fakeDisk) URL(p string) string { return "/storage/" + p }

func TestResolve_MainPhotoFirst(t *testing.T) {
	mappings := &fakeMappings{data: map[string]string{"7": "maple-7"}}
	disk := &fakeDisk{folders: map[string][]string{
		"rental_units/maple-7": {
			"rental_units/maple-7/kitchen.png",
			"rental_units/maple-7/Bedroom.jpeg",
			"rental_units/maple-7/main.JPG",
			"rental_units/maple-7/floorplan.pdf",
		},
	}}
	r := NewDefaultResolver(mappings, disk, zap.NewNop())

	got := r.Resolve(context.Background(), model.RentalUnit{ID: 7})
	assert.Equal(t, []string{
		"/storage/rental_units/maple-7/main.JPG",
		"/storage/rental_units/maple-7/Bedroom.jpeg",
		"/storage/rental_units/maple-7/kitchen.png",
	}, got)
}

func TestResolve_NoMappingNoStoredPhotos(t *testing.T) {
	r := NewDefaultResolver(&fakeMappings{}, &fakeDisk{}, zap.NewNop())

	got := r.Resolve(context.Background(), model.RentalUnit{ID: 1})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolve_FallsBackToStoredPhotos(t *testing.T) {
	stored := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	tests := []struct {
		name     string
		mappings *fakeMappings
		disk     *fakeDisk
		photos   string
	}{
		{
			name:     "no mapping, list column",
			mappings: &fakeMappings{},
			disk:     &fakeDisk{},
			photos:   `["https://cdn.example.com/a.jpg","https://cdn.example.com/b.jpg"]`,
		},
		{
			name:     "mapped folder missing, encoded column",
			mappings: &fakeMappings{data: map[string]string{"3": "gone"}},
			disk:     &fakeDisk{},
			photos:   `"[\"https://cdn.example.com/a.jpg\",\"https://cdn.example.com/b.jpg\"]"`,
		},
		{
			name:     "folder holds no images",
			mappings: &fakeMappings{data: map[string]string{"3": "docs"}},
			disk:     &fakeDisk{folders: map[string][]string{"rental_units/docs": {"rental_units/docs/lease.pdf"}}},
			photos:   `["https://cdn.example.com/a.jpg","https://cdn.example.com/b.jpg"]`,
		},
		{
			name:     "mapping source unreadable",
			mappings: &fakeMappings{err: errors.New("decode mapping file: unexpected EOF")},
			disk:     &fakeDisk{},
			photos:   `["https://cdn.example.com/a.jpg","https://cdn.example.com/b.jpg"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewDefaultResolver(tt.mappings, tt.disk, zap.NewNop())
			unit := model.RentalUnit{ID: 3, UnitPhotos: datatypes.JSON(tt.photos)}
			assert.Equal(t, stored, r.Resolve(context.Background(), unit))
		})
	}
}

func TestResolve_MalformedStoredPhotosLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewDefaultResolver(&fakeMappings{}, &fakeDisk{}, zap.New(core))

	got := r.Resolve(context.Background(), model.RentalUnit{ID: 4, UnitPhotos: datatypes.JSON(`{"broken":`)})
	assert.Empty(t, got)

	assert.Equal(t, 1, logs.FilterMessage("photo source empty").Len(), "missing mapping is a debug miss")
	warn := logs.FilterMessage("photo source failed").All()
	if assert.Len(t, warn, 1) {
		assert.Equal(t, "stored", warn[0].ContextMap()["strategy"])
	}
}

type staticStrategy struct {
	name string
	urls []string
}

func (s staticStrategy) Name() string { return s.name }
func (s staticStrategy) Photos(context.Context, model.RentalUnit) ([]string, error) {
	return s.urls, nil
}

func TestResolve_StrategyOrder(t *testing.T) {
	r := NewResolver(nil,
		staticStrategy{name: "empty"},
		staticStrategy{name: "first", urls: []string{"/1.jpg"}},
		staticStrategy{name: "second", urls: []string{"/2.jpg"}},
	)
	assert.Equal(t, []string{"/1.jpg"}, r.Resolve(context.Background(), model.RentalUnit{ID: 1}))
}

func TestSortImages(t *testing.T) {
	got := SortImages([]string{
		"u/b.webp", "u/A.gif", "u/main.png", "u/c.JFIF", "u/readme.txt", "u/noext",
	})
	assert.Equal(t, []string{"u/main.png", "u/A.gif", "u/b.webp", "u/c.JFIF"}, got)
	for _, f := range got {
		assert.False(t, strings.HasSuffix(f, ".txt"))
	}
}
