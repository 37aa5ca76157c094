package units

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leasedesk/rental-portal/internal/business/photos"
	"github.com/leasedesk/rental-portal/pkg/model"
	"github.com/leasedesk/rental-portal/pkg/util"
	"go.uber.org/zap"
)

// ErrInvalidFolder is returned for folder names that are empty or contain a path.
var ErrInvalidFolder = errors.New("folder must be a single non-empty path segment")

// isoTimestamp matches the dashboard's ISO-8601 UTC format with microseconds.
const isoTimestamp = "2006-01-02T15:04:05.000000Z"

// Store reads rental units.
type Store interface {
	List(ctx context.Context) ([]model.RentalUnit, error)
	ListWithLandlord(ctx context.Context) ([]model.RentalUnit, error)
	ListByStatus(ctx context.Context, status string) ([]model.RentalUnit, error)
	GetByID(ctx context.Context, id uint) (model.RentalUnit, error)
	CountUnits(ctx context.Context, status string) (int64, error)
	CountMaintenanceRequests(ctx context.Context) (int64, error)
}

// PhotoResolver yields the ordered photo URLs of units.
type PhotoResolver interface {
	Resolve(ctx context.Context, unit model.RentalUnit) []string
	ResolveAll(ctx context.Context, units []model.RentalUnit, workers int) [][]string
}

// Service builds the unit views served to the dashboard and the public listings page.
type Service struct {
	units    Store
	photos   PhotoResolver
	mappings photos.MappingStore
	workers  int
	log      *zap.Logger
}

func NewService(units Store, resolver PhotoResolver, mappings photos.MappingStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{units: units, photos: resolver, mappings: mappings, log: log}
}

// WithPhotoWorkers bounds concurrent photo lookups for list views.
func (s *Service) WithPhotoWorkers(n int) *Service {
	s.workers = n
	return s
}

func (s *Service) Overview(ctx context.Context) (model.UnitsOverview, error) {
	var (
		out model.UnitsOverview
		err error
	)
	if out.NumberOfUnits, err = s.units.CountUnits(ctx, ""); err != nil {
		return model.UnitsOverview{}, err
	}
	if out.AvailableUnits, err = s.units.CountUnits(ctx, model.UnitAvailable); err != nil {
		return model.UnitsOverview{}, err
	}
	if out.NumberOfOccupiedUnits, err = s.units.CountUnits(ctx, model.UnitOccupied); err != nil {
		return model.UnitsOverview{}, err
	}
	if out.NumberOfMaintenanceRequests, err = s.units.CountMaintenanceRequests(ctx); err != nil {
		return model.UnitsOverview{}, err
	}
	return out, nil
}

// TableRows returns every unit flattened for the admin table.
func (s *Service) TableRows(ctx context.Context) ([]model.UnitRow, error) {
	units, err := s.units.ListWithLandlord(ctx)
	if err != nil {
		return nil, err
	}
	photoLists := s.photos.ResolveAll(ctx, units, s.workers)
	rows := make([]model.UnitRow, 0, len(units))
	for i, u := range units {
		row := model.UnitRow{
			ID:                 u.ID,
			LandlordID:         u.LandlordID,
			Address:            u.Address,
			UnitNumber:         u.UnitNumber,
			AvailabilityStatus: u.AvailabilityStatus,
			FloorArea:          u.FloorArea,
			RentPrice:          u.RentPrice,
			PropertyType:       u.PropertyType,
			Description:        u.Description,
			Amenities:          util.NormalizeAmenities(u.Amenities),
			UnitPhotos:         photoLists[i],
			CurrentLease:       s.currentLease(u),
			CreatedAt:          formatTime(u.CreatedAt),
			UpdatedAt:          formatTime(u.UpdatedAt),
		}
		if u.Landlord != nil {
			row.Landlord = &model.LandlordSummary{
				ID:                u.Landlord.ID,
				UserName:          u.Landlord.UserName,
				Email:             u.Landlord.Email,
				UserContactNumber: u.Landlord.UserContactNumber,
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Listings returns the public projection of every unit.
func (s *Service) Listings(ctx context.Context) ([]model.Listing, error) {
	units, err := s.units.List(ctx)
	if err != nil {
		return nil, err
	}
	photoLists := s.photos.ResolveAll(ctx, units, s.workers)
	out := make([]model.Listing, 0, len(units))
	for i, u := range units {
		out = append(out, model.Listing{
			ID:                 u.ID,
			Address:            u.Address,
			UnitNumber:         u.UnitNumber,
			AvailabilityStatus: u.AvailabilityStatus,
			FloorArea:          u.FloorArea,
			RentPrice:          u.RentPrice,
			PropertyType:       u.PropertyType,
			Description:        u.Description,
			Amenities:          util.NormalizeAmenities(u.Amenities),
			UnitPhotos:         photoLists[i],
		})
	}
	return out, nil
}

func (s *Service) Available(ctx context.Context) ([]model.AvailableUnit, error) {
	units, err := s.units.ListByStatus(ctx, model.UnitAvailable)
	if err != nil {
		return nil, err
	}
	out := make([]model.AvailableUnit, 0, len(units))
	for _, u := range units {
		out = append(out, model.AvailableUnit{
			ID:         u.ID,
			Address:    u.Address,
			UnitNumber: u.UnitNumber,
			RentPrice:  u.RentPrice,
		})
	}
	return out, nil
}

func (s *Service) Photos(ctx context.Context, id uint) ([]string, error) {
	unit, err := s.units.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.photos.Resolve(ctx, unit), nil
}

// SetPhotoFolder maps an existing unit to a folder under rental_units/.
func (s *Service) SetPhotoFolder(ctx context.Context, id uint, folder string) error {
	folder = strings.TrimSpace(folder)
	if folder == "" || folder == "." || folder == ".." || strings.ContainsAny(folder, `/\`) {
		return ErrInvalidFolder
	}
	if _, err := s.units.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.mappings.Set(ctx, fmt.Sprint(id), folder); err != nil {
		return fmt.Errorf("save photo folder for unit %d: %w", id, err)
	}
	s.log.Info("photo folder mapped", zap.Uint("unit_id", id), zap.String("folder", folder))
	return nil
}

func (s *Service) currentLease(u model.RentalUnit) *model.CurrentLeaseSummary {
	lease, several := CurrentLease(u.Leases)
	if lease == nil {
		return nil
	}
	if several {
		s.log.Warn("unit has several active leases",
			zap.Uint("unit_id", u.ID),
			zap.Uints("active_lease_ids", activeLeaseIDs(u.Leases)),
			zap.Uint("chosen_lease_id", lease.ID),
		)
	}
	return &model.CurrentLeaseSummary{
		ID:          lease.ID,
		TenantID:    lease.TenantID,
		StartDate:   formatTime(lease.StartDate),
		EndDate:     formatTime(lease.EndDate),
		MonthlyRent: lease.MonthlyRent,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoTimestamp)
}
