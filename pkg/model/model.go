package model

import (
	"time"

	"gorm.io/datatypes"
)

// Unit availability states.
const (
	UnitAvailable        = "available"
	UnitOccupied         = "occupied"
	UnitUnderMaintenance = "under_maintenance"
	UnitUnavailable      = "unavailable"
)

// Lease states.
const (
	LeaseActive     = "active"
	LeaseExpired    = "expired"
	LeaseTerminated = "terminated"
	LeasePending    = "pending"
	LeaseForReview  = "for_review"
)

// Bill payment states.
const (
	BillPaid    = "paid"
	BillPending = "pending"
	BillPartial = "partial"
	BillOverdue = "overdue"
)

// Maintenance request states and priorities.
const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"

	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Landlord owns rental units.
type Landlord struct {
	ID                uint         `json:"id" gorm:"primaryKey"`
	UserName          string       `json:"user_name"`
	Email             string       `json:"email" gorm:"index"`
	UserContactNumber string       `json:"user_contact_number"`
	Units             []RentalUnit `json:"-" gorm:"foreignKey:LandlordID"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// Tenant is the occupant side of a lease.
type Tenant struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserName          string    `json:"user_name"`
	Email             string    `json:"email" gorm:"index"`
	UserContactNumber string    `json:"user_contact_number"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RentalUnit is a leasable unit at a physical address.
type RentalUnit struct {
	ID                  uint                 `json:"id" gorm:"primaryKey"`
	LandlordID          uint                 `json:"landlord_id" gorm:"index"`
	Landlord            *Landlord            `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
	Address             string               `json:"address" gorm:"index"`
	UnitNumber          *string              `json:"unit_number"`
	AvailabilityStatus  string               `json:"availability_status" gorm:"index;default:available"`
	FloorArea           float64              `json:"floor_area" gorm:"type:decimal(10,2)"`
	RentPrice           float64              `json:"rent_price" gorm:"type:decimal(10,2)"`
	PropertyType        string               `json:"property_type"`
	Description         string               `json:"description"`
	Amenities           datatypes.JSON       `json:"amenities"`   // list of strings, or a delimited string on older rows
	UnitPhotos          datatypes.JSON       `json:"unit_photos"` // list of URLs, or that list JSON-encoded as a string
	Leases              []Lease              `json:"-" gorm:"foreignKey:UnitID"`
	MaintenanceRequests []MaintenanceRequest `json:"-" gorm:"foreignKey:UnitID"`
	Applications        []RentalApplication  `json:"-" gorm:"foreignKey:UnitID"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// TableName keeps the table name stable regardless of naming strategy.
func (RentalUnit) TableName() string {
	return "rental_units"
}

// Lease binds a tenant to a unit.
type Lease struct {
	ID                 uint        `json:"id" gorm:"primaryKey"`
	UnitID             uint        `json:"unit_id" gorm:"index"`
	Unit               *RentalUnit `json:"units,omitempty" gorm:"foreignKey:UnitID"`
	TenantID           uint        `json:"tenant_id" gorm:"index"`
	Tenant             *Tenant     `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	StartDate          time.Time   `json:"start_date"`
	EndDate            time.Time   `json:"end_date"`
	MonthlyRent        float64     `json:"monthly_rent" gorm:"type:decimal(10,2)"`
	DepositAmount      float64     `json:"deposit_amount" gorm:"type:decimal(10,2)"`
	LeaseTerm          int         `json:"lease_term"`
	LeaseStatus        string      `json:"lease_status" gorm:"index;default:pending"`
	TermsAndConditions *string     `json:"terms_and_conditions"`
	TerminatedDate     *time.Time  `json:"terminated_date"`
	TerminationReason  *string     `json:"termination_reason"`
	RentalBills        []Bill      `json:"-" gorm:"foreignKey:LeaseID"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// Bill is a rent bill raised against a lease.
type Bill struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	LeaseID       uint       `json:"lease_id" gorm:"index"`
	AmountPaid    float64    `json:"amount_paid" gorm:"type:decimal(10,2)"`
	PaymentStatus string     `json:"payment_status" gorm:"index"`
	DueDate       *time.Time `json:"due_date"`
	PaidDate      *time.Time `json:"paid_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName matches the rental bill table.
func (Bill) TableName() string {
	return "rental_bills"
}

// MaintenanceRequest is a repair ticket against a unit.
type MaintenanceRequest struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UnitID         uint       `json:"unit_id" gorm:"index"`
	TenantID       *uint      `json:"tenant_id"`
	Priority       string     `json:"priority"`
	RequestStatus  string     `json:"request_status" gorm:"index"`
	ActualCost     *float64   `json:"actual_cost" gorm:"type:decimal(10,2)"`
	CompletionDate *time.Time `json:"completion_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RentalApplication is a prospective tenant's application for a unit.
type RentalApplication struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UnitID    uint      `json:"unit_id" gorm:"index"`
	TenantID  uint      `json:"tenant_id" gorm:"index"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PropertyPerformance is the per-address dashboard summary.
type PropertyPerformance struct {
	Address          string  `json:"address" firestore:"address"`
	Units            int     `json:"units" firestore:"units"`
	Occupancy        float64 `json:"occupancy" firestore:"occupancy"`
	MonthlyRent      float64 `json:"monthlyRent" firestore:"monthlyRent"`
	MonthlyRevenue   float64 `json:"monthlyRevenue" firestore:"monthlyRevenue"`
	YearlyRevenue    float64 `json:"yearlyRevenue" firestore:"yearlyRevenue"`
	MaintenanceCosts float64 `json:"maintenanceCosts" firestore:"maintenanceCosts"`
	NetIncome        float64 `json:"netIncome" firestore:"netIncome"`
}

// PerformanceSnapshot is a persisted copy of the performance report.
type PerformanceSnapshot struct {
	SnapshotID  string                `json:"snapshotId,omitempty" firestore:"snapshotId,omitempty"`
	GeneratedAt time.Time             `json:"generatedAt,omitempty" firestore:"generatedAt,omitempty"`
	DataHash    string                `json:"dataHash,omitempty" firestore:"dataHash,omitempty"`
	Properties  []PropertyPerformance `json:"properties" firestore:"properties"`
}

// UnitsOverview holds the dashboard counters for the units page.
type UnitsOverview struct {
	NumberOfUnits               int64 `json:"numberOfUnits"`
	AvailableUnits              int64 `json:"availableUnits"`
	NumberOfOccupiedUnits       int64 `json:"numberOfOccupiedUnits"`
	NumberOfMaintenanceRequests int64 `json:"numberOfMaintenanceRequests"`
}

// LandlordSummary is the landlord projection embedded in table rows.
type LandlordSummary struct {
	ID                uint   `json:"id"`
	UserName          string `json:"user_name"`
	Email             string `json:"email"`
	UserContactNumber string `json:"user_contact_number"`
}

// CurrentLeaseSummary is the active lease shown next to a unit.
type CurrentLeaseSummary struct {
	ID          uint    `json:"id"`
	TenantID    uint    `json:"tenant_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	MonthlyRent float64 `json:"monthly_rent"`
}

// UnitRow is a flattened unit for the admin units table.
type UnitRow struct {
	ID                 uint                 `json:"id"`
	LandlordID         uint                 `json:"landlord_id"`
	Landlord           *LandlordSummary     `json:"landlord"`
	Address            string               `json:"address"`
	UnitNumber         *string              `json:"unit_number"`
	AvailabilityStatus string               `json:"availability_status"`
	FloorArea          float64              `json:"floor_area"`
	RentPrice          float64              `json:"rent_price"`
	PropertyType       string               `json:"property_type"`
	Description        string               `json:"description"`
	Amenities          []string             `json:"amenities"`
	UnitPhotos         []string             `json:"unit_photos"`
	CurrentLease       *CurrentLeaseSummary `json:"current_lease"`
	CreatedAt          string               `json:"created_at"`
	UpdatedAt          string               `json:"updated_at"`
}

// Listing is the public projection of a unit.
type Listing struct {
	ID                 uint     `json:"id"`
	Address            string   `json:"address"`
	UnitNumber         *string  `json:"unit_number"`
	AvailabilityStatus string   `json:"availability_status"`
	FloorArea          float64  `json:"floor_area"`
	RentPrice          float64  `json:"rent_price"`
	PropertyType       string   `json:"property_type"`
	Description        string   `json:"description"`
	Amenities          []string `json:"amenities"`
	UnitPhotos         []string `json:"unit_photos"`
}

// AvailableUnit is the minimal projection used by lease forms.
type AvailableUnit struct {
	ID         uint    `json:"id"`
	Address    string  `json:"address"`
	UnitNumber *string `json:"unit_number"`
	RentPrice  float64 `json:"rent_price"`
}

// LeaseRow is a lease with its related records and bill counters.
type LeaseRow struct {
	Lease
	TotalBills          int64 `json:"total_bills"`
	PendingBills        int64 `json:"pending_bills"`
	OverdueBills        int64 `json:"overdue_bills"`
	MaintenanceRequests int64 `json:"maintenance_requests"`
}
