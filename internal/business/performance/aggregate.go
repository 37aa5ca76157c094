package performance

import (
	"math"
	"time"

	"github.com/leasedesk/rental-portal/pkg/model"
)

// Aggregate groups units by address, in the order addresses first appear,
// and computes one performance record per address as of now.
//
// Revenue counts paid bills whose paid date falls in now's calendar month;
// maintenance counts completed requests finished in now's calendar year.
// Calendar boundaries use now's location.
func Aggregate(units []model.RentalUnit, now time.Time) []model.PropertyPerformance {
	order := make([]string, 0)
	groups := make(map[string][]model.RentalUnit)
	for _, u := range units {
		if _, seen := groups[u.Address]; !seen {
			order = append(order, u.Address)
		}
		groups[u.Address] = append(groups[u.Address], u)
	}

	out := make([]model.PropertyPerformance, 0, len(order))
	for _, address := range order {
		out = append(out, aggregateAddress(address, groups[address], now))
	}
	return out
}

func aggregateAddress(address string, units []model.RentalUnit, now time.Time) model.PropertyPerformance {
	total := len(units)
	var occupied int
	var rentSum, revenue, maintenance float64

	for _, u := range units {
		if u.AvailabilityStatus == model.UnitOccupied {
			occupied++
		}
		rentSum += u.RentPrice
		for _, lease := range u.Leases {
			for _, bill := range lease.RentalBills {
				if paidThisMonth(bill, now) {
					revenue += bill.AmountPaid
				}
			}
		}
		for _, req := range u.MaintenanceRequests {
			if completedThisYear(req, now) {
				maintenance += *req.ActualCost
			}
		}
	}

	var occupancy, avgRent float64
	if total > 0 {
		occupancy = round(float64(occupied)/float64(total)*100, 1)
		avgRent = rentSum / float64(total)
	}
	revenue = round(revenue, 2)
	maintenance = round(maintenance, 2)

	return model.PropertyPerformance{
		Address:          address,
		Units:            total,
		Occupancy:        occupancy,
		MonthlyRent:      avgRent,
		MonthlyRevenue:   revenue,
		YearlyRevenue:    round(revenue*12, 2),
		MaintenanceCosts: maintenance,
		NetIncome:        round(revenue-maintenance, 2),
	}
}

func paidThisMonth(b model.Bill, now time.Time) bool {
	if b.PaymentStatus != model.BillPaid || b.PaidDate == nil {
		return false
	}
	paid := b.PaidDate.In(now.Location())
	return paid.Year() == now.Year() && paid.Month() == now.Month()
}

func completedThisYear(r model.MaintenanceRequest, now time.Time) bool {
	if r.RequestStatus != model.MaintenanceCompleted || r.ActualCost == nil || r.CompletionDate == nil {
		return false
	}
	return r.CompletionDate.In(now.Location()).Year() == now.Year()
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
