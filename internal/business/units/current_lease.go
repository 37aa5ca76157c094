package units

import "github.com/leasedesk/rental-portal/pkg/model"

// CurrentLease picks a unit's current lease among its leases: the active
// lease with the highest id. The bool reports whether more than one lease
// was active.
func CurrentLease(leases []model.Lease) (*model.Lease, bool) {
	var current *model.Lease
	active := 0
	for i := range leases {
		if leases[i].LeaseStatus != model.LeaseActive {
			continue
		}
		active++
		if current == nil || leases[i].ID > current.ID {
			current = &leases[i]
		}
	}
	return current, active > 1
}

func activeLeaseIDs(leases []model.Lease) []uint {
	ids := make([]uint, 0, len(leases))
	for _, l := range leases {
		if l.LeaseStatus == model.LeaseActive {
			ids = append(ids, l.ID)
		}
	}
	return ids
}
