package util

import (
	"testing"

	"github.com/leasedesk/rental-portal/pkg/model"
)

func TestHashPerformance(t *testing.T) {
	rows := []model.PropertyPerformance{
		{Address: "123 Main St", Units: 2, Occupancy: 50, MonthlyRent: 12000, MonthlyRevenue: 5000, YearlyRevenue: 60000},
	}
	same := []model.PropertyPerformance{
		{Address: " 123 MAIN ST ", Units: 2, Occupancy: 50, MonthlyRent: 12000, MonthlyRevenue: 5000, YearlyRevenue: 60000},
	}
	changed := []model.PropertyPerformance{
		{Address: "123 Main St", Units: 2, Occupancy: 100, MonthlyRent: 12000, MonthlyRevenue: 5000, YearlyRevenue: 60000},
	}

	if HashPerformance(rows) != HashPerformance(same) {
		t.Errorf("hash should ignore address case and padding")
	}
	if HashPerformance(rows) == HashPerformance(changed) {
		t.Errorf("hash should change when occupancy changes")
	}
	if HashPerformance(nil) == "" {
		t.Errorf("hash of empty report should not be empty")
	}
}
