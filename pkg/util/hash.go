package util

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/leasedesk/rental-portal/pkg/model"
)

// HashPerformance creates an MD5 hash over a performance report, used to skip
// persisting snapshots that did not change.
func HashPerformance(rows []model.PropertyPerformance) string {
	builder := strings.Builder{}
	for _, r := range rows {
		builder.WriteString(strings.TrimSpace(strings.ToLower(r.Address)))
		builder.WriteString("|")
		builder.WriteString(strconv.Itoa(r.Units))
		for _, v := range []float64{r.Occupancy, r.MonthlyRent, r.MonthlyRevenue, r.YearlyRevenue, r.MaintenanceCosts, r.NetIncome} {
			builder.WriteString("|")
			builder.WriteString(strconv.FormatFloat(v, 'f', 2, 64))
		}
		builder.WriteString("\n")
	}
	return hashString(builder.String())
}

func hashString(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
