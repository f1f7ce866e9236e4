package report

import (
	"github.com/propmanager/backend/internal/domain/report"
)

func occupancySheet(o *report.Occupancy) Sheet {
	return Sheet{
		Name:    "Occupancy",
		Headers: []string{"Total", "Occupied", "Vacant", "Occupancy Rate", "Last Updated"},
		Rows: [][]any{
			{o.Total, o.Occupied, o.Vacant, o.OccupancyRate, o.LastUpdated.Format("2006-01-02 15:04:05")},
		},
	}
}

func revenueSheet(r *report.Revenue) Sheet {
	rows := [][]any{
		{"Period", r.Period},
		{"Total Rent", r.TotalRent.InexactFloat64()},
		{"Average Rent", r.AverageRent.InexactFloat64()},
		{"Occupied Properties", r.OccupiedProperties},
		{"Total Properties", r.TotalProperties},
		{},
		{"Month", "Revenue"},
	}
	for _, m := range r.MonthlyRevenue {
		rows = append(rows, []any{m.Month, m.Revenue.InexactFloat64()})
	}
	return Sheet{
		Name:    "Revenue",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}
}

func summarySheet(summary []report.PropertySummary) Sheet {
	rows := make([][]any, 0, len(summary))
	for _, p := range summary {
		tenant, email := "", ""
		if p.TenantName != nil {
			tenant = *p.TenantName
		}
		if p.TenantEmail != nil {
			email = *p.TenantEmail
		}
		rows = append(rows, []any{
			p.Name, p.Address, p.Type, p.Units, p.Bedrooms, p.Bathrooms,
			p.Rent.InexactFloat64(), p.Status, tenant, email,
		})
	}
	return Sheet{
		Name: "Properties",
		Headers: []string{
			"Name", "Address", "Type", "Units", "Bedrooms", "Bathrooms",
			"Rent", "Status", "Tenant", "Tenant Email",
		},
		Rows: rows,
	}
}
