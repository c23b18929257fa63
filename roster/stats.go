package roster

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/payroll"
)

// =============================================================================
// ADMIN DASHBOARD - Pure read-side projection over roster and payroll
// =============================================================================

type DepartmentStats struct {
	Department  string          `json:"department"`
	Count       int             `json:"count"`
	TotalSalary decimal.Decimal `json:"total_salary"`
	AvgSalary   decimal.Decimal `json:"avg_salary"`
}

type DashboardStats struct {
	TotalEmployees      int                     `json:"total_employees"`
	ActiveEmployees     int                     `json:"active_employees"`
	TotalPayroll        decimal.Decimal         `json:"total_payroll"`
	AvgSalary           decimal.Decimal         `json:"avg_salary"`
	DepartmentBreakdown []DepartmentStats       `json:"department_breakdown"`
	RecentHires         []Employee              `json:"recent_hires"`
	UpcomingPayrolls    []payroll.PayrollPeriod `json:"upcoming_payrolls"`
}

// Stats aggregates the admin dashboard view. Pure read: active headcount and
// salary totals, per-department breakdown, hires within the last 30 days
// (at most 5) and the next unpaid periods by pay date (at most 3).
func (r *Roster) Stats(periods []payroll.PayrollPeriod, today attendance.Date) DashboardStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := DashboardStats{
		TotalEmployees: len(r.employees),
		TotalPayroll:   decimal.Zero,
		AvgSalary:      decimal.Zero,
	}

	byDept := map[string]*DepartmentStats{}
	var deptOrder []string
	for _, e := range r.employees {
		if !e.Active() {
			continue
		}
		stats.ActiveEmployees++
		stats.TotalPayroll = stats.TotalPayroll.Add(e.Salary)

		d, ok := byDept[e.Department]
		if !ok {
			d = &DepartmentStats{Department: e.Department, TotalSalary: decimal.Zero}
			byDept[e.Department] = d
			deptOrder = append(deptOrder, e.Department)
		}
		d.Count++
		d.TotalSalary = d.TotalSalary.Add(e.Salary)
	}
	if stats.ActiveEmployees > 0 {
		stats.AvgSalary = stats.TotalPayroll.Div(decimal.NewFromInt(int64(stats.ActiveEmployees)))
	}

	sort.Strings(deptOrder)
	for _, name := range deptOrder {
		d := byDept[name]
		d.AvgSalary = d.TotalSalary.Div(decimal.NewFromInt(int64(d.Count)))
		stats.DepartmentBreakdown = append(stats.DepartmentBreakdown, *d)
	}

	cutoff := today.AddDays(-30)
	for _, e := range r.employees {
		if e.HireDate.AfterOrEqual(cutoff) {
			stats.RecentHires = append(stats.RecentHires, e)
			if len(stats.RecentHires) == 5 {
				break
			}
		}
	}

	upcoming := make([]payroll.PayrollPeriod, 0, len(periods))
	for _, p := range periods {
		if p.Status == payroll.PeriodDraft || p.Status == payroll.PeriodProcessed {
			upcoming = append(upcoming, p)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].PayDate.Before(upcoming[j].PayDate)
	})
	if len(upcoming) > 3 {
		upcoming = upcoming[:3]
	}
	stats.UpcomingPayrolls = upcoming

	return stats
}
