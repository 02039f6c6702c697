package dto

// PatientsSummary holds the aggregate patient counts.
type PatientsSummary struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// DashboardSummaryResponse consolidates the four independent dashboard
// sections. No cross-section computation happens here.
type DashboardSummaryResponse struct {
	FinancialReport FinancialReportResponse `json:"financial_report"`
	TodaySessions   []SessionResponse       `json:"today_sessions"`
	RecentSessions  []SessionResponse       `json:"recent_sessions"`
	PatientsSummary PatientsSummary         `json:"patients_summary"`
}
