package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per activity, with trip fields
// repeated for every activity on that trip. Trips with no activities yield
// one row with zero values for all activity fields.
//
// Dates are "2006-01-02" formatted strings so the row can be written to CSV
// without further conversion.
type ExportRow struct {
	// Trip fields; repeated for every activity on the trip.
	TripID           string
	TripDestination  string
	TripStartDate    string
	TripEndDate      string
	TripBudget       float64
	TripExpenseTotal float64

	// Activity fields; zero values when the trip has no activities.
	ActivityDate        string
	ActivityDescription string
	ActivityDone        bool
}
