package handler

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
)

// exportHeader is the CSV header row for GET /export.
var exportHeader = []string{
	"trip_id", "destination", "start_date", "end_date", "budget", "expense_total",
	"activity_date", "activity_description", "activity_done",
}

// Export handles GET /export.
// Streams the owner's full data as CSV: one row per activity, trips without
// activities contributing one row with empty activity columns.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	rows, err := s.export.Export(r.Context(), ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="wayfarer-export.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		slog.ErrorContext(r.Context(), "write export header", "error", err)
		return
	}
	for _, row := range rows {
		done := ""
		if row.ActivityDate != "" {
			done = strconv.FormatBool(row.ActivityDone)
		}
		record := []string{
			row.TripID,
			row.TripDestination,
			row.TripStartDate,
			row.TripEndDate,
			strconv.FormatFloat(row.TripBudget, 'f', 2, 64),
			strconv.FormatFloat(row.TripExpenseTotal, 'f', 2, 64),
			row.ActivityDate,
			row.ActivityDescription,
			done,
		}
		if err := cw.Write(record); err != nil {
			slog.ErrorContext(r.Context(), "write export row", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.ErrorContext(r.Context(), "flush export", "error", err)
	}
}
