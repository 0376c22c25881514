package attendance

// Summary is the admin-dashboard aggregation over all records. It is
// recomputed on every read; the dashboard polls and there is no cache.
type Summary struct {
	Attending   int `json:"attending"`
	Declined    int `json:"declined"`
	TotalGuests int `json:"totalGuests"`
}

// Summarize counts attendees and decliners and sums the party sizes of
// everyone attending.
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		if r.WillAttend {
			s.Attending++
			s.TotalGuests += r.AttendCount
		} else {
			s.Declined++
		}
	}
	return s
}
