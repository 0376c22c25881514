// Package attendance holds the domain logic for RSVP records: the fixed
// seven-column row layout of the guest sheet, duplicate detection and the
// admin summary.
package attendance

import "strconv"

// Localized literals persisted in the sheet. These are data, not UI copy:
// existing rows already contain them, so they can never change.
const (
	Attending    = "참석"
	NotAttending = "불참석"
	Anonymous    = "익명"
	NoPhone      = "미입력"
)

// Record is one row of the attendance sheet. Rows are append-only and always
// carry seven cells in this order.
type Record struct {
	Timestamp   string `json:"timestamp"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	WillAttend  bool   `json:"willAttend"`
	AttendCount int    `json:"attendCount"`
	UserAgent   string `json:"-"`
	DeviceID    string `json:"deviceId"`
}

// Row renders the record as the ordered cell slice the sheet append expects.
func (r Record) Row() []string {
	flag := NotAttending
	if r.WillAttend {
		flag = Attending
	}

	return []string{
		r.Timestamp,
		r.Name,
		r.Phone,
		flag,
		strconv.Itoa(r.AttendCount),
		r.UserAgent,
		r.DeviceID,
	}
}

// FromRow maps a raw sheet row positionally into a Record. Short rows are
// tolerated: missing cells default to empty string, zero or false.
func FromRow(row []string) Record {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	count, _ := strconv.Atoi(cell(4))

	return Record{
		Timestamp:   cell(0),
		Name:        cell(1),
		Phone:       cell(2),
		WillAttend:  cell(3) == Attending,
		AttendCount: count,
		UserAgent:   cell(5),
		DeviceID:    cell(6),
	}
}
