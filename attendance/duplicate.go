package attendance

import "strings"

// Candidate is a proposed submission being checked against stored records.
type Candidate struct {
	Name     string
	Phone    string
	DeviceID string
}

// Match carries what was previously recorded so the UI can show it back to
// the guest. Empty name/phone are replaced with the display sentinels.
type Match struct {
	Timestamp  string `json:"timestamp"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	WillAttend bool   `json:"willAttend"`
}

// CheckResult is the outcome of a duplicate check.
type CheckResult struct {
	IsDuplicate bool
	Existing    *Match
}

// Check decides whether the candidate already exists among the stored
// records. Records are scanned in order and the first match wins.
//
// A fully anonymous candidate (name and phone both blank after trimming) is
// never a duplicate, even when its device ID matches a stored row. The
// short-circuit runs before the device rule on purpose; anonymous guests are
// always let through.
func Check(c Candidate, records []Record) CheckResult {
	name := strings.TrimSpace(c.Name)
	phone := strings.TrimSpace(c.Phone)

	if name == "" && phone == "" {
		return CheckResult{IsDuplicate: false}
	}

	for _, r := range records {
		if !matches(c, name, phone, r) {
			continue
		}

		m := &Match{
			Timestamp:  r.Timestamp,
			Name:       r.Name,
			Phone:      r.Phone,
			WillAttend: r.WillAttend,
		}
		if m.Name == "" {
			m.Name = Anonymous
		}
		if m.Phone == "" {
			m.Phone = NoPhone
		}

		return CheckResult{IsDuplicate: true, Existing: m}
	}

	return CheckResult{IsDuplicate: false}
}

// matches applies the ordered rule set against one stored record.
func matches(c Candidate, name, phone string, r Record) bool {
	// 1. Exact device match is the strongest signal
	if c.DeviceID != "" && r.DeviceID != "" && c.DeviceID == r.DeviceID {
		return true
	}

	// 2. Both name and phone present on both sides
	if name != "" && phone != "" && r.Name != "" && r.Phone != "" {
		return sameName(name, r.Name) && samePhone(phone, r.Phone)
	}

	// 3. Name only
	if name != "" && phone == "" && r.Name != "" {
		return sameName(name, r.Name)
	}

	// 4. Phone only
	if name == "" && phone != "" && r.Phone != "" {
		return samePhone(phone, r.Phone)
	}

	return false
}

// sameName compares names case-insensitively after trimming.
func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// samePhone compares phone numbers with every non-digit stripped, so
// "010-1234-5678" and "01012345678" are the same number.
func samePhone(a, b string) bool {
	return digits(a) == digits(b)
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
