package breach

import (
	"encoding/json"
	"strings"
)

// Report is the structured shape of the upstream breach-analytics payload.
// The API hands the raw payload through to clients unmodified; this model is
// for server-side inspection (logging, metrics) and mirrors what the
// dashboard renders.
type Report struct {
	BreachMetrics   BreachMetrics   `json:"BreachMetrics"`
	BreachesSummary BreachesSummary `json:"BreachesSummary"`
	ExposedBreaches ExposedBreaches `json:"ExposedBreaches"`
	PastesSummary   PastesSummary   `json:"PastesSummary"`
}

type BreachMetrics struct {
	Risk             []Risk                   `json:"risk"`
	PasswordStrength []PasswordStrength       `json:"passwords_strength"`
	YearwiseDetails  []map[string]int         `json:"yearwise_details"`
	Industry         []any                    `json:"industry"`
	ExposedData      []any                    `json:"xposed_data"`
}

type Risk struct {
	Label string `json:"risk_label"`
	Score int    `json:"risk_score"`
}

type PasswordStrength struct {
	EasyToCrack int `json:"EasyToCrack"`
	PlainText   int `json:"PlainText"`
	StrongHash  int `json:"StrongHash"`
	Unknown     int `json:"Unknown"`
}

type BreachesSummary struct {
	Site string `json:"site"`
}

type ExposedBreaches struct {
	BreachesDetails []BreachDetail `json:"breaches_details"`
}

type BreachDetail struct {
	Breach         string `json:"breach"`
	Details        string `json:"details"`
	Domain         string `json:"domain"`
	Industry       string `json:"industry"`
	Logo           string `json:"logo"`
	PasswordRisk   string `json:"password_risk"`
	References     string `json:"references"`
	Searchable     string `json:"searchable"`
	Verified       string `json:"verified"`
	ExposedData    string `json:"xposed_data"`
	ExposedDate    string `json:"xposed_date"`
	ExposedRecords int    `json:"xposed_records"`
}

type PastesSummary struct {
	Count     int    `json:"cnt"`
	Domain    string `json:"domain"`
	Timestamp string `json:"tmpstmp"`
}

// ParseReport decodes an upstream payload. Parsing is best-effort on the
// server: the raw bytes are what clients receive either way.
func ParseReport(raw json.RawMessage) (Report, error) {
	var r Report

	err := json.Unmarshal(raw, &r)

	return r, err
}

// IsSafe reports whether the email appears in no known breach or paste.
func (r Report) IsSafe() bool {
	return len(r.ExposedBreaches.BreachesDetails) == 0 && r.PastesSummary.Count == 0
}

func (r Report) BreachCount() int {
	return len(r.ExposedBreaches.BreachesDetails)
}

func (r Report) TotalExposedRecords() int {
	total := 0

	for _, d := range r.ExposedBreaches.BreachesDetails {
		total += d.ExposedRecords
	}

	return total
}

// Risk returns the aggregate risk label and score, if the upstream sent one.
func (r Report) Risk() (label string, score int, ok bool) {
	if len(r.BreachMetrics.Risk) == 0 {
		return "", 0, false
	}

	return r.BreachMetrics.Risk[0].Label, r.BreachMetrics.Risk[0].Score, true
}

// DataClasses splits the ";"-delimited xposed_data field into the tags the
// dashboard shows. Empty segments are dropped.
func (d BreachDetail) DataClasses() []string {
	parts := strings.Split(d.ExposedData, ";")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
