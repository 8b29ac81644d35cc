package breach_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/breachwatch/breachwatch/internal/breach"
)

const samplePayload = `{
  "BreachMetrics": {
    "risk": [{"risk_label": "High", "risk_score": 8}],
    "passwords_strength": [{"EasyToCrack": 2, "PlainText": 1, "StrongHash": 3, "Unknown": 0}],
    "yearwise_details": [{"y2019": 1, "y2021": 2}]
  },
  "ExposedBreaches": {
    "breaches_details": [
      {
        "breach": "ExampleCorp",
        "domain": "example.com",
        "industry": "Information Technology",
        "password_risk": "plaintext",
        "verified": "Yes",
        "xposed_data": "Emails;Passwords;Usernames",
        "xposed_date": "2021",
        "xposed_records": 1500
      },
      {
        "breach": "OtherSite",
        "domain": "other.io",
        "xposed_data": "Emails",
        "xposed_records": 250
      }
    ]
  },
  "PastesSummary": {"cnt": 0, "domain": "", "tmpstmp": ""}
}`

func TestParseReport(t *testing.T) {
	report, err := breach.ParseReport(json.RawMessage(samplePayload))
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}

	if report.BreachCount() != 2 {
		t.Errorf("got %d breaches, want 2", report.BreachCount())
	}

	if report.TotalExposedRecords() != 1750 {
		t.Errorf("got %d exposed records, want 1750", report.TotalExposedRecords())
	}

	label, score, ok := report.Risk()
	if !ok || label != "High" || score != 8 {
		t.Errorf("got risk (%q, %d, %v), want (High, 8, true)", label, score, ok)
	}

	if report.IsSafe() {
		t.Error("report with breach details must not be safe")
	}
}

func TestDataClasses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "three classes",
			raw:  "Emails;Passwords;Usernames",
			want: []string{"Emails", "Passwords", "Usernames"},
		},
		{
			name: "single class",
			raw:  "Emails",
			want: []string{"Emails"},
		},
		{
			name: "empty segments dropped",
			raw:  "Emails;;Passwords;",
			want: []string{"Emails", "Passwords"},
		},
		{
			name: "empty field",
			raw:  "",
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := breach.BreachDetail{ExposedData: tc.raw}

			got := d.DataClasses()

			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsSafe(t *testing.T) {
	safe := `{"ExposedBreaches": {"breaches_details": []}, "PastesSummary": {"cnt": 0}}`

	report, err := breach.ParseReport(json.RawMessage(safe))
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}

	if !report.IsSafe() {
		t.Error("empty breaches_details and zero pastes must be safe")
	}

	pasted := `{"ExposedBreaches": {"breaches_details": []}, "PastesSummary": {"cnt": 3}}`

	report, err = breach.ParseReport(json.RawMessage(pasted))
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}

	if report.IsSafe() {
		t.Error("paste exposures must not count as safe")
	}
}
