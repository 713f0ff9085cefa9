// Package permit defines the permit record persisted by the pipeline and the
// CSV sink it is appended to.
package permit

import (
	"strconv"
	"strings"
)

// Canton identifies the Swiss jurisdiction a publication belongs to.
type Canton string

// The two jurisdictions this tool covers.
const (
	CantonZH Canton = "ZH"
	CantonZG Canton = "ZG"
)

// ParseCanton maps a raw canton code from the API onto the enumeration. The
// list endpoint may return a comma- or space-separated list; the first code
// wins.
func ParseCanton(raw string) (Canton, bool) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return "", false
	}
	switch Canton(strings.ToUpper(fields[0])) {
	case CantonZH:
		return CantonZH, true
	case CantonZG:
		return CantonZG, true
	}
	return "", false
}

// Record is one qualifying building-permit announcement. Records are
// append-only: once written to the CSV or the spreadsheet they are never
// mutated.
type Record struct {
	PublicationID    string
	Canton           Canton
	ApplicantName    string
	ApplicantAddress string
	IsMFH            bool
	PublicationDate  string
}

// Header returns the CSV column names. The column set must stay stable
// across runs; dedupe keys off the first column.
func Header() []string {
	return []string{
		"publication_id",
		"canton",
		"applicant_name",
		"applicant_address",
		"is_mfh",
		"publication_date",
	}
}

// Row renders the record in Header order.
func (r Record) Row() []string {
	return []string{
		r.PublicationID,
		string(r.Canton),
		r.ApplicantName,
		r.ApplicantAddress,
		strconv.FormatBool(r.IsMFH),
		r.PublicationDate,
	}
}
