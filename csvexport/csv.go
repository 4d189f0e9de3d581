// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package csvexport

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/pollbox/models"
)

// DefaultDelimiter is used when Options leaves the delimiter unset.
const DefaultDelimiter = ','

// BOM is the UTF-8 byte-order mark spreadsheet programs use to auto-detect
// encoding.
const BOM = "\uFEFF"

// Options control CSV rendering. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	IncludeHeader bool
	Delimiter     rune // ',' or ';'
	ExcelCompat   bool // prefix BOM for spreadsheet auto-detection
}

// DefaultOptions returns header on, comma delimiter, Excel compatibility on.
func DefaultOptions() Options {
	return Options{IncludeHeader: true, Delimiter: DefaultDelimiter, ExcelCompat: true}
}

// SanitizeForSpreadsheet neutralizes CSV injection: a leading =, +, - or @
// would be executed as a formula by spreadsheet programs, so it is prefixed
// with a single quote to force literal-text interpretation.
func SanitizeForSpreadsheet(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@':
		return "'" + value
	}
	return value
}

// EscapeCSVField sanitizes a value and quote-wraps it (doubling internal
// quotes) when it contains a newline, carriage return, double quote, or the
// active delimiter.
func EscapeCSVField(value string, delimiter rune) string {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	sanitized := SanitizeForSpreadsheet(value)
	if strings.ContainsAny(sanitized, "\n\r\""+string(delimiter)) {
		return `"` + strings.ReplaceAll(sanitized, `"`, `""`) + `"`
	}
	return sanitized
}

// TalliesToCSV renders aggregated per-option counts as CSV text with CRLF row
// terminators, a trailing CRLF, and percentages rounded to whole numbers.
func TalliesToCSV(tallies []models.Tally, opts Options) string {
	delim := opts.Delimiter
	if delim == 0 {
		delim = DefaultDelimiter
	}

	rows := make([][]string, 0, len(tallies)+1)
	if opts.IncludeHeader {
		rows = append(rows, []string{"Option", "Count", "Percent"})
	}
	for _, t := range tallies {
		rows = append(rows, []string{
			EscapeCSVField(t.Label, delim),
			EscapeCSVField(strconv.Itoa(t.Count), delim),
			EscapeCSVField(strconv.Itoa(int(math.Round(t.Percent))), delim),
		})
	}

	body := joinRows(rows, delim)
	if opts.ExcelCompat {
		return BOM + body
	}
	return body
}

// RawVotesToCSV renders individual vote records. Option labels are resolved
// through optionsByID, defaulting to "Unknown" for missing ids; anonymous
// votes render an empty voter id.
func RawVotesToCSV(pollTitle string, optionsByID map[string]string, votes []models.Vote, opts Options) string {
	delim := opts.Delimiter
	if delim == 0 {
		delim = DefaultDelimiter
	}

	rows := make([][]string, 0, len(votes)+1)
	if opts.IncludeHeader {
		rows = append(rows, []string{"Poll", "Option", "VoterId", "CreatedAt"})
	}
	for _, v := range votes {
		label, ok := optionsByID[v.OptionID]
		if !ok {
			label = "Unknown"
		}
		voter := ""
		if v.VoterID != nil {
			voter = *v.VoterID
		}
		rows = append(rows, []string{
			EscapeCSVField(pollTitle, delim),
			EscapeCSVField(label, delim),
			EscapeCSVField(voter, delim),
			EscapeCSVField(v.CreatedAt.Format(time.RFC3339), delim),
		})
	}

	body := joinRows(rows, delim)
	if opts.ExcelCompat {
		return BOM + body
	}
	return body
}

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\-\s_]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
	slugTrimEnds = regexp.MustCompile(`^-|-$`)
)

// SlugifyFilename lowercases the input and reduces it to hyphen-separated
// alphanumerics for use in a download filename.
func SlugifyFilename(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	s = slugTrimEnds.ReplaceAllString(s, "")
	return s
}

// joinRows joins fields with the delimiter and rows with CRLF, terminating
// the output with a trailing CRLF.
func joinRows(rows [][]string, delim rune) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, string(delim)))
		b.WriteString("\r\n")
	}
	return b.String()
}
