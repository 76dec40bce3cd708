package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Canonical layouts used by every table in the service
const (
	DATE_LAYOUT = "2006-01-02"
	TIME_LAYOUT = "15:04"
)

// NotPresented is the boarding-pass sentinel for a missing ticket
const NotPresented = "Not presented"

var dateLayouts = []string{
	DATE_LAYOUT,
	"02.01.2006",
	"2006.01.02",
	"2006/01/02",
	"02-01-2006",
	"02 Jan 2006",
	"2 January 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var timeLayouts = []string{
	TIME_LAYOUT,
	"15:04:05",
	"3:04PM",
	"3:04 PM",
	"1504",
}

var ffReferenceRegex = regexp.MustCompile(`(?i)\bFF\s*[#:№]?\s*([A-Z]{2,3})[\s-]*(\d{4,12})\b`)

var upper = cases.Upper(language.Und)

// NormalizeDocument upper-cases a travel document number and removes whitespace
func NormalizeDocument(doc string) string {
	return stripSpaces(strings.ToUpper(norm.NFKC.String(doc)))
}

// NormalizeTicket normalizes an e-ticket number; the "Not presented" sentinel
// becomes empty.
func NormalizeTicket(ticket string) string {
	t := strings.TrimSpace(ticket)
	if strings.EqualFold(t, NotPresented) {
		return ""
	}
	// spreadsheets export numeric tickets as floats
	t = strings.TrimSuffix(t, ".0")
	return stripSpaces(strings.ToUpper(t))
}

// NormalizeFlightNumber turns "su 1234" or "SU-1234" into "SU1234"
func NormalizeFlightNumber(flight string) string {
	f := strings.ToUpper(strings.TrimSpace(flight))
	f = strings.ReplaceAll(f, "-", "")
	return stripSpaces(f)
}

// NormalizeAirport upper-cases an airport code
func NormalizeAirport(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeFFKey builds the canonical loyalty key from its parts.
// Separators are dropped: ("SU", "123 456") -> "SU123456".
func NormalizeFFKey(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		for _, r := range strings.ToUpper(norm.NFKC.String(p)) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// NormalizeDate converts any supported date layout to 2006-01-02.
// Empty input yields empty output.
func NormalizeDate(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(DATE_LAYOUT), nil
		}
	}
	return "", fmt.Errorf("invalid date format: %s", value)
}

// NormalizeTime converts any supported time layout to 15:04
func NormalizeTime(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(TIME_LAYOUT), nil
		}
	}
	return "", fmt.Errorf("invalid time format: %s", value)
}

// DisplayName builds "Last First S" where S is the initial of the second name
func DisplayName(last, first, second string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{last, first} {
		p = strings.Join(strings.Fields(norm.NFC.String(p)), " ")
		if p != "" {
			parts = append(parts, p)
		}
	}
	if s := []rune(strings.TrimSpace(norm.NFC.String(second))); len(s) > 0 {
		parts = append(parts, upper.String(string(s[0])))
	}
	return strings.Join(parts, " ")
}

// ExtractFFReferences finds loyalty references such as "FF#SU 1234567" in free text
// and returns them as normalized ffkeys, in order of appearance, without duplicates.
func ExtractFFReferences(text string) []string {
	matches := ffReferenceRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		key := NormalizeFFKey(m[1], m[2])
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
