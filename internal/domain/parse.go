package domain

import (
	"strconv"
	"strings"
	"time"
)

// Lenient cell parsers. Spreadsheet data is messy by nature, so every
// parser here is total: malformed or missing input degrades to a
// documented default and never produces an error. One bad cell must not
// fail an entire account's ingestion.

var phaseByCode = map[string]Phase{
	"0":  PhaseAlign,
	"1":  PhasePilot,
	"2":  PhaseExpansion,
	"3":  PhaseEnterprise,
	"4":  PhaseHandoff,
	"P0": PhaseAlign,
	"P1": PhasePilot,
	"P2": PhaseExpansion,
	"P3": PhaseEnterprise,
	"P4": PhaseHandoff,
}

// ParsePhase maps "0".."4" or "P0".."P4" to a phase. Anything else
// defaults to PhaseAlign.
func ParsePhase(raw string) Phase {
	if phase, ok := phaseByCode[strings.TrimSpace(raw)]; ok {
		return phase
	}
	return PhaseAlign
}

// ParseBool is true for "true", "yes" or "1" (case-insensitive) and false
// for everything else, including empty input.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// ParseNumber parses the leading numeric prefix of a cell, so annotated
// values like "95%", "1,200" or "12 wk" read as 95, 1 and 12. Input with
// no numeric prefix returns def.
func ParseNumber(raw string, def float64) float64 {
	prefix := numericPrefix(strings.TrimSpace(raw))
	if prefix == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return def
	}
	return parsed
}

// numericPrefix returns the longest leading substring that forms a float:
// optional sign, digits with an optional fraction, optional exponent. The
// mantissa must contain at least one digit.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return s[:i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate parses a timestamp in any of the formats seen in the sheets,
// returning nil for empty or unparseable input.
func ParseDate(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed
		}
	}
	return nil
}
