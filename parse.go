package cardeals

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Field parsers pull typed values out of free-text fragments. Absence of a
// match is a normal, expected outcome reported through the ok return value,
// never an error.

var (
	priceRe      = regexp.MustCompile(`\$?(\d+(?:\.\d{2})?)`)
	termRe       = regexp.MustCompile(`(?i)(\d+)\s*months?`)
	yearRe       = regexp.MustCompile(`\b(20\d{2})\b`)
	expirationRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	downRe       = regexp.MustCompile(`(?i)\$?([\d,]+)\s*(?:cap\s*cost\s*)?(?:due\s*at\s*(?:lease\s*)?signing|at\s*signing)`)
	mileageRe    = regexp.MustCompile(`(?i)(\d{1,2})[,\s]*000\s*miles?`)
	fillerRe     = regexp.MustCompile(`(?i)^(lease a new|buy a new|lease for|new|lease)\s+`)
	parensRe     = regexp.MustCompile(`\s*\(.*\)\s*$`)
	drivetrainRe = regexp.MustCompile(`\s+\d+WD\s*$`)
	bodyStyleRe  = regexp.MustCompile(`(?i)\s*(Sedan|Hatchback|Coupe|SUV)\s*$`)
)

// ParsePrice extracts the first dollar-amount-like numeric token from text,
// e.g. "$2,931" -> 2931 or "299" -> 299. Thousands separators and optional
// cents are handled; text without digits reports no value.
func ParsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	m := priceRe.FindStringSubmatch(strings.ReplaceAll(text, ",", ""))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseTerm extracts an integer immediately preceding "month"/"months",
// e.g. "39 Months" -> 39.
func ParseTerm(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	m := termRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseDownPayment extracts a down payment amount from phrases like
// "$3,499 due at signing" or "$3,995 cap cost due at lease signing".
func ParseDownPayment(text string) (float64, bool) {
	m := downRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return ParsePrice(m[1])
}

// ParseAnnualMileage extracts an annual mileage allowance from phrases like
// "12,000 miles per year".
func ParseAnnualMileage(text string) (int, bool) {
	m := mileageRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v * 1000, true
}

// Vehicle holds the parsed pieces of a vehicle descriptor.
type Vehicle struct {
	Year  int    // 0 when no plausible year was found
	Make  string
	Model string // "Unknown" when no vocabulary model matched
	Trim  string
}

// ParseVehicle parses a descriptor like "New 2026 Toyota Corolla Cross L 2WD
// (Natl)". Leading filler words are stripped, the year must fall within a
// plausible window around the current model year, the make is detected by
// substring against the known brand list (falling back to defaultMake), and
// the longest vocabulary model name appearing as a substring wins so
// "Corolla Cross" beats "Corolla". Text trailing the model match, minus
// drivetrain/body-style suffixes and parentheticals, becomes the trim.
func ParseVehicle(text, defaultMake string) Vehicle {
	text = fillerRe.ReplaceAllString(strings.TrimSpace(text), "")

	year := 0
	if m := yearRe.FindStringSubmatch(text); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil && plausibleYear(y) {
			year = y
		}
	}

	v := Vehicle{Year: year, Make: defaultMake}
	lower := strings.ToLower(text)
	for _, name := range KnownMakes {
		if strings.Contains(lower, strings.ToLower(name)) {
			v.Make = name
			break
		}
	}

	// Drop the year and make tokens so only the model and trim remain.
	rest := text
	if year != 0 {
		rest = strings.Replace(rest, strconv.Itoa(year), "", 1)
	}
	for _, name := range KnownMakes {
		if idx := indexFold(rest, name); idx >= 0 {
			rest = rest[:idx] + rest[idx+len(name):]
			break
		}
	}
	rest = strings.TrimSpace(rest)

	for _, model := range allModelsByLength {
		idx := indexFold(rest, model)
		if idx < 0 {
			continue
		}
		v.Model = model
		trim := strings.TrimSpace(rest[idx+len(model):])
		trim = parensRe.ReplaceAllString(trim, "")
		trim = drivetrainRe.ReplaceAllString(trim, "")
		trim = bodyStyleRe.ReplaceAllString(trim, "")
		v.Trim = strings.TrimSpace(trim)
		return v
	}

	// No vocabulary match: keep the first remaining word so the validator
	// can report what it saw.
	if fields := strings.Fields(rest); len(fields) > 0 {
		v.Model = fields[0]
	} else {
		v.Model = "Unknown"
	}
	return v
}

// ParseExpiration extracts a MM/DD/YYYY date (optionally preceded by
// "through"/"good through") and returns it in YYYY-MM-DD form.
func ParseExpiration(text string) (string, bool) {
	m := expirationRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	month, err := strconv.Atoi(m[1])
	if err != nil || month < 1 || month > 12 {
		return "", false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
}

// plausibleYear reports whether y is near the current model year. Model
// years run ahead of calendar years, so the window extends two years out.
func plausibleYear(y int) bool {
	now := time.Now().UTC().Year()
	return y >= now-2 && y <= now+2
}

// indexFold is a case-insensitive strings.Index.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
