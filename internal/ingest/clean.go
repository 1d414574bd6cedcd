// Package ingest is the ingestion boundary in front of the engine: it
// parses CSV datasets, detects column names heuristically, cleans
// currency strings, and standardizes vendor names. Data entering the
// engine has already passed through this package.
package ingest

import (
	"strconv"
	"strings"
)

// vendorReplacements normalizes common company-suffix variants.
// Order matters: longer forms are rewritten before their substrings.
var vendorReplacements = []struct{ old, new string }{
	{"PVT. LTD.", "PVT LTD"},
	{"PVT LTD.", "PVT LTD"},
	{"PRIVATE LIMITED", "PVT LTD"},
	{"PRIVATE LTD.", "PVT LTD"},
	{"PRIVATE LTD", "PVT LTD"},
	{"LIMITED", "LTD"},
	{"LTD.", "LTD"},
	{"INCORPORATED", "INC"},
	{"INC.", "INC"},
	{" & ", " AND "},
	{".", ""},
	{",", ""},
}

// NormalizeVendorName uppercases a vendor name and collapses common
// suffix variants so "ABC Private Limited" and "ABC Pvt. Ltd." group
// as the same vendor.
func NormalizeVendorName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	for _, r := range vendorReplacements {
		name = strings.ReplaceAll(name, r.old, r.new)
	}
	return strings.Join(strings.Fields(name), " ")
}

// currencyTokens are stripped before numeric parsing. "Rs." before
// "Rs" so the bare prefix doesn't leave a stray period.
var currencyTokens = []string{"₹", "Rs.", "Rs", "INR", ",", " "}

// CleanNumeric strips currency symbols and separators and parses the
// remainder as a float. The second return is false when the cell is
// not computable; callers must exclude such values, not zero them.
func CleanNumeric(s string) (float64, bool) {
	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseYear extracts a four-digit year from a cell that may hold a
// bare year or a date string.
func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	// Scan for a 4-digit run starting with 19 or 20.
	for i := 0; i+4 <= len(s); i++ {
		if (strings.HasPrefix(s[i:], "19") || strings.HasPrefix(s[i:], "20")) && i+4 <= len(s) {
			if y, err := strconv.Atoi(s[i : i+4]); err == nil {
				return y, true
			}
		}
	}
	return 0, false
}
