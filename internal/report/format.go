// Package report renders analysis results for analysts: currency
// formatting in Indian units, text tables, and XLSX export.
package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// Rupee denominations.
	Crore = 1_00_00_000
	Lakh  = 1_00_000
)

var printer = message.NewPrinter(language.English)

// FormatINR renders a rupee amount in its natural large unit:
// ₹X.XX crore, ₹X.XX lakh, or a grouped rupee figure.
func FormatINR(value float64) string {
	switch {
	case value <= 0:
		return "₹0"
	case value >= Crore:
		return fmt.Sprintf("₹%.2f crore", value/Crore)
	case value >= Lakh:
		return fmt.Sprintf("₹%.2f lakh", value/Lakh)
	default:
		return printer.Sprintf("₹%.0f", value)
	}
}

// FormatCrore renders a rupee amount in crores regardless of size.
func FormatCrore(value float64) string {
	return fmt.Sprintf("₹%.2f Cr", value/Crore)
}

// FormatCount renders an integer with digit grouping.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
