package domain

import "strings"

// Severity ranks how disruptive an error is. Presentation policy is
// driven by ordered comparisons, so the constants must stay ordered.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Upper returns the severity in the form used by the on-disk log format.
func (s Severity) Upper() string {
	return strings.ToUpper(s.String())
}

// ParseSeverity maps a lowercase or uppercase name back to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "low":
		return SeverityLow, true
	case "medium":
		return SeverityMedium, true
	case "high":
		return SeverityHigh, true
	case "critical":
		return SeverityCritical, true
	}
	return SeverityLow, false
}

// Category groups error kinds by subsystem.
type Category string

const (
	CategoryNetwork Category = "network"
	CategoryModel   Category = "model"
	CategoryStorage Category = "storage"
	CategoryMemory  Category = "memory"
	CategoryGPU     Category = "gpu"
	CategoryChat    Category = "chat"
	CategoryExport  Category = "export"
	CategorySystem  Category = "system"
)

// Categories lists every category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryNetwork, CategoryModel, CategoryStorage, CategoryMemory,
		CategoryGPU, CategoryChat, CategoryExport, CategorySystem,
	}
}
