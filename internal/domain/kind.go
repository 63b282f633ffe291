package domain

import "strings"

// Kind identifies one of the record types
type Kind int

const (
	KindUnknown Kind = iota
	KindClient
	KindPlant
	KindJob
	KindMonth
)

func (k Kind) String() string {
	switch k {
	case KindClient:
		return "Client"
	case KindPlant:
		return "Plant"
	case KindJob:
		return "Job"
	case KindMonth:
		return "Month"
	default:
		return "Unknown"
	}
}

// ParseKind accepts singular and plural record names, case-insensitively.
// Months are not addressable records and never parse.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client", "clients":
		return KindClient
	case "plant", "plants":
		return KindPlant
	case "job", "jobs", "maintenance":
		return KindJob
	default:
		return KindUnknown
	}
}
