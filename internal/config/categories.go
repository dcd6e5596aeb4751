package config

// Categories is the canonical category list. It is consumed only by boundary
// validation and presentation; the analytics engine treats categories as an
// open set of opaque strings and never reads this list.
var Categories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Travel",
	"Personal Care",
	"Other",
}

// KnownCategory reports whether name is part of the canonical list.
func KnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
