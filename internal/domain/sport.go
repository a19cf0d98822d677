package domain

import (
	"fmt"
	"regexp"
	"time"
)

var sportIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Sport is a bookable discipline; ID is a human-chosen slug
type Sport struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SportWithCourtCount sport with the number of courts it owns
type SportWithCourtCount struct {
	Sport
	CourtCount int
}

// Court belongs to exactly one sport
type Court struct {
	ID        int64
	SportID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidSportID checks the slug format
func IsValidSportID(id string) bool {
	return sportIDPattern.MatchString(id)
}

// CourtName returns the deterministic name of the n-th court (1-based) of a sport
func CourtName(sportName string, n int) string {
	if sportName == CricketSportName {
		return fmt.Sprintf("Pitch-%d", n)
	}
	return fmt.Sprintf("%s Court %d", sportName, n)
}
