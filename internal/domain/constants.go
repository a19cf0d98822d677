package domain

// Slot catalog bounds (inclusive)
const (
	MinSlotHour = 7
	MaxSlotHour = 22
)

// Facility catalog constants
const (
	DefaultCourtsPerSport = 4
	MinCourtsPerSport     = 1
	MaxCourtsPerSport     = 20

	// CricketSportName получает площадки с именами "Pitch-N"
	CricketSportName = "Cricket"
)

// Attachment constants
const (
	ApprovalPhotoPrefix   = "approval-photos/"
	MaxApprovalPhotoBytes = 5 << 20
	DefaultPhotoListLimit = 1000
)

// Time format constants
const (
	DateFormat  = "2006-01-02"  // YYYY-MM-DD
	ClockFormat = "03:04 PM"
)

// PersistedStatuses статусы, которые хранятся в таблице bookings
var PersistedStatuses = []BookingStatus{
	StatusBooked,
	StatusClosed,
}
