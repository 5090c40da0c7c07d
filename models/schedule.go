package models

// WorkDayConfig describes a salon's working hours for a single weekday.
// All times are local wall-clock strings in "HH:MM" format; the zone they
// are interpreted in belongs to the salon, not to this record.
type WorkDayConfig struct {
	IsOpen     bool   `bson:"isOpen" json:"isOpen"`
	OpenTime   string `bson:"openTime" json:"openTime"`
	CloseTime  string `bson:"closeTime" json:"closeTime"`
	HasLunch   bool   `bson:"hasLunch" json:"hasLunch"`
	LunchStart string `bson:"lunchStart,omitempty" json:"lunchStart,omitempty"`
	LunchEnd   string `bson:"lunchEnd,omitempty" json:"lunchEnd,omitempty"`
}

// WeekSchedule maps lowercase English weekday names ("monday".."sunday")
// to that day's configuration, matching how salon profiles are stored.
type WeekSchedule map[string]WorkDayConfig

// SalonService is one bookable service offered by a salon.
type SalonService struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64 `bson:"price,omitempty" json:"price,omitempty"`
}

// Salon is the subset of the business profile the scheduling core reads.
// It is read-only here; owner configuration flows mutate it elsewhere.
type Salon struct {
	ID       string       `bson:"id" json:"id"`
	Name     string       `bson:"name" json:"name"`
	Email    string       `bson:"email,omitempty" json:"email,omitempty"`
	Timezone string       `bson:"timezone,omitempty" json:"timezone,omitempty"` // optional override of the configured default
	Week     WeekSchedule `bson:"workSchedule" json:"workSchedule"`

	Services []SalonService `bson:"services,omitempty" json:"services,omitempty"`

	// Google Calendar sync. The refresh token is a long-lived credential
	// exchanged for short-lived access tokens per request.
	GoogleSyncEnabled  bool   `bson:"googleSyncEnabled" json:"googleSyncEnabled"`
	GoogleRefreshToken string `bson:"googleRefreshToken,omitempty" json:"-"`
}

// ServiceByID looks up a bookable service on the salon profile.
func (s *Salon) ServiceByID(id string) (SalonService, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return SalonService{}, false
}
