package models

// Professional is a staff member who can be booked individually. Week
// entries override the salon's hours for matching weekdays when the
// professional is selected; days without an entry follow the salon.
type Professional struct {
	ID      string       `bson:"id" json:"id"`
	SalonID string       `bson:"salonId" json:"salonId"`
	Name    string       `bson:"name" json:"name"`
	Week    WeekSchedule `bson:"workSchedule,omitempty" json:"workSchedule,omitempty"`
}
