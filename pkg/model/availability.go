package model

import "time"

// DayAvailability is one weekday window on a caregiver's weekly template.
// StartTime/EndTime are HH:MM strings and only meaningful when Available is
// true. There is no ordering or timezone validation on the pair.
type DayAvailability struct {
	Available bool   `json:"available" bson:"available"`
	StartTime string `json:"start_time,omitempty" bson:"start_time,omitempty" validate:"omitempty,valid_time_range"`
	EndTime   string `json:"end_time,omitempty" bson:"end_time,omitempty" validate:"omitempty,valid_time_range"`
}

// Availability is a caregiver's recurring weekly schedule template, one
// document per caregiver.
type Availability struct {
	ID          string           `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CaregiverID string           `json:"caregiver_id" bson:"caregiver_id" validate:"required,mongodb"`
	Monday      *DayAvailability `json:"monday,omitempty" bson:"monday,omitempty"`
	Tuesday     *DayAvailability `json:"tuesday,omitempty" bson:"tuesday,omitempty"`
	Wednesday   *DayAvailability `json:"wednesday,omitempty" bson:"wednesday,omitempty"`
	Thursday    *DayAvailability `json:"thursday,omitempty" bson:"thursday,omitempty"`
	Friday      *DayAvailability `json:"friday,omitempty" bson:"friday,omitempty"`
	Saturday    *DayAvailability `json:"saturday,omitempty" bson:"saturday,omitempty"`
	Sunday      *DayAvailability `json:"sunday,omitempty" bson:"sunday,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// AvailabilityUpdate carries the weekdays present in an upsert payload.
// Nil days are left untouched on the stored document.
type AvailabilityUpdate struct {
	Monday    *DayAvailability `json:"monday,omitempty"`
	Tuesday   *DayAvailability `json:"tuesday,omitempty"`
	Wednesday *DayAvailability `json:"wednesday,omitempty"`
	Thursday  *DayAvailability `json:"thursday,omitempty"`
	Friday    *DayAvailability `json:"friday,omitempty"`
	Saturday  *DayAvailability `json:"saturday,omitempty"`
	Sunday    *DayAvailability `json:"sunday,omitempty"`
}

// Days returns the weekday windows present in the update, keyed by the
// weekday name used on the stored document.
func (u *AvailabilityUpdate) Days() map[string]*DayAvailability {
	all := map[string]*DayAvailability{
		"monday":    u.Monday,
		"tuesday":   u.Tuesday,
		"wednesday": u.Wednesday,
		"thursday":  u.Thursday,
		"friday":    u.Friday,
		"saturday":  u.Saturday,
		"sunday":    u.Sunday,
	}
	present := map[string]*DayAvailability{}
	for day, window := range all {
		if window != nil {
			present[day] = window
		}
	}
	return present
}

// Day returns the stored window for a weekday name, nil when absent.
func (a *Availability) Day(weekday string) *DayAvailability {
	switch weekday {
	case "monday":
		return a.Monday
	case "tuesday":
		return a.Tuesday
	case "wednesday":
		return a.Wednesday
	case "thursday":
		return a.Thursday
	case "friday":
		return a.Friday
	case "saturday":
		return a.Saturday
	case "sunday":
		return a.Sunday
	}
	return nil
}
