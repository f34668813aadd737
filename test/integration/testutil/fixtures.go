package testutil

import (
	"momtech/pkg/model"
)

const (
	RequesterID = "64f1a2b3c4d5e6f7a8b9c0d1"
	CaregiverID = "64f1a2b3c4d5e6f7a8b9c0d2"
)

type BookingBuilder struct {
	booking model.Booking
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: model.Booking{
			RequesterID:      RequesterID,
			CaregiverID:      CaregiverID,
			Date:             "2026-09-15",
			Time:             "09:00-13:00",
			FamilyName:       "Cohen",
			NumberOfChildren: 2,
			Address:          "12 Herzl St, Tel Aviv",
			Status:           "pending",
		},
	}
}

func (b *BookingBuilder) WithRequester(id string) *BookingBuilder {
	b.booking.RequesterID = id
	return b
}

func (b *BookingBuilder) WithCaregiver(id string) *BookingBuilder {
	b.booking.CaregiverID = id
	return b
}

func (b *BookingBuilder) WithDate(date string) *BookingBuilder {
	b.booking.Date = date
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.booking.Status = status
	return b
}

func (b *BookingBuilder) WithChildren(n int) *BookingBuilder {
	b.booking.NumberOfChildren = n
	return b
}

func (b *BookingBuilder) WithInstructions(text string) *BookingBuilder {
	b.booking.SpecialInstructions = text
	return b
}

func (b *BookingBuilder) Build() model.Booking {
	return b.booking
}

func ValidBooking() model.Booking {
	return NewBookingBuilder().Build()
}

func SelfBooking() model.Booking {
	return NewBookingBuilder().WithRequester(CaregiverID).Build()
}

func window(start, end string) *model.DayAvailability {
	return &model.DayAvailability{Available: true, StartTime: start, EndTime: end}
}

func WeekdayAvailability() model.AvailabilityUpdate {
	return model.AvailabilityUpdate{
		Monday:    window("08:00", "16:00"),
		Tuesday:   window("08:00", "16:00"),
		Wednesday: window("08:00", "16:00"),
		Thursday:  window("08:00", "16:00"),
		Friday:    window("08:00", "13:00"),
	}
}

func PartialAvailability() model.AvailabilityUpdate {
	return model.AvailabilityUpdate{
		Saturday: &model.DayAvailability{Available: false},
		Sunday:   window("10:00", "14:00"),
	}
}

func ValidReview() model.Review {
	return model.Review{
		ReviewerName: "Dana Levi",
		Question1:    "Through a friend",
		Question2:    "Weekly",
		Question3:    "Yes",
		Rating:       5,
		ReviewText:   "Wonderful experience, the sitter was great with the kids.",
	}
}

func ReviewWithRating(rating int) model.Review {
	r := ValidReview()
	r.Rating = rating
	return r
}

func ValidTransaction() model.PaymentTransaction {
	return model.PaymentTransaction{
		Amount: 180.50,
		Method: "credit card",
	}
}

func ValidPreference() model.PaymentPreference {
	return model.PaymentPreference{
		Method: "bank transfer",
		Rate:   55,
	}
}
