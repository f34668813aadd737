package events

import (
	"context"

	"momtech/pkg/kafka"
	"momtech/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingRated         = "booking.rated"

	schemaVersion = "1"
	source        = "bookings"
)

type bookingEvent struct {
	BookingID   string `json:"booking_id"`
	RequesterID string `json:"requester_id"`
	CaregiverID string `json:"caregiver_id"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Rating      *int   `json:"rating,omitempty"`
}

// KafkaPublisher emits booking lifecycle events to the booking-events topic.
type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, EventBookingCreated, booking)
}

func (p *KafkaPublisher) BookingStatusChanged(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, EventBookingStatusChanged, booking)
}

func (p *KafkaPublisher) BookingRated(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, EventBookingRated, booking)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) error {
	payload := bookingEvent{
		BookingID:   booking.ID,
		RequesterID: booking.RequesterID,
		CaregiverID: booking.CaregiverID,
		Date:        booking.Date,
		Status:      booking.Status,
		Rating:      booking.Rating,
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithEventType(eventType).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		WithValue(payload).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
