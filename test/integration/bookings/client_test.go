package bookings

import (
	"net/http"
	"testing"

	"momtech/pkg/client"
	"momtech/pkg/model"
	"momtech/test/integration/testutil"
)

// Drives the full lifecycle through the typed client the way a consuming
// service would, instead of raw HTTP calls.
func TestTypedClient_BookingLifecycle(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, _ := env.Setup(t)
	defer env.Cleanup(t, mongo)

	bookings := client.NewBookingClient(env.ServerURL)

	resp, err := bookings.Create(testutil.ValidBooking())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %s", resp.ToString())
	}
	created, err := bookings.DecodeBooking(resp)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	resp, err = bookings.UpdateStatus(created.ID, model.StatusUpdate{Status: "confirmed"})
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %s", resp.ToString())
	}
	confirmed, err := bookings.DecodeBooking(resp)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if confirmed.Status != "confirmed" {
		t.Fatalf("expected confirmed booking in response, got %q", confirmed.Status)
	}

	resp, err = bookings.Rate(created.ID, model.RatingSubmission{Rating: 5, Review: "Great sitter."})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	rated, err := bookings.DecodeBooking(resp)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if rated.Status != "completed" {
		t.Errorf("expected status completed, got %q", rated.Status)
	}

	resp, err = bookings.GetByCaregiver(testutil.CaregiverID, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	listed, metadata, err := bookings.DecodeBookings(resp)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if metadata.TotalCount != 1 || len(listed) != 1 {
		t.Errorf("expected single booking, got total=%d len=%d", metadata.TotalCount, len(listed))
	}
}
