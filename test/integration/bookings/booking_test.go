package bookings

import (
	"fmt"
	"net/http"
	"testing"

	"momtech/pkg/model"
	"momtech/test/integration/testutil"
)

type dataEnvelope struct {
	Data model.Booking `json:"data"`
}

func createBooking(t *testing.T, client *testutil.Client, booking model.Booking) model.Booking {
	t.Helper()

	resp := client.POST(t, "/api/v1/bookings", booking)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var envelope dataEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if envelope.Data.ID == "" {
		t.Fatal("expected created booking to have an id")
	}
	return envelope.Data
}

func TestCreate_ValidBooking(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createBooking(t, client, testutil.ValidBooking())

	if created.Status != "pending" {
		t.Errorf("expected status pending, got %q", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	count := mongo.CountDocuments(t, testutil.BookingsCollection)
	if count != 1 {
		t.Errorf("expected 1 document in DB, got %d", count)
	}
}

func TestCreate_SelfBookingRejected(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.POST(t, "/api/v1/bookings", testutil.SelfBooking())

	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)

	count := mongo.CountDocuments(t, testutil.BookingsCollection)
	if count != 0 {
		t.Errorf("expected 0 documents in DB, got %d", count)
	}
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	testCases := []struct {
		name    string
		booking model.Booking
	}{
		{
			name:    "missing requester",
			booking: testutil.NewBookingBuilder().WithRequester("").Build(),
		},
		{
			name:    "malformed caregiver id",
			booking: testutil.NewBookingBuilder().WithCaregiver("not-an-id").Build(),
		},
		{
			name:    "bad date format",
			booking: testutil.NewBookingBuilder().WithDate("15/09/2026").Build(),
		},
		{
			name:    "zero children",
			booking: testutil.NewBookingBuilder().WithChildren(0).Build(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := client.POST(t, "/api/v1/bookings", tc.booking)
			testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
		})
	}

	count := mongo.CountDocuments(t, testutil.BookingsCollection)
	if count != 0 {
		t.Errorf("expected 0 documents in DB, got %d", count)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.GET(t, "/api/v1/bookings/id/64f1a2b3c4d5e6f7a8b9c0ff")

	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestStatusLifecycle(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createBooking(t, client, testutil.ValidBooking())

	resp := client.PUT(t, "/api/v1/bookings/id/"+created.ID+"/status", model.StatusUpdate{Status: "confirmed"})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var updated dataEnvelope
	if err := resp.DecodeJSON(&updated); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if updated.Data.Status != "confirmed" {
		t.Errorf("expected response booking status confirmed, got %q", updated.Data.Status)
	}

	resp = client.GET(t, "/api/v1/bookings/id/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var envelope dataEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if envelope.Data.Status != "confirmed" {
		t.Errorf("expected status confirmed, got %q", envelope.Data.Status)
	}
}

func TestStatusUpdate_CompletedNotAllowedAsTarget(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createBooking(t, client, testutil.ValidBooking())

	resp := client.PUT(t, "/api/v1/bookings/id/"+created.ID+"/status", model.StatusUpdate{Status: "completed"})
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
}

func TestRate_MarksBookingCompleted(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createBooking(t, client, testutil.ValidBooking())

	resp := client.POST(t, "/api/v1/bookings/id/"+created.ID+"/rate", model.RatingSubmission{
		Rating: 4,
		Review: "Kids had a great time.",
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var envelope dataEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if envelope.Data.Status != "completed" {
		t.Errorf("expected status completed, got %q", envelope.Data.Status)
	}
	if envelope.Data.Rating == nil || *envelope.Data.Rating != 4 {
		t.Errorf("expected rating 4, got %v", envelope.Data.Rating)
	}

	// completed is terminal for caregiver-driven transitions
	resp = client.PUT(t, "/api/v1/bookings/id/"+created.ID+"/status", model.StatusUpdate{Status: "rejected"})
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}

func TestGetByCaregiver_Pagination(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	for i := 0; i < 7; i++ {
		booking := testutil.NewBookingBuilder().
			WithInstructions(fmt.Sprintf("visit %d", i)).
			Build()
		createBooking(t, client, booking)
	}

	resp := client.GET(t, "/api/v1/bookings/caregiver/"+testutil.CaregiverID+"?limit=5&offset=0")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var page struct {
		Data       []model.BookingWithRequester `json:"data"`
		TotalCount int64                        `json:"total_count"`
		Limit      int                          `json:"limit"`
		Offset     int64                        `json:"offset"`
	}
	if err := resp.DecodeJSON(&page); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if page.TotalCount != 7 {
		t.Errorf("expected total_count 7, got %d", page.TotalCount)
	}
	if len(page.Data) != 5 {
		t.Errorf("expected 5 bookings on first page, got %d", len(page.Data))
	}

	resp = client.GET(t, "/api/v1/bookings/caregiver/"+testutil.CaregiverID+"?limit=5&offset=5")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	if err := resp.DecodeJSON(&page); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(page.Data) != 2 {
		t.Errorf("expected 2 bookings on second page, got %d", len(page.Data))
	}
}
