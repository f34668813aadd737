package reviews

import (
	"net/http"
	"testing"

	"momtech/pkg/model"
	"momtech/test/integration/testutil"
)

func submitReview(t *testing.T, client *testutil.Client, review model.Review) {
	t.Helper()
	resp := client.POST(t, "/api/v1/reviews", review)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
}

func TestSubmit_ValidReview(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	submitReview(t, client, testutil.ValidReview())

	count := mongo.CountDocuments(t, testutil.ReviewsCollection)
	if count != 1 {
		t.Errorf("expected 1 document in DB, got %d", count)
	}
}

func TestSubmit_WhitespaceOnlyRejected(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	review := testutil.ValidReview()
	review.ReviewText = "   \t  "

	resp := client.POST(t, "/api/v1/reviews", review)
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)

	count := mongo.CountDocuments(t, testutil.ReviewsCollection)
	if count != 0 {
		t.Errorf("expected 0 documents in DB, got %d", count)
	}
}

func TestGetAll_NewestFirst(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	first := testutil.ValidReview()
	first.ReviewerName = "First Reviewer"
	submitReview(t, client, first)

	second := testutil.ValidReview()
	second.ReviewerName = "Second Reviewer"
	submitReview(t, client, second)

	resp := client.GET(t, "/api/v1/reviews")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var page struct {
		Data       []model.Review `json:"data"`
		TotalCount int64          `json:"total_count"`
	}
	if err := resp.DecodeJSON(&page); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("expected total_count 2, got %d", page.TotalCount)
	}
	if len(page.Data) != 2 || page.Data[0].ReviewerName != "Second Reviewer" {
		t.Errorf("expected newest review first, got %+v", page.Data)
	}
}

func TestStats_OverTheWholeFeed(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	submitReview(t, client, testutil.ReviewWithRating(5))
	submitReview(t, client, testutil.ReviewWithRating(4))
	submitReview(t, client, testutil.ReviewWithRating(4))

	resp := client.GET(t, "/api/v1/reviews/stats")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var envelope struct {
		Data model.ReviewStats `json:"data"`
	}
	if err := resp.DecodeJSON(&envelope); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	stats := envelope.Data
	if stats.TotalReviews != 3 {
		t.Errorf("expected 3 total reviews, got %d", stats.TotalReviews)
	}
	if stats.AverageRating != 4.3 {
		t.Errorf("expected average 4.3, got %v", stats.AverageRating)
	}
	if stats.RatingDistribution[3] != 2 || stats.RatingDistribution[4] != 1 {
		t.Errorf("unexpected distribution %v", stats.RatingDistribution)
	}
	if stats.MostCommonAnswers.Question1 != "Through a friend" {
		t.Errorf("unexpected most common answer %q", stats.MostCommonAnswers.Question1)
	}
}

func TestStats_EmptyFeed(t *testing.T) {
	testutil.RequireIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.GET(t, "/api/v1/reviews/stats")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var envelope struct {
		Data model.ReviewStats `json:"data"`
	}
	if err := resp.DecodeJSON(&envelope); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if envelope.Data.TotalReviews != 0 || envelope.Data.AverageRating != 0 {
		t.Errorf("expected zeroed stats, got %+v", envelope.Data)
	}
}
