package client

import (
	"encoding/json"
	"fmt"

	"momtech/pkg/model"
)

type ReviewClient struct {
	httpClient *HttpClient
}

func NewReviewClient(baseUrl string) *ReviewClient {
	return &ReviewClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *ReviewClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/reviews", body)
}

func (c *ReviewClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/reviews?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *ReviewClient) GetStats() (*Response, error) {
	return c.httpClient.GET("/api/v1/reviews/stats")
}

func (c *ReviewClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/reviews", rawBody)
}

func (c *ReviewClient) DecodeReview(resp *Response) (*model.Review, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode review wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var review model.Review
	if err := json.Unmarshal(wrapper.Data, &review); err != nil {
		return nil, fmt.Errorf("could not decode review json:\n%+v\n%s", resp.ToString(), err)
	}

	return &review, nil
}

func (c *ReviewClient) DecodeReviews(resp *Response) ([]*model.Review, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var reviews []*model.Review
	if err := json.Unmarshal(wrapper.Data, &reviews); err != nil {
		return nil, nil, fmt.Errorf("could not decode review list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return reviews, metadata, nil
}

func (c *ReviewClient) DecodeStats(resp *Response) (*model.ReviewStats, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode stats wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var stats model.ReviewStats
	if err := json.Unmarshal(wrapper.Data, &stats); err != nil {
		return nil, fmt.Errorf("could not decode stats json:\n%+v\n%s", resp.ToString(), err)
	}

	return &stats, nil
}
