package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"momtech/pkg/model"
)

type AvailabilityClient struct {
	httpClient *HttpClient
}

func NewAvailabilityClient(baseUrl string) *AvailabilityClient {
	return &AvailabilityClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *AvailabilityClient) Get(caregiverID string) (*Response, error) {
	path := "/api/v1/availability/caregiver/" + url.PathEscape(caregiverID)
	return c.httpClient.GET(path)
}

func (c *AvailabilityClient) Save(caregiverID string, body any) (*Response, error) {
	path := "/api/v1/availability/caregiver/" + url.PathEscape(caregiverID)
	return c.httpClient.POST(path, body)
}

func (c *AvailabilityClient) SaveRaw(caregiverID string, rawBody []byte) (*Response, error) {
	path := "/api/v1/availability/caregiver/" + url.PathEscape(caregiverID)
	return c.httpClient.POSTRaw(path, rawBody)
}

func (c *AvailabilityClient) DecodeAvailability(resp *Response) (*model.Availability, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode availability wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var availability model.Availability
	if err := json.Unmarshal(wrapper.Data, &availability); err != nil {
		return nil, fmt.Errorf("could not decode availability json:\n%+v\n%s", resp.ToString(), err)
	}

	return &availability, nil
}
