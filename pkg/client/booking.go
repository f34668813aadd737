package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"momtech/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseUrl string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *BookingClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings", body)
}

func (c *BookingClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *BookingClient) GetByCaregiver(caregiverID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings/caregiver/%s?limit=%d&offset=%d", url.PathEscape(caregiverID), limit, offset)
	return c.httpClient.GET(path)
}

func (c *BookingClient) UpdateStatus(id string, body any) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id) + "/status"
	return c.httpClient.PUT(path, body)
}

func (c *BookingClient) Rate(id string, body any) (*Response, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id) + "/rate"
	return c.httpClient.POST(path, body)
}

func (c *BookingClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/bookings", rawBody)
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json:\n%+v\n%s", resp.ToString(), err)
	}

	return &booking, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.BookingWithRequester, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var bookings []*model.BookingWithRequester
	if err := json.Unmarshal(wrapper.Data, &bookings); err != nil {
		return nil, nil, fmt.Errorf("could not decode booking list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return bookings, metadata, nil
}
