package client

import (
	"encoding/json"
	"fmt"

	"momtech/pkg/model"
)

type PaymentClient struct {
	httpClient *HttpClient
}

func NewPaymentClient(baseUrl string) *PaymentClient {
	return &PaymentClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *PaymentClient) SavePreference(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/payments/preferences", body)
}

func (c *PaymentClient) ProcessTransaction(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/payments/transactions", body)
}

func (c *PaymentClient) GetReports(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/payments/reports?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *PaymentClient) DecodePreference(resp *Response) (*model.PaymentPreference, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode preference wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var preference model.PaymentPreference
	if err := json.Unmarshal(wrapper.Data, &preference); err != nil {
		return nil, fmt.Errorf("could not decode preference json:\n%+v\n%s", resp.ToString(), err)
	}

	return &preference, nil
}

func (c *PaymentClient) DecodeTransaction(resp *Response) (*model.PaymentTransaction, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode transaction wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var transaction model.PaymentTransaction
	if err := json.Unmarshal(wrapper.Data, &transaction); err != nil {
		return nil, fmt.Errorf("could not decode transaction json:\n%+v\n%s", resp.ToString(), err)
	}

	return &transaction, nil
}

func (c *PaymentClient) DecodeTransactions(resp *Response) ([]*model.PaymentTransaction, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var transactions []*model.PaymentTransaction
	if err := json.Unmarshal(wrapper.Data, &transactions); err != nil {
		return nil, nil, fmt.Errorf("could not decode transaction list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return transactions, metadata, nil
}
