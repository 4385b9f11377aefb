package mercadopago

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/contracts"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/payment"
)

const (
	DefaultBaseURL = "https://api.mercadopago.com"
	serviceName    = "Mercado Pago"
)

// Client reads payments from the Mercado Pago REST API. Calls are single-shot.
type Client struct {
	BaseURL     string
	AccessToken string
	HTTPClient  *http.Client
}

func NewClient(baseURL, accessToken string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		AccessToken: accessToken,
		HTTPClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) GetPayment(ctx context.Context, id string) (*payment.Record, error) {
	endpoint := c.BaseURL + "/v1/payments/" + url.PathEscape(id)

	var rec payment.Record
	status, err := c.get(ctx, endpoint, &rec)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, fmt.Errorf("Payment %s %w (404). This is likely a test webhook with a fake ID.", id, contracts.ErrNotFound)
		}
		return nil, err
	}

	return &rec, nil
}

// RecentPayments returns up to limit payments, newest first.
func (c *Client) RecentPayments(ctx context.Context, limit int) ([]payment.Record, error) {
	q := url.Values{}
	q.Set("sort", "date_created")
	q.Set("criteria", "desc")
	q.Set("limit", strconv.Itoa(limit))

	var res payment.SearchResult
	if _, err := c.get(ctx, c.BaseURL+"/v1/payments/search?"+q.Encode(), &res); err != nil {
		return nil, err
	}

	return res.Results, nil
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) get(ctx context.Context, endpoint string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("mercadopago: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("mercadopago: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("mercadopago: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Message != "" {
			msg = eb.Message
		}
		return resp.StatusCode, &contracts.APIError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("mercadopago: decode response: %w", err)
	}

	return resp.StatusCode, nil
}
