// Package carrier integrates with the Rivigo booking API. The remote side is
// opaque: its status and message pass through on failure.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StatusError carries the upstream's status and message through to callers.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("carrier responded %d: %s", e.StatusCode, e.Message)
}

type BookingRequest struct {
	CNNumber        string  `json:"cn_number"`
	PickupPincode   string  `json:"pickup_pincode"`
	DeliveryPincode string  `json:"delivery_pincode"`
	Pieces          int     `json:"pieces"`
	ActualWeightKg  float64 `json:"actual_weight_kg"`
	InvoiceValue    float64 `json:"invoice_value,omitempty"`
	PaymentMode     string  `json:"payment_mode,omitempty"`
	ConsigneeName   string  `json:"consignee_name"`
	ConsigneePhone  string  `json:"consignee_phone,omitempty"`
	SpecialHandling bool    `json:"special_handling,omitempty"`
}

type BookingResponse struct {
	BookingID   string `json:"booking_id"`
	Status      string `json:"status"`
	DocketURL   string `json:"docket_url,omitempty"`
	PickupDate  string `json:"pickup_date,omitempty"`
	CarrierName string `json:"carrier_name,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *TokenCache

	clientID     string
	clientSecret string
}

func NewClient(baseURL, clientID, clientSecret string) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{},
		clientID:     clientID,
		clientSecret: clientSecret,
	}
	c.cache = NewTokenCache(c.fetchToken)
	return c
}

func (c *Client) fetchToken(ctx context.Context) (string, time.Time, error) {
	body, err := json.Marshal(map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"grant_type":    "client_credentials",
	})
	if err != nil {
		return "", time.Time{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", bytes.NewReader(body))
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, readStatusError(resp)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", time.Time{}, err
	}
	return token.AccessToken, time.Now().Add(time.Duration(token.ExpiresIn) * time.Second), nil
}

// CreateBooking books a pickup with the carrier. A 401 invalidates the cached
// token and retries once with a fresh one.
func (c *Client) CreateBooking(ctx context.Context, booking BookingRequest) (*BookingResponse, error) {
	resp, err := c.postBooking(ctx, booking)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			c.cache.Invalidate()
			return c.postBooking(ctx, booking)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) postBooking(ctx context.Context, booking BookingRequest) (*BookingResponse, error) {
	token, err := c.cache.Token(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(booking)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readStatusError(resp)
	}

	var out BookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func readStatusError(resp *http.Response) *StatusError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := strings.TrimSpace(string(raw))
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Message != "" {
			message = envelope.Message
		} else if envelope.Error != "" {
			message = envelope.Error
		}
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: message}
}
