package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newCarrierServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestCreateBooking(t *testing.T) {
	var tokenCalls, bookingCalls int32
	srv := newCarrierServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			atomic.AddInt32(&tokenCalls, 1)
			json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
		case "/v1/bookings":
			atomic.AddInt32(&bookingCalls, 1)
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(BookingResponse{BookingID: "BK-1", Status: "CONFIRMED"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := NewClient(srv.URL, "id", "secret")
	resp, err := client.CreateBooking(context.Background(), BookingRequest{CNNumber: "CN1001"})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if resp.BookingID != "BK-1" || resp.Status != "CONFIRMED" {
		t.Fatalf("response = %#v", resp)
	}

	// A second booking rides on the cached token.
	if _, err := client.CreateBooking(context.Background(), BookingRequest{CNNumber: "CN1002"}); err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if tokenCalls != 1 {
		t.Fatalf("expected one token fetch, got %d", tokenCalls)
	}
	if bookingCalls != 2 {
		t.Fatalf("expected two booking calls, got %d", bookingCalls)
	}
}

func TestCreateBookingRetriesOnceOn401(t *testing.T) {
	var tokenCalls int32
	srv := newCarrierServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			n := atomic.AddInt32(&tokenCalls, 1)
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": map[int32]string{1: "stale", 2: "fresh"}[n],
				"expires_in":   3600,
			})
		case "/v1/bookings":
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
				return
			}
			json.NewEncoder(w).Encode(BookingResponse{BookingID: "BK-2", Status: "CONFIRMED"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := NewClient(srv.URL, "id", "secret")
	resp, err := client.CreateBooking(context.Background(), BookingRequest{CNNumber: "CN1003"})
	if err != nil {
		t.Fatalf("booking should succeed after token refresh: %v", err)
	}
	if resp.BookingID != "BK-2" {
		t.Fatalf("response = %#v", resp)
	}
	if tokenCalls != 2 {
		t.Fatalf("expected a refetch after 401, got %d token fetches", tokenCalls)
	}
}

func TestCreateBookingPassesUpstreamErrorThrough(t *testing.T) {
	srv := newCarrierServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
		case "/v1/bookings":
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"message": "pincode not serviceable"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := NewClient(srv.URL, "id", "secret")
	_, err := client.CreateBooking(context.Background(), BookingRequest{CNNumber: "CN1004"})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", statusErr.StatusCode)
	}
	if statusErr.Message != "pincode not serviceable" {
		t.Fatalf("message = %q", statusErr.Message)
	}
}
