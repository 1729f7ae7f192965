package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/freightdesk/contracts-service/internal/carrier"
	"github.com/freightdesk/contracts-service/internal/config"
	"github.com/freightdesk/contracts-service/internal/model"
)

type BookingService struct {
	carrier *carrier.Client
	cfg     *config.Config
}

func NewBookingService(carrierClient *carrier.Client, cfg *config.Config) *BookingService {
	return &BookingService{carrier: carrierClient, cfg: cfg}
}

// CreateBooking relays a booking to the carrier. Upstream failures carry the
// carrier's status and message through; timeouts surface as retryable.
func (s *BookingService) CreateBooking(ctx context.Context, principal model.Principal, booking carrier.BookingRequest) (*carrier.BookingResponse, error) {
	if !(principal.IsAdmin() || principal.IsOps()) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(booking.CNNumber) == "" {
		return nil, fmt.Errorf("%w: cn_number is required", ErrInvalidInput)
	}
	if strings.TrimSpace(booking.PickupPincode) == "" || strings.TrimSpace(booking.DeliveryPincode) == "" {
		return nil, fmt.Errorf("%w: pickup_pincode and delivery_pincode are required", ErrInvalidInput)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeouts.Upstream)
	defer cancel()

	resp, err := s.carrier.CreateBooking(callCtx, booking)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: carrier booking", ErrUpstreamTimeout)
		}
		var statusErr *carrier.StatusError
		if errors.As(err, &statusErr) {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, statusErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return resp, nil
}
