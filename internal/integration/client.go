package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tiny-steps/patient-service-sub001/internal/platform/apperr"
)

const defaultTimeout = 3 * time.Second

// Resolver is the collaborator surface the aggregation engine consumes.
// Each resolve is independently fallible.
type Resolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (*UserIdentity, error)
	ResolveAppointment(ctx context.Context, appointmentID uuid.UUID) (*Appointment, error)
	ResolveAddress(ctx context.Context, addressID uuid.UUID) (*Address, error)
}

// Client resolves identity, appointment, and address records over the
// collaborating services' REST APIs.
type Client struct {
	userBaseURL        string
	appointmentBaseURL string
	addressBaseURL     string
	httpClient         *http.Client
}

func NewClient(userBaseURL, appointmentBaseURL, addressBaseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		userBaseURL:        userBaseURL,
		appointmentBaseURL: appointmentBaseURL,
		addressBaseURL:     addressBaseURL,
		httpClient:         &http.Client{Timeout: timeout},
	}
}

func (c *Client) ResolveIdentity(ctx context.Context, userID uuid.UUID) (*UserIdentity, error) {
	var out UserIdentity
	url := fmt.Sprintf("%s/api/v1/users/%s", c.userBaseURL, userID)
	if err := c.getJSON(ctx, "user-service", url, "user", userID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResolveAppointment(ctx context.Context, appointmentID uuid.UUID) (*Appointment, error) {
	var out Appointment
	url := fmt.Sprintf("%s/api/v1/appointments/%s", c.appointmentBaseURL, appointmentID)
	if err := c.getJSON(ctx, "appointment-service", url, "appointment", appointmentID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResolveAddress(ctx context.Context, addressID uuid.UUID) (*Address, error) {
	var out Address
	url := fmt.Sprintf("%s/api/v1/addresses/%s", c.addressBaseURL, addressID)
	if err := c.getJSON(ctx, "address-service", url, "address", addressID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, source, url, resource string, id uuid.UUID, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperr.Integration(source, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Integration(source, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return apperr.NotFound(resource, id.String())
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return apperr.Integration(source, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Integration(source, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
