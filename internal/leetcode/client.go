package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ishwari-N/leetcode-backend/internal/models"
)

// ErrInvalidUsername marks sync failures attributable to the caller's
// external profile handle rather than to the upstream service.
type ErrInvalidUsername struct {
	Message string
}

func (e *ErrInvalidUsername) Error() string {
	return e.Message
}

// Client fetches public solve statistics for an external profile.
// Best-effort and single-attempt: there is no retry or backoff, a failed
// sync is surfaced to the user as-is.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// statsPayload mirrors the upstream response. The service reports errors
// in-band via status=="error" with an HTTP 200.
type statsPayload struct {
	Status       string  `json:"status"`
	Message      string  `json:"message"`
	TotalSolved  int     `json:"totalSolved"`
	EasySolved   int     `json:"easySolved"`
	MediumSolved int     `json:"mediumSolved"`
	HardSolved   int     `json:"hardSolved"`
	AcceptRate   float64 `json:"acceptanceRate"`
	Ranking      int     `json:"ranking"`
}

func (c *Client) FetchStats(ctx context.Context, username string) (*models.LeetcodeStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(username), nil)
	if err != nil {
		return nil, fmt.Errorf("build stats request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats service returned %d", resp.StatusCode)
	}

	var payload statsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode stats response: %w", err)
	}

	if payload.Status == "error" {
		msg := payload.Message
		if msg == "" {
			msg = "Invalid LeetCode username"
		}
		return nil, &ErrInvalidUsername{Message: msg}
	}

	return &models.LeetcodeStats{
		EasySolved:     payload.EasySolved,
		MediumSolved:   payload.MediumSolved,
		HardSolved:     payload.HardSolved,
		TotalSolved:    payload.TotalSolved,
		AcceptanceRate: payload.AcceptRate,
		Ranking:        payload.Ranking,
	}, nil
}
