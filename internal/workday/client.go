// Package workday decides whether the daily report should run, based on an
// external day-type signal (workday / weekend / compensatory workday /
// public holiday).
package workday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// DayType is the external classification of a calendar date.
type DayType int

const (
	DayTypeWorkday DayType = 0 // ordinary workday
	DayTypeWeekend DayType = 1
	DayTypeMakeup  DayType = 2 // compensatory workday (weekend shifted to working)
	DayTypeHoliday DayType = 3 // public holiday
)

func (d DayType) String() string {
	switch d {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeMakeup:
		return "compensatory workday"
	case DayTypeHoliday:
		return "public holiday"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// holidayEntry mirrors one element of the holiday API response array.
type holidayEntry struct {
	Date   string `json:"date"`
	Status int    `json:"status"`
}

// HolidayClient queries the external holiday API for a date's day type.
type HolidayClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHolidayClient creates a HolidayClient for the given API base URL.
func NewHolidayClient(baseURL string, logger zerolog.Logger) *HolidayClient {
	return &HolidayClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger.With().Str("component", "holiday").Logger(),
	}
}

// Lookup fetches the day type for a YYYY-MM-DD date string.
func (c *HolidayClient) Lookup(ctx context.Context, date string) (DayType, error) {
	reqURL := fmt.Sprintf("%s?date=%s", c.baseURL, url.QueryEscape(date))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating holiday request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("requesting holiday API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("holiday API returned status %d: %s", resp.StatusCode, body)
	}

	var entries []holidayEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return 0, fmt.Errorf("decoding holiday response: %w", err)
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("holiday API returned an empty array for %s", date)
	}

	entry := entries[0]
	c.logger.Debug().Str("date", entry.Date).Int("status", entry.Status).Msg("holiday lookup")
	return DayType(entry.Status), nil
}
