package pulse

import (
	"fmt"
	"time"
)

// requestPayload is the wire shape of every date-ranged Pulse request.
type requestPayload struct {
	Payload struct {
		PulseUserIDs []string `json:"pulseUserIds"`
		StartDate    string   `json:"startDate"`
		EndDate      string   `json:"endDate"`
	} `json:"payload"`
}

func (c *Client) formatPayload(startDate, endDate string, userIDs []string) (*requestPayload, error) {
	start, end, err := c.formatDates(startDate, endDate)
	if err != nil {
		return nil, err
	}

	payload := &requestPayload{}
	payload.Payload.PulseUserIDs = c.formatUserIDs(userIDs)
	payload.Payload.StartDate = start
	payload.Payload.EndDate = end
	return payload, nil
}

// formatUserIDs applies the user defaulting rule: an empty list means the
// owner of the session.
func (c *Client) formatUserIDs(userIDs []string) []string {
	if len(userIDs) == 0 {
		return []string{c.UserID}
	}
	return userIDs
}

// formatDates validates a date pair and applies the API defaulting rules:
// endDate defaults to today, startDate to eight days before endDate. A start
// date after the end date is an error.
func (c *Client) formatDates(startDate, endDate string) (string, string, error) {
	end := c.now()
	if endDate != "" {
		parsed, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return "", "", fmt.Errorf("parse end date %q: %w", endDate, err)
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -8)
	if startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return "", "", fmt.Errorf("parse start date %q: %w", startDate, err)
		}
		start = parsed
	}

	if start.After(end) {
		return "", "", fmt.Errorf("start date after end date: %s > %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return start.Format(dateLayout), end.Format(dateLayout), nil
}
