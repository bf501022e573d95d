package calendarclient

import (
	"context"
	"fmt"
	"time"
)

const maxHolidayResults = 250

// Holidays returns the holiday dates in [start, end] keyed by date string
// (YYYY-MM-DD), mapped to the event name. All-day holiday events carry their
// date in Start.Date; timed events fall back to Start.DateTime.
func (c *Client) Holidays(ctx context.Context, start, end time.Time) (map[string]string, error) {
	call := c.service.Events.List(c.calendarID).
		Context(ctx).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.AddDate(0, 0, 1).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxHolidayResults)

	holidays := make(map[string]string)
	for {
		events, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list calendar events: %w", err)
		}

		for _, event := range events.Items {
			if event.Start == nil {
				continue
			}

			date := event.Start.Date
			if date == "" && event.Start.DateTime != "" {
				parsed, err := time.Parse(time.RFC3339, event.Start.DateTime)
				if err != nil {
					continue
				}
				date = parsed.Format("2006-01-02")
			}
			if date == "" {
				continue
			}

			holidays[date] = event.Summary
		}

		if events.NextPageToken == "" {
			break
		}
		call = call.PageToken(events.NextPageToken)
	}

	return holidays, nil
}
