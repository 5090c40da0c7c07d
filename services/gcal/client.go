package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"salonbook/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Event is a timed, opaque event on the salon owner's personal calendar.
// All-day and transparent ("free") events are filtered out before they get here.
type Event struct {
	ID    string
	Start time.Time
	End   time.Time
}

// EventInput carries the fields needed to create a calendar event for a booking.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// EventSource is the external calendar dependency of the scheduling core.
// Tests substitute fakes; production uses GoogleCalendarClient.
type EventSource interface {
	ListEvents(timeMin, timeMax time.Time, loc *time.Location) ([]Event, error)
	InsertEvent(in EventInput) (string, error)
	DeleteEvent(eventID string) error
}

// Factory builds an EventSource from a salon's refresh credential. Clients
// are constructed per request rather than held process-wide, so a fake
// source can be injected without global mutation.
type Factory func(refreshToken string, policy RetryPolicy) EventSource

// GoogleCalendarClient talks to the primary calendar of the account that
// granted the refresh token.
type GoogleCalendarClient struct {
	refreshToken string
	policy       RetryPolicy
}

// NewGoogleClient is the production Factory.
func NewGoogleClient(refreshToken string, policy RetryPolicy) EventSource {
	return &GoogleCalendarClient{refreshToken: refreshToken, policy: policy}
}

func (c *GoogleCalendarClient) service(ctx context.Context) (*calendar.Service, error) {
	conf := &oauth2.Config{
		ClientID:     config.AppConfig.GoogleOAuthClientID,
		ClientSecret: config.AppConfig.GoogleOAuthClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarScope},
	}
	if conf.ClientID == "" || conf.ClientSecret == "" {
		return nil, errors.New("google oauth client credentials not configured")
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: c.refreshToken})
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar service: %w", err)
	}
	return svc, nil
}

func callTimeout() time.Duration {
	secs := config.AppConfig.CalendarTimeoutSeconds
	if secs <= 0 {
		secs = 10
	}
	return time.Duration(secs) * time.Second
}

// classify maps provider errors onto our taxonomy. A 401, a 403 or a failed
// refresh-token exchange all mean the credential no longer works.
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden {
			return fmt.Errorf("%w: %v", ErrCredentialRevoked, err)
		}
		return err
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		if rerr.ErrorCode == "invalid_grant" {
			return fmt.Errorf("%w: %v", ErrCredentialRevoked, err)
		}
	}
	return err
}

func (c *GoogleCalendarClient) ListEvents(timeMin, timeMax time.Time, loc *time.Location) ([]Event, error) {
	var events []Event
	err := c.policy.Do(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout())
		defer cancel()

		svc, err := c.service(ctx)
		if err != nil {
			return err
		}
		res, err := svc.Events.List("primary").
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx).Do()
		if err != nil {
			return classify(err)
		}

		events = events[:0]
		for _, item := range res.Items {
			// "transparent" events are marked free and do not block.
			if item.Transparency == "transparent" {
				continue
			}
			// All-day events carry a Date instead of a DateTime; they do
			// not block specific slots either.
			if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
				continue
			}
			start, err := time.Parse(time.RFC3339, item.Start.DateTime)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, item.End.DateTime)
			if err != nil {
				continue
			}
			events = append(events, Event{
				ID:    item.Id,
				Start: start.In(loc),
				End:   end.In(loc),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (c *GoogleCalendarClient) InsertEvent(in EventInput) (string, error) {
	var id string
	err := c.policy.Do(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout())
		defer cancel()

		svc, err := c.service(ctx)
		if err != nil {
			return err
		}
		ev := &calendar.Event{
			Summary:     in.Summary,
			Description: in.Description,
			Start:       &calendar.EventDateTime{DateTime: in.Start.Format(time.RFC3339)},
			End:         &calendar.EventDateTime{DateTime: in.End.Format(time.RFC3339)},
			Reminders:   &calendar.EventReminders{UseDefault: true, ForceSendFields: []string{"UseDefault"}},
		}
		created, err := svc.Events.Insert("primary", ev).Context(ctx).Do()
		if err != nil {
			return classify(err)
		}
		id = created.Id
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (c *GoogleCalendarClient) DeleteEvent(eventID string) error {
	return c.policy.Do(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout())
		defer cancel()

		svc, err := c.service(ctx)
		if err != nil {
			return err
		}
		err = svc.Events.Delete("primary", eventID).SendUpdates("all").Context(ctx).Do()
		if err != nil {
			var gerr *googleapi.Error
			// 410 means the event is already gone, which is what we wanted.
			if errors.As(err, &gerr) && gerr.Code == http.StatusGone {
				return nil
			}
			return classify(err)
		}
		return nil
	})
}
