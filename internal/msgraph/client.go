// Package msgraph imports Outlook calendar events through Microsoft Graph
// as service records.
package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// GraphBaseURL is the Microsoft Graph v1.0 endpoint.
const GraphBaseURL = "https://graph.microsoft.com/v1.0"

// eventFields are the event properties the record mapping reads.
const eventFields = "id,subject,isAllDay,isCancelled,sensitivity,showAs,start,end,categories,attendees"

// pageSize is the $top sent with calendarView requests.
const pageSize = 100

// Client is a Microsoft Graph API client.
type Client struct {
	hc      *http.Client
	baseURL string
}

// NewClient returns a client that authorizes with tok, refreshing it
// through oc and writing every refreshed token to tokens.
func NewClient(ctx context.Context, tok *oauth2.Token, oc *oauth2.Config, tokens TokenFile) *Client {
	ts := &persistingSource{
		src:    oc.TokenSource(ctx, tok),
		tokens: tokens,
		last:   tok.AccessToken,
	}
	return NewClientWithHTTP(oauth2.NewClient(ctx, ts), GraphBaseURL)
}

// NewClientWithHTTP returns a client sending requests through hc to baseURL.
func NewClientWithHTTP(hc *http.Client, baseURL string) *Client {
	return &Client{hc: hc, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// persistingSource saves a token whenever its access token changes.
type persistingSource struct {
	mu     sync.Mutex
	src    oauth2.TokenSource
	tokens TokenFile
	last   string
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != p.last {
		p.last = tok.AccessToken
		_ = p.tokens.Save(tok)
	}
	return tok, nil
}

// DateTimeTimeZone is the Graph representation of an event boundary.
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Attendee is an event attendee; only the display name is kept.
type Attendee struct {
	EmailAddress struct {
		Name string `json:"name"`
	} `json:"emailAddress"`
}

// CalendarEvent is the subset of a Graph event used for record mapping.
type CalendarEvent struct {
	ID          string           `json:"id"`
	Subject     string           `json:"subject"`
	IsAllDay    bool             `json:"isAllDay"`
	IsCancelled bool             `json:"isCancelled"`
	Sensitivity string           `json:"sensitivity"` // normal, personal, private, confidential
	ShowAs      string           `json:"showAs"`      // free, tentative, busy, oof, workingElsewhere, unknown
	Start       DateTimeTimeZone `json:"start"`
	End         DateTimeTimeZone `json:"end"`
	Categories  []string         `json:"categories"`
	Attendees   []Attendee       `json:"attendees"`
}

type eventPage struct {
	Value    []CalendarEvent `json:"value"`
	NextLink string          `json:"@odata.nextLink"`
}

// GetCalendarView returns the events overlapping [from, to), following
// @odata.nextLink until the last page. A non-empty timezone asks Graph to
// report event times in that IANA zone instead of UTC.
func (c *Client) GetCalendarView(ctx context.Context, from, to time.Time, timezone string) ([]CalendarEvent, error) {
	q := url.Values{}
	q.Set("startDateTime", from.UTC().Format(time.RFC3339))
	q.Set("endDateTime", to.UTC().Format(time.RFC3339))
	q.Set("$select", eventFields)
	q.Set("$top", fmt.Sprint(pageSize))
	next := c.baseURL + "/me/calendarView?" + q.Encode()

	var events []CalendarEvent
	for next != "" {
		page, err := c.getPage(ctx, next, timezone)
		if err != nil {
			return nil, err
		}
		events = append(events, page.Value...)
		next = page.NextLink
	}
	return events, nil
}

func (c *Client) getPage(ctx context.Context, link, timezone string) (*eventPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if timezone != "" {
		req.Header.Set("Prefer", `outlook.timezone="`+timezone+`"`)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("graph API error %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var page eventPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding graph response: %w", err)
	}
	return &page, nil
}
