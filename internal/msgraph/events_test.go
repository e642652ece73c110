package msgraph_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/msgraph"
)

func makeEvent(id, subject, start, end string) msgraph.CalendarEvent {
	return msgraph.CalendarEvent{
		ID:          id,
		Subject:     subject,
		Sensitivity: "normal",
		ShowAs:      "busy",
		Start:       msgraph.DateTimeTimeZone{DateTime: start, TimeZone: "UTC"},
		End:         msgraph.DateTimeTimeZone{DateTime: end, TimeZone: "UTC"},
	}
}

func TestMapEvent(t *testing.T) {
	event := makeEvent("ext-id-1", "Sentinela noturna", "2025-11-18T19:00:00.0000000", "2025-11-19T07:00:00.0000000")
	r, err := msgraph.MapEvent(event, "UTC", model.InternalService)
	if err != nil {
		t.Fatalf("MapEvent: %v", err)
	}
	want := model.ServiceRecord{
		ID:            "outlook-ext-id-1",
		Type:          model.Sentinel,
		Date:          "18/11/2025",
		StartTime:     "19:00",
		EndTime:       "07:00",
		DurationHours: 12,
		Personnel:     model.PlaceholderPersonnel,
	}
	if r != want {
		t.Errorf("MapEvent = %+v, want %+v", r, want)
	}
}

func TestMapEvent_Timezone(t *testing.T) {
	// 21:30Z is 18:30 in São Paulo (UTC-3).
	event := makeEvent("tz", "Plantão", "2025-12-05T21:30:00Z", "2025-12-06T10:00:00Z")
	r, err := msgraph.MapEvent(event, "America/Sao_Paulo", model.InternalService)
	if err != nil {
		t.Fatalf("MapEvent: %v", err)
	}
	if r.Date != "05/12/2025" || r.StartTime != "18:30" || r.EndTime != "07:00" {
		t.Errorf("MapEvent = %s %s-%s, want 05/12/2025 18:30-07:00", r.Date, r.StartTime, r.EndTime)
	}
	if r.DurationHours != 12.5 {
		t.Errorf("DurationHours = %v, want 12.5", r.DurationHours)
	}
	if r.Type != model.InternalService {
		t.Errorf("Type = %q, want fallback", r.Type)
	}
}

func TestMapEvent_Errors(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantTooLng bool
	}{
		{"bad start", "yesterday", "2025-11-18T10:00:00", false},
		{"reversed", "2025-11-18T10:00:00", "2025-11-18T09:00:00", false},
		{"too long", "2025-11-18T08:00:00", "2025-11-19T08:00:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := msgraph.MapEvent(makeEvent("e", "x", tt.start, tt.end), "", model.SAT)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, msgraph.ErrEventTooLong); got != tt.wantTooLng {
				t.Errorf("errors.Is(ErrEventTooLong) = %v, want %v", got, tt.wantTooLng)
			}
		})
	}
}

func TestCategoryFor(t *testing.T) {
	labelled := makeEvent("l", "Reunião", "2025-11-18T08:00:00", "2025-11-18T09:00:00")
	labelled.Categories = []string{"Azul", " Prado Seguro "}

	tests := []struct {
		name  string
		event msgraph.CalendarEvent
		want  model.Category
	}{
		{"outlook label", labelled, model.PradoSeguro},
		{"subject", makeEvent("s", "Escala: feira hippie", "", ""), model.FeiraHippie},
		{"fallback", makeEvent("f", "Almoço", "", ""), model.InternalService},
	}
	for _, tt := range tests {
		if got := msgraph.CategoryFor(tt.event, model.InternalService); got != tt.want {
			t.Errorf("%s: CategoryFor = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMapEvents_SkipAndDedupe(t *testing.T) {
	cancelled := makeEvent("c1", "Cancelled", "2025-11-18T09:00:00", "2025-11-18T10:00:00")
	cancelled.IsCancelled = true
	allDay := makeEvent("c2", "All Day", "2025-11-18T00:00:00", "2025-11-19T00:00:00")
	allDay.IsAllDay = true
	private := makeEvent("c3", "Private", "2025-11-18T09:00:00", "2025-11-18T10:00:00")
	private.Sensitivity = "private"
	free := makeEvent("c4", "Free Block", "2025-11-18T09:00:00", "2025-11-18T10:00:00")
	free.ShowAs = "free"
	withAttendee := makeEvent("a1", "Escala Alunos", "2025-11-18T18:30:00", "2025-11-19T07:00:00")
	var naara msgraph.Attendee
	naara.EmailAddress.Name = "al sd naara"
	withAttendee.Attendees = []msgraph.Attendee{naara}

	events := []msgraph.CalendarEvent{
		cancelled, allDay, private, free,
		withAttendee,
		withAttendee, // repeated in the same page
		makeEvent("old", "REDS", "2025-11-10T17:30:00", "2025-11-11T00:00:00"),
		makeEvent("bad", "REDS", "garbage", "2025-11-11T00:00:00"),
	}
	seen := func(id string) bool { return id == "outlook-old" }

	records, result := msgraph.MapEvents(events, "UTC", model.InternalService, seen, nil)
	if result.Imported != 1 || result.Skipped != 6 || result.Errors != 1 {
		t.Errorf("result = %+v, want 1 imported, 6 skipped, 1 error", result)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Personnel != "AL SD NAARA" || records[0].Type != model.StudentDuty {
		t.Errorf("record = %+v", records[0])
	}
}

func TestCalendarFetch(t *testing.T) {
	var prefer string
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/me/calendarView", func(w http.ResponseWriter, r *http.Request) {
		prefer = r.Header.Get("Prefer")
		if r.URL.Query().Get("page") == "2" {
			json.NewEncoder(w).Encode(map[string]any{
				"value": []msgraph.CalendarEvent{makeEvent("2", "SAT", "2025-12-01T17:30:00", "2025-12-02T00:00:00")},
			})
			return
		}
		if r.URL.Query().Get("startDateTime") != "2025-12-01T00:00:00Z" {
			t.Errorf("startDateTime = %q", r.URL.Query().Get("startDateTime"))
		}
		if sel := r.URL.Query().Get("$select"); !strings.Contains(sel, "attendees") {
			t.Errorf("$select = %q", sel)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"value":           []msgraph.CalendarEvent{makeEvent("1", "Sentinela", "2025-12-05T18:30:00", "2025-12-06T07:00:00")},
			"@odata.nextLink": srv.URL + "/me/calendarView?page=2",
		})
	})

	cal := &msgraph.Calendar{
		Source:   msgraph.NewClientWithHTTP(srv.Client(), srv.URL),
		From:     time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC),
		Timezone: "America/Sao_Paulo",
		Category: model.InternalService,
	}
	if cal.Name() != "outlook" {
		t.Errorf("Name = %q", cal.Name())
	}
	records, err := cal.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 2 || cal.Result.Imported != 2 {
		t.Fatalf("records = %d, result = %+v, want 2 imported", len(records), cal.Result)
	}
	if records[0].Type != model.Sentinel || records[1].Type != model.SAT {
		t.Errorf("types = %q, %q", records[0].Type, records[1].Type)
	}
	if prefer != `outlook.timezone="America/Sao_Paulo"` {
		t.Errorf("Prefer header = %q", prefer)
	}
}

func TestCalendarFetch_GraphError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"InvalidAuthenticationToken"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	cal := &msgraph.Calendar{Source: msgraph.NewClientWithHTTP(srv.Client(), srv.URL)}
	if _, err := cal.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for 401 response")
	}
}
