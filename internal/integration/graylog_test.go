package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/aural/aura/pkg/models"
)

func testGraylogClient(serverURL string) *GraylogClient {
	c := NewGraylogClient(models.GraylogConfig{
		Host:        "ignored",
		APIToken:    "secret-token",
		RequestedBy: "aura",
		Streams:     []string{"000000000000000000000001"},
		Mean:        100,
	})
	c.baseURL = serverURL
	return c
}

func TestNewGraylogClient_BaseURL(t *testing.T) {
	c := NewGraylogClient(models.GraylogConfig{Host: "graylog.local"})
	if c.baseURL != "http://graylog.local:9000" {
		t.Errorf("expected the API port baked into the base URL, got %q", c.baseURL)
	}
}

func TestFetchLevels_RequestShape(t *testing.T) {
	var captured *http.Request
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		capturedBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte("timestamp,level\n"))
	}))
	defer srv.Close()

	c := testGraylogClient(srv.URL)
	if _, _, err := c.FetchLevels(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Method != http.MethodPost {
		t.Errorf("expected POST, got %s", captured.Method)
	}
	if captured.URL.Path != "/api/views/search/messages" {
		t.Errorf("expected the messages search path, got %s", captured.URL.Path)
	}
	user, pass, ok := captured.BasicAuth()
	if !ok || user != "secret-token" || pass != "token" {
		t.Errorf("expected token basic auth, got user=%q pass=%q ok=%v", user, pass, ok)
	}
	if got := captured.Header.Get("X-Requested-By"); got != "aura" {
		t.Errorf("expected X-Requested-By aura, got %q", got)
	}
	if got := captured.Header.Get("Accept"); got != "text/csv" {
		t.Errorf("expected a CSV accept header, got %q", got)
	}

	var body searchRequest
	if err := json.Unmarshal(capturedBody, &body); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
	if !reflect.DeepEqual(body.Streams, []string{"000000000000000000000001"}) {
		t.Errorf("expected the configured streams, got %v", body.Streams)
	}
	if body.Timerange != (timerange{Type: "relative", Range: 300}) {
		t.Errorf("expected a relative five-minute timerange, got %+v", body.Timerange)
	}
	if !reflect.DeepEqual(body.FieldsInOrder, []string{"level"}) {
		t.Errorf("expected only the level field, got %v", body.FieldsInOrder)
	}
}

func TestFetchLevels_ParsesSeverities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("timestamp,source,level\n2026-01-01T00:00:00Z,web,4\n2026-01-01T00:00:01Z,web,1\n2026-01-01T00:00:02Z,db,7\n"))
	}))
	defer srv.Close()

	levels, ok, err := testGraylogClient(srv.URL).FetchLevels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok for a 200 response")
	}
	if want := []int{4, 1, 7}; !reflect.DeepEqual(levels, want) {
		t.Errorf("expected levels %v, got %v", want, levels)
	}
}

func TestFetchLevels_RejectedStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	levels, ok, err := testGraylogClient(srv.URL).FetchLevels(context.Background())
	if err != nil {
		t.Fatalf("a non-200 must not be an error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for a rejected request")
	}
	if levels != nil {
		t.Errorf("expected no levels, got %v", levels)
	}
}

func TestFetchLevels_TransportFaultIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, _, err := testGraylogClient(srv.URL).FetchLevels(context.Background())
	if err == nil {
		t.Fatal("expected a transport error for an unreachable backend")
	}
	if !strings.Contains(err.Error(), "posting search request") {
		t.Errorf("expected the error to name the operation, got %v", err)
	}
}

func TestDecodeSeverityCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"empty body", "", nil},
		{"header only", "timestamp,level\n", nil},
		{"severity column found", "level\n4\n1\n", []int{4, 1}},
		{"missing severity column", "timestamp,source\na,b\nc,d\n", []int{0, 0}},
		{"unparseable severity counts as zero", "level\nnope\n3\n", []int{0, 3}},
		{"padded header and values", " level \n 6 \n", []int{6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeSeverityCSV(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDecodeSeverityCSV_Latin1Body(t *testing.T) {
	// Graylog serves latin1; a source name with a high byte must not
	// derail the severity column.
	raw, err := charmap.ISO8859_1.NewEncoder().String("source,level\ncafé,5\n")
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	got, err := decodeSeverityCSV(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{5}) {
		t.Errorf("expected [5], got %v", got)
	}
}
