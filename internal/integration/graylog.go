// Package integration wraps the external systems aura talks to: the
// Graylog HTTP API, the VLC media engine, and the system beeper.
package integration

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/aural/aura/pkg/models"
)

const (
	graylogAPIPort = 9000

	// queryWindowSeconds is the relative timerange of each poll: the
	// last five minutes of messages.
	queryWindowSeconds = 300

	severityField = "level"
)

// searchRequest is the body of the Graylog messages-search call.
type searchRequest struct {
	Streams       []string  `json:"streams"`
	Timerange     timerange `json:"timerange"`
	FieldsInOrder []string  `json:"fields_in_order"`
}

type timerange struct {
	Type  string `json:"type"`
	Range int    `json:"range"`
}

// GraylogClient fetches recent message severity levels from a Graylog
// instance. One blocking request per cycle; one request always yields one
// response, so there is nothing to fan out.
type GraylogClient struct {
	baseURL     string
	token       string
	requestedBy string
	streams     []string
	client      *http.Client
}

// NewGraylogClient creates a GraylogClient from the graylog config section.
func NewGraylogClient(cfg models.GraylogConfig) *GraylogClient {
	return &GraylogClient{
		baseURL:     fmt.Sprintf("http://%s:%d", cfg.Host, graylogAPIPort),
		token:       cfg.APIToken,
		requestedBy: cfg.RequestedBy,
		streams:     cfg.Streams,
		client:      &http.Client{},
	}
}

// FetchLevels queries the configured streams for the severity levels of
// messages in the query window. ok is false when Graylog answers with a
// non-200 status; that is a recoverable condition, not an error. Transport
// faults return a real error so the caller can terminate visibly.
func (g *GraylogClient) FetchLevels(ctx context.Context) (levels []int, ok bool, err error) {
	body, err := json.Marshal(searchRequest{
		Streams:       g.streams,
		Timerange:     timerange{Type: "relative", Range: queryWindowSeconds},
		FieldsInOrder: []string{severityField},
	})
	if err != nil {
		return nil, false, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/views/search/messages", bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("building search request: %w", err)
	}
	req.SetBasicAuth(g.token, "token")
	req.Header.Set("X-Requested-By", g.requestedBy)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/csv")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("posting search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, false, nil
	}

	levels, err = decodeSeverityCSV(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("decoding csv response: %w", err)
	}
	return levels, true, nil
}

// decodeSeverityCSV parses the latin1-encoded CSV body and extracts the
// severity column. Rows with a missing or unparseable severity count as
// level 0.
func decodeSeverityCSV(r io.Reader) ([]int, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	severityCol := -1
	for i, name := range header {
		if strings.TrimSpace(name) == severityField {
			severityCol = i
			break
		}
	}

	var levels []int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record: %w", err)
		}

		level := 0
		if severityCol >= 0 && severityCol < len(record) {
			if v, convErr := strconv.Atoi(strings.TrimSpace(record[severityCol])); convErr == nil {
				level = v
			}
		}
		levels = append(levels, level)
	}
	return levels, nil
}
