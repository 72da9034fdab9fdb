package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aural/aura/pkg/models"
)

// Notifier forwards alert digests to an external channel.
type Notifier interface {
	NotifyTones(summary models.MetricSummary, tones []models.ToneSpec) error
}

// slackNotifier sends alert digests to a Slack webhook.
type slackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a Notifier that posts digests to the given Slack
// webhook URL.
func NewSlackNotifier(webhookURL string) Notifier {
	return &slackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NotifyTones posts a digest of the cycle's summary and fired tones.
// It returns nil without making a request if the tones slice is empty.
func (s *slackNotifier) NotifyTones(summary models.MetricSummary, tones []models.ToneSpec) error {
	if len(tones) == 0 {
		return nil
	}

	msg := s.buildMessage(summary, tones)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling slack message: %w", err)
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to slack webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// buildMessage formats the digest as Slack blocks.
func (s *slackNotifier) buildMessage(summary models.MetricSummary, tones []models.ToneSpec) slackMessage {
	var lines []string
	if summary.Unknown() {
		lines = append(lines, "metric fetch failed this cycle")
	} else {
		lines = append(lines, fmt.Sprintf("%d messages, %d warn, %d error", summary.Total, summary.WarnCount, summary.ErrorCount))
	}
	for _, tone := range tones {
		lines = append(lines, fmt.Sprintf("tone: %s (%d Hz, %d ms)", ToneKind(tone.FrequencyHz), tone.FrequencyHz, tone.DurationMs))
	}

	return slackMessage{
		Blocks: []slackBlock{
			{
				Type: "header",
				Text: &slackText{Type: "plain_text", Text: "aura alert"},
			},
			{
				Type: "section",
				Text: &slackText{Type: "mrkdwn", Text: strings.Join(lines, "\n")},
			},
		},
	}
}
