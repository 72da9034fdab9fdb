package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aural/aura/internal/observability"
)

var alertsSince string

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show recent alert tones and fetch failures",
	Long: `List the alert tones fired and fetch failures recorded in the event log.

Use --since to change the lookback window (e.g. 24h, 7d).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not initialized (observability may be disabled)")
		}

		sinceTime, err := parseSinceDuration(alertsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		tones, err := EventLog.Read(observability.EventFilter{Since: &sinceTime, Type: "tone.fired"})
		if err != nil {
			return fmt.Errorf("reading tone events: %w", err)
		}
		failures, err := EventLog.Read(observability.EventFilter{Since: &sinceTime, Type: "fetch.failed"})
		if err != nil {
			return fmt.Errorf("reading fetch failures: %w", err)
		}

		if len(tones) == 0 && len(failures) == 0 {
			fmt.Println("No alerts recorded.")
			return nil
		}

		if len(failures) > 0 {
			fmt.Printf("%d fetch failure(s):\n\n", len(failures))
			for _, event := range failures {
				fmt.Printf("  %s %s\n", event.Time.Format("2006-01-02 15:04 UTC"), unknownStyle.Render("metric fetch failed"))
			}
			fmt.Println()
		}

		if len(tones) > 0 {
			fmt.Printf("%d tone(s) fired:\n\n", len(tones))
			for _, event := range tones {
				kind := observability.ToneKind(eventFrequency(event))
				fmt.Printf("  %s %s (%d ms)\n",
					event.Time.Format("2006-01-02 15:04 UTC"),
					toneStyle(kind).Render(kind),
					eventDuration(event))
			}
		}
		return nil
	},
}

func init() {
	alertsCmd.Flags().StringVar(&alertsSince, "since", "24h", "Lookback window (e.g. 24h, 7d)")
	rootCmd.AddCommand(alertsCmd)
}

// eventFrequency extracts the tone frequency from an event's data,
// tolerating the float64 values JSON decoding produces.
func eventFrequency(event observability.Event) int {
	return eventDataInt(event, "frequency_hz")
}

func eventDuration(event observability.Event) int {
	return eventDataInt(event, "duration_ms")
}

func eventDataInt(event observability.Event, key string) int {
	switch v := event.Data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
