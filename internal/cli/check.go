package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aural/aura/internal/core"
	"github.com/aural/aura/internal/observability"
	"github.com/aural/aura/pkg/models"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one poll cycle without audio",
	Long: `Fetch and aggregate one metric snapshot, then report the loudness target
and the alert tones the loop would emit. No audio is played; useful for
verifying connectivity and thresholds before starting the daemon.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		if Source == nil {
			return fmt.Errorf("metric source not initialized")
		}

		start := time.Now()
		levels, ok, err := Source.FetchLevels(cmd.Context())
		if err != nil {
			return fmt.Errorf("querying graylog: %w", err)
		}
		elapsed := time.Since(start).Seconds()

		summary := models.UnknownSummary()
		if ok {
			summary = core.Aggregate(levels)
		}

		limits := core.Limits{Min: cfg.Volume.Min, Max: cfg.Volume.Max}
		target := core.MapLoudness(summary, cfg.Graylog.Mean, limits)
		tones := core.Decide(elapsed, summary)

		fmt.Println(headerStyle.Render("Cycle check"))
		fmt.Printf("  %s %.2fs\n", labelStyle.Render("Fetch time:      "), elapsed)
		if summary.Unknown() {
			fmt.Printf("  %s %s\n", labelStyle.Render("Summary:         "), unknownStyle.Render("fetch failed (sentinel)"))
		} else {
			fmt.Printf("  %s %d total, %d warn, %d error\n", labelStyle.Render("Summary:         "), summary.Total, summary.WarnCount, summary.ErrorCount)
		}
		fmt.Printf("  %s %d%%\n", labelStyle.Render("Loudness target: "), target)

		if len(tones) == 0 {
			fmt.Printf("  %s %s\n", labelStyle.Render("Tones:           "), okStyle.Render("none"))
			return nil
		}
		fmt.Printf("  %s\n", labelStyle.Render("Tones:"))
		for _, tone := range tones {
			kind := observability.ToneKind(tone.FrequencyHz)
			fmt.Printf("    %s (%d Hz, %d ms)\n", toneStyle(kind).Render(kind), tone.FrequencyHz, tone.DurationMs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
