package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aural/aura/internal/core"
	"github.com/aural/aura/internal/integration"
)

// startupLoudness is the loudness percentage playback begins at, before the
// first poll has produced a target.
const startupLoudness = 50

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ambient monitoring loop",
	Long: `Start the ambient track and poll Graylog once per configured interval.

Each cycle restarts playback if the track has ended, fetches recent message
severities, ramps loudness toward the volume target in the background, emits
any alert tones, and prints a one-line status summary. The loop ends cleanly
on SIGINT or SIGTERM; a connection-level fetch fault terminates it with an
error so an unreachable backend never goes unnoticed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		if Source == nil {
			return fmt.Errorf("metric source not initialized")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		player, err := integration.NewMediaPlayer(cfg.SoundFile)
		if err != nil {
			return fmt.Errorf("opening player: %w", err)
		}
		defer func() { _ = player.Close() }()

		if err := player.SetVolume(startupLoudness); err != nil {
			return fmt.Errorf("setting startup volume: %w", err)
		}
		if err := player.Play(); err != nil {
			return fmt.Errorf("starting playback: %w", err)
		}

		controller := core.NewController(cfg, Source, &playerAdapter{p: player}, integration.NewBeepEmitter(), Events, Notifier, os.Stdout)
		return controller.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// playerAdapter bridges the integration media player to the core Player
// interface.
type playerAdapter struct {
	p *integration.MediaPlayer
}

func (a *playerAdapter) Play() error          { return a.p.Play() }
func (a *playerAdapter) Stop() error          { return a.p.Stop() }
func (a *playerAdapter) Rewind() error        { return a.p.Rewind() }
func (a *playerAdapter) Volume() (int, error) { return a.p.Volume() }
func (a *playerAdapter) SetVolume(v int) error {
	return a.p.SetVolume(v)
}

func (a *playerAdapter) State() core.PlayerState {
	switch a.p.State() {
	case integration.PlaybackEnded:
		return core.StateEnded
	case integration.PlaybackPlaying:
		return core.StatePlaying
	default:
		return core.StateUnknown
	}
}
