package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"avatarforge/internal/lipsync"
)

func newLipsyncCommand(ctx *commandContext) *cobra.Command {
	var rhubarbPath string
	var outputPath string
	var wpm float64
	var optimize bool
	var valence float64
	var arousal float64

	cmd := &cobra.Command{
		Use:   "lipsync [text]",
		Short: "Generate mouth keyframes from text or a Rhubarb cue file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configValue()
			if err != nil {
				return err
			}

			pipe := lipsync.NewPipeline(lipsync.NewMapper(nil))

			var track *lipsync.Track
			switch {
			case rhubarbPath != "":
				file, err := os.Open(rhubarbPath)
				if err != nil {
					return fmt.Errorf("open rhubarb file: %w", err)
				}
				defer file.Close()
				track, err = pipe.ProcessRhubarb(file)
				if err != nil {
					return err
				}
			case len(args) == 1:
				rate := wpm
				if rate <= 0 {
					rate = cfg.Lipsync.SpeechRateWPM
				}
				track, err = pipe.ProcessText(args[0], rate)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("provide text or --rhubarb <file>")
			}

			if valence != 0 || arousal != 0 {
				track = lipsync.Modulate(track, valence, arousal)
			}
			if optimize {
				track.Frames = pipe.Optimize(track.Frames)
			}

			keyframes := pipe.Keyframes(track)
			data, err := json.MarshalIndent(map[string]any{
				"duration":    track.Duration,
				"sample_rate": track.SampleRate,
				"keyframes":   keyframes,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("encode keyframes: %w", err)
			}
			data = append(data, '\n')

			if outputPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return fmt.Errorf("write keyframes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Keyframes written to %s (%d frames, %.2fs)\n", outputPath, len(keyframes), track.Duration)
			return nil
		},
	}

	cmd.Flags().StringVar(&rhubarbPath, "rhubarb", "", "Rhubarb lip-sync JSON file to convert")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Keyframe output path (default: stdout)")
	cmd.Flags().Float64Var(&wpm, "wpm", 0, "Speech rate in words per minute")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "Merge short duplicate frames")
	cmd.Flags().Float64Var(&valence, "valence", 0, "Emotion valence from -1 to 1")
	cmd.Flags().Float64Var(&arousal, "arousal", 0, "Emotion arousal from 0 to 1")

	return cmd
}
