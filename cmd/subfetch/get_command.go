package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subfetch/subfetch/internal/config"
	"github.com/subfetch/subfetch/internal/models"
)

func newGetCommand() *cobra.Command {
	var languagesFlag string
	var providerFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "get <video-file>",
		Short: "Download the best-scoring subtitle for a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := config.GetLogger()

			subtitles, prov, err := listSubtitles(cmd.Context(), args[0], languagesFlag, providerFlag)
			if err != nil {
				return err
			}
			defer func() { _ = prov.Terminate() }()

			if len(subtitles) == 0 {
				return fmt.Errorf("no subtitles found for %s", args[0])
			}

			best := subtitles[0]
			logger.Info().
				Str("id", best.ID()).
				Str("language", best.Language.String()).
				Str("release", best.Releases).
				Int("score", len(best.Matches)).
				Msg("Selected subtitle")

			if err := prov.DownloadSubtitle(cmd.Context(), best); err != nil {
				return err
			}
			if len(best.Content) == 0 {
				return fmt.Errorf("subtitle %s has no content", best.ID())
			}

			output := outputFlag
			if output == "" {
				output = subtitlePath(args[0], best)
			}
			if err := os.WriteFile(output, best.Content, 0o644); err != nil {
				return fmt.Errorf("write subtitle: %w", err)
			}

			fmt.Println(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&languagesFlag, "languages", "l", "en", "Comma-separated subtitle languages")
	cmd.Flags().StringVar(&providerFlag, "provider", "opensubtitlescom", "Subtitle provider to query")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (default: next to the video)")
	return cmd
}

// subtitlePath places the subtitle next to the video, tagged with its
// language: movie.mkv -> movie.en.srt.
func subtitlePath(videoPath string, subtitle *models.Subtitle) string {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	return fmt.Sprintf("%s.%s.srt", base, subtitle.Language.Code())
}
