package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subfetch/subfetch/internal/config"
	"github.com/subfetch/subfetch/internal/language"
	"github.com/subfetch/subfetch/internal/models"
	"github.com/subfetch/subfetch/internal/provider"
	_ "github.com/subfetch/subfetch/internal/provider/opensubtitlescom"
	"github.com/subfetch/subfetch/internal/video"
)

func newSearchCommand() *cobra.Command {
	var languagesFlag string
	var providerFlag string

	cmd := &cobra.Command{
		Use:   "search <video-file>",
		Short: "List candidate subtitles for a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subtitles, prov, err := listSubtitles(cmd.Context(), args[0], languagesFlag, providerFlag)
			if err != nil {
				return err
			}
			defer func() { _ = prov.Terminate() }()

			if len(subtitles) == 0 {
				fmt.Println("No subtitles found")
				return nil
			}

			rows := make([][]string, 0, len(subtitles))
			for _, s := range subtitles {
				hi := ""
				if s.HearingImpaired {
					hi = "yes"
				}
				rows = append(rows, []string{
					s.ID(),
					s.Language.String(),
					s.Releases,
					s.Uploader,
					hi,
					strconv.Itoa(len(s.Matches)),
					strings.Join(s.Matches.Tags(), ","),
				})
			}
			fmt.Println(renderTable(
				[]string{"ID", "Lang", "Release", "Uploader", "HI", "Score", "Matches"},
				rows, 6,
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&languagesFlag, "languages", "l", "en", "Comma-separated subtitle languages")
	cmd.Flags().StringVar(&providerFlag, "provider", "opensubtitlescom", "Subtitle provider to query")
	return cmd
}

// listSubtitles runs the full search flow for a video file path and returns
// the candidates sorted by descending match count, along with the
// initialized provider. The caller terminates the provider.
func listSubtitles(ctx context.Context, path, languagesFlag, providerName string) ([]*models.Subtitle, provider.Provider, error) {
	cfg := config.GetConfig()
	stopMetrics := startMetricsServer(cfg)
	defer stopMetrics()

	languages, err := language.ParseList(languagesFlag)
	if err != nil {
		return nil, nil, err
	}
	if len(languages) == 0 {
		return nil, nil, fmt.Errorf("no languages requested")
	}

	v, err := video.FromPath(path)
	if err != nil {
		return nil, nil, err
	}

	prov, err := provider.New(providerName, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := prov.Initialize(ctx); err != nil {
		return nil, nil, err
	}

	subtitles, err := prov.ListSubtitles(ctx, v, languages)
	if err != nil {
		_ = prov.Terminate()
		return nil, nil, err
	}

	// Stable so that the provider's result order breaks ties
	sort.SliceStable(subtitles, func(i, j int) bool {
		return len(subtitles[i].Matches) > len(subtitles[j].Matches)
	})

	return subtitles, prov, nil
}
