package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the WWDC corpus is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a := c.app

			if !a.Store.IsDataAvailable() {
				return fmt.Errorf("WWDC data not available in %s", a.Config.DataDir)
			}
			meta, err := a.Store.LoadGlobalMetadata(cmd.Context())
			if err != nil {
				return err
			}
			videos, err := a.Index.All(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "WWDC data available in %s\n", a.Config.DataDir)
			fmt.Fprintf(out, "  Version: %s\n", meta.Version)
			fmt.Fprintf(out, "  Last updated: %s\n", meta.LastUpdated)
			fmt.Fprintf(out, "  Years: %s\n", strings.Join(meta.Years, ", "))
			fmt.Fprintf(out, "  Topics: %d\n", len(meta.Topics))
			fmt.Fprintf(out, "  Videos: %d\n", len(videos))
			fmt.Fprintf(out, "  With code: %d\n", meta.Statistics.VideosWithCode)
			fmt.Fprintf(out, "  With transcript: %d\n", meta.Statistics.VideosWithTranscript)
			return nil
		},
	}
}

func newVerifyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Cross-check the index against the corpus statistics",
		Long: `Builds the in-memory index and compares it with the statistics of the global
metadata and with any precomputed year indices. Exits non-zero when an issue
is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			report, err := c.app.Index.Verify(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Videos: %d (%d with code, %d with transcript)\n",
				report.Videos, report.VideosWithCode, report.VideosWithTranscript)

			years := make([]string, 0, len(report.Years))
			for y := range report.Years {
				years = append(years, y)
			}
			sort.Sort(sort.Reverse(sort.StringSlice(years)))
			for _, y := range years {
				fmt.Fprintf(out, "  WWDC%s: %d\n", y, report.Years[y])
			}
			if len(report.PrecomputedYears) > 0 {
				fmt.Fprintf(out, "Precomputed year indices: %s\n", strings.Join(report.PrecomputedYears, ", "))
			}
			if len(report.PrecomputedTopics) > 0 {
				fmt.Fprintf(out, "Precomputed topic indices: %s\n", strings.Join(report.PrecomputedTopics, ", "))
			}
			if len(report.UnknownTopics) > 0 {
				fmt.Fprintf(out, "Topics outside the catalog: %s\n", strings.Join(report.UnknownTopics, ", "))
			}

			if report.OK() {
				fmt.Fprintln(out, "No issues found")
				return nil
			}
			fmt.Fprintln(out, "Issues:")
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "  - %s\n", issue)
			}
			return errors.New("corpus verification failed")
		},
	}
}
