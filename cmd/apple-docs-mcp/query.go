package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bull/apple-docs-mcp/internal/corpus"
	"github.com/bull/apple-docs-mcp/internal/render"
	"github.com/bull/apple-docs-mcp/internal/search"
)

// The query commands print the same markdown the MCP tools return.

func newListCmd(c *cli) *cobra.Command {
	var (
		opts    search.ListOptions
		hasCode bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List WWDC videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("has-code") {
				opts.HasCode = &hasCode
			}
			videos, err := c.app.Engine.ListVideos(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.VideoList(videos, render.Filters{
				Year: opts.Year, Topic: opts.Topic, HasCode: opts.HasCode,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Year, "year", "", `filter by year, or "all"`)
	cmd.Flags().StringVar(&opts.Topic, "topic", "", "filter by topic name or title")
	cmd.Flags().BoolVar(&hasCode, "has-code", false, "only videos with (or, =false, without) code examples")
	cmd.Flags().IntVar(&opts.Limit, "limit", search.DefaultListLimit, "max results")
	return cmd
}

func newSearchCmd(c *cli) *cobra.Command {
	var (
		opts  search.SearchOptions
		scope string
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search WWDC transcripts and code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := search.ParseScope(scope)
			if err != nil {
				return err
			}
			opts.Query = args[0]
			opts.Scope = s

			results, err := c.app.Engine.SearchContent(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.SearchResults(results, opts.Query, s))
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "in", string(search.ScopeBoth), "transcript, code or both")
	cmd.Flags().StringVar(&opts.Year, "year", "", "filter by year")
	cmd.Flags().StringVar(&opts.Language, "language", "", "filter code examples by language")
	cmd.Flags().IntVar(&opts.Limit, "limit", search.DefaultSearchLimit, "max results")
	return cmd
}

func newVideoCmd(c *cli) *cobra.Command {
	var noTranscript, noCode bool

	cmd := &cobra.Command{
		Use:   "video YEAR ID",
		Short: "Show one WWDC video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, id := args[0], args[1]
			video, err := c.app.Engine.GetVideo(cmd.Context(), year, id)
			if errors.Is(err, corpus.ErrVideoNotFound) {
				return errors.New(render.VideoNotFound(year, id))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.app.Renderer.VideoDetail(video, render.DetailOptions{
				IncludeTranscript: !noTranscript,
				IncludeCode:       !noCode,
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noTranscript, "no-transcript", false, "omit the transcript")
	cmd.Flags().BoolVar(&noCode, "no-code", false, "omit code examples")
	return cmd
}

func newCodeCmd(c *cli) *cobra.Command {
	var opts search.CodeOptions

	cmd := &cobra.Command{
		Use:   "code",
		Short: "Collect code examples from WWDC videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			examples, err := c.app.Engine.GetCodeExamples(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.CodeExamples(examples, render.Filters{
				Framework: opts.Framework, Topic: opts.Topic, Language: opts.Language,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Framework, "framework", "", "only code mentioning this framework")
	cmd.Flags().StringVar(&opts.Topic, "topic", "", "filter by video topic")
	cmd.Flags().StringVar(&opts.Year, "year", "", "filter by year")
	cmd.Flags().StringVar(&opts.Language, "language", "", "filter by programming language")
	cmd.Flags().IntVar(&opts.Limit, "limit", search.DefaultCodeLimit, "max results")
	return cmd
}

func newTopicsCmd(c *cli) *cobra.Command {
	var (
		opts     search.BrowseOptions
		noVideos bool
	)

	cmd := &cobra.Command{
		Use:   "topics [TOPIC_ID]",
		Short: "Browse WWDC topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.TopicID = args[0]
			}
			opts.IncludeVideos = !noVideos

			browse, err := c.app.Engine.BrowseTopics(cmd.Context(), opts)
			var notFound *search.TopicNotFoundError
			if errors.As(err, &notFound) {
				return errors.New(render.TopicNotFound(notFound))
			}
			if err != nil {
				return err
			}

			out := render.TopicCatalog(browse.Catalog)
			if browse.Detail != nil {
				out = render.TopicDetail(browse.Detail)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noVideos, "no-videos", false, "omit the videos of the topic")
	cmd.Flags().StringVar(&opts.Year, "year", "", "filter videos by year")
	cmd.Flags().IntVar(&opts.Limit, "limit", search.DefaultBrowseLimit, "max videos")
	return cmd
}
