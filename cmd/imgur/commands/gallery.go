package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/spf13/cobra"
)

// NewGalleryCommand creates the gallery command group
func NewGalleryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Browse and publish to the gallery",
		Long:  "Browse gallery listings, publish images and albums, and vote or comment on gallery items",
	}

	cmd.AddCommand(newGalleryListCommand())
	cmd.AddCommand(newGalleryMemesCommand())
	cmd.AddCommand(newGallerySubredditCommand())
	cmd.AddCommand(newGallerySearchCommand())
	cmd.AddCommand(newGallerySubmitCommand())
	cmd.AddCommand(newGalleryRemoveCommand())
	cmd.AddCommand(newGalleryVoteCommand())
	cmd.AddCommand(newGalleryVotesCommand())
	cmd.AddCommand(newGalleryCommentCommand())
	cmd.AddCommand(newGalleryCommentsCommand())

	return cmd
}

func newGalleryListCommand() *cobra.Command {
	var (
		opts      imgur.GalleryOptions
		hideViral bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the main gallery",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			opts.HideViral = hideViral

			items, err := client.GetGallery(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("failed to list gallery: %w", err)
			}

			summaries, rows := summarizeAll(cmd.Context(), items)

			return renderList(cmd.OutOrStdout(), summaries, summaryHeader, rows)
		},
	}

	cmd.Flags().StringVar(&opts.Section, "section", "hot", "hot, top or user")
	cmd.Flags().StringVar(&opts.Sort, "sort", "viral", "viral, top, time or rising (user section only)")
	cmd.Flags().StringVar(&opts.Window, "window", "day", "day, week, month, year or all")
	cmd.Flags().BoolVar(&hideViral, "hide-viral", false, "hide viral images from the user section")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of results (default: client default)")

	return cmd
}

func newGalleryMemesCommand() *cobra.Command {
	var (
		sort   string
		window string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "memes",
		Short: "List the memes gallery",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			items, err := client.GetMemesGallery(cmd.Context(), sort, window, limit)
			if err != nil {
				return fmt.Errorf("failed to list memes: %w", err)
			}

			summaries, rows := summarizeAll(cmd.Context(), items)

			return renderList(cmd.OutOrStdout(), summaries, summaryHeader, rows)
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "viral", "viral, time or top")
	cmd.Flags().StringVar(&window, "window", "week", "day, week, month, year or all")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (default: client default)")

	return cmd
}

func newGallerySubredditCommand() *cobra.Command {
	var (
		sort   string
		window string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "subreddit NAME",
		Short: "List the images posted to a subreddit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			items, err := client.GetSubredditGallery(cmd.Context(), args[0], sort, window, limit)
			if err != nil {
				return fmt.Errorf("failed to list subreddit: %w", err)
			}

			summaries, rows := summarizeAll(cmd.Context(), items)

			return renderList(cmd.OutOrStdout(), summaries, summaryHeader, rows)
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "time", "time or top")
	cmd.Flags().StringVar(&window, "window", "day", "day, week, month, year or all")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (default: client default)")

	return cmd
}

func newGallerySearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search the gallery",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			items, err := client.SearchGallery(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to search gallery: %w", err)
			}

			summaries, rows := summarizeAll(cmd.Context(), items)

			return renderList(cmd.OutOrStdout(), summaries, summaryHeader, rows)
		},
	}
}

func newGallerySubmitCommand() *cobra.Command {
	var (
		title       string
		album       bool
		bypassTerms bool
	)

	cmd := &cobra.Command{
		Use:   "submit ID",
		Short: "Publish an image or album to the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			var target imgur.Resource
			if album {
				target, err = client.GetAlbum(cmd.Context(), args[0])
			} else {
				target, err = client.GetImage(cmd.Context(), args[0])
			}

			if err != nil {
				return fmt.Errorf("failed to get %s: %w", args[0], err)
			}

			ref, err := imgur.NewRef(target)
			if err != nil {
				return err
			}

			if err := ref.SubmitToGallery(cmd.Context(), title, bypassTerms); err != nil {
				return fmt.Errorf("failed to submit to gallery: %w", err)
			}

			summary := summarize(cmd.Context(), ref.Value())

			return renderDetails(cmd.OutOrStdout(), summary, summary.properties())
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "gallery title (required by imgur)")
	cmd.Flags().BoolVar(&album, "album", false, "ID names an album rather than an image")
	cmd.Flags().BoolVar(&bypassTerms, "bypass-terms", false, "accept the gallery terms without prompting on the website")

	return cmd
}

func newGalleryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an item from the gallery",
		Long:  "Remove an image or album from the gallery. The item itself is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			item, err := galleryItem(cmd.Context(), client, args[0])
			if err != nil {
				return fmt.Errorf("failed to get gallery item: %w", err)
			}

			ref, err := imgur.NewRef(item)
			if err != nil {
				return err
			}

			if err := ref.RemoveFromGallery(cmd.Context()); err != nil {
				return fmt.Errorf("failed to remove from gallery: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the gallery\n", ref.Value().Kind())

			return nil
		},
	}
}

func newGalleryVoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vote ID up|down",
		Short: "Vote on a gallery item",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := parseVote(args[1])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			item, err := galleryItem(cmd.Context(), client, args[0])
			if err != nil {
				return fmt.Errorf("failed to get gallery item: %w", err)
			}

			if direction == "up" {
				err = item.Upvote(cmd.Context())
			} else {
				err = item.Downvote(cmd.Context())
			}

			if err != nil {
				return fmt.Errorf("failed to vote: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Voted %s on %s\n", direction, item.ID())

			return nil
		},
	}
}

func newGalleryVotesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "votes ID",
		Short: "Show the vote tally of a gallery item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			item, err := galleryItem(cmd.Context(), client, args[0])
			if err != nil {
				return fmt.Errorf("failed to get gallery item: %w", err)
			}

			votes, err := item.Votes(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get votes: %w", err)
			}

			return renderDetails(cmd.OutOrStdout(), votes, []property{
				{"ups", fmt.Sprint(votes.Ups)},
				{"downs", fmt.Sprint(votes.Downs)},
			})
		},
	}
}

func newGalleryCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comment ID TEXT",
		Short: "Comment on a gallery item",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			item, err := galleryItem(cmd.Context(), client, args[0])
			if err != nil {
				return fmt.Errorf("failed to get gallery item: %w", err)
			}

			comment, err := item.Comment(cmd.Context(), args[1])
			if err != nil {
				return fmt.Errorf("failed to comment: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Posted comment %s\n", comment.ID())

			return nil
		},
	}
}

func newGalleryCommentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comments ID",
		Short: "List the comments on a gallery item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			item, err := galleryItem(cmd.Context(), client, args[0])
			if err != nil {
				return fmt.Errorf("failed to get gallery item: %w", err)
			}

			comments, err := item.Comments(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list comments: %w", err)
			}

			views, rows := describeComments(cmd.Context(), comments)

			return renderList(cmd.OutOrStdout(), views, commentHeader, rows)
		},
	}
}
