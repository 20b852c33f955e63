package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewUserCommand creates the user command group
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users", "account"},
		Short:   "Show accounts and their content",
		Long:    "Show imgur accounts and list their images, albums, submissions and comments. Use 'me' for the authorized account.",
	}

	cmd.AddCommand(newUserGetCommand())
	cmd.AddCommand(newUserImagesCommand())
	cmd.AddCommand(newUserAlbumsCommand())
	cmd.AddCommand(newUserSubmissionsCommand())
	cmd.AddCommand(newUserFavoritesCommand())
	cmd.AddCommand(newUserCommentsCommand())

	return cmd
}

func newUserGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USERNAME",
		Short: "Show account details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			user, err := client.GetUser(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			view := describeUser(cmd.Context(), user)

			return renderDetails(cmd.OutOrStdout(), view, view.properties())
		},
	}
}

func newUserImagesCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "images USERNAME",
		Short: "List the images of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			user, err := client.GetUser(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			images, err := user.Images(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list images: %w", err)
			}

			summaries, rows := summarizeAll(cmd.Context(), images)

			return renderList(cmd.OutOrStdout(), summaries, summaryHeader, rows)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (default: client default)")

	return cmd
}

func newUserAlbumsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "albums USERNAME",
		Short: "List the albums of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			user, err := client.GetUser(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			albums, err := user.Albums(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list albums: %w", err)
			}

			summaries, rows := summarizeAll(cmd.Context(), albums)

			return renderList(cmd.OutOrStdout(), summaries, summaryHeader, rows)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (default: client default)")

	return cmd
}

func newUserSubmissionsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "submissions USERNAME",
		Short: "List the gallery submissions of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			user, err := client.GetUser(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			items, err := user.Submissions(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list submissions: %w", err)
			}

			summaries, rows := summarizeAll(cmd.Context(), items)

			return renderList(cmd.OutOrStdout(), summaries, summaryHeader, rows)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (default: client default)")

	return cmd
}

func newUserFavoritesCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "favorites USERNAME",
		Short: "List the favorites of the authorized account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			user, err := client.GetUser(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			items, err := user.Favorites(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list favorites: %w", err)
			}

			summaries, rows := summarizeAll(cmd.Context(), items)

			return renderList(cmd.OutOrStdout(), summaries, summaryHeader, rows)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (default: client default)")

	return cmd
}

func newUserCommentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comments USERNAME",
		Short: "List the comments of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			user, err := client.GetUser(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			comments, err := user.Comments(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list comments: %w", err)
			}

			views, rows := describeComments(cmd.Context(), comments)

			return renderList(cmd.OutOrStdout(), views, commentHeader, rows)
		},
	}
}
