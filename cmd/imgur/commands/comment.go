package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCommentCommand creates the comment command group
func NewCommentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comment",
		Aliases: []string{"comments"},
		Short:   "Manage comments",
		Long:    "Show, reply to, vote on and delete imgur comments",
	}

	cmd.AddCommand(newCommentGetCommand())
	cmd.AddCommand(newCommentRepliesCommand())
	cmd.AddCommand(newCommentReplyCommand())
	cmd.AddCommand(newCommentVoteCommand())
	cmd.AddCommand(newCommentDeleteCommand())

	return cmd
}

func newCommentGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get COMMENT_ID",
		Short: "Show comment details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			comment, err := client.GetComment(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get comment: %w", err)
			}

			view := describeComment(cmd.Context(), comment)

			return renderDetails(cmd.OutOrStdout(), view, view.properties())
		},
	}
}

func newCommentRepliesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replies COMMENT_ID",
		Short: "List the replies to a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			comment, err := client.GetComment(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get comment: %w", err)
			}

			replies, err := comment.FetchReplies(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get replies: %w", err)
			}

			views, rows := describeComments(cmd.Context(), replies)

			return renderList(cmd.OutOrStdout(), views, commentHeader, rows)
		},
	}
}

func newCommentReplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reply COMMENT_ID TEXT",
		Short: "Reply to a comment",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			comment, err := client.GetComment(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get comment: %w", err)
			}

			reply, err := comment.Reply(cmd.Context(), args[1])
			if err != nil {
				return fmt.Errorf("failed to reply: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Posted reply %s\n", reply.ID())

			return nil
		},
	}
}

func newCommentVoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vote COMMENT_ID up|down",
		Short: "Vote on a comment",
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

			comment, err := client.GetComment(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get comment: %w", err)
			}

			if direction == "up" {
				err = comment.Upvote(cmd.Context())
			} else {
				err = comment.Downvote(cmd.Context())
			}

			if err != nil {
				return fmt.Errorf("failed to vote: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Voted %s on comment %s\n", direction, comment.ID())

			return nil
		},
	}
}

func newCommentDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete COMMENT_ID",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			comment, err := client.GetComment(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get comment: %w", err)
			}

			if err := comment.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("failed to delete comment: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %s\n", comment.ID())

			return nil
		},
	}
}
