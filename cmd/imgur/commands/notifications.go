package commands

import (
	"fmt"

	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/spf13/cobra"
)

// NotificationView is one inbox entry.
type NotificationView struct {
	ID     string `json:"id"             yaml:"id"`
	Type   string `json:"type"           yaml:"type"`
	Viewed bool   `json:"viewed"         yaml:"viewed"`
	From   string `json:"from,omitempty" yaml:"from,omitempty"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
}

var notificationHeader = []string{"ID", "Type", "Viewed", "From", "Text"}

func (v NotificationView) row() []string {
	return []string{v.ID, v.Type, formatBool(v.Viewed), v.From, v.Text}
}

func describeNotification(cmd *cobra.Command, kind string, notification *imgur.Notification) NotificationView {
	ctx := cmd.Context()
	view := NotificationView{
		ID:     notification.ID(),
		Type:   kind,
		Viewed: orZero(notification.IsViewed(ctx)),
	}

	content := orZero(notification.Content(ctx))

	switch {
	case content.Message != nil:
		view.Text = orZero(content.Message.Subject(ctx))
		if author := orZero(content.Message.Author(ctx)); author != nil {
			view.From = author.Name()
		}
	case content.Comment != nil:
		view.Text = orZero(content.Comment.Text(ctx))
		if author := orZero(content.Comment.Author(ctx)); author != nil {
			view.From = author.Name()
		}
	}

	return view
}

// NewNotificationsCommand creates the notifications command
func NewNotificationsCommand() *cobra.Command {
	var (
		onlyNew  bool
		markRead bool
	)

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "List notifications of the authorized account",
		Long:    "List message and reply notifications of the authorized account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			me, err := client.GetUser(cmd.Context(), "me")
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			notifications, err := me.Notifications(cmd.Context(), onlyNew)
			if err != nil {
				return fmt.Errorf("failed to get notifications: %w", err)
			}

			views := make([]NotificationView, 0, len(notifications.Messages)+len(notifications.Replies))
			rows := make([][]string, 0, cap(views))

			streams := []struct {
				kind  string
				items []*imgur.Notification
			}{
				{"message", notifications.Messages},
				{"reply", notifications.Replies},
			}

			for _, stream := range streams {
				for _, notification := range stream.items {
					view := describeNotification(cmd, stream.kind, notification)
					views = append(views, view)
					rows = append(rows, view.row())

					if markRead && !view.Viewed {
						if err := notification.MarkAsViewed(cmd.Context()); err != nil {
							return fmt.Errorf("failed to mark notification %s viewed: %w", notification.ID(), err)
						}
					}
				}
			}

			return renderList(cmd.OutOrStdout(), views, notificationHeader, rows)
		},
	}

	cmd.Flags().BoolVar(&onlyNew, "new", false, "only unviewed notifications")
	cmd.Flags().BoolVar(&markRead, "mark-read", false, "mark listed notifications as viewed")

	return cmd
}
