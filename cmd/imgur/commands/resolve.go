package commands

import (
	"fmt"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/spf13/cobra"
)

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve URL",
		Short: "Show the resource behind an imgur URL",
		Long:  "Resolve a browser URL such as https://imgur.com/a/abc to the album, image, gallery item, comment or user it points at",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			resource, err := client.GetAtURL(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", args[0], err)
			}

			if resource == nil {
				return fmt.Errorf("%w: %s", constants.ErrNotImgurResource, args[0])
			}

			ctx := cmd.Context()

			switch v := resource.(type) {
			case *imgur.Image:
				view := describeImage(ctx, v)

				return renderDetails(cmd.OutOrStdout(), view, view.properties())
			case *imgur.GalleryImage:
				view := describeImage(ctx, v.Image)

				return renderDetails(cmd.OutOrStdout(), view, view.properties())
			case *imgur.Album:
				view := describeAlbum(ctx, v)

				return renderDetails(cmd.OutOrStdout(), view, view.properties())
			case *imgur.GalleryAlbum:
				view := describeAlbum(ctx, v.Album)

				return renderDetails(cmd.OutOrStdout(), view, view.properties())
			case *imgur.Comment:
				view := describeComment(ctx, v)

				return renderDetails(cmd.OutOrStdout(), view, view.properties())
			case *imgur.User:
				view := describeUser(ctx, v)

				return renderDetails(cmd.OutOrStdout(), view, view.properties())
			default:
				summary := summarize(ctx, resource)

				return renderDetails(cmd.OutOrStdout(), summary, summary.properties())
			}
		},
	}
}
