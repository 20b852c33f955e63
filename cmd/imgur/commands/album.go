package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/spf13/cobra"
)

// NewAlbumCommand creates the album command group
func NewAlbumCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "album",
		Aliases: []string{"albums"},
		Short:   "Manage albums",
		Long:    "Show, create and manage imgur albums",
	}

	cmd.AddCommand(newAlbumGetCommand())
	cmd.AddCommand(newAlbumImagesCommand())
	cmd.AddCommand(newAlbumCreateCommand())
	cmd.AddCommand(newAlbumDeleteCommand())
	cmd.AddCommand(newAlbumAddCommand())
	cmd.AddCommand(newAlbumRemoveCommand())

	return cmd
}

// identifiers splits comma separated id lists into upstream ids.
func identifiers(values []string) []imgur.Identifier {
	ids := make([]imgur.Identifier, 0, len(values))

	for _, value := range values {
		for _, id := range strings.Split(value, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, imgur.IDString(id))
			}
		}
	}

	return ids
}

func newAlbumGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ALBUM_ID",
		Short: "Show album details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			album, err := client.GetAlbum(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get album: %w", err)
			}

			view := describeAlbum(cmd.Context(), album)

			return renderDetails(cmd.OutOrStdout(), view, view.properties())
		},
	}
}

func newAlbumImagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "images ALBUM_ID",
		Short: "List the images of an album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			album, err := client.GetAlbum(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get album: %w", err)
			}

			images, err := album.Images(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list album images: %w", err)
			}

			summaries, rows := summarizeAll(cmd.Context(), images)

			return renderList(cmd.OutOrStdout(), summaries, summaryHeader, rows)
		},
	}
}

func newAlbumCreateCommand() *cobra.Command {
	var (
		title       string
		description string
		images      []string
		cover       string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an album",
		Long:  "Create an album, optionally filled with existing images",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			opts := imgur.AlbumOptions{
				Title:       title,
				Description: description,
				Images:      identifiers(images),
			}
			if cover != "" {
				opts.Cover = imgur.IDString(cover)
			}

			album, err := client.CreateAlbum(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("failed to create album: %w", err)
			}

			view := describeAlbum(cmd.Context(), album)

			return renderDetails(cmd.OutOrStdout(), view, view.properties())
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "album title")
	cmd.Flags().StringVar(&description, "description", "", "album description")
	cmd.Flags().StringSliceVar(&images, "images", nil, "image ids to add")
	cmd.Flags().StringVar(&cover, "cover", "", "image id used as cover")

	return cmd
}

func newAlbumDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ALBUM_ID",
		Short: "Delete an album",
		Long:  "Delete an album. The images in it are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			album, err := client.GetAlbum(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get album: %w", err)
			}

			if err := album.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("failed to delete album: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted album %s\n", album.ID())

			return nil
		},
	}
}

func newAlbumAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add ALBUM_ID IMAGE_ID...",
		Short: "Add images to an album",
		Long:  "Add images to an album. Ids imgur cannot add are skipped without an error.",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			album, err := client.GetAlbum(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get album: %w", err)
			}

			if err := album.AddImages(cmd.Context(), identifiers(args[1:])...); err != nil {
				return fmt.Errorf("failed to add images: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added images to album %s\n", album.ID())

			return nil
		},
	}
}

func newAlbumRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ALBUM_ID IMAGE_ID...",
		Short: "Remove images from an album",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			album, err := client.GetAlbum(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get album: %w", err)
			}

			if err := album.RemoveImages(cmd.Context(), identifiers(args[1:])...); err != nil {
				return fmt.Errorf("failed to remove images: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed images from album %s\n", album.ID())

			return nil
		},
	}
}
