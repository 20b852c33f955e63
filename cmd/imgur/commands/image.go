package commands

import (
	"fmt"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/spf13/cobra"
)

// NewImageCommand creates the image command group
func NewImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "image",
		Aliases: []string{"images", "img"},
		Short:   "Manage images",
		Long:    "Show, upload, download and manage imgur images",
	}

	cmd.AddCommand(newImageGetCommand())
	cmd.AddCommand(newImageUploadCommand())
	cmd.AddCommand(newImageDownloadCommand())
	cmd.AddCommand(newImageUpdateCommand())
	cmd.AddCommand(newImageDeleteCommand())
	cmd.AddCommand(newImageFavoriteCommand())

	return cmd
}

func newImageGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get IMAGE_ID",
		Short: "Show image details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			image, err := client.GetImage(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get image: %w", err)
			}

			view := describeImage(cmd.Context(), image)

			return renderDetails(cmd.OutOrStdout(), view, view.properties())
		},
	}
}

func newImageUploadCommand() *cobra.Command {
	var (
		path        string
		url         string
		title       string
		description string
		album       string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload an image",
		Long:  "Upload a local file or let imgur fetch a remote URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (path == "") == (url == "") {
				return constants.ErrPathOrURLRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			opts := imgur.UploadOptions{
				Path:        path,
				URL:         url,
				Title:       title,
				Description: description,
			}
			if album != "" {
				opts.Album = imgur.IDString(album)
			}

			image, err := client.UploadImage(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("failed to upload image: %w", err)
			}

			view := describeImage(cmd.Context(), image)

			return renderDetails(cmd.OutOrStdout(), view, view.properties())
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "local image file")
	cmd.Flags().StringVar(&url, "url", "", "remote image URL")
	cmd.Flags().StringVar(&title, "title", "", "image title")
	cmd.Flags().StringVar(&description, "description", "", "image description")
	cmd.Flags().StringVar(&album, "album", "", "album id, or deletehash of an anonymous album")

	return cmd
}

func newImageDownloadCommand() *cobra.Command {
	var (
		dir       string
		name      string
		size      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "download IMAGE_ID",
		Short: "Download an image",
		Long:  "Save an image, or one of its thumbnails, to a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := imgur.DownloadOptions{Dir: dir, Name: name, Overwrite: overwrite}

			if size != "" {
				thumbnail, err := imgur.ParseThumbnailSize(size)
				if err != nil {
					return err
				}

				opts.Size = thumbnail
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			image, err := client.GetImage(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get image: %w", err)
			}

			written, err := image.Download(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("failed to download image: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", written)

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "target directory (default: working directory)")
	cmd.Flags().StringVar(&name, "name", "", "file name without extension (default: title)")
	cmd.Flags().StringVar(&size, "size", "", "thumbnail size, e.g. 'small square' or large_thumbnail")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing file")

	return cmd
}

func newImageUpdateCommand() *cobra.Command {
	var (
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update IMAGE_ID",
		Short: "Change image title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			image, err := client.GetImage(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get image: %w", err)
			}

			if err := image.Update(cmd.Context(), title, description); err != nil {
				return fmt.Errorf("failed to update image: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated image %s\n", image.ID())

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func newImageDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete IMAGE_ID",
		Short: "Delete an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			image, err := client.GetImage(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get image: %w", err)
			}

			if err := image.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("failed to delete image: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted image %s\n", image.ID())

			return nil
		},
	}
}

func newImageFavoriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite IMAGE_ID",
		Short: "Toggle the favorite status of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			image, err := client.GetImage(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get image: %w", err)
			}

			favorited, err := image.Favorite(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to favorite image: %w", err)
			}

			state := "Unfavorited"
			if favorited {
				state = "Favorited"
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s image %s\n", state, image.ID())

			return nil
		},
	}
}
