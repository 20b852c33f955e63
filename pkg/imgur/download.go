package imgur

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
)

// DownloadOptions controls Image.Download.
type DownloadOptions struct {
	// Dir is the target directory; empty means the working directory.
	Dir string
	// Name is the file name without extension. It defaults to the title,
	// and falls back to the id when neither is a usable file name.
	Name string
	// Overwrite replaces an existing file instead of failing.
	Overwrite bool
	// Size downloads a thumbnail instead of the original.
	Size ThumbnailSize
}

// Download saves the image and returns the path written.
func (i *Image) Download(ctx context.Context, opts DownloadOptions) (string, error) {
	link, err := i.Link(ctx)
	if err != nil {
		return "", err
	}

	suffix := ""
	if opts.Size != "" {
		size, err := ParseThumbnailSize(string(opts.Size))
		if err != nil {
			return "", err
		}

		for _, entry := range thumbnailSuffixes {
			if entry.size == size {
				suffix = entry.suffix
			}
		}

		link = thumbnailURL(link, suffix)
	}

	name := opts.Name
	if name == "" {
		// A missing title is not an error; the id is used instead.
		name, _ = i.Title(ctx)
	}

	if !usableFilename(name) {
		name = i.ID()
	}

	target := filepath.Join(opts.Dir, name+suffix+extension(link))

	if !opts.Overwrite {
		if _, err := os.Stat(target); err == nil {
			return "", &FileOverwriteError{Path: target}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", target, err)
		}
	}

	contents, err := i.client.fetchBytes(ctx, link)
	if err != nil {
		return "", fmt.Errorf("downloading image: %w", err)
	}

	if err := os.WriteFile(target, contents, constants.DownloadFilePerm); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}

	return target, nil
}

func extension(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return path.Ext(link)
	}

	return path.Ext(parsed.Path)
}

func usableFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\:*?"<>|`+"\x00")
}

// fetchBytes downloads a file from the image CDN, outside the API envelope.
func (c *Client) fetchBytes(ctx context.Context, link string) ([]byte, error) {
	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", link, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{URL: link}
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &UnexpectedResponseError{StatusCode: resp.StatusCode, Message: resp.Status, Header: resp.Header}
	}

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", link, err)
	}

	return contents, nil
}
