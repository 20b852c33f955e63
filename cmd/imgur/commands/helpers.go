package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/fivetwenty-io/imgur-client/pkg/imgurclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const defaultJSONIndent = 2

// createClient builds a client from flags, environment and config file.
func createClient() (*imgur.Client, error) {
	clientID := viper.GetString("client_id")
	if clientID == "" {
		return nil, constants.ErrNoClientID
	}

	timeout, err := imgurclient.ParseTimeout(viper.GetString("timeout"))
	if err != nil {
		return nil, fmt.Errorf("reading timeout: %w", err)
	}

	verbose := viper.GetBool("verbose")

	logger, err := newLogger(viper.GetString("log_file"), verbose)
	if err != nil {
		return nil, err
	}

	client, err := imgurclient.New(&imgur.Config{
		ClientID:          clientID,
		ClientSecret:      viper.GetString("client_secret"),
		AccessToken:       viper.GetString("access_token"),
		RefreshToken:      viper.GetString("refresh_token"),
		MashapeKey:        viper.GetString("mashape_key"),
		BaseURL:           viper.GetString("base_url"),
		HTTPTimeout:       timeout,
		SkipTLSVerify:     viper.GetBool("skip_ssl_validation"),
		RequestsPerSecond: viper.GetFloat64("rate_limit"),
		Debug:             verbose,
		Logger:            logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func outputFormat() (string, error) {
	format := viper.GetString("output")
	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrInvalidOutputType, format)
	}
}

// property is one labelled row of a detail table.
type property struct {
	key   string
	value string
}

// label turns a snake_case key into a table label, e.g. "delete_hash"
// becomes "Delete Hash".
func label(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// renderDetails writes data as json or yaml, or its properties as a two
// column table.
func renderDetails(w io.Writer, data interface{}, properties []property) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format != constants.FormatTable {
		return encode(w, format, data)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, p := range properties {
		if p.value == "" {
			continue
		}

		_ = table.Append(label(p.key), p.value)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderList writes data as json or yaml, or rows under header.
func renderList(w io.Writer, data interface{}, header []string, rows [][]string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format != constants.FormatTable {
		return encode(w, format, data)
	}

	if len(rows) == 0 {
		_, _ = io.WriteString(w, "No results found.\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header(header)

	for _, row := range rows {
		_ = table.Append(row)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func encode(w io.Writer, format string, data interface{}) error {
	if format == constants.FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(data)
	}

	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()

	return encoder.Encode(data)
}

// orZero drops the error of a lazy accessor. Views show what is known and
// leave the rest empty.
func orZero[T any](value T, _ error) T {
	return value
}

func formatInt(value int64) string {
	if value == 0 {
		return ""
	}

	return strconv.FormatInt(value, 10)
}

func formatBool(value bool) string {
	if value {
		return constants.BooleanTrue
	}

	return constants.BooleanFalse
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}

	return constants.MaskedSecret
}

func parseVote(direction string) (string, error) {
	switch strings.ToLower(direction) {
	case "up":
		return "up", nil
	case "down":
		return "down", nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidVote, direction)
	}
}

// galleryItem resolves a gallery id to the image or album it names.
func galleryItem(ctx context.Context, client *imgur.Client, id string) (imgur.GalleryResource, error) {
	resource, err := client.GetAtURL(ctx, constants.WebBaseURL+"/gallery/"+id)
	if err != nil {
		return nil, err
	}

	item, ok := resource.(imgur.GalleryResource)
	if !ok {
		return nil, fmt.Errorf("%w: gallery/%s", constants.ErrNotImgurResource, id)
	}

	return item, nil
}
