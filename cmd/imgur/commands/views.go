package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
)

// ImageView is the printable form of an image or gallery image.
type ImageView struct {
	ID          string `json:"id"                   yaml:"id"`
	Kind        string `json:"kind"                 yaml:"kind"`
	Title       string `json:"title,omitempty"      yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Link        string `json:"link,omitempty"       yaml:"link,omitempty"`
	Type        string `json:"type,omitempty"       yaml:"type,omitempty"`
	Width       int    `json:"width,omitempty"      yaml:"width,omitempty"`
	Height      int    `json:"height,omitempty"     yaml:"height,omitempty"`
	Views       int64  `json:"views,omitempty"      yaml:"views,omitempty"`
	Author      string `json:"author,omitempty"     yaml:"author,omitempty"`
	DeleteHash  string `json:"deletehash,omitempty" yaml:"deletehash,omitempty"`
}

func describeImage(ctx context.Context, image *imgur.Image) ImageView {
	view := ImageView{
		ID:          image.ID(),
		Kind:        string(image.Kind()),
		Title:       orZero(image.Title(ctx)),
		Description: orZero(image.Description(ctx)),
		Link:        orZero(image.Link(ctx)),
		Type:        orZero(image.Type(ctx)),
		Width:       orZero(image.Width(ctx)),
		Height:      orZero(image.Height(ctx)),
		Views:       orZero(image.Views(ctx)),
		DeleteHash:  image.DeleteHash(),
	}

	if author := orZero(image.Author(ctx)); author != nil {
		view.Author = author.Name()
	}

	return view
}

func (v ImageView) properties() []property {
	size := ""
	if v.Width > 0 && v.Height > 0 {
		size = fmt.Sprintf("%dx%d", v.Width, v.Height)
	}

	return []property{
		{"id", v.ID},
		{"kind", v.Kind},
		{"title", v.Title},
		{"description", v.Description},
		{"link", v.Link},
		{"type", v.Type},
		{"size", size},
		{"views", formatInt(v.Views)},
		{"author", v.Author},
		{"delete_hash", v.DeleteHash},
	}
}

// AlbumView is the printable form of an album or gallery album.
type AlbumView struct {
	ID          string   `json:"id"                   yaml:"id"`
	Kind        string   `json:"kind"                 yaml:"kind"`
	Title       string   `json:"title,omitempty"      yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Link        string   `json:"link,omitempty"       yaml:"link,omitempty"`
	Privacy     string   `json:"privacy,omitempty"    yaml:"privacy,omitempty"`
	Layout      string   `json:"layout,omitempty"     yaml:"layout,omitempty"`
	Views       int64    `json:"views,omitempty"      yaml:"views,omitempty"`
	Author      string   `json:"author,omitempty"     yaml:"author,omitempty"`
	Cover       string   `json:"cover,omitempty"      yaml:"cover,omitempty"`
	Images      []string `json:"images,omitempty"     yaml:"images,omitempty"`
	DeleteHash  string   `json:"deletehash,omitempty" yaml:"deletehash,omitempty"`
}

func describeAlbum(ctx context.Context, album *imgur.Album) AlbumView {
	view := AlbumView{
		ID:          album.ID(),
		Kind:        string(album.Kind()),
		Title:       orZero(album.Title(ctx)),
		Description: orZero(album.Description(ctx)),
		Link:        orZero(album.Link(ctx)),
		Privacy:     orZero(album.Privacy(ctx)),
		Layout:      orZero(album.Layout(ctx)),
		Views:       orZero(album.Views(ctx)),
		DeleteHash:  album.DeleteHash(),
	}

	if author := orZero(album.Author(ctx)); author != nil {
		view.Author = author.Name()
	}

	if cover := orZero(album.Cover(ctx)); cover != nil {
		view.Cover = cover.ID()
	}

	for _, image := range orZero(album.Images(ctx)) {
		view.Images = append(view.Images, image.ID())
	}

	return view
}

func (v AlbumView) properties() []property {
	return []property{
		{"id", v.ID},
		{"kind", v.Kind},
		{"title", v.Title},
		{"description", v.Description},
		{"link", v.Link},
		{"privacy", v.Privacy},
		{"layout", v.Layout},
		{"views", formatInt(v.Views)},
		{"author", v.Author},
		{"cover", v.Cover},
		{"images", strconv.Itoa(len(v.Images))},
		{"delete_hash", v.DeleteHash},
	}
}

// UserView is the printable form of an account.
type UserView struct {
	Name           string  `json:"name"                      yaml:"name"`
	ID             string  `json:"id,omitempty"              yaml:"id,omitempty"`
	Bio            string  `json:"bio,omitempty"             yaml:"bio,omitempty"`
	Reputation     float64 `json:"reputation"                yaml:"reputation"`
	ReputationName string  `json:"reputation_name,omitempty" yaml:"reputation_name,omitempty"`
	Created        int64   `json:"created,omitempty"         yaml:"created,omitempty"`
}

func describeUser(ctx context.Context, user *imgur.User) UserView {
	return UserView{
		Name:           user.Name(),
		ID:             orZero(user.ID(ctx)),
		Bio:            orZero(user.Bio(ctx)),
		Reputation:     orZero(user.Reputation(ctx)),
		ReputationName: orZero(user.ReputationName(ctx)),
		Created:        orZero(user.Created(ctx)),
	}
}

func (v UserView) properties() []property {
	return []property{
		{"name", v.Name},
		{"id", v.ID},
		{"bio", v.Bio},
		{"reputation", strconv.FormatFloat(v.Reputation, 'f', -1, 64)},
		{"reputation_name", v.ReputationName},
		{"created", formatInt(v.Created)},
	}
}

// CommentView is the printable form of a comment.
type CommentView struct {
	ID        string `json:"id"                  yaml:"id"`
	Author    string `json:"author,omitempty"    yaml:"author,omitempty"`
	Text      string `json:"text"                yaml:"text"`
	Points    int64  `json:"points"              yaml:"points"`
	Parent    string `json:"parent,omitempty"    yaml:"parent,omitempty"`
	Permalink string `json:"permalink,omitempty" yaml:"permalink,omitempty"`
	Replies   int    `json:"replies"             yaml:"replies"`
}

func describeComment(ctx context.Context, comment *imgur.Comment) CommentView {
	view := CommentView{
		ID:        comment.ID(),
		Text:      orZero(comment.Text(ctx)),
		Points:    orZero(comment.Points(ctx)),
		Permalink: orZero(comment.Permalink(ctx)),
		Replies:   len(orZero(comment.Replies(ctx))),
	}

	if author := orZero(comment.Author(ctx)); author != nil {
		view.Author = author.Name()
	}

	if parent := orZero(comment.Parent(ctx)); parent != nil {
		view.Parent = parent.ID()
	}

	return view
}

func (v CommentView) properties() []property {
	return []property{
		{"id", v.ID},
		{"author", v.Author},
		{"text", v.Text},
		{"points", strconv.FormatInt(v.Points, 10)},
		{"parent", v.Parent},
		{"permalink", v.Permalink},
		{"replies", strconv.Itoa(v.Replies)},
	}
}

func (v CommentView) row() []string {
	return []string{v.ID, v.Author, strconv.FormatInt(v.Points, 10), v.Text}
}

var commentHeader = []string{"ID", "Author", "Points", "Text"}

func describeComments(ctx context.Context, comments []*imgur.Comment) ([]CommentView, [][]string) {
	views := make([]CommentView, 0, len(comments))
	rows := make([][]string, 0, len(comments))

	for _, comment := range comments {
		view := describeComment(ctx, comment)
		views = append(views, view)
		rows = append(rows, view.row())
	}

	return views, rows
}

// ResourceSummary is one line of a mixed listing.
type ResourceSummary struct {
	ID    string `json:"id"              yaml:"id"`
	Kind  string `json:"kind"            yaml:"kind"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Link  string `json:"link,omitempty"  yaml:"link,omitempty"`
}

var summaryHeader = []string{"ID", "Kind", "Title", "Link"}

func (s ResourceSummary) row() []string {
	return []string{s.ID, s.Kind, s.Title, s.Link}
}

func (s ResourceSummary) properties() []property {
	return []property{{"id", s.ID}, {"kind", s.Kind}, {"title", s.Title}, {"link", s.Link}}
}

func summarize(ctx context.Context, resource imgur.Resource) ResourceSummary {
	switch v := resource.(type) {
	case *imgur.GalleryImage:
		return summarize(ctx, v.Image)
	case *imgur.GalleryAlbum:
		return summarize(ctx, v.Album)
	case *imgur.Image:
		return ResourceSummary{ID: v.ID(), Kind: string(v.Kind()), Title: orZero(v.Title(ctx)), Link: orZero(v.Link(ctx))}
	case *imgur.Album:
		return ResourceSummary{ID: v.ID(), Kind: string(v.Kind()), Title: orZero(v.Title(ctx)), Link: orZero(v.Link(ctx))}
	case *imgur.User:
		return ResourceSummary{ID: v.Name(), Kind: string(v.Kind())}
	case *imgur.Comment:
		return ResourceSummary{ID: v.ID(), Kind: string(v.Kind()), Title: orZero(v.Text(ctx)), Link: orZero(v.Permalink(ctx))}
	default:
		return ResourceSummary{Kind: string(resource.Kind())}
	}
}

func summarizeAll[T imgur.Resource](ctx context.Context, resources []T) ([]ResourceSummary, [][]string) {
	summaries := make([]ResourceSummary, 0, len(resources))
	rows := make([][]string, 0, len(resources))

	for _, resource := range resources {
		summary := summarize(ctx, resource)
		summaries = append(summaries, summary)
		rows = append(rows, summary.row())
	}

	return summaries, rows
}
