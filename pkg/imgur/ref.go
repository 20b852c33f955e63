package imgur

import (
	"context"
	"fmt"
)

// Ref is a stable handle to an image or album whose gallery status may
// change. Holders of a Ref always see the current variant through Value.
type Ref struct {
	value Resource
}

// NewRef wraps an *Image, *Album, *GalleryImage or *GalleryAlbum.
func NewRef(value Resource) (*Ref, error) {
	switch value.(type) {
	case *Image, *Album, *GalleryImage, *GalleryAlbum:
		return &Ref{value: value}, nil
	default:
		return nil, &InvalidParameterError{Param: "value", Reason: fmt.Sprintf("cannot reference %T", value)}
	}
}

// Value returns the current variant.
func (r *Ref) Value() Resource {
	return r.value
}

// SubmitToGallery publishes the referenced image or album and swaps the
// handle to the gallery variant.
func (r *Ref) SubmitToGallery(ctx context.Context, title string, bypassTerms bool) error {
	switch v := r.value.(type) {
	case *Image:
		promoted, err := v.SubmitToGallery(ctx, title, bypassTerms)
		if err != nil {
			return err
		}

		r.value = promoted
	case *Album:
		promoted, err := v.SubmitToGallery(ctx, title, bypassTerms)
		if err != nil {
			return err
		}

		r.value = promoted
	default:
		return fmt.Errorf("%w: %s is already in the gallery", ErrNotGalleryCapable, r.value.Kind())
	}

	return nil
}

// RemoveFromGallery unpublishes the referenced gallery item and swaps the
// handle to the plain variant.
func (r *Ref) RemoveFromGallery(ctx context.Context) error {
	switch v := r.value.(type) {
	case *GalleryImage:
		demoted, err := v.RemoveFromGallery(ctx)
		if err != nil {
			return err
		}

		r.value = demoted
	case *GalleryAlbum:
		demoted, err := v.RemoveFromGallery(ctx)
		if err != nil {
			return err
		}

		r.value = demoted
	default:
		return fmt.Errorf("%w: %s is not in the gallery", ErrNotGalleryCapable, r.value.Kind())
	}

	return nil
}
