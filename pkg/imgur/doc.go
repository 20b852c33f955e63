// Package imgur provides typed, lazily loaded resources for the Imgur v3
// REST API.
//
// # Overview
//
// A Client holds the credentials and turns API payloads into resource
// values: Album, Image, Comment, User, Message, Notification and the gallery
// variants GalleryAlbum and GalleryImage. The HTTP side is supplied through
// the Transport interface; the imgurclient package wires the default
// transport with retries, timeouts and TLS settings.
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/imgur-client/pkg/imgur"
//	  "github.com/fivetwenty-io/imgur-client/pkg/imgurclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := imgurclient.New(&imgur.Config{ClientID: "my-client-id"})
//	  if err != nil { log.Fatal(err) }
//
//	  image, err := cli.GetImage(ctx, "S1jmapR")
//	  if err != nil { log.Fatal(err) }
//
//	  thumb, err := image.Thumbnail(ctx, imgur.SmallSquare)
//	  if err != nil { log.Fatal(err) }
//	  _ = thumb
//	}
//
// # Lazy loading
//
// Resources that arrive nested in another payload, such as the author of an
// image or the images of a listed album, start out partial. The first
// accessor that needs a missing field fetches the full representation once.
// A field that is still missing afterwards is reported as an
// UnknownAttributeError. Refresh reloads a resource unconditionally.
//
// # Listings
//
// Listing operations take a result limit and request pages 0, 1, 2, ...
// until the limit is reached or a page comes back empty. A limit of zero or
// less means Config.DefaultLimit (100 unless set).
//
// # Gallery promotion
//
// Submitting an image or album to the gallery turns the same value into a
// gallery item, and removing it turns it back. Callers that keep a single
// handle across these changes can use Ref.
//
// # Errors
//
// Every failure kind has a sentinel for errors.Is: ErrAuthentication,
// ErrInvalidParameter, ErrNotFound, ErrServiceUnavailable,
// ErrUnexpectedResponse, ErrUnknownAttribute and ErrFileOverwrite. Local
// precondition failures never reach the network.
package imgur
