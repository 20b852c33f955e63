// Package imgurclient provides the primary entry point for constructing an
// imgur.Client with the default HTTP transport.
//
// It layers configuration, retries, timeouts and TLS settings on top of the
// resource types defined in the imgur package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/imgur-client/pkg/imgurclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Anonymous access with just a client id.
//	  cli, err := imgurclient.NewWithClientID("my-client-id")
//	  if err != nil { log.Fatal(err) }
//
//	  album, err := cli.GetAlbum(ctx, "lDRB2")
//	  if err != nil { log.Fatal(err) }
//	  _ = album
//
//	  // Or everything from IMGUR_* environment variables.
//	  config, err := imgurclient.ConfigFromEnv()
//	  if err != nil { log.Fatal(err) }
//	  cli, err = imgurclient.New(config)
//	  if err != nil { log.Fatal(err) }
//	}
//
// Environment
//
// ConfigFromEnv reads IMGUR_CLIENT_ID, IMGUR_CLIENT_SECRET,
// IMGUR_ACCESS_TOKEN, IMGUR_REFRESH_TOKEN and IMGUR_MASHAPE_KEY, plus
// IMGUR_VERIFY_SSL (default true) and IMGUR_TIMEOUT (seconds or a Go
// duration, default 30s).
package imgurclient
