// Package showroom is a small backend-for-frontend for the vehicle showroom
// single page application.
//
// It serves the application's static build, proxies chat requests to an
// OpenAI-compatible completion API, and lists vehicle images kept in S3 (or a
// local directory) under two fixed prefixes.
//
// # Key Components
//
//   - Gallery: combined and per-prefix image listings over an ImageStore
//   - ImageStore: listing capability implemented by the s3store and filesystem packages
//   - AssetMode: what unmatched paths are answered with (SPA fallback or fixed JSON)
//   - ContentType: the static extension to content type table used for asset responses
//
// # Example Usage
//
//	store := s3store.New(client, "my-bucket", "eu-west-1")
//	gallery := showroom.NewGallery(store)
//
//	// Cars first, motorcycles second, fetched concurrently
//	images, err := gallery.All(ctx)
//
// See the http package for the REST API, the config package for configuration
// sources, and the lambdaproxy package for running the same router on Lambda.
package showroom
