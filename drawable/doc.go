// Package drawable resolves image resources into decoded images and keeps
// them in a handle-keyed store.
//
// A host announces an image with a Descriptor naming its kind (a network URL
// or an inline base64 payload) and the Handle later paint instructions use
// to refer to it. Cache.Resolve fetches and decodes the image, stores it
// under the handle and returns exactly one Report describing the outcome.
// Cache.Lookup is the read side used while painting; an image that is not
// resolved yet is simply absent.
//
// Entries are never evicted. Resolving a handle again replaces its image.
//
// Decoding supports PNG, JPEG and GIF from the standard library plus WebP,
// BMP and TIFF from golang.org/x/image.
package drawable
