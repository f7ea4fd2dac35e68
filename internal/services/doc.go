// Package services resolves YouTube watch pages to their DASH and HLS manifest URLs.
//
// # Extraction
//
// A watch page for a live broadcast embeds its player response as inline script data.
// Two fields of that payload carry the manifests:
//
//	"dashManifestUrl":"https://manifest.googlevideo.com/api/manifest/dash/...",
//	"hlsManifestUrl":"https://manifest.googlevideo.com/api/manifest/hls_variant/.../index.m3u8"
//
// [ManifestService] fetches the page and hands the raw body to one [FieldExtractor] per format.
// The default extractors are [PatternExtractor] values using lookaround patterns, so a change
// in how the page embeds these fields shows up as [shared.ErrManifestNotFound] rather than a
// parse error. Swap the extractors through [ManifestOpts] when the markup drifts.
//
// # Failure Modes
//
// Transport errors and non-2xx responses wrap [shared.ErrFetchFailed]. A page without the
// requested field wraps [shared.ErrManifestNotFound]. Nothing is retried or cached.
package services
