package showroom

import (
	"path"
	"strings"
	"unicode/utf8"
)

// IsValidPath validates that a request path (without its leading slash) can be
// resolved against a local root. It checks that the path:
//   - is not empty and is relative (does not start with "/")
//   - does not end with "/" and has no empty segments ("//")
//   - has no "." or ".." segments
//   - does not contain a backslash
//   - is valid UTF-8
//   - does not contain null bytes, control characters (< 0x20) or DEL (0x7f)
//
// Spaces, "~", "#", "?" and dots inside a name ("x..y.png") are allowed; the
// root the path is opened against keeps lookups inside the directory.
func IsValidPath(p string) bool {
	if p == "" || p[0] == '/' {
		return false
	}

	if strings.ContainsRune(p, '\\') {
		return false
	}

	if !utf8.ValidString(p) {
		return false
	}

	for _, r := range p {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}

	return true
}

// ObjectURL renders the public virtual-hosted URL of an S3 object.
func ObjectURL(bucket, region, key string) string {
	return "https://" + bucket + ".s3." + region + ".amazonaws.com/" + key
}

// DefaultContentType is served for extensions missing from the content type table.
const DefaultContentType = "application/octet-stream"

var contentTypes = map[string]string{
	"html": "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
	"json": "application/json",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",
}

// Extension returns the text after the last "." of the final path element,
// or "" when the element has no dot. Case is preserved.
func Extension(p string) string {
	base := path.Base(p)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i+1:]
}

// ContentType derives a content type from the file extension. Matching is
// case-sensitive, so "LOGO.PNG" is served as DefaultContentType.
func ContentType(p string) string {
	if ct, ok := contentTypes[Extension(p)]; ok {
		return ct
	}
	return DefaultContentType
}

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// IsImageFile reports whether the name carries one of the gallery image extensions.
func IsImageFile(name string) bool {
	return imageExtensions[Extension(name)]
}
