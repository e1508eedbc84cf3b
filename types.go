package showroom

import (
	"fmt"
)

// Object store prefixes the gallery is split into.
const (
	PrefixCars        = "cars/"
	PrefixMotorcycles = "motorcycles/"
)

// AssetMode selects what the server answers for paths no API route matches.
type AssetMode string

const (
	// ModeSPA serves files from the asset root and falls back to index.html.
	ModeSPA AssetMode = "spa"
	// ModeInfo serves no files and answers with a fixed JSON document.
	ModeInfo AssetMode = "info"
)

func (m AssetMode) IsValid() bool {
	switch m {
	case ModeSPA, ModeInfo:
		return true
	default:
		return false
	}
}

func ParseAssetMode(s string) (AssetMode, error) {
	mode := AssetMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid asset mode: %s (valid modes: spa, info)", s)
	}
	return mode, nil
}

// ImageBackend selects where vehicle images are listed from.
type ImageBackend string

const (
	BackendS3    ImageBackend = "s3"
	BackendLocal ImageBackend = "local"
)

func (b ImageBackend) IsValid() bool {
	switch b {
	case BackendS3, BackendLocal:
		return true
	default:
		return false
	}
}

func ParseImageBackend(s string) (ImageBackend, error) {
	backend := ImageBackend(s)
	if !backend.IsValid() {
		return "", fmt.Errorf("invalid image backend: %s (valid backends: s3, local)", s)
	}
	return backend, nil
}

// ImagesResponse is the body of every image listing endpoint.
type ImagesResponse struct {
	Images []string `json:"images"`
}
