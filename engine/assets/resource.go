package assets

import "image"

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeImage
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeImage:
		return "image"
	default:
		return "none"
	}
}

// Resource is the result of loading an asset from disk.
type Resource struct {
	Name     string
	FullPath string
	DataSize uint64
	Type     AssetType
	Data     interface{}
}

// Texture is a decoded image ready to be handed to the rendering backend.
type Texture struct {
	// URL is the name the texture was requested with.
	URL string
	// Name is the unique backend handle of this texture.
	Name   string
	Width  int
	Height int
	Image  image.Image
}
