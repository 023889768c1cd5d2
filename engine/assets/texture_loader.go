package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/google/uuid"
	"github.com/spaghettifunk/wood/engine/core"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureLoader decodes png, jpeg, bmp, tiff and webp files into a *Texture.
type TextureLoader struct{}

func (tl *TextureLoader) Load(path string) (*Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	bounds := img.Bounds()
	name := uuid.New().String()
	core.LogDebug("decoded %s image '%s' (%dx%d)", format, path, bounds.Dx(), bounds.Dy())

	return &Resource{
		Name:     name,
		FullPath: path,
		DataSize: uint64(info.Size()),
		Type:     AssetTypeImage,
		Data: &Texture{
			Name:   name,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Image:  img,
		},
	}, nil
}

func (tl *TextureLoader) Unload(r *Resource) error {
	if r != nil {
		r.Data = nil
	}
	return nil
}
