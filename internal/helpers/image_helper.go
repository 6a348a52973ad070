package helpers

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/jpeg"
	"image/png"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	_ "golang.org/x/image/webp"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

type ImageConfig struct {
	AllowedMimeTypes []string
	// MaxPixels caps width times height as declared in the image header.
	MaxPixels int
}

var DefaultImageConfig = ImageConfig{
	AllowedMimeTypes: []string{
		"image/png",
		"image/jpeg",
		"image/jpg",
		"image/webp",
	},
	MaxPixels: 40_000_000,
}

var dataURIPattern = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+-]+);base64,(.+)$`)

const pngDataURIPrefix = "data:image/png;base64,"

// NormalizeImage decodes a base64 data URI, re-encodes the image as PNG and
// returns the PNG as plain base64 without the data URI prefix.
func NormalizeImage(dataURI string, configs ...ImageConfig) (string, error) {
	config := DefaultImageConfig
	if len(configs) > 0 {
		config = configs[0]
	}
	if config.MaxPixels <= 0 {
		config.MaxPixels = DefaultImageConfig.MaxPixels
	}

	matches := dataURIPattern.FindStringSubmatch(strings.TrimSpace(dataURI))
	if len(matches) != 3 {
		return "", models.BadRequest("invalid image format, expected a base64 data URI (data:image/...;base64,...)")
	}

	mimeType := strings.ToLower(matches[1])
	mimeTypeAllowed := false
	for _, allowedType := range config.AllowedMimeTypes {
		if mimeType == allowedType {
			mimeTypeAllowed = true
			break
		}
	}
	if !mimeTypeAllowed {
		return "", models.BadRequest("only PNG, JPEG, JPG or WEBP images are allowed")
	}

	raw, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return "", models.BadRequest("image payload is not valid base64")
	}

	header, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", models.BadRequest("image payload could not be decoded")
	}
	if header.Width <= 0 || header.Height <= 0 || header.Width*header.Height > config.MaxPixels {
		return "", models.BadRequest("image dimensions %dx%d exceed the limit of %d pixels", header.Width, header.Height, config.MaxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", models.BadRequest("image payload could not be decoded")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", errors.Wrap(err, "encoding image as png")
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ImageDataURI turns a stored PNG back into a data URI. Nil or empty input
// yields nil.
func ImageDataURI(stored *string) *string {
	if stored == nil || *stored == "" {
		return nil
	}
	uri := pngDataURIPrefix + *stored
	return &uri
}
