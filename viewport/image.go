// seehuhn.de/go/mapnotes - freehand annotations for 2D maps
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package viewport

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"seehuhn.de/go/mapnotes"
)

// ErrUnsupportedImage is returned by DecodeImage for data which is neither
// PNG nor JPEG.
var ErrUnsupportedImage = errors.New("unsupported image type")

// DecodeImage decodes a background image.  Only PNG and JPEG are accepted;
// the type is detected from the file contents, not from its name.
func DecodeImage(data []byte) (image.Image, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	var img image.Image
	switch kind {
	case matchers.TypePng:
		img, err = png.Decode(bytes.NewReader(data))
	case matchers.TypeJpeg:
		img, err = jpeg.Decode(bytes.NewReader(data))
	case filetype.Unknown:
		return nil, ErrUnsupportedImage
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, kind.MIME.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind.Extension, err)
	}
	return img, nil
}

// ImageBounds returns the map area covered by an image shown at its
// natural size: one map unit per pixel, with the lower left corner at
// the origin.
func ImageBounds(img image.Image) mapnotes.GeoBounds {
	b := img.Bounds()
	return mapnotes.GeoBounds{
		NorthEast: mapnotes.GeoPoint{Lat: float64(b.Dy()), Lng: float64(b.Dx())},
	}
}
