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
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/mapnotes"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	for y := range 20 {
		for x := range 30 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(8 * x), G: uint8(12 * y), A: 255})
		}
	}
	return img
}

func TestDecodePNG(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, testImage()))

	img, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds())
}

func TestDecodeJPEG(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, jpeg.Encode(buf, testImage(), nil))

	img, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds())
}

func TestDecodeRejected(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, gif.Encode(buf, testImage(), nil))

	cases := map[string][]byte{
		"gif":   buf.Bytes(),
		"empty": nil,
		"text":  []byte("this is not an image at all"),
	}
	for name, data := range cases {
		_, err := DecodeImage(data)
		assert.ErrorIs(t, err, ErrUnsupportedImage, name)
	}
}

func TestDecodeTruncated(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, testImage()))

	_, err := DecodeImage(buf.Bytes()[:40])
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedImage)
}

func TestImageBounds(t *testing.T) {
	b := ImageBounds(testImage())
	assert.Equal(t, mapnotes.GeoBounds{
		NorthEast: mapnotes.GeoPoint{Lat: 20, Lng: 30},
	}, b)
}
