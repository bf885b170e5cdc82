package usecase

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/image/draw"

	_ "image/gif"

	_ "golang.org/x/image/webp"
)

// imageFormat maps a file extension to the name image.DecodeConfig reports for that format.
func imageFormat(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return "jpeg"
	case "png":
		return "png"
	case "gif":
		return "gif"
	case "webp":
		return "webp"
	case "avif":
		return "avif"
	case "svg":
		return "svg"
	}
	return ""
}

func isOptimizableFormat(format string) bool {
	return format == "jpeg" || format == "png"
}

const (
	// maxDecodePixels bounds the decoded bitmap, about 200 MB as RGBA.
	maxDecodePixels = 50_000_000

	minSavingBytes = 1024
	// minSavingDivisor requires a saving of at least 1/50 (2%) of the original.
	minSavingDivisor = 50
)

// worthReplacing tells whether a re-encoded image saves enough to be committed. A resized image only
// has to be smaller.
func worthReplacing(before, after int, resized bool) bool {
	if after >= before {
		return false
	}
	if resized {
		return true
	}
	saved := before - after
	return saved >= minSavingBytes && saved*minSavingDivisor >= before
}

// recompress re-encodes an image in its own format with the preset applied. A non-empty skip reason
// means the image is left as it is and out is nil.
func recompress(data []byte, ext string, preset model.CompressionPreset) (out []byte, skip string, err error) {
	expected := imageFormat(ext)
	if !isOptimizableFormat(expected) {
		return nil, "unsupported format", nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", goerr.Wrap(types.ErrValidationFailed, "image cannot be decoded", goerr.V("error", err.Error()))
	}
	if format != expected {
		return nil, "content is " + format + ", not " + expected, nil
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxDecodePixels {
		return nil, "", goerr.Wrap(types.ErrValidationFailed, "image is too large to decode",
			goerr.V("width", cfg.Width),
			goerr.V("height", cfg.Height),
			goerr.V("limit", maxDecodePixels),
		)
	}

	resized := preset.MaxWidth > 0 && cfg.Width > preset.MaxWidth
	if format == "jpeg" && !resized {
		if q, ok := jpegQuality(data); ok && q <= float64(preset.JPEGQuality)+0.5 {
			return nil, "already at or below preset quality", nil
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", goerr.Wrap(types.ErrValidationFailed, "image cannot be decoded", goerr.V("error", err.Error()))
	}
	if resized {
		img = resize(img, preset.MaxWidth)
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: preset.JPEGQuality}); err != nil {
			return nil, "", goerr.Wrap(err, "failed to encode jpeg")
		}
	case "png":
		enc := &png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, "", goerr.Wrap(err, "failed to encode png")
		}
	}

	if !worthReplacing(len(data), buf.Len(), resized) {
		return nil, "no size reduction", nil
	}
	return buf.Bytes(), "", nil
}

// baseLuminanceQuant is the luminance table of ITU T.81 Annex K that libjpeg-style encoders, including
// image/jpeg, scale by quality.
var baseLuminanceQuant = [64]int{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

// jpegQuality estimates the quality a JPEG was encoded with from its luminance quantization table.
// ok is false when the stream has no such table before the first scan.
func jpegQuality(data []byte) (quality float64, ok bool) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, false
	}

	for i := 2; i+4 <= len(data); {
		if data[i] != 0xFF {
			return 0, false
		}
		marker := data[i+1]
		switch {
		case marker == 0xFF:
			i++
			continue
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7):
			i += 2
			continue
		case marker == 0xDA || marker == 0xD9:
			return 0, false
		}

		length := int(data[i+2])<<8 | int(data[i+3])
		if length < 2 || i+2+length > len(data) {
			return 0, false
		}
		segment := data[i+4 : i+2+length]
		i += 2 + length

		if marker != 0xDB {
			continue
		}
		for len(segment) > 0 {
			precision, id := segment[0]>>4, segment[0]&0x0F
			size := 64
			if precision == 1 {
				size = 128
			}
			if len(segment) < 1+size {
				return 0, false
			}
			table := segment[1 : 1+size]
			segment = segment[1+size:]
			if id != 0 {
				continue
			}

			var sum, base int
			for k := 0; k < 64; k++ {
				if precision == 1 {
					sum += int(table[2*k])<<8 | int(table[2*k+1])
				} else {
					sum += int(table[k])
				}
				base += baseLuminanceQuant[k]
			}
			scale := float64(sum) * 100 / float64(base)
			if scale <= 100 {
				return (200 - scale) / 2, true
			}
			return 5000 / scale, true
		}
	}
	return 0, false
}

func resize(src image.Image, width int) image.Image {
	b := src.Bounds()
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
