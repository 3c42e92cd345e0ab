package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/genricoloni/nowplaying/internal/layout"
	"github.com/genricoloni/nowplaying/internal/rgb565"
	"go.uber.org/zap"
)

// CoverProcessor turns fetched artwork into cover pixels
type CoverProcessor struct {
	logger *zap.Logger
	size   int
}

// NewCoverProcessor creates a processor producing layout.CoverSize squares
func NewCoverProcessor(logger *zap.Logger) *CoverProcessor {
	return &CoverProcessor{
		logger: logger,
		size:   layout.CoverSize,
	}
}

// Process decodes the artwork, center-crops it to the cover square and returns
// big-endian RGB565 bytes, two per pixel, row-major.
func (p *CoverProcessor) Process(ctx context.Context, art domain.Artwork) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := decode(art)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return nil, fmt.Errorf("%w: invalid image dimensions: %dx%d", domain.ErrTransient, bounds.Dx(), bounds.Dy())
	}

	p.logger.Debug("Cropping cover",
		zap.Int("srcW", bounds.Dx()),
		zap.Int("srcH", bounds.Dy()),
		zap.Int("size", p.size))
	cover := imaging.Fill(img, p.size, p.size, imaging.Center, imaging.Linear)

	out := rgb565.FromRGB888(flatten(cover))
	p.logger.Debug("Image processed successfully", zap.Int("bytes", len(out)))
	return out, nil
}

func decode(art domain.Artwork) (image.Image, error) {
	r := bytes.NewReader(art.Data)

	var (
		img image.Image
		err error
	)
	switch art.Encoding {
	case domain.EncodingJPEG:
		img, err = jpeg.Decode(r)
	case domain.EncodingPNG:
		img, err = png.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedEncoding, art.Encoding)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", domain.ErrTransient, err)
	}
	return img, nil
}

// flatten drops alpha from imaging's NRGBA output
func flatten(img *image.NRGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			out = append(out, row[i], row[i+1], row[i+2])
		}
	}
	return out
}
