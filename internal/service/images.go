package service

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"go.uber.org/zap"
)

// ImageService downloads a product's preview image and stores a
// width-bounded JPEG copy. Every failure is best-effort by contract: the
// caller logs and moves on, the pipeline never depends on the image.
type ImageService struct {
	httpClient  *http.Client
	targetWidth int
	logger      *zap.Logger
}

func NewImageService(targetWidth int, timeout time.Duration, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		targetWidth: targetWidth,
		logger:      logger,
	}
}

// Save fetches the image at url, scales it to the target width preserving
// aspect ratio, and writes it as JPEG to path. The source is flattened onto
// an opaque canvas first so paletted and alpha images encode cleanly.
func (s *ImageService) Save(ctx context.Context, url, path string) error {
	if url == "" {
		return fmt.Errorf("image URL missing")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	src, format, err := image.Decode(resp.Body)
	if err != nil {
		return fmt.Errorf("image decode failed: %w", err)
	}

	resized := s.resize(src)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create image dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, resized, nil); err != nil {
		return fmt.Errorf("jpeg encode failed: %w", err)
	}

	s.logger.Debug("Resized image saved",
		zap.String("path", path),
		zap.String("source_format", format),
		zap.Int("width", resized.Bounds().Dx()))
	return nil
}

func (s *ImageService) resize(src image.Image) image.Image {
	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return src
	}

	dstW := s.targetWidth
	dstH := int(float64(srcH) * float64(dstW) / float64(srcW))
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
