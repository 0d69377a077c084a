package output

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageWriter is an in-memory RGBA image that is saved to a file when
// rendering is done. Pixels in different rows may be written concurrently.
type ImageWriter struct {
	path string
	img  *image.RGBA
}

// NewImageWriter creates a writer for a width x height image saved at path.
// The file format follows the path's extension.
func NewImageWriter(path string, width, height int) *ImageWriter {
	return &ImageWriter{
		path: path,
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Path returns the destination file
func (w *ImageWriter) Path() string { return w.path }

// Width returns the image width in pixels
func (w *ImageWriter) Width() int { return w.img.Bounds().Dx() }

// Height returns the image height in pixels
func (w *ImageWriter) Height() int { return w.img.Bounds().Dy() }

// Image returns the underlying image
func (w *ImageWriter) Image() image.Image { return w.img }

// WritePixel stores a color, clamping each channel to [0,255]
func (w *ImageWriter) WritePixel(col, row int, color core.Color) {
	w.img.SetRGBA(col, row, color.RGBA())
}

// PrintGrid paints every pixel whose column or row is a multiple of interval
func (w *ImageWriter) PrintGrid(interval int, color core.Color) {
	if interval <= 0 {
		return
	}
	dc := gg.NewContextForRGBA(w.img)
	dc.SetColor(color.RGBA())
	for row := 0; row < w.Height(); row++ {
		for col := 0; col < w.Width(); col++ {
			if col%interval == 0 || row%interval == 0 {
				dc.SetPixel(col, row)
			}
		}
	}
}

// WriteToImage saves the image, creating the parent directory if needed
func (w *ImageWriter) WriteToImage() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := imaging.Save(w.img, w.path); err != nil {
		return fmt.Errorf("saving %s: %w", w.path, err)
	}
	return nil
}

// Encode writes the image as PNG
func (w *ImageWriter) Encode(out io.Writer) error {
	return imaging.Encode(out, w.img, imaging.PNG)
}

// Thumbnail returns a copy scaled to fit within maxSize x maxSize,
// preserving the aspect ratio
func (w *ImageWriter) Thumbnail(maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, w.img, resize.Lanczos3)
}

// SaveThumbnail writes Thumbnail(maxSize) to path
func (w *ImageWriter) SaveThumbnail(path string, maxSize uint) error {
	if err := imaging.Save(w.Thumbnail(maxSize), path); err != nil {
		return fmt.Errorf("saving thumbnail %s: %w", path, err)
	}
	return nil
}

// ThumbnailPath returns the conventional thumbnail location next to an image
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + "_thumb" + ext
}
