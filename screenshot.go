package carpenter

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultScreenshotDir is where Screenshot writes unless changed with
// SetScreenshotDir.
const DefaultScreenshotDir = "screenshots"

// Screenshot asks for the next drawn frame to be saved as a PNG named after
// label. Scripts use it to record the cupboard after a sequence of drags.
func (s *Scene) Screenshot(label string) {
	s.shotQueue = append(s.shotQueue, label)
}

// SetScreenshotDir changes the directory screenshots are written to.
func (s *Scene) SetScreenshotDir(dir string) {
	s.shotDir = dir
}

// flushScreenshots writes every pending screenshot of screen. Failures are
// reported on stderr; the frame is not retried.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.shotQueue) == 0 {
		return
	}
	defer func() { s.shotQueue = s.shotQueue[:0] }()

	dir := s.shotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[carpenter] screenshot: %v\n", err)
		return
	}

	img := frameImage(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.shotQueue {
		path := filepath.Join(dir, stamp+"_"+fileLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[carpenter] screenshot: %v\n", err)
		}
	}
}

// frameImage copies the screen's premultiplied pixels into a straight-alpha
// image.
func frameImage(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	unpremultiply(img.Pix)
	return img
}

func unpremultiply(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := int(pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			pix[c] = uint8(min(int(pix[c])*255/a, 255))
		}
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// fileLabel keeps letters, digits, '-' and '.' and turns everything else
// into '_'. An empty label becomes "unlabeled".
func fileLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, label)
}
