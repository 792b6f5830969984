package scene

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/tinyrender/internal/config"
	"github.com/Faultbox/tinyrender/internal/engine/framebuffer"
	"github.com/Faultbox/tinyrender/internal/logger"
)

// dirImageExt is the format used when an output path names a directory.
const dirImageExt = ".tga"

// Save writes the frame and, when requested and rendered, the shadow depth
// image. With out.Flip set the images are flipped first so that their y
// axis points up.
//
// An output path that ends in a separator or names an existing directory
// receives a timestamped file, e.g. frame_2006-01-02_15-04-05.tga.
func (res *Result) Save(out config.OutputConfig) error {
	if out.Flip {
		res.Frame.FlipVertically()
		if res.Depth != nil {
			res.Depth.FlipVertically()
		}
	}

	path, err := saveImage(res.Frame, out.Frame, "frame")
	if err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	logger.Info("frame saved", zap.String("path", path))

	if out.Depth == "" {
		return nil
	}
	if res.Depth == nil {
		logger.Warn("depth output requested but shadow pass disabled", zap.String("path", out.Depth))
		return nil
	}
	path, err = saveImage(res.Depth, out.Depth, "depth")
	if err != nil {
		return fmt.Errorf("saving depth: %w", err)
	}
	logger.Info("depth saved", zap.String("path", path))
	return nil
}

// saveImage writes im to path and returns the file actually written.
func saveImage(im *framebuffer.Image, path, prefix string) (string, error) {
	if isDir(path) {
		return im.SaveTimestamped(path, prefix, dirImageExt)
	}
	return path, im.Save(path)
}

func isDir(path string) bool {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator)) {
		return true
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
