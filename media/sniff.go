package media

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/teachlens/teachlens-pipeline/errs"
)

type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Sniff classifies a file by its magic bytes, not its extension.
func Sniff(path string) (Kind, string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", "", fmt.Errorf("detect mime: %w", err)
	}
	m := mt.String()
	for t := mt; t != nil; t = t.Parent() {
		switch {
		case strings.HasPrefix(t.String(), "video/"):
			return KindVideo, m, nil
		case strings.HasPrefix(t.String(), "audio/"):
			return KindAudio, m, nil
		}
	}
	return "", m, fmt.Errorf("%w: %s", errs.ErrUnsupportedMedia, m)
}
