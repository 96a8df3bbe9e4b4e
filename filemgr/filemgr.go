// Package filemgr stores uploaded files under ./static and produces
// thumbnails for image uploads.
package filemgr

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"flexwage/utils"
)

const maxUploadSize = 10 << 20 // 10 MB

// SaveFormFile writes the named multipart field to static/<dir> under a random
// filename and returns the relative path. Image uploads also get a 150px
// thumbnail next to the original, prefixed "thumb_".
func SaveFormFile(r *http.Request, field, dir string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("missing file field %q: %w", field, err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := utils.GenerateRandomString(16) + ext
	destDir := filepath.Join("static", dir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	destPath := filepath.Join(destDir, name)
	out, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}

	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		img, err := imaging.Open(destPath)
		if err != nil {
			return "", fmt.Errorf("decoding image: %w", err)
		}
		thumb := imaging.Resize(img, 150, 0, imaging.Lanczos)
		if err := imaging.Save(thumb, filepath.Join(destDir, "thumb_"+name)); err != nil {
			return "", fmt.Errorf("saving thumbnail: %w", err)
		}
	}

	return filepath.ToSlash(filepath.Join(dir, name)), nil
}
