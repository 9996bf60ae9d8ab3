package blobstore

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ErrInvalidImage reports a payload that is not a decodable image in a
// supported format.
var ErrInvalidImage = errors.New("invalid image payload")

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
}

// LocalStore writes decoded images to a directory on disk and returns
// URLs under a configured base path.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// SaveDataURI decodes a "data:image/<type>;base64,<payload>" URI,
// verifies the payload is a real image, stores it under a random
// filename and returns the public URL.
func (s *LocalStore) SaveDataURI(dataURI string) (string, error) {
	mediaType, payload, err := splitDataURI(dataURI)
	if err != nil {
		return "", err
	}

	ext, ok := extensions[mediaType]
	if !ok {
		return "", ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidImage
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", ErrInvalidImage
	}

	name := uuid.NewString() + "." + ext
	if err := imaging.Save(img, filepath.Join(s.dir, name)); err != nil {
		return "", err
	}
	return path.Join(s.baseURL, name), nil
}

// Remove deletes a stored file by its public URL. Unknown URLs are
// ignored.
func (s *LocalStore) Remove(url string) error {
	name := path.Base(url)
	if name == "." || name == "/" || path.Dir(url) != s.baseURL {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func splitDataURI(dataURI string) (mediaType, payload string, err error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "", "", ErrInvalidImage
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", ErrInvalidImage
	}
	mediaType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", "", ErrInvalidImage
	}
	return mediaType, payload, nil
}
