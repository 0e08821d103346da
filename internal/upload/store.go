package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/techclub/club-portal/internal/models"
)

// MaxFileSize matches the original 5MB upload cap.
const MaxFileSize = 5 << 20

var (
	ErrNotImage = errors.New("only image files are allowed")
	ErrTooLarge = errors.New("file exceeds the 5MB upload limit")
)

// Store writes uploaded images under a public static directory; the returned
// Path is the URL the static route serves them from.
type Store struct {
	BaseDir string
}

func NewStore(baseDir string) (*Store, error) {
	for _, sub := range []string{"events", "activities", "leadership"} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("upload dir %s: %w", sub, err)
		}
	}
	return &Store{BaseDir: baseDir}, nil
}

func (s *Store) Save(fh *multipart.FileHeader, subdir, prefix string) (models.Attachment, error) {
	if fh.Size > MaxFileSize {
		return models.Attachment{}, ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return models.Attachment{}, err
	}
	defer src.Close()

	// Sniff the content, the declared header is attacker-controlled.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return models.Attachment{}, err
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return models.Attachment{}, ErrNotImage
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return models.Attachment{}, err
	}

	name := fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), strings.ToLower(filepath.Ext(fh.Filename)))
	dst, err := os.Create(filepath.Join(s.BaseDir, subdir, name))
	if err != nil {
		return models.Attachment{}, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return models.Attachment{}, err
	}

	return models.Attachment{
		Filename: name,
		Path:     "/uploads/" + subdir + "/" + name,
		Size:     fh.Size,
	}, nil
}
