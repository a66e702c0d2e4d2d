package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"photogram-api/apperrors"
	"photogram-api/storage"
)

// imageTypes are the accepted upload types and the extension stored keys get.
var imageTypes = []struct {
	mime string
	ext  string
}{
	{"image/jpeg", ".jpg"},
	{"image/png", ".png"},
	{"image/gif", ".gif"},
	{"image/webp", ".webp"},
}

type storedFile struct {
	Key string
	URL string
}

// uploadFiles stores every file under prefix. On failure the files already
// stored are removed again.
func uploadFiles(ctx context.Context, media storage.Storage, prefix string, files []*multipart.FileHeader) ([]storedFile, error) {
	if err := validateImages(files); err != nil {
		return nil, err
	}

	stored := make([]storedFile, 0, len(files))
	for _, fh := range files {
		file, err := uploadFile(ctx, media, prefix, fh)
		if err != nil {
			removeFiles(ctx, media, stored, nil)
			return nil, err
		}
		stored = append(stored, file)
	}
	return stored, nil
}

func uploadFile(ctx context.Context, media storage.Storage, prefix string, fh *multipart.FileHeader) (storedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return storedFile{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	contentType, ext, err := detectImage(f)
	if err != nil {
		return storedFile{}, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return storedFile{}, fmt.Errorf("failed to rewind upload: %w", err)
	}

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
	url, err := media.Put(ctx, key, f, fh.Size, contentType)
	if err != nil {
		return storedFile{}, fmt.Errorf("failed to store upload: %w", err)
	}
	return storedFile{Key: key, URL: url}, nil
}

// detectImage sniffs the content of r. The client's filename and Content-Type are ignored.
func detectImage(r io.Reader) (contentType, ext string, err error) {
	detected, err := mimetype.DetectReader(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to read upload: %w", err)
	}
	for _, t := range imageTypes {
		if detected.Is(t.mime) {
			return t.mime, t.ext, nil
		}
	}
	return "", "", fmt.Errorf("%w: got %s", apperrors.ErrUnsupportedImage, detected.String())
}

// validateImages checks every file before anything is stored.
func validateImages(files []*multipart.FileHeader) error {
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("failed to open upload: %w", err)
		}
		_, _, err = detectImage(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// removeFiles deletes stored media, logging failures when log is set.
func removeFiles(ctx context.Context, media storage.Storage, files []storedFile, log *slog.Logger) {
	for _, file := range files {
		if err := media.Delete(ctx, file.Key); err != nil && log != nil {
			log.Warn("Failed to delete media", slog.String("key", file.Key), slog.String("error", err.Error()))
		}
	}
}
