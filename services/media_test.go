package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogram-api/apperrors"
	"photogram-api/forms"
	"photogram-api/logger"
	"photogram-api/models"
	"photogram-api/storage"
	"photogram-api/testutil"
)

func TestUploadFiles_ExtensionComesFromContent(t *testing.T) {
	media := storage.NewMemory()
	files := rawFileHeaders(t, "images",
		[]string{"holiday.html", "scan.JPEG"},
		[][]byte{testutil.ImageBytes("x.png"), testutil.ImageBytes("x.gif")})

	stored, err := uploadFiles(context.Background(), media, "posts/p1", files)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.True(t, strings.HasSuffix(stored[0].Key, ".png"), stored[0].Key)
	assert.True(t, strings.HasSuffix(stored[1].Key, ".gif"), stored[1].Key)
	assert.True(t, media.Has(stored[0].Key))
}

func TestUploadFiles_RejectsNonImages(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content []byte
	}{
		{"html", "evil.html", []byte("<html><script>alert(1)</script></html>")},
		{"script disguised as png", "evil.png", []byte("<script>alert(document.cookie)</script>")},
		{"svg", "logo.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)},
		{"plain text", "notes.txt", []byte("hello")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			media := storage.NewMemory()
			files := rawFileHeaders(t, "images",
				[]string{"ok.jpg", tt.file},
				[][]byte{testutil.ImageBytes("ok.jpg"), tt.content})

			_, err := uploadFiles(context.Background(), media, "posts/p1", files)
			assert.ErrorIs(t, err, apperrors.ErrUnsupportedImage)
			assert.Zero(t, media.Len(), "nothing is stored when one file is rejected")
		})
	}
}

func TestPostService_CreateRejectsNonImage(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	media := storage.NewMemory()
	alice := testutil.CreateUser(t, db, "alice")
	svc := NewPostService(db, media, logger.Discard())

	files := rawFileHeaders(t, "images", []string{"evil.html"}, [][]byte{[]byte("<script>alert(1)</script>")})
	_, err := svc.Create(ctx, alice.ID, forms.PostForm{Caption: "x"}, files)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedImage)

	var posts int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Zero(t, posts)
	assert.Zero(t, media.Len())
}
