package services

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"

	"photogram-api/testutil"
)

// fileHeaders builds multipart file headers the way gin hands them to handlers.
// The content of each file sniffs as the image type its extension names.
func fileHeaders(t *testing.T, field string, names ...string) []*multipart.FileHeader {
	t.Helper()

	contents := make([][]byte, 0, len(names))
	for _, name := range names {
		contents = append(contents, testutil.ImageBytes(name))
	}
	return rawFileHeaders(t, field, names, contents)
}

func rawFileHeaders(t *testing.T, field string, names []string, contents [][]byte) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for i, name := range names {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(contents[i])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field]
}
