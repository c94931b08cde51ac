package test

import (
	"bytes"
	"mime/multipart"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

// LoadTestFile loads a file from the testdata directory as multipart form
// body. It must be called from a package two levels below internal/.
func LoadTestFile(t *testing.T, filePath string) (*bytes.Buffer, map[string]string) {
	content, err := os.ReadFile(path.Join("../../../testdata", filePath))
	require.Nil(t, err)

	return MultipartFile(t, path.Base(filePath), content)
}

// MultipartFile returns a multipart form body with the content as the
// "file" field and the headers for the HTTP request.
func MultipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", filename)
	require.Nil(t, err)

	_, err = w.Write(content)
	require.Nil(t, err)
	require.Nil(t, mw.Close())

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}
