package api

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_EncodeFilePart(t *testing.T) {
	body, ct, err := newForm().
		add("favorite[name]", "Lamp").
		addFile("favorite[image]", `say "cheese".jpg`, "", pngBytes).
		encode()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(ct)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	mr := multipart.NewReader(body, params["boundary"])
	p, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "favorite[name]", p.FormName())

	p, err = mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "favorite[image]", p.FormName())
	assert.Equal(t, `say "cheese".jpg`, p.FileName())
	assert.Equal(t, "application/octet-stream", p.Header.Get("Content-Type"))
	data, err := io.ReadAll(p)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileDisposition_EscapesQuotes(t *testing.T) {
	assert.Equal(t, `form-data; name="favorite[image]"; filename="product_image.jpg"`,
		fileDisposition("favorite[image]", "product_image.jpg"))
	assert.Equal(t, `form-data; name="f"; filename="a\"b\\c%0A.jpg"`,
		fileDisposition("f", "a\"b\\c\n.jpg"))
}
