package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"", "\r", "%0D", "\n", "%0A")

// fileDisposition — заголовок Content-Disposition для файловой части.
func fileDisposition(field, filename string) string {
	return fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename))
}

type formFile struct {
	field, filename, contentType string
	data                         []byte
}

// form — multipart-тело запроса. Кодируется заново на каждой попытке,
// поэтому повтор после re-auth отправляет те же байты.
type form struct {
	fields [][2]string
	files  []formFile
}

func newForm() *form { return &form{} }

func (f *form) add(name, value string) *form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

// addOptional добавляет поле только при непустом значении.
func (f *form) addOptional(name, value string) *form {
	if value == "" {
		return f
	}
	return f.add(name, value)
}

func (f *form) addFile(field, filename, contentType string, data []byte) *form {
	f.files = append(f.files, formFile{field: field, filename: filename, contentType: contentType, data: data})
	return f
}

// encode возвращает тело и Content-Type с boundary.
func (f *form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, kv := range f.fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	for _, ff := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fileDisposition(ff.field, ff.filename))
		ct := ff.contentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(ff.data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
