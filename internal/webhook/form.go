package webhook

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Form accumulates a multipart/form-data body. Errors are sticky: the first
// failed write is reported by Close and later writes are no-ops.
type Form struct {
	buf bytes.Buffer
	mw  *multipart.Writer
	err error
}

func NewForm() *Form {
	f := &Form{}
	f.mw = multipart.NewWriter(&f.buf)
	return f
}

// AddField appends a plain text field.
func (f *Form) AddField(name, value string) {
	if f.err != nil {
		return
	}
	f.err = f.mw.WriteField(name, value)
}

// AddFile appends a file part with an explicit content type. An empty
// contentType falls back to application/octet-stream.
func (f *Form) AddFile(name, filename, contentType string, r io.Reader) {
	if f.err != nil {
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(name), escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	part, err := f.mw.CreatePart(h)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = io.Copy(part, r)
}

// Close finalizes the body and returns it together with the boundary-bearing
// content type. The form must not be written to afterwards.
func (f *Form) Close() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.mw.Close(); err != nil {
		return nil, "", err
	}
	return &f.buf, f.mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
