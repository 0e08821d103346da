package httpserver

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/techclub/club-portal/internal/service"
)

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formReader turns a multipart form into a typed payload. The admin client
// encodes list-valued fields as JSON strings inside form fields; they are
// decoded here, at the boundary, and nowhere else.
type formReader struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
	errs   *service.FieldErrors
}

func newFormReader(c echo.Context) (*formReader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	return &formReader{
		values: form.Value,
		files:  form.File,
		errs:   &service.FieldErrors{},
	}, nil
}

func (f *formReader) raw(name string) (string, bool) {
	vals, ok := f.values[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func (f *formReader) str(name string) *string {
	v, ok := f.raw(name)
	if !ok {
		return nil
	}
	return &v
}

func (f *formReader) boolField(name string) *bool {
	v, ok := f.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		f.errs.Add(name, "must be true or false")
		return nil
	}
	return &b
}

func (f *formReader) intField(name string) *int {
	v, ok := f.raw(name)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.errs.Add(name, "must be a number")
		return nil
	}
	return &n
}

func (f *formReader) timeField(name string) *time.Time {
	v, ok := f.raw(name)
	if !ok || v == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	f.errs.Add(name, "must be an RFC3339 or YYYY-MM-DD date")
	return nil
}

// jsonInto decodes a JSON-encoded form field into dst and reports whether the
// field was present and valid.
func (f *formReader) jsonInto(name string, dst any) bool {
	v, ok := f.raw(name)
	if !ok || v == "" {
		return false
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		f.errs.Add(name, "must be valid JSON")
		return false
	}
	return true
}

func (f *formReader) file(name string) *multipart.FileHeader {
	fhs, ok := f.files[name]
	if !ok || len(fhs) == 0 {
		return nil
	}
	return fhs[0]
}

func (f *formReader) fileList(name string, max int) []*multipart.FileHeader {
	fhs := f.files[name]
	if len(fhs) > max {
		f.errs.Add(name, "too many files")
		return nil
	}
	return fhs
}

func (f *formReader) err() error {
	return f.errs.OrNil()
}
