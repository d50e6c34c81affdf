package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Form is a multipart/form-data payload: ordered text fields plus at most
// one file part.
type Form struct {
	fields []field
	file   *filePart
}

type field struct{ name, value string }

type filePart struct {
	field, filename string
	data            []byte
}

func (f *Form) Set(name, value string) {
	f.fields = append(f.fields, field{name, value})
}

func (f *Form) SetFile(fieldName, filename string, data []byte) {
	f.file = &filePart{field: fieldName, filename: filename, data: data}
}

// AttachFile reads path into the file part. A missing path or an empty file
// attaches nothing and reports false.
func (f *Form) AttachFile(fieldName, path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	f.SetFile(fieldName, filepath.Base(path), data)
	return true, nil
}

func (f *Form) Has(name string) bool {
	if f.file != nil && f.file.field == name {
		return true
	}
	for _, fl := range f.fields {
		if fl.name == name {
			return true
		}
	}
	return false
}

func (f *Form) Value(name string) string {
	for _, fl := range f.fields {
		if fl.name == name {
			return fl.value
		}
	}
	return ""
}

// encode returns the body and the content type carrying its boundary.
func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, fl := range f.fields {
		if err := w.WriteField(fl.name, fl.value); err != nil {
			return nil, "", err
		}
	}
	if f.file != nil {
		part, err := w.CreateFormFile(f.file.field, f.file.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.file.data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
