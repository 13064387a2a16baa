package connector

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

// encodeBody renders a wire body into bytes and the matching content type.
// An empty content type means no body.
func encodeBody(body wire.Body) (string, []byte, error) {
	switch b := body.(type) {
	case nil, wire.EmptyBody:
		return "", nil, nil
	case wire.JSONBody:
		return "application/json", b, nil
	case wire.MultipartBody:
		return encodeMultipart(b)
	default:
		return "", nil, fmt.Errorf("unsupported body %T", body)
	}
}

func encodeMultipart(fields wire.MultipartBody) (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, field := range fields {
		if err := writeField(w, field); err != nil {
			return "", nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

func writeField(w *multipart.Writer, field wire.Field) error {
	switch v := field.Value.(type) {
	case wire.MultipartText:
		return w.WriteField(field.Name, string(v))
	case wire.MultipartData:
		part, err := w.CreateFormFile(field.Name, v.FileName)
		if err != nil {
			return err
		}
		_, err = part.Write(v.Data)
		return err
	case wire.MultipartPath:
		f, err := os.Open(v.Path)
		if err != nil {
			return err
		}
		defer f.Close()

		name := v.FileName
		if name == "" {
			name = filepath.Base(v.Path)
		}
		part, err := w.CreateFormFile(field.Name, name)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, f)
		return err
	default:
		return fmt.Errorf("unsupported value %T", field.Value)
	}
}
