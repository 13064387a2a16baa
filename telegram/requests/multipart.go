package requests

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/codex-k8s/telegram-bot/telegram/wire"
)

type inputFileKind int

const (
	inputNone inputFileKind = iota
	inputRef
	inputPath
	inputData
)

// InputFile is a file to send: an existing file_id or URL, a path on disk, or in-memory bytes.
type InputFile struct {
	kind     inputFileKind
	value    string
	fileName string
	data     []byte
}

// FileRef references a file already known to Telegram by file_id or URL.
func FileRef(ref string) InputFile {
	return InputFile{kind: inputRef, value: ref}
}

// FilePath uploads the file at path.
func FilePath(path string) InputFile {
	return InputFile{kind: inputPath, value: path}
}

// FileData uploads data under fileName.
func FileData(fileName string, data []byte) InputFile {
	return InputFile{kind: inputData, fileName: fileName, data: data}
}

// WithFileName overrides the uploaded file name. References ignore it.
func (f InputFile) WithFileName(name string) InputFile {
	if f.kind != inputRef {
		f.fileName = name
	}
	return f
}

func (f InputFile) multipartValue() (wire.MultipartValue, error) {
	switch f.kind {
	case inputRef:
		return wire.MultipartText(f.value), nil
	case inputPath:
		return wire.MultipartPath{Path: f.value, FileName: f.fileName}, nil
	case inputData:
		if f.fileName == "" {
			return nil, ErrInvalidMultipartFilename
		}
		return wire.MultipartData{FileName: f.fileName, Data: f.data}, nil
	default:
		return nil, ErrEmptyInputFile
	}
}

// Form collects multipart fields in order. The first error sticks and is returned by Build.
type Form struct {
	fields wire.MultipartBody
	err    error
}

// Text adds a form value.
func (f *Form) Text(name, value string) *Form {
	f.fields = append(f.fields, wire.Field{Name: name, Value: wire.MultipartText(value)})
	return f
}

// OptionalText adds a form value unless it is empty.
func (f *Form) OptionalText(name, value string) *Form {
	if value == "" {
		return f
	}
	return f.Text(name, value)
}

// OptionalInt adds an integer form value unless it is zero.
func (f *Form) OptionalInt(name string, value int64) *Form {
	if value == 0 {
		return f
	}
	return f.Text(name, strconv.FormatInt(value, 10))
}

// WhenTrue adds "true" only when value is set.
func (f *Form) WhenTrue(name string, value bool) *Form {
	if !value {
		return f
	}
	return f.Text(name, "true")
}

// JSON adds value encoded as JSON text unless it is nil.
func (f *Form) JSON(name string, value any) *Form {
	if value == nil || f.err != nil {
		return f
	}
	data, err := json.Marshal(value)
	if err != nil {
		f.err = fmt.Errorf("encode %s: %w", name, err)
		return f
	}
	return f.Text(name, string(data))
}

// File adds an upload part, or a text part for file references.
func (f *Form) File(name string, file InputFile) *Form {
	if f.err != nil {
		return f
	}
	value, err := file.multipartValue()
	if err != nil {
		f.err = fmt.Errorf("%s: %w", name, err)
		return f
	}
	f.fields = append(f.fields, wire.Field{Name: name, Value: value})
	return f
}

// Build returns the multipart POST to method.
func (f *Form) Build(method string) (wire.HTTPRequest, error) {
	if f.err != nil {
		return wire.HTTPRequest{}, f.err
	}
	return wire.HTTPRequest{
		URL:    wire.RequestURL(method),
		Method: wire.MethodPost,
		Body:   f.fields,
	}, nil
}
