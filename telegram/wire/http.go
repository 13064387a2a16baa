// Package wire defines the transport-agnostic shape of a Bot API call.
package wire

import "strings"

// DefaultBaseURL is the public Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org/"

// Method is the HTTP verb used for a call.
type Method int

const (
	// MethodGet issues a GET request.
	MethodGet Method = iota
	// MethodPost issues a POST request.
	MethodPost
)

// String returns the HTTP verb.
func (m Method) String() string {
	if m == MethodGet {
		return "GET"
	}
	return "POST"
}

// RequestURL names the Bot API method a request targets.
type RequestURL string

// Resolve builds the full endpoint URL for the given base URL and bot token.
func (u RequestURL) Resolve(baseURL, token string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + "bot" + token + "/" + string(u)
}

// Body is one of EmptyBody, JSONBody or MultipartBody.
type Body interface {
	isBody()
}

// EmptyBody carries no payload.
type EmptyBody struct{}

// JSONBody is an application/json payload.
type JSONBody []byte

// MultipartBody is an ordered list of multipart/form-data fields.
type MultipartBody []Field

func (EmptyBody) isBody() {}
func (JSONBody) isBody() {}
func (MultipartBody) isBody() {}

// Field is a single named multipart part.
type Field struct {
	Name  string
	Value MultipartValue
}

// MultipartValue is one of MultipartText, MultipartPath or MultipartData.
type MultipartValue interface {
	isMultipartValue()
}

// MultipartText is a plain form value.
type MultipartText string

// MultipartPath uploads a file from disk. FileName overrides the base name of Path.
type MultipartPath struct {
	Path     string
	FileName string
}

// MultipartData uploads in-memory bytes under FileName.
type MultipartData struct {
	FileName string
	Data     []byte
}

func (MultipartText) isMultipartValue() {}
func (MultipartPath) isMultipartValue() {}
func (MultipartData) isMultipartValue() {}

// HTTPRequest is a serialized Bot API call.
type HTTPRequest struct {
	URL    RequestURL
	Method Method
	Body   Body
}

// HTTPResponse is the raw reply. A nil Body means the server sent nothing.
type HTTPResponse struct {
	Body []byte
}
