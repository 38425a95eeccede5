package model

import "encoding/base64"

// Request is the normalized inbound HTTP request.
type Request struct {
	HTTPMethod            string            `json:"httpMethod"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Headers               map[string]string `json:"headers,omitempty"`
	Body                  string            `json:"body"`
	IsBase64Encoded       bool              `json:"isBase64Encoded,omitempty"`
}

// Query returns a query string parameter or "".
func (r *Request) Query(key string) string {
	if r.QueryStringParameters == nil {
		return ""
	}
	return r.QueryStringParameters[key]
}

// BodyBytes returns the raw body, decoding it when it was base64 encoded.
func (r *Request) BodyBytes() ([]byte, error) {
	if !r.IsBase64Encoded {
		return []byte(r.Body), nil
	}
	return base64.StdEncoding.DecodeString(r.Body)
}

// Response is the normalized outbound HTTP response.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}
