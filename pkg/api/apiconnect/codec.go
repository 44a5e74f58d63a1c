// Package apiconnect wires the api messages to Connect handlers and clients.
//
// Messages are plain Go structs, so every handler and client is built with
// a JSON codec registered under the "json" name. Requests must use the
// application/json content type.
package apiconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON returns the option that installs the JSON codec.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}

// serviceMux routes the procedures of one service to their handlers.
type serviceMux map[string]http.Handler

func (m serviceMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

func unaryHandler[Req, Res any](
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) http.Handler {
	return connect.NewUnaryHandler(procedure, fn, append([]connect.HandlerOption{WithJSON()}, opts...)...)
}

func unaryClient[Req, Res any](
	httpClient connect.HTTPClient,
	baseURL, procedure string,
	opts []connect.ClientOption,
) *connect.Client[Req, Res] {
	baseURL = strings.TrimRight(baseURL, "/")
	return connect.NewClient[Req, Res](httpClient, baseURL+procedure,
		append([]connect.ClientOption{WithJSON()}, opts...)...)
}
