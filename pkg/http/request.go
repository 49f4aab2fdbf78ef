package http

import (
	"context"
	"errors"
)

// RequestMethod is the HTTP verb of a Request
type RequestMethod string

const (
	GET  RequestMethod = "GET"
	POST RequestMethod = "POST"
)

// Request is a single call built on a Client. Query parameters and headers accumulate,
// so a request can be shaped field by field before Execute.
type Request struct {
	ctx         context.Context
	client      *Client
	method      RequestMethod
	path        string
	query       map[string]string
	headers     map[string]string
	body        any
	successResp any
	errorResp   any
	backoff     *BackoffConfig
}

// NewHttpClientRequest creates a GET request on client
func NewHttpClientRequest(client *Client) *Request {
	return &Request{
		ctx:     context.Background(),
		client:  client,
		method:  GET,
		path:    "/",
		query:   make(map[string]string),
		headers: make(map[string]string),
	}
}

// WithContext bounds the request and its retries
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx != nil {
		r.ctx = ctx
	}
	return r
}

func (r *Request) WithMethod(method RequestMethod) *Request {
	r.method = method
	return r
}

func (r *Request) WithPath(path string) *Request {
	r.path = path
	return r
}

// WithQueryParam adds one query parameter
func (r *Request) WithQueryParam(key, value string) *Request {
	r.query[key] = value
	return r
}

// WithQueryParams adds every entry of params
func (r *Request) WithQueryParams(params map[string]string) *Request {
	for key, value := range params {
		r.query[key] = value
	}
	return r
}

// WithHeader adds one header, overriding the client defaults
func (r *Request) WithHeader(key, value string) *Request {
	r.headers[key] = value
	return r
}

func (r *Request) WithBody(body any) *Request {
	r.body = body
	return r
}

// WithSuccessResp sets the value a 2xx body is decoded into
func (r *Request) WithSuccessResp(successResp any) *Request {
	r.successResp = successResp
	return r
}

// WithErrorResp sets the value a non 2xx body is decoded into
func (r *Request) WithErrorResp(errorResp any) *Request {
	r.errorResp = errorResp
	return r
}

// WithBackoff overrides the client's retry policy for this request
func (r *Request) WithBackoff(backoff *BackoffConfig) *Request {
	r.backoff = backoff
	return r
}

// Execute sends the request and returns the decoded success body, the decoded error body,
// the status code and the error of the last attempt.
func (r *Request) Execute() (any, any, int, error) {
	switch {
	case r.client == nil:
		return nil, nil, 0, errors.New("client is required")
	case r.method == "":
		return nil, nil, 0, errors.New("method is required")
	case r.path == "":
		return nil, nil, 0, errors.New("path is required")
	}

	return r.client.doRequestWithBackoff(r.ctx, string(r.method), r.path, r.query, r.headers,
		r.body, r.successResp, r.errorResp, r.backoff)
}
