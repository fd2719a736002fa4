package http

import (
	"fmt"
	"strings"
)

// Method is one of the nine request methods of RFC 9110. The zero
// value is not valid; MethodGet is the default.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

var methods = map[Method]struct{}{
	MethodGet:     {},
	MethodHead:    {},
	MethodPost:    {},
	MethodPut:     {},
	MethodDelete:  {},
	MethodConnect: {},
	MethodOptions: {},
	MethodTrace:   {},
	MethodPatch:   {},
}

// ParseMethod matches a token against the closed method set, ignoring
// case. Tokens outside the set are an error.
func ParseMethod(token string) (Method, error) {
	method := Method(strings.ToUpper(token))
	if _, ok := methods[method]; !ok {
		return MethodGet, fmt.Errorf("http: unknown method %q", token)
	}

	return method, nil
}
