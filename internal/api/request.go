package api

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ColeHoward/WebWorker/internal/types"
)

// reads the request header block from r and extracts the requested resource.
// Parsing stops at the first blank line or when r is exhausted. A read error
// is returned together with whatever was extracted before it happened.
func ParseRequest(r io.Reader) (types.Request, error) {
	var req types.Request
	reader := bufio.NewReader(r)

	for first := true; ; first = false {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return req, nil
			}
			return req, fmt.Errorf("reading request: %w", err)
		}

		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if first {
			req = parseRequestLine(line)
		}

		// header lines after the request line are discarded
		if err != nil {
			if errors.Is(err, io.EOF) {
				return req, nil
			}
			return req, fmt.Errorf("reading request: %w", err)
		}
		if line == "" {
			return req, nil
		}
	}
}

// only "GET <target> ..." yields a path; any other line leaves the request unresolved
func parseRequestLine(line string) types.Request {
	method, rest, ok := strings.Cut(line, " ")
	if !ok {
		return types.Request{}
	}
	if method != "GET" {
		return types.Request{Method: method}
	}

	target, _, _ := strings.Cut(rest, " ")
	return types.Request{
		Method: method,
		Target: target,
		Path:   strings.TrimPrefix(target, "/"),
	}
}
