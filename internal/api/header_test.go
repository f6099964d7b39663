package api

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ColeHoward/WebWorker/internal/types"
)

var fixedTime = time.Date(2026, time.October, 17, 15, 4, 5, 0, time.UTC)

func TestWriteHeader(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		ct     types.ContentType
		expect string
	}{
		{
			name:   "found html",
			status: 200,
			ct:     types.HTML,
			expect: "HTTP/1.1 200 OK\r\n" +
				"Date: Oct 17, 2026, 3:04:05 PM\r\n" +
				"Server: test-server\r\n" +
				"Connection: close\r\n" +
				"Content-Type: text/html\r\n" +
				"\r\n",
		},
		{
			name:   "missing png keeps its content type",
			status: 404,
			ct:     types.PNG,
			expect: "HTTP/1.1 404 Not Found\r\n" +
				"Date: Oct 17, 2026, 3:04:05 PM\r\n" +
				"Server: test-server\r\n" +
				"Connection: close\r\n" +
				"Content-Type: image/png\r\n" +
				"\r\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteHeader(&buf, tc.status, tc.ct, fixedTime, "test-server"); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if buf.String() != tc.expect {
				t.Errorf("Expected header:\n%q\ngot:\n%q", tc.expect, buf.String())
			}
		})
	}
}

func TestWriteHeaderDateInGMT(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	var buf bytes.Buffer
	if err := WriteHeader(&buf, 200, types.HTML, fixedTime.In(tokyo), "s"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "Date: Oct 17, 2026, 3:04:05 PM\r\n") {
		t.Errorf("Expected GMT date, got: %q", buf.String())
	}
}

func TestWriteHeaderSingleBlankLine(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, 404, types.HTML, fixedTime, "s"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	header := buf.String()
	if !strings.HasSuffix(header, "\r\n\r\n") {
		t.Errorf("Expected header to end with a blank line, got: %q", header)
	}
	if strings.Count(header, "\r\n\r\n") != 1 {
		t.Errorf("Expected exactly one blank line, got: %q", header)
	}
	if strings.Contains(header, "Content-Length") {
		t.Errorf("Expected no Content-Length header, got: %q", header)
	}
}
