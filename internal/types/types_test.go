package types

import (
	"bytes"
	"io"
	"testing"
)

func TestContentTypeString(t *testing.T) {
	testCases := []struct {
		ct      ContentType
		mime    string
		isImage bool
	}{
		{HTML, "text/html", false},
		{GIF, "image/gif", true},
		{JPEG, "image/jpeg", true},
		{PNG, "image/png", true},
		{ContentType(42), "text/html", false},
	}

	for _, tc := range testCases {
		t.Run(tc.mime, func(t *testing.T) {
			if got := tc.ct.String(); got != tc.mime {
				t.Errorf("Expected MIME %q, got %q", tc.mime, got)
			}
			if got := tc.ct.IsImage(); got != tc.isImage {
				t.Errorf("Expected IsImage %v, got %v", tc.isImage, got)
			}
		})
	}
}

func TestRequestResolved(t *testing.T) {
	if (Request{}).Resolved() {
		t.Error("Expected zero Request to be unresolved")
	}
	if (Request{Method: "POST", Target: "/x"}).Resolved() {
		t.Error("Expected POST request to be unresolved")
	}
	if !(Request{Method: "GET", Target: "/", Path: ""}).Resolved() {
		t.Error("Expected GET request for root to be resolved")
	}
}

func TestHandlerFunc(t *testing.T) {
	var h Handler = HandlerFunc(func(conn io.ReadWriter) error {
		_, err := io.Copy(conn, bytes.NewBufferString("pong"))
		return err
	})

	var buf bytes.Buffer
	if err := h.Handle(&buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if buf.String() != "pong" {
		t.Errorf("Expected 'pong', got '%s'", buf.String())
	}
}
