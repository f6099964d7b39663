package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ColeHoward/WebWorker/internal/types"
)

// long date-time form used in the Date header, always rendered in GMT
const HeaderDateLayout = "Jan 2, 2006, 3:04:05 PM"

// writes the status line and header block, terminated by a blank line.
// No Content-Length is sent: the body ends when the connection closes.
func WriteHeader(w io.Writer, status int, ct types.ContentType, now time.Time, server string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", status, http.StatusText(status))
	fmt.Fprintf(&b, "Date: %s\r\n", now.UTC().Format(HeaderDateLayout))
	fmt.Fprintf(&b, "Server: %s\r\n", server)
	b.WriteString("Connection: close\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", ct)
	b.WriteString("\r\n")

	_, err := io.WriteString(w, b.String())
	return err
}
