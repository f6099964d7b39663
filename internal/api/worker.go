package api

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ColeHoward/WebWorker/internal/types"
)

const (
	DefaultServerName     = "WebWorker/1.0"
	DefaultIdentification = "Server's identification string : This is the WebWorker server"
)

// Worker answers one request per connection with a file from Root.
type Worker struct {
	// serving root; request paths are joined onto it without sandboxing
	Root string
	// value of the Server header
	ServerName string
	// line written in place of any line carrying the server tag
	Identification string
	// bounds the wait for the request header block, zero disables it
	ReadTimeout time.Duration
	// request bytes read before parsing stops, zero means unlimited
	MaxRequestBytes int64
	Now             func() time.Time
	Logger          *slog.Logger
}

func NewWorker(root string) *Worker {
	return &Worker{
		Root:           root,
		ServerName:     DefaultServerName,
		Identification: DefaultIdentification,
	}
}

type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

// Handle reads the request from conn, then writes the header block and body.
// Missing resources and unsupported requests are answered with 404. Errors
// are I/O faults after which no complete response can be guaranteed.
func (w *Worker) Handle(conn io.ReadWriter) error {
	logger := w.logger()
	logger.Debug("handling connection")
	defer logger.Debug("done handling connection")

	if d, ok := conn.(readDeadliner); ok && w.ReadTimeout > 0 {
		if err := d.SetReadDeadline(time.Now().Add(w.ReadTimeout)); err != nil {
			return fmt.Errorf("setting read deadline: %w", err)
		}
	}

	var in io.Reader = conn
	if w.MaxRequestBytes > 0 {
		in = io.LimitReader(conn, w.MaxRequestBytes)
	}

	req, err := ParseRequest(in)
	if err != nil {
		// respond with whatever was parsed before the read failed
		logger.Debug("request error", "err", err)
	}
	logger.Debug("request", "method", req.Method, "target", req.Target)

	contentType := ContentTypeOf(req.Path)
	res, err := OpenResource(w.root(), req)
	if err != nil {
		return err
	}
	defer res.Close()

	status := http.StatusNotFound
	if res.Exists() {
		status = http.StatusOK
	}

	out := bufio.NewWriter(conn)
	if err := WriteHeader(out, status, contentType, w.now(), w.serverName()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	renderer := Renderer{Identification: w.identification(), Now: w.Now}
	if err := renderer.Render(out, contentType, res); err != nil {
		// push out whatever was rendered before the fault
		out.Flush()
		return fmt.Errorf("rendering %q: %w", req.Path, err)
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("flushing response: %w", err)
	}
	logger.Debug("response", "status", status, "content_type", contentType.String(), "path", req.Path)
	return nil
}

func (w *Worker) root() string {
	if w.Root == "" {
		return "."
	}
	return w.Root
}

func (w *Worker) serverName() string {
	if w.ServerName == "" {
		return DefaultServerName
	}
	return w.ServerName
}

func (w *Worker) identification() string {
	if w.Identification == "" {
		return DefaultIdentification
	}
	return w.Identification
}

func (w *Worker) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Worker) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

var _ types.Handler = (*Worker)(nil)
