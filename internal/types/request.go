package types

import "io"

// represents the request line of one client connection
type Request struct {
	Method string
	// request-target as written by the client, including its leading '/'
	Target string
	// Target with one leading '/' removed, relative to the serving root
	Path string
}

// reports whether a GET request line was recognized
func (r Request) Resolved() bool {
	return r.Method == "GET"
}

// defines how a single accepted connection is served
type Handler interface {
	// reads one request from conn and writes exactly one response to it
	Handle(conn io.ReadWriter) error
}

// function type that implements Handler
type HandlerFunc func(conn io.ReadWriter) error

// calls f(conn)
func (f HandlerFunc) Handle(conn io.ReadWriter) error {
	return f(conn)
}
