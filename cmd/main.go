package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ColeHoward/WebWorker/internal/api"
	"github.com/ColeHoward/WebWorker/internal/server"
)

type options struct {
	server          server.ServerConfig
	root            string
	serverName      string
	identification  string
	readTimeout     time.Duration
	maxRequestBytes int64
	logLevel        slog.Level
}

func parseOptions(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("webworker", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.server.BindAddress, "addr", "0.0.0.0", "IPv4 address to listen on")
	fs.IntVar(&opts.server.ListenPort, "port", 8080, "Port to listen on")
	fs.IntVar(&opts.server.Backlog, "backlog", 0, "Listen backlog, 0 uses the system maximum")
	fs.IntVar(&opts.server.MaxConnections, "max-connections", 0, "Connections handled at once, 0 means unlimited")
	fs.DurationVar(&opts.server.WriteTimeout, "write-timeout", 30*time.Second, "Deadline for writing a response")
	fs.StringVar(&opts.root, "root", ".", "Directory resources are served from")
	fs.StringVar(&opts.serverName, "server-name", api.DefaultServerName, "Value of the Server header")
	fs.StringVar(&opts.identification, "identification", api.DefaultIdentification, "Text substituted for the server tag")
	fs.DurationVar(&opts.readTimeout, "read-timeout", 5*time.Second, "Deadline for receiving the request header")
	fs.Int64Var(&opts.maxRequestBytes, "max-request-bytes", 1024*1024, "Request bytes read before parsing stops")
	fs.TextVar(&opts.logLevel, "log-level", slog.LevelInfo, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	info, err := os.Stat(opts.root)
	if err != nil {
		return options{}, fmt.Errorf("serving root: %w", err)
	}
	if !info.IsDir() {
		return options{}, fmt.Errorf("serving root %q is not a directory", opts.root)
	}
	return opts, nil
}

func newWorker(opts options, logger *slog.Logger) *api.Worker {
	worker := api.NewWorker(opts.root)
	worker.ServerName = opts.serverName
	worker.Identification = opts.identification
	worker.ReadTimeout = opts.readTimeout
	worker.MaxRequestBytes = opts.maxRequestBytes
	worker.Logger = logger
	return worker
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: opts.logLevel}))
	slog.SetDefault(logger)

	logger.Info("serving files", "root", opts.root)
	if err := server.StartServer(opts.server, newWorker(opts, logger), logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
