// Package main provides the indigo-relay entrypoint.
//
// indigo-relay listens on a unix socket, frames and parses inbound HID
// messages, logs them, and optionally records them to a file or
// forwards them to an upstream socket. Unknown discriminants are
// relayed unchanged.
//
// Usage:
//
//	indigo-relay serve --socket <path> [options]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/simforge-io/indigo/hid"
	"github.com/simforge-io/indigo/log"
	"github.com/simforge-io/indigo/metrics"
	"github.com/simforge-io/indigo/record"
	"github.com/simforge-io/indigo/transport"
)

func main() {
	app := &cli.App{
		Name:           "indigo-relay",
		Usage:          "HID stream relay - accepts, logs, records, and forwards messages",
		Version:        "0.1.0",
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler already handled the exit
		os.Exit(1)
	}
}

// exitErrHandler handles errors from the CLI, respecting cli.ExitCoder.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Listen on a unix socket and relay inbound messages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "socket",
				Aliases:  []string{"s"},
				Usage:    "Unix socket path to listen on",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "record",
				Usage: "Record received messages to this file",
			},
			&cli.StringFlag{
				Name:  "forward",
				Usage: "Forward received messages to this upstream unix socket",
			},
			&cli.StringFlag{
				Name:  "device",
				Usage: "Device label attached to log lines",
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.NewLogger(log.Context{
		Device:    c.String("device"),
		Transport: "unix",
	})

	r := &relay{
		logger:  logger,
		metrics: metrics.NewCollector("unix", c.String("device"), ""),
	}

	if path := c.String("record"); path != "" {
		sink, err := record.CreateFile(path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		cfg := record.DefaultRecorderConfig()
		cfg.Logger = logger
		recorder, err := record.NewRecorder(sink, cfg)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		r.recorder = recorder
	}

	if path := c.String("forward"); path != "" {
		upstream, err := transport.Dial(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("dial upstream %s: %v", path, err), 1)
		}
		r.forward = upstream
	}

	socket := c.String("socket")
	// A stale socket file from a previous run blocks the listen.
	if err := removeStaleSocket(socket); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	listener, err := net.Listen("unix", socket)
	if err != nil {
		return cli.Exit(fmt.Sprintf("listen %s: %v", socket, err), 1)
	}

	logger.Info("relay listening", map[string]any{"socket": socket})
	err = r.serve(ctx, listener)

	snap := r.metrics.Snapshot()
	logger.Info("relay stopped", map[string]any{
		"messages_parsed": snap.MessagesParsed,
		"decode_errors":   snap.DecodeErrors,
		"unknown_kinds":   snap.UnknownKinds,
	})
	_ = logger.Sync()

	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

// removeStaleSocket unlinks an existing socket file. Anything else at
// the path is left alone and reported.
func removeStaleSocket(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("refusing to remove %s: not a socket", path)
	}
	return os.Remove(path)
}

// relay accepts stream connections and pumps their messages through
// the configured log, record, and forward stages.
type relay struct {
	logger   *log.Logger
	metrics  *metrics.Collector
	recorder *record.Recorder
	forward  transport.Conn

	wg sync.WaitGroup
}

// serve accepts connections until the context is canceled, then closes
// the listener, drains the connection handlers, and releases the
// recorder and forward resources.
func (r *relay) serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			r.wg.Wait()
			_ = r.shutdown()
			return fmt.Errorf("accept: %w", err)
		}
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.handleConn(ctx, conn)
		}()
	}

	r.wg.Wait()
	return r.shutdown()
}

// shutdown flushes the recorder and closes the forward connection.
func (r *relay) shutdown() error {
	var firstErr error
	if r.recorder != nil {
		if err := r.recorder.Close(); err != nil {
			firstErr = fmt.Errorf("close recording: %w", err)
		}
	}
	if r.forward != nil {
		if err := r.forward.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close upstream: %w", err)
		}
	}
	return firstErr
}

// handleConn frames messages off one connection until it ends. A
// framing error abandons the connection: past a bad size field the
// stream has no recoverable message boundary.
func (r *relay) handleConn(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()

	remote := conn.RemoteAddr().String()
	r.logger.Info("connection opened", map[string]any{"remote": remote})

	reader := transport.NewMessageReader(conn)
	for ctx.Err() == nil {
		wire, err := reader.ReadMessage()
		if err != nil {
			if err == io.EOF {
				break
			}
			r.metrics.IncDecodeError()
			r.logger.Error("framing failed, dropping connection", map[string]any{
				"remote": remote,
				"error":  err.Error(),
			})
			break
		}
		if err := r.handleWire(ctx, wire); err != nil {
			r.logger.Error("relay failed", map[string]any{
				"remote": remote,
				"error":  err.Error(),
			})
		}
	}

	r.logger.Info("connection closed", map[string]any{"remote": remote})
}

// handleWire parses, logs, records, and forwards one framed message.
// Parse failures count as decode errors but do not stop the stream;
// the frame boundary is already known.
func (r *relay) handleWire(ctx context.Context, wire []byte) error {
	msg, err := hid.ParseMessage(wire)
	if msg == nil {
		r.metrics.IncDecodeError()
		return fmt.Errorf("parse message: %w", err)
	}
	r.metrics.IncParsed()

	kind := msg.EventKind
	fields := map[string]any{
		"kind":       kind.String(),
		"message_id": msg.Header.MessageID,
		"timestamp":  msg.Payload.Timestamp,
		"bytes":      len(wire),
	}

	switch e := msg.Payload.Event.(type) {
	case *hid.TouchEvent:
		fields["x"], fields["y"] = e.X, e.Y
		fields["phase"] = e.Phase().String()
	case *hid.ButtonEvent:
		fields["source"] = e.Source.String()
		fields["direction"] = e.Direction.String()
		if !e.KnownCodes() {
			r.metrics.IncUnknownCodes()
		}
	case *hid.RawEvent:
		fields["kind"] = fmt.Sprintf("0x%02x", byte(e.RawKind))
		r.metrics.IncUnknownKind()
	}
	r.logger.Info("message received", fields)

	if r.recorder != nil {
		if err := r.recorder.RecordMessage(kind, msg.Payload.Timestamp, wire); err != nil {
			return fmt.Errorf("record message: %w", err)
		}
	}
	if r.forward != nil {
		if err := r.forward.Send(ctx, wire); err != nil {
			return fmt.Errorf("forward message: %w", err)
		}
	}
	return nil
}
