package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/dwn/internal/wm"
)

// Controller is the window manager surface the server drives. *wm.State
// implements it by funnelling every call through its event loop.
type Controller interface {
	Query(ctx context.Context) (wm.Snapshot, error)
	Exec(ctx context.Context, name string, args []string) error
}

// requestTimeout bounds how long one request may wait for the event loop.
const requestTimeout = 5 * time.Second

// Server handles IPC requests from clients. It implements suture.Service.
type Server struct {
	socketPath string
	wm         Controller
	logger     *slog.Logger
	startTime  time.Time
}

// NewServer creates a new IPC server listening on socketPath once served.
func NewServer(socketPath string, ctl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		socketPath: socketPath,
		wm:         ctl,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// Serve listens until ctx is done. A stale socket from a previous run is
// replaced.
func (s *Server) Serve(ctx context.Context) error {
	// Remove existing socket if present
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	defer os.Remove(s.socketPath)

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConnection(ctx, conn)
		}()
	}
}

// String names the service in supervisor logs.
func (s *Server) String() string { return "ipc" }

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * requestTimeout))

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.writeResponse(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	s.writeResponse(conn, s.handleCommand(ctx, req))
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(ctx context.Context, req *Request) *Response {
	switch req.Command {
	case CommandPing:
		return s.handlePing()
	case CommandRun:
		return s.handleRun(ctx, req.Payload)
	case CommandState:
		return s.handleState(ctx)
	case CommandMonitors:
		return s.handleMonitors(ctx)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handlePing() *Response {
	resp, _ := NewOKResponse(PingData{
		Version:       wm.Name + "-" + wm.Version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	})
	return resp
}

func (s *Server) handleRun(ctx context.Context, payload json.RawMessage) *Response {
	var req RunPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid run payload: %v", err))
	}
	if req.Name == "" {
		return NewErrorResponse("name is required")
	}

	s.logger.Debug("IPC run", "command", req.Name, "args", req.Args)
	if err := s.wm.Exec(ctx, req.Name, req.Args); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleState(ctx context.Context) *Response {
	snap, err := s.wm.Query(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to read state: %v", err))
	}
	resp, err := NewOKResponse(snap)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// handleMonitors returns the monitors without their client lists.
func (s *Server) handleMonitors(ctx context.Context) *Response {
	snap, err := s.wm.Query(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}
	data := MonitorsData{Monitors: make([]wm.MonitorInfo, len(snap.Monitors))}
	for i, m := range snap.Monitors {
		m.Clients = nil
		data.Monitors[i] = m
	}
	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) writeResponse(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}
