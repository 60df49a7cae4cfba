package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/dwn/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandPing     CommandType = "ping"
	CommandRun      CommandType = "run"
	CommandState    CommandType = "state"
	CommandMonitors CommandType = "monitors"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// RunPayload names a window manager command and its arguments.
type RunPayload struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

// PingData is returned by ping.
type PingData struct {
	Version       string `json:"version" yaml:"version"`
	UptimeSeconds int64  `json:"uptime_seconds" yaml:"uptime_seconds"`
}

// MonitorsData represents the data returned by monitors
type MonitorsData struct {
	Monitors []wm.MonitorInfo `json:"monitors" yaml:"monitors"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
