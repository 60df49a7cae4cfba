package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/dwn/internal/runtimepath"
	"github.com/1broseidon/dwn/internal/wm"
)

// Client handles IPC communication with the window manager
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client for the default socket
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for an explicit socket path.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to dwn: %w (is dwn running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("dwn error: %s", resp.Error)
	}

	return &resp, nil
}

// Ping checks if the window manager is responding
func (c *Client) Ping() (*PingData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandPing})
	if err != nil {
		return nil, err
	}

	var data PingData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse ping data: %w", err)
	}
	return &data, nil
}

// Run executes a window manager command such as "view" with args ["3"].
func (c *Client) Run(name string, args ...string) error {
	payload, err := json.Marshal(RunPayload{Name: name, Args: args})
	if err != nil {
		return fmt.Errorf("failed to marshal run payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandRun, Payload: payload})
	return err
}

// State retrieves a snapshot of monitors and clients
func (c *Client) State() (*wm.Snapshot, error) {
	resp, err := c.sendRequest(&Request{Command: CommandState})
	if err != nil {
		return nil, err
	}

	var snap wm.Snapshot
	if err := json.Unmarshal(resp.Data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse state data: %w", err)
	}
	return &snap, nil
}

// Monitors retrieves monitor information
func (c *Client) Monitors() (*MonitorsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandMonitors})
	if err != nil {
		return nil, err
	}

	var monitors MonitorsData
	if err := json.Unmarshal(resp.Data, &monitors); err != nil {
		return nil, fmt.Errorf("failed to parse monitors data: %w", err)
	}
	return &monitors, nil
}
