// Package mcp exposes the running window manager to MCP clients over stdio.
// Every tool is a thin call through the dwn IPC socket.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dwn/internal/ipc"
	"github.com/1broseidon/dwn/internal/wm"
)

const (
	ServerName    = "dwn"
	ServerVersion = "0.1.0"
)

// Backend is the window manager connection the tools use. *ipc.Client
// implements it.
type Backend interface {
	Run(name string, args ...string) error
	State() (*wm.Snapshot, error)
	Monitors() (*ipc.MonitorsData, error)
}

// StatusFunc publishes status text, normally by setting the root window
// name.
type StatusFunc func(text string) error

// Server is the MCP server for dwn.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   Backend
	setStatus StatusFunc
	logger    *slog.Logger
}

// NewServer creates a new MCP server backed by b. setStatus may be nil, in
// which case the set_status tool is not offered.
func NewServer(b Backend, setStatus StatusFunc, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		backend:   b,
		setStatus: setStatus,
		logger:    logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_state",
		Description: "Return the window manager state: every monitor with its viewed tags, layout, master factor and the managed windows in tiling order, plus the bar status text.",
	}, s.handleGetState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List monitors with their geometry, viewed tags and layout, without windows.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_commands",
		Description: "List the command names accepted by run_command.",
	}, s.handleListCommands)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_command",
		Description: "Run a window manager command on the selected monitor, exactly as a key binding would. Tags are 1-based and comma separated (\"1,3\" or \"all\"). Examples: view [\"2\"], tag [\"4\"], setlayout [\"monocle\"], setmfact [\"+0.05\"], focusstack [\"1\"], killclient.",
	}, s.handleRunCommand)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "find_window",
		Description: "Find the first managed window whose title contains the given text or whose class matches exactly. Returns its monitor and details.",
	}, s.handleFindWindow)

	if s.setStatus != nil {
		mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
			Name:        "set_status",
			Description: "Replace the status text on the right of the bar.",
		}, s.handleSetStatus)
	}
}
