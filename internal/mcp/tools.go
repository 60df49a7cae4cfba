package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dwn/internal/fsignal"
	"github.com/1broseidon/dwn/internal/wm"
)

func (s *Server) handleGetState(_ context.Context, _ *mcpsdk.CallToolRequest, args GetStateInput) (*mcpsdk.CallToolResult, GetStateOutput, error) {
	snap, err := s.backend.State()
	if err != nil {
		return nil, GetStateOutput{}, err
	}
	out := GetStateOutput{
		Status:   snap.Status,
		Tags:     snap.Tags,
		Layouts:  snap.Layouts,
		Monitors: snap.Monitors,
	}
	if args.Monitor != nil {
		out.Monitors = nil
		for _, m := range snap.Monitors {
			if m.Num == *args.Monitor {
				out.Monitors = append(out.Monitors, m)
			}
		}
		if len(out.Monitors) == 0 {
			return nil, GetStateOutput{}, fmt.Errorf("monitor %d not found (have %d)", *args.Monitor, len(snap.Monitors))
		}
	}
	return nil, out, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	data, err := s.backend.Monitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	return nil, ListMonitorsOutput{Monitors: data.Monitors}, nil
}

func (s *Server) handleListCommands(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListCommandsInput) (*mcpsdk.CallToolResult, ListCommandsOutput, error) {
	return nil, ListCommandsOutput{Commands: wm.CommandNames()}, nil
}

func (s *Server) handleRunCommand(_ context.Context, _ *mcpsdk.CallToolRequest, args RunCommandInput) (*mcpsdk.CallToolResult, RunCommandOutput, error) {
	name := strings.TrimSpace(args.Name)
	if name == "" {
		return nil, RunCommandOutput{}, fmt.Errorf("name is required")
	}
	if _, ok := wm.Commands[name]; !ok {
		return nil, RunCommandOutput{}, fmt.Errorf("%w %q; call list_commands for valid names", wm.ErrUnknownCommand, name)
	}
	if err := s.backend.Run(name, args.Args...); err != nil {
		return nil, RunCommandOutput{}, err
	}

	ran := strings.TrimSpace(name + " " + strings.Join(args.Args, " "))
	s.logger.Info("mcp ran command", "command", ran)
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("Ran %s", ran)},
		},
	}, RunCommandOutput{Ran: ran}, nil
}

func (s *Server) handleFindWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FindWindowInput) (*mcpsdk.CallToolResult, FindWindowOutput, error) {
	if args.Title == "" && args.Class == "" {
		return nil, FindWindowOutput{}, fmt.Errorf("title or class is required")
	}
	snap, err := s.backend.State()
	if err != nil {
		return nil, FindWindowOutput{}, err
	}
	title := strings.ToLower(args.Title)
	for _, m := range snap.Monitors {
		for _, c := range m.Clients {
			if args.Class != "" && c.Class != args.Class {
				continue
			}
			if title != "" && !strings.Contains(strings.ToLower(c.Title), title) {
				continue
			}
			return nil, FindWindowOutput{Monitor: m.Num, Window: c}, nil
		}
	}
	return nil, FindWindowOutput{}, fmt.Errorf("no window matches title %q class %q", args.Title, args.Class)
}

func (s *Server) handleSetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, args SetStatusInput) (*mcpsdk.CallToolResult, SetStatusOutput, error) {
	if strings.HasPrefix(args.Text, fsignal.Prefix) {
		return nil, SetStatusOutput{}, fmt.Errorf("status text must not start with %q; use run_command instead", fsignal.Prefix)
	}
	if err := s.setStatus(args.Text); err != nil {
		return nil, SetStatusOutput{}, err
	}
	return nil, SetStatusOutput{Text: args.Text}, nil
}
