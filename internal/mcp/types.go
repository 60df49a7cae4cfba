package mcp

import "github.com/1broseidon/dwn/internal/wm"

// GetStateInput is the input for the get_state tool.
type GetStateInput struct {
	Monitor *int `json:"monitor,omitempty" jsonschema:"Only report this monitor number (default: all monitors)"`
}

// GetStateOutput is the output for the get_state tool.
type GetStateOutput struct {
	Status   string           `json:"status"`
	Tags     []string         `json:"tags"`
	Layouts  []string         `json:"layouts"`
	Monitors []wm.MonitorInfo `json:"monitors"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []wm.MonitorInfo `json:"monitors"`
}

// ListCommandsInput is the input for the list_commands tool.
type ListCommandsInput struct{}

// ListCommandsOutput is the output for the list_commands tool.
type ListCommandsOutput struct {
	Commands []string `json:"commands"`
}

// RunCommandInput is the input for the run_command tool.
type RunCommandInput struct {
	Name string   `json:"name" jsonschema:"required,Window manager command, e.g. view, tag, setlayout, killclient"`
	Args []string `json:"args,omitempty" jsonschema:"Command arguments, e.g. [\"3\"] for view or [\"+0.05\"] for setmfact"`
}

// RunCommandOutput is the output for the run_command tool.
type RunCommandOutput struct {
	Ran string `json:"ran"`
}

// FindWindowInput is the input for the find_window tool.
type FindWindowInput struct {
	Title string `json:"title,omitempty" jsonschema:"Case-insensitive substring of the window title"`
	Class string `json:"class,omitempty" jsonschema:"Exact WM_CLASS class name"`
}

// FindWindowOutput is the output for the find_window tool.
type FindWindowOutput struct {
	Monitor int           `json:"monitor"`
	Window  wm.ClientInfo `json:"window"`
}

// SetStatusInput is the input for the set_status tool.
type SetStatusInput struct {
	Text string `json:"text" jsonschema:"required,Status text shown on the right of the bar"`
}

// SetStatusOutput is the output for the set_status tool.
type SetStatusOutput struct {
	Text string `json:"text"`
}
