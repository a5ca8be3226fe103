// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package claudecode

// Hook event names emitted by the Claude Code lifecycle.
const (
	hookPreToolUse       = "pre_tool_use"
	hookPostToolUse      = "post_tool_use"
	hookSessionStart     = "session_start"
	hookSessionEnd       = "session_end"
	hookStop             = "stop"
	hookSubagentStop     = "subagent_stop"
	hookUserPromptSubmit = "user_prompt_submit"
	hookNotification     = "notification"
	hookPreCompact       = "pre_compact"
)

// hookNames is the closed set of recognized lifecycle hook types.
var hookNames = map[string]struct{}{
	hookPreToolUse:       {},
	hookPostToolUse:      {},
	hookSessionStart:     {},
	hookSessionEnd:       {},
	hookStop:             {},
	hookSubagentStop:     {},
	hookUserPromptSubmit: {},
	hookNotification:     {},
	hookPreCompact:       {},
}

// hookEvent is the raw payload shape produced by the Claude Code hook
// script. Fields beyond Type and SessionID are hook-specific; unmarshalling
// tolerates their absence.
type hookEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds, optional
	CWD       string `json:"cwd"`

	// pre_tool_use / post_tool_use
	Tool       string         `json:"tool"`
	ToolInput  map[string]any `json:"toolInput"`
	ToolUseID  string         `json:"toolUseId"`
	Success    *bool          `json:"success"`
	DurationMS int64          `json:"durationMs"`
	Output     string         `json:"output"`

	// user_prompt_submit
	Prompt string `json:"prompt"`

	// notification
	Message string `json:"message"`

	// session_start
	Trigger string `json:"trigger"`

	Metadata map[string]any `json:"metadata"`
}

// The delegate tool spawns a subagent and is normalized into two events.
const delegateToolName = "Task"
