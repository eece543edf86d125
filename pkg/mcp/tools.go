package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	ToolPush    = "stack_push"
	ToolPop     = "stack_pop"
	ToolIsEmpty = "stack_is_empty"
	ToolDrop    = "stack_drop"
)

type PushResult struct {
	Pushed int  `json:"pushed"`
	Empty  bool `json:"empty"`
}

type PopResult struct {
	Value   *int32 `json:"value"`
	Present bool   `json:"present"`
}

type IsEmptyResult struct {
	Empty bool `json:"empty"`
}

type DropResult struct {
	Released int `json:"released"`
}

// ToolBuilder wires stack operations into MCP tool handlers.
type ToolBuilder struct {
	session *Session
}

func NewToolBuilder(session *Session) ToolBuilder {
	return ToolBuilder{session: session}
}

// BuildTools constructs the requested tools in the order provided.
func (b ToolBuilder) BuildTools(toolNames []string) ([]mcpserver.ServerTool, error) {
	factories := map[string]func() mcpserver.ServerTool{
		ToolPush:    b.buildPushTool,
		ToolPop:     b.buildPopTool,
		ToolIsEmpty: b.buildIsEmptyTool,
		ToolDrop:    b.buildDropTool,
	}

	tools := make([]mcpserver.ServerTool, 0, len(toolNames))
	for _, name := range toolNames {
		factory, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("unsupported tool: %s", name)
		}
		tools = append(tools, factory())
	}
	return tools, nil
}

func (b ToolBuilder) buildPushTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolPush,
			mcptypes.WithDescription("Push one or more integers onto the stack, in order"),
			mcptypes.WithNumber("value",
				mcptypes.Description("Single 32-bit integer to push"),
			),
			mcptypes.WithArray("values",
				mcptypes.Description("32-bit integers to push, first pushed first"),
				mcptypes.Items(map[string]any{"type": "integer"}),
			),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			values, err := pushValues(req.GetArguments())
			if err != nil {
				return mcptypes.NewToolResultError(err.Error()), nil
			}
			if len(values) == 0 {
				return mcptypes.NewToolResultError("value or values is required"), nil
			}

			b.session.Push(values...)
			slog.Debug("stack push", "count", len(values))
			return mcptypes.NewToolResultJSON(PushResult{Pushed: len(values), Empty: b.session.IsEmpty()})
		},
	}
}

func (b ToolBuilder) buildPopTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolPop,
			mcptypes.WithDescription("Pop the most recently pushed integer; present is false when the stack is empty"),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			result := PopResult{}
			if v, ok := b.session.Pop(); ok {
				result.Value = &v
				result.Present = true
			}
			slog.Debug("stack pop", "present", result.Present)
			return mcptypes.NewToolResultJSON(result)
		},
	}
}

func (b ToolBuilder) buildIsEmptyTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolIsEmpty,
			mcptypes.WithDescription("Report whether the stack holds no elements"),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			return mcptypes.NewToolResultJSON(IsEmptyResult{Empty: b.session.IsEmpty()})
		},
	}
}

func (b ToolBuilder) buildDropTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolDrop,
			mcptypes.WithDescription("Release every element of the stack and report how many were released"),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			released := b.session.Drop()
			slog.Info("stack dropped", "released", released)
			return mcptypes.NewToolResultJSON(DropResult{Released: released})
		},
	}
}

func pushValues(args map[string]any) ([]int32, error) {
	var values []int32
	if raw, ok := args["value"]; ok && raw != nil {
		v, err := toInt32(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value: %w", err)
		}
		values = append(values, v)
	}
	if raw, ok := args["values"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("values must be an array")
		}
		for i, item := range list {
			v, err := toInt32(item)
			if err != nil {
				return nil, fmt.Errorf("invalid values[%d]: %w", i, err)
			}
			values = append(values, v)
		}
	}
	return values, nil
}

func toInt32(raw any) (int32, error) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int32:
		return v, nil
	case int64:
		f = float64(v)
	default:
		return 0, fmt.Errorf("not a number: %v", raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("out of 32-bit range: %v", f)
	}
	return int32(f), nil
}
