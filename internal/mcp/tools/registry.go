package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Option registers one tool
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	names  []string
}

func (r *registry) add(t *sdkmcp.Tool) *sdkmcp.Tool {
	r.names = append(r.names, t.Name)
	return t
}

// Register applies the provided tool options and returns the registered tool names
func Register(server *sdkmcp.Server, opts ...Option) []string {
	reg := &registry{server: server}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	return reg.names
}

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}
