package mcp

import (
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobsync/internal/mcp/tools"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

const (
	serverName    = "jobsync"
	serverVersion = "0.1.0"
)

// NewServer builds an MCP server with the given tools registered
func NewServer(log *logging.Logger, opts ...tools.Option) *sdkmcp.Server {
	impl := &sdkmcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}

	mcpServer := sdkmcp.NewServer(impl, nil)
	names := tools.Register(mcpServer, opts...)

	log.Debug("MCP tools registered", "tools", names)
	return mcpServer
}

// NewHandler exposes the server over streamable HTTP, meant for /mcp/stream
func NewHandler(s *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return s
	}, nil)
}
