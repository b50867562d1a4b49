package tools

import (
	"context"
	"fmt"
	"net/http"

	"basemint-backend/pkg/logger"

	"github.com/cloudwego/eino/components/tool"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	MCPServerName    = "basemint-nft"
	MCPServerVersion = "1.0.0"
)

// NewMCPServer 把 eino 工具注册到一个 MCP server 上，参数原样转发给 InvokableRun。
// MCP 的 schema 没有 integer 类型的 option，token_id 以 number + multipleOf 1 表示
func NewMCPServer(ctx context.Context, tools []tool.InvokableTool) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		MCPServerName,
		MCPServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get tool info: %w", err)
		}

		s.AddTool(mcp.NewTool(info.Name,
			mcp.WithDescription(info.Desc),
			mcp.WithNumber(ParamTokenID,
				mcp.Required(),
				mcp.Description(tokenIDParamDesc),
				mcp.Min(1),
				mcp.MultipleOf(1),
			),
		), invokeHandler(info.Name, t))
		logger.Debugf("MCP tool registered: %s", info.Name)
	}

	return s, nil
}

func invokeHandler(name string, t tool.InvokableTool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := marshalResult(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := t.InvokableRun(ctx, args)
		if err != nil {
			logger.Warnf("MCP工具 '%s' 执行失败: %v", name, err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}

// NewMCPHTTPHandler 以 streamable HTTP 方式暴露 MCP server
func NewMCPHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s)
}
