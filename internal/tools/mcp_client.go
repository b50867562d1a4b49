package tools

import (
	"context"
	"fmt"
	"slices"
	"time"

	"basemint-backend/pkg/logger"

	einoMcp "github.com/cloudwego/eino-ext/components/tool/mcp"
	"github.com/cloudwego/eino/components/tool"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const mcpInitTimeout = 30 * time.Second

// ConnectInProcess 创建连接到 s 的进程内 MCP 客户端并完成握手
func ConnectInProcess(ctx context.Context, s *server.MCPServer) (*client.Client, error) {
	cli, err := client.NewInProcessClient(s)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}
	if err := initializeClient(ctx, cli, "basemint-inprocess-client"); err != nil {
		cli.Close()
		return nil, err
	}
	return cli, nil
}

func initializeClient(ctx context.Context, cli *client.Client, name string) error {
	ctx, cancel := context.WithTimeout(ctx, mcpInitTimeout)
	defer cancel()

	if err := cli.Start(ctx); err != nil {
		return fmt.Errorf("failed to start MCP client: %w", err)
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    name,
		Version: MCPServerVersion,
	}
	if _, err := cli.Initialize(ctx, initRequest); err != nil {
		return fmt.Errorf("failed to initialize MCP connection: %w", err)
	}
	return nil
}

// LoadMCPTools 把 MCP server 上的工具转换为 eino 工具。
// 工具执行错误会被转换为普通结果，见 CreateMCPErrorHandler
func LoadMCPTools(ctx context.Context, cli *client.Client) ([]tool.BaseTool, error) {
	mcpTools, err := einoMcp.GetTools(ctx, &einoMcp.Config{
		Cli:                   cli,
		ToolCallResultHandler: CreateMCPErrorHandler(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get MCP tools: %w", err)
	}

	logger.Infof("MCP tools loaded: %d tools", len(mcpTools))
	return mcpTools, nil
}

// VerifyMCPTools 经进程内客户端加载 s 暴露的工具，名称集合必须与 want 一致
func VerifyMCPTools(ctx context.Context, s *server.MCPServer, want []tool.InvokableTool) error {
	cli, err := ConnectInProcess(ctx, s)
	if err != nil {
		return err
	}
	defer cli.Close()

	loaded, err := LoadMCPTools(ctx, cli)
	if err != nil {
		return err
	}

	got := make([]string, 0, len(loaded))
	for _, t := range loaded {
		info, err := t.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get MCP tool info: %w", err)
		}
		got = append(got, info.Name)
	}
	expected := make([]string, 0, len(want))
	for _, t := range want {
		info, err := t.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get tool info: %w", err)
		}
		expected = append(expected, info.Name)
	}

	slices.Sort(got)
	slices.Sort(expected)
	if !slices.Equal(got, expected) {
		return fmt.Errorf("MCP tools mismatch: server exposes %v, want %v", got, expected)
	}
	return nil
}
