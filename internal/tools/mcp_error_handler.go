package tools

import (
	"context"
	"encoding/json"
	"strings"

	"basemint-backend/pkg/logger"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPErrorResult 定义MCP工具错误结果的统一格式
type MCPErrorResult struct {
	Success      bool   `json:"success"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message"`
	ToolName     string `json:"tool_name"`
	Hint         string `json:"hint,omitempty"`
}

// CreateMCPErrorHandler 创建统一的MCP错误处理器
// 该处理器会将MCP工具执行错误转换为正常的结果，调用方据此决定是否重试
func CreateMCPErrorHandler() func(ctx context.Context, name string, result *mcp.CallToolResult) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, name string, result *mcp.CallToolResult) (*mcp.CallToolResult, error) {
		if result == nil || !result.IsError {
			return result, nil
		}

		message := extractErrorMessage(result)
		logger.Warnf("MCP工具 '%s' 执行失败，转换为错误结果格式: %s", name, message)

		errorJSON, err := json.Marshal(MCPErrorResult{
			Success:      false,
			Error:        true,
			ErrorMessage: message,
			ToolName:     name,
			Hint:         errorHint(message),
		})
		if err != nil {
			return result, nil
		}

		// IsError 置为 false，内容里携带错误信息
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(errorJSON)),
			},
			IsError: false,
		}, nil
	}
}

// extractErrorMessage 从MCP结果中提取错误信息
func extractErrorMessage(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		switch c := content.(type) {
		case mcp.TextContent:
			if c.Text != "" {
				return c.Text
			}
		case *mcp.TextContent:
			if c.Text != "" {
				return c.Text
			}
		}
	}
	return "MCP工具执行失败"
}

// errorHint 针对常见错误给出修正建议
func errorHint(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "invalid input"):
		return "token_id 必须是大于等于 1 的整数"
	case strings.Contains(lower, "render failed"), strings.Contains(lower, "encoding failed"):
		return "生成失败，稍后重试同一 token_id"
	default:
		return ""
	}
}

// IsMCPErrorResult 检查工具结果是否为MCP错误结果
func IsMCPErrorResult(resultText string) (bool, *MCPErrorResult) {
	var errorResult MCPErrorResult
	if err := json.Unmarshal([]byte(resultText), &errorResult); err != nil {
		return false, nil
	}

	if errorResult.Error && !errorResult.Success {
		return true, &errorResult
	}
	return false, nil
}
