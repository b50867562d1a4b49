package tools

import (
	"encoding/json"
	"fmt"

	"basemint-backend/internal/generator"

	"github.com/cloudwego/eino/schema"
)

const (
	ParamTokenID = "token_id"

	tokenIDParamDesc = "NFT 的 token id，integer，正整数（从 1 开始）"
)

// tokenArgs 所有 NFT 工具共用的参数
type tokenArgs struct {
	TokenID *float64 `json:"token_id"`
}

func tokenIDParams() *schema.ParamsOneOf {
	return schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
		ParamTokenID: {
			Type:     schema.Integer,
			Desc:     tokenIDParamDesc,
			Required: true,
		},
	})
}

// parseTokenArgs 解析工具参数中的 token_id，缺失或非法时返回 ErrInvalidInput
func parseTokenArgs(argumentsInJSON string) (int64, error) {
	var args tokenArgs
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return 0, fmt.Errorf("%w: failed to parse arguments: %v", generator.ErrInvalidInput, err)
	}
	if args.TokenID == nil {
		return 0, fmt.Errorf("%w: %s is required", generator.ErrInvalidInput, ParamTokenID)
	}
	return generator.TokenIDFromFloat(*args.TokenID)
}

func marshalResult(v any) (string, error) {
	resultBytes, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(resultBytes), nil
}
