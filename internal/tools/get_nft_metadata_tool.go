package tools

import (
	"context"

	"basemint-backend/internal/service"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

const GetNFTMetadataToolName = "get_nft_metadata"

// GetNFTMetadataTool implements tool.InvokableTool for token metadata lookup
type GetNFTMetadataTool struct {
	nftService *service.NFTService
}

func NewGetNFTMetadataTool(nftService *service.NFTService) *GetNFTMetadataTool {
	return &GetNFTMetadataTool{nftService: nftService}
}

func (t *GetNFTMetadataTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        GetNFTMetadataToolName,
		Desc:        "查询 BaseMint Genesis 系列中某个 token 的 ERC-721 元数据（名称、描述、属性、背景色、图像 data URI）。同一 token id 总是返回相同的属性。",
		ParamsOneOf: tokenIDParams(),
	}, nil
}

func (t *GetNFTMetadataTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	tokenID, err := parseTokenArgs(argumentsInJSON)
	if err != nil {
		return "", err
	}

	metadata, err := t.nftService.GetMetadata(tokenID)
	if err != nil {
		return "", err
	}
	return marshalResult(metadata)
}
