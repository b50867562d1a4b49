package tools

import (
	"context"

	"basemint-backend/internal/service"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

const GetNFTToolName = "get_nft"

// GetNFTTool implements tool.InvokableTool returning image and metadata together
type GetNFTTool struct {
	nftService *service.NFTService
}

func NewGetNFTTool(nftService *service.NFTService) *GetNFTTool {
	return &GetNFTTool{nftService: nftService}
}

func (t *GetNFTTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        GetNFTToolName,
		Desc:        "生成 BaseMint Genesis 系列中某个 token 的完整结果，返回 tokenId、PNG 图像的 data URI 以及元数据。",
		ParamsOneOf: tokenIDParams(),
	}, nil
}

func (t *GetNFTTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	tokenID, err := parseTokenArgs(argumentsInJSON)
	if err != nil {
		return "", err
	}

	resp, err := t.nftService.GetNFT(tokenID)
	if err != nil {
		return "", err
	}
	return marshalResult(resp)
}

// GetNFTTools returns all NFT tools backed by nftService
func GetNFTTools(nftService *service.NFTService) []tool.InvokableTool {
	return []tool.InvokableTool{
		NewGetNFTMetadataTool(nftService),
		NewGetNFTTool(nftService),
	}
}
