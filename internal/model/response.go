package model

// NFTResponse GET /api/nft/:tokenId 的响应体
type NFTResponse struct {
	TokenID  int64          `json:"tokenId"`
	Image    string         `json:"image"`
	Metadata *AssetMetadata `json:"metadata"`
}

// ErrorResponse 统一的错误响应
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// PaletteColor 渲染结果中的主色
type PaletteColor struct {
	Hex    string  `json:"hex"`
	Weight float64 `json:"weight"`
}

type PaletteResponse struct {
	TokenID int64          `json:"tokenId"`
	Colors  []PaletteColor `json:"colors"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}
