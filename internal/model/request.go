package model

// PreviewRequest 铸造页面的批量预览请求
type PreviewRequest struct {
	StartTokenID int64 `json:"start_token_id" binding:"required"`
	Quantity     int   `json:"quantity" binding:"required,min=1,max=5"` // 与铸造上限保持一致
}

// PaletteQuery 主色提取参数
type PaletteQuery struct {
	K int `form:"k" binding:"omitempty,min=1,max=16"`
}
