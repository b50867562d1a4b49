package handler

import (
	"errors"
	"net/http"
	"time"

	"basemint-backend/internal/generator"
	"basemint-backend/internal/model"
	"basemint-backend/internal/service"
	"basemint-backend/internal/utils"
	"basemint-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidTokenID  = "Invalid token ID"
	msgMetadataFailed  = "Failed to generate metadata"
	msgNFTFailed       = "Failed to generate NFT"
	msgPaletteFailed   = "Failed to extract palette"
	msgInvalidPreview  = "Invalid preview request"
	msgInvalidPaletteK = "Invalid palette size"
)

type NFTHandler struct {
	nftService *service.NFTService
}

func NewNFTHandler(nftService *service.NFTService) *NFTHandler {
	return &NFTHandler{
		nftService: nftService,
	}
}

// Register 挂载 NFT 相关路由
func (h *NFTHandler) Register(api *gin.RouterGroup) {
	api.GET("/metadata/:tokenId", h.GetMetadata)

	nft := api.Group("/nft")
	{
		nft.GET("/:tokenId", h.GetNFT)
		nft.GET("/:tokenId/image.png", h.GetImage)
		nft.GET("/:tokenId/palette", h.GetPalette)
		nft.POST("/preview/stream", h.StreamPreview)
	}
}

func (h *NFTHandler) GetMetadata(c *gin.Context) {
	tokenID, ok := h.tokenID(c)
	if !ok {
		return
	}

	metadata, err := h.nftService.GetMetadata(tokenID)
	if err != nil {
		h.fail(c, err, msgMetadataFailed)
		return
	}
	c.JSON(http.StatusOK, metadata)
}

func (h *NFTHandler) GetNFT(c *gin.Context) {
	tokenID, ok := h.tokenID(c)
	if !ok {
		return
	}

	resp, err := h.nftService.GetNFT(tokenID)
	if err != nil {
		h.fail(c, err, msgNFTFailed)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NFTHandler) GetImage(c *gin.Context) {
	tokenID, ok := h.tokenID(c)
	if !ok {
		return
	}

	data, err := h.nftService.GetImagePNG(tokenID)
	if err != nil {
		h.fail(c, err, msgNFTFailed)
		return
	}
	if h.nftService.Generator().TextureMode() == generator.TextureSeeded {
		c.Header("Cache-Control", "public, max-age=86400, immutable")
	}
	c.Data(http.StatusOK, generator.ImageMIMEType, data)
}

func (h *NFTHandler) GetPalette(c *gin.Context) {
	tokenID, ok := h.tokenID(c)
	if !ok {
		return
	}

	var query model.PaletteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.errorJSON(c, http.StatusBadRequest, msgInvalidPaletteK)
		return
	}

	palette, err := h.nftService.GetPalette(tokenID, query.K)
	if err != nil {
		h.fail(c, err, msgPaletteFailed)
		return
	}
	c.JSON(http.StatusOK, palette)
}

// StreamPreview 按顺序推送一批预览，每个 token 一个 message 事件
func (h *NFTHandler) StreamPreview(c *gin.Context) {
	var req model.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorJSON(c, http.StatusBadRequest, msgInvalidPreview)
		return
	}
	if err := service.ValidatePreview(req.StartTokenID, req.Quantity); err != nil {
		h.errorJSON(c, http.StatusBadRequest, msgInvalidPreview)
		return
	}

	sseWriter := utils.NewSSEWriter(c.Writer)
	respChan, errChan := h.nftService.Preview(c.Request.Context(), req.StartTokenID, req.Quantity)

	for resp := range respChan {
		if err := sseWriter.WriteJSON("message", resp); err != nil {
			logger.Errorf("Failed to write SSE: %v", err)
			return
		}
	}

	if err := <-errChan; err != nil {
		logger.WithFields(logger.Fields{
			"request_id": c.GetString(requestIDKey),
			"start":      req.StartTokenID,
		}).Errorf("预览生成中断: %v", err)
		if err := sseWriter.WriteJSON("error", gin.H{
			"error":     msgNFTFailed,
			"type":      "service_error",
			"timestamp": time.Now().Unix(),
		}); err != nil {
			logger.Errorf("Failed to write SSE: %v", err)
			return
		}
	}
	if err := sseWriter.Close(); err != nil {
		logger.Errorf("Failed to close SSE stream: %v", err)
	}
}

func (h *NFTHandler) tokenID(c *gin.Context) (int64, bool) {
	tokenID, err := generator.ParseTokenID(c.Param("tokenId"))
	if err != nil {
		h.errorJSON(c, http.StatusBadRequest, msgInvalidTokenID)
		return 0, false
	}
	return tokenID, true
}

// fail 输入错误映射为 400，其余一律 500
func (h *NFTHandler) fail(c *gin.Context, err error, message string) {
	if errors.Is(err, generator.ErrInvalidInput) {
		h.errorJSON(c, http.StatusBadRequest, msgInvalidTokenID)
		return
	}
	logger.WithFields(logger.Fields{
		"request_id": c.GetString(requestIDKey),
		"path":       c.Request.URL.Path,
	}).Errorf("%s: %v", message, err)
	h.errorJSON(c, http.StatusInternalServerError, message)
}

func (h *NFTHandler) errorJSON(c *gin.Context, status int, message string) {
	c.JSON(status, model.ErrorResponse{
		Error:     message,
		RequestID: c.GetString(requestIDKey),
	})
}
