package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"basemint-backend/internal/config"
	"basemint-backend/internal/handler"
	"basemint-backend/internal/model"
	"basemint-backend/internal/service"
	"basemint-backend/internal/tools"
	"basemint-backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// 初始化服务
	nftService, err := service.NewNFTService(cfg)
	if err != nil {
		logger.Fatalf("Failed to init NFT service: %v", err)
	}
	defer nftService.Close()

	nftHandler := handler.NewNFTHandler(nftService)

	var mcpHandler http.Handler
	if cfg.MCP.Enabled {
		nftTools := tools.GetNFTTools(nftService)
		mcpServer, err := tools.NewMCPServer(context.Background(), nftTools)
		if err != nil {
			logger.Fatalf("Failed to init MCP server: %v", err)
		}
		if err := tools.VerifyMCPTools(context.Background(), mcpServer, nftTools); err != nil {
			logger.Fatalf("Failed to verify MCP tools: %v", err)
		}
		mcpHandler = tools.NewMCPHTTPHandler(mcpServer)
	}

	// 创建路由
	router := setupRouter(cfg, nftHandler, mcpHandler)

	// 创建HTTP服务器
	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// 启动服务器
	go func() {
		logger.Infof("服务器启动在端口 %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待信号优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务器正在关闭...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("服务器关闭失败: %v", err)
	}
	logger.Info("服务器已关闭")
}

func setupRouter(cfg *config.Config, nftHandler *handler.NFTHandler, mcpHandler http.Handler) *gin.Engine {
	// 设置gin模式
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// 中间件
	router.Use(gin.Recovery())
	router.Use(handler.RequestID())
	router.Use(handler.AccessLog())

	// CORS配置
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, model.HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().Unix(),
		})
	})

	// API路由
	nftHandler.Register(router.Group("/api"))

	if mcpHandler != nil {
		router.Any(cfg.MCP.Path, gin.WrapH(mcpHandler))
		logger.Infof("MCP server mounted at %s", cfg.MCP.Path)
	}

	return router
}
