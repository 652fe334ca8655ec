package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/supermodularxyz/simplegrants-sub000/internal/config"
	"github.com/supermodularxyz/simplegrants-sub000/internal/database"
	"github.com/supermodularxyz/simplegrants-sub000/internal/logger"
	"github.com/supermodularxyz/simplegrants-sub000/internal/payment"
	"github.com/supermodularxyz/simplegrants-sub000/internal/router"
	"github.com/supermodularxyz/simplegrants-sub000/internal/task"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化转账客户端
	payClient, err := payment.Init(cfg.Payment)
	if err != nil {
		logger.Fatal("Failed to initialize payment client: %v", err)
	}
	logger.Info("Payout account: %s", payClient.GetAccountAddress().Hex())

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, cfg)

	// 启动定时任务
	manager := task.Start(db, payClient, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
