package router

import (
	"github.com/gin-gonic/gin"
	"github.com/supermodularxyz/simplegrants-sub000/internal/config"
	"github.com/supermodularxyz/simplegrants-sub000/internal/handler"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "simplegrants-matching",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目相关路由
		grantHandler := handler.NewGrantHandler(db)
		grants := v1.Group("/grants")
		{
			grants.POST("", grantHandler.CreateGrant)
			grants.GET("", grantHandler.GetGrants)
			grants.GET("/:id", grantHandler.GetGrant)
			grants.GET("/:id/contributions", grantHandler.GetGrantContributions)
			grants.GET("/:id/estimate", grantHandler.EstimateMatchedAmount)
			grants.PUT("/:id/verify", grantHandler.VerifyGrant)
		}

		// 轮次相关路由
		roundHandler := handler.NewMatchingRoundHandler(db)
		rounds := v1.Group("/rounds")
		{
			rounds.GET("", roundHandler.GetRounds)
			rounds.GET("/:id", roundHandler.GetRound)
			rounds.GET("/:id/results", roundHandler.GetRoundResults)
		}

		// 捐款相关路由
		contributionHandler := handler.NewContributionHandler(db)
		contributions := v1.Group("/contributions")
		{
			contributions.POST("", contributionHandler.CreateContribution)
			contributions.PUT("/:id/flag", contributionHandler.FlagContribution)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
