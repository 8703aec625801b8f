package api

import (
	"Tipside/internal/api/middleware"
	"Tipside/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		feedGroup := apiGroup.Group("/feed")
		feedGroup.Use(middleware.AuthOptionalMiddleware())
		{
			feedGroup.GET("", group.FeedHandler.GetFeed)
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/detail/:post_id", group.PostHandler.GetPost)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.POST("/:post_id/hide", group.PostHandler.HidePost)

				authGroup.POST("/:post_id/boost", group.PostActionHandler.BoostPost)
				authGroup.DELETE("/:post_id/boost", group.PostActionHandler.UnboostPost)
				authGroup.POST("/:post_id/reports", group.PostActionHandler.ReportPost)
			}
		}

		postActionGroup := apiGroup.Group("/post/action")
		{
			authOptGroup := postActionGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.POST("/views/:post_id", group.PostActionHandler.TrackView)
			}

			authActionGroup := postActionGroup.Group("")
			authActionGroup.Use(middleware.AuthMiddleware())
			{
				authActionGroup.POST("/likes/:post_id", group.PostActionHandler.LikePost)
				authActionGroup.POST("/shares/:post_id", group.PostActionHandler.SharePost)
			}
		}

		userGroup := apiGroup.Group("/users")
		userGroup.Use(middleware.AuthMiddleware())
		{
			userGroup.PUT("/preferences", group.PreferenceHandler.SavePreference)
			userGroup.GET("/preferences", group.PreferenceHandler.GetPreference)

			userGroup.POST("/blocks/:blocked_id", group.PreferenceHandler.BlockUser)
			userGroup.DELETE("/blocks/:blocked_id", group.PreferenceHandler.UnblockUser)
			userGroup.POST("/hidden-posts/:post_id", group.PreferenceHandler.HidePost)
		}
	}

	return r
}
