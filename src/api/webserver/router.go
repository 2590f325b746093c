package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/streetcanvas/streetcanvas/src/api/config"
	"github.com/streetcanvas/streetcanvas/src/api/data"
	"github.com/streetcanvas/streetcanvas/src/chain"
	"github.com/streetcanvas/streetcanvas/src/lifecycle"
	"github.com/streetcanvas/streetcanvas/src/views"
)

// Deps carries the wired components the handlers share.
type Deps struct {
	Chain   *chain.Client
	Manager *lifecycle.Manager
	Views   *views.Views
	Snaps   *data.Snapshots
	Signer  *chain.Session
}

func New(cfg config.Config, rdb *redis.Client, deps Deps) *gin.Engine {
	r := gin.Default()
	attachRoutes(r, cfg, rdb, deps)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, rdb *redis.Client, deps Deps) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://app.streetcanvas.art"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authH := NewAuth(rdb, []byte(cfg.JWTSecret))
	wallsH := NewWalls(deps.Chain, deps.Manager, deps.Views, deps.Snaps, deps.Signer)
	galleriesH := NewGalleries(deps.Chain, deps.Views, deps.Snaps, deps.Signer)
	paintingsH := NewPaintings(deps.Chain, deps.Manager, deps.Views, deps.Snaps, deps.Signer)
	profileH := NewProfile(deps.Chain, deps.Signer)
	assetsH := NewAssets(deps.Chain, deps.Signer)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/challenge", authH.Challenge)
		v1.POST("/auth/verify", authH.Verify)

		secured := v1.Group("")
		secured.Use(JWTMiddleware([]byte(cfg.JWTSecret)))

		secured.GET("/me", profileH.Me)
		secured.GET("/profile", profileH.Get)
		secured.GET("/profile/request", profileH.GetRequest)
		secured.POST("/profile", profileH.Submit)

		secured.GET("/walls", wallsH.List)
		secured.GET("/walls/:id", wallsH.Get)
		secured.GET("/walls/:id/requests", wallsH.Requests)
		secured.GET("/walls/:id/completed", wallsH.Completed)
		secured.POST("/walls", wallsH.Request)
		secured.PUT("/walls/:id/percentage", wallsH.SetPercentage)

		secured.GET("/galleries", galleriesH.List)
		secured.GET("/galleries/:id", galleriesH.Get)
		secured.GET("/galleries/:id/overview", galleriesH.Overview)
		secured.POST("/galleries", galleriesH.Request)
		secured.POST("/galleries/:id/walls", galleriesH.RequestWall)
		secured.POST("/galleries/:id/walls/:wallId/approve", galleriesH.ApproveWall)
		secured.POST("/galleries/:id/walls/:wallId/reject", galleriesH.RejectWall)
		secured.GET("/platform/percentage", galleriesH.PlatformPercentage)

		secured.GET("/assets", assetsH.List)
		secured.POST("/assets/:id/transfer", assetsH.Transfer)

		secured.GET("/paintings/mine", paintingsH.Mine)
		secured.GET("/paintings/:id", paintingsH.Get)
		secured.POST("/paintings", paintingsH.Request)
		secured.POST("/paintings/:id/approve", paintingsH.Approve)
		secured.POST("/paintings/:id/reject", paintingsH.Reject)
		secured.POST("/paintings/:id/complete", paintingsH.Complete)
		secured.POST("/paintings/:id/finalize", paintingsH.Finalize)
	}
}
