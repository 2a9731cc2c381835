package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
)

func Init(e *gin.Engine, cli *bilibili.Client) {
	// Handlers pass *gin.Context upstream; a client disconnect must cancel it.
	e.ContextWithFallback = true

	api := e.Group("/api")

	{
		h := NewBilibili(cli)
		bili := api.Group("/bilibili")

		initBilibili(bili, h)
	}
}

func initBilibili(bili *gin.RouterGroup, h *Bilibili) {
	{
		login := bili.Group("/login")

		login.POST("/qr/:flavor", h.NewQRCode)

		login.POST("/qr/:flavor/poll", h.PollQRCode)
	}

	bili.GET("/account", h.Account)

	bili.POST("/identity/:kind", h.RefreshIdentity)

	{
		sign := bili.Group("/sign")

		sign.POST("/app", h.SignApp)

		sign.POST("/wbi", h.SignWbi)
	}

	bili.POST("/action/:kind", h.Action)
}
