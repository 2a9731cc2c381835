package server

import (
	"github.com/gin-gonic/gin"
	"github.com/lightningstudio/watchbili/server/handlers"
	"github.com/lightningstudio/watchbili/server/middlewares"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
)

func Init(e *gin.Engine, cli *bilibili.Client) error {
	if err := middlewares.Init(e); err != nil {
		return err
	}
	handlers.Init(e, cli)
	return nil
}

func NewAndInit(cli *bilibili.Client) (*gin.Engine, error) {
	e := gin.New()
	if err := Init(e, cli); err != nil {
		return nil, err
	}
	return e, nil
}
