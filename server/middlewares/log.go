package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewLog(l *logrus.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("log", logrus.NewEntry(l).WithFields(logrus.Fields{
			"method": ctx.Request.Method,
			"path":   ctx.Request.URL.Path,
		}))
	}
}
