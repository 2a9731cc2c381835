package middlewares

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lightningstudio/watchbili/cmd/flags"
	"github.com/lightningstudio/watchbili/internal/conf"
	log "github.com/sirupsen/logrus"
	limiter "github.com/ulule/limiter/v3"
)

func Init(e *gin.Engine) error {
	e.
		Use(gin.LoggerWithWriter(log.StandardLogger().Out), gin.RecoveryWithWriter(log.StandardLogger().Out)).
		Use(NewCors(conf.Conf.Server.AllowOrigins)).
		Use(NewLog(log.StandardLogger()))
	rl := conf.Conf.RateLimit
	if !rl.Enable || flags.DisableRateLimit {
		return nil
	}
	period, err := time.ParseDuration(rl.Period)
	if err != nil {
		return fmt.Errorf("rate limit period: %w", err)
	}
	var opts []limiter.Option
	if rl.TrustForwardHeader {
		opts = append(opts, limiter.WithTrustForwardHeader(true))
	}
	if rl.TrustedClientIPHeader != "" {
		opts = append(opts, limiter.WithClientIPHeader(rl.TrustedClientIPHeader))
	}
	e.Use(NewLimiter(period, rl.Limit, opts...))
	log.Infof("rate limit: %d requests per %s", rl.Limit, period)
	return nil
}
