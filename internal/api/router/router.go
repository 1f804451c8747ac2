package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/muhammad-yeasin/wave2-attendance/config"
	"github.com/muhammad-yeasin/wave2-attendance/internal/api/handler"
	"github.com/muhammad-yeasin/wave2-attendance/internal/api/middleware"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/metrics"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/redis"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/validate"
)

// Setup builds the gin engine. rdb may be nil, which turns rate limiting off.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	v *validate.Validator,
	rdb *redis.Client,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	// request DTOs carry custom tags such as bdmobile
	binding.Validator = v.Gin()

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── probes ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	rl := cfg.RateLimit
	submitLimit := middleware.RateLimit(rdb, rl.SubmitPerMinute, rl.Window, logger)
	verifyLimit := middleware.RateLimit(rdb, rl.VerifyPerMinute, rl.Window, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		attendance := v1.Group("/attendance")
		{
			attendance.GET("/window", h.Attendance.WindowStatus)
			attendance.POST("", submitLimit, h.Attendance.Submit)
		}

		users := v1.Group("/users")
		{
			users.POST("/verify-email", verifyLimit, h.User.VerifyEmail)
			users.POST("/whatsapp", verifyLimit, h.User.UpdateWhatsapp)
		}
	}

	return r
}
