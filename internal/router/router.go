// router.go
package router

import (
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/handlers"
	"github.com/Dennisdaviddante/teissi-app/internal/models"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(429, gin.H{"error": "too many requests, try again later"})
}

func Setup(log *zap.Logger, interview *models.Interview) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(UserLoaderMiddleware(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(log)
	assessmentHandler := handlers.NewAssessmentHandler(log, interview)
	studentHandler := handlers.NewStudentHandler(log)
	statisticsHandler := handlers.NewStatisticsHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitErrorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")

	api.POST("/auth/login", limiter, authHandler.Login)
	api.POST("/auth/register", limiter, authHandler.Register)

	authorized := api.Group("/")
	authorized.Use(AuthRequired())
	{
		authorized.GET("/interview", assessmentHandler.ShowInterview)

		authorized.POST("/assessments", assessmentHandler.Create)
		authorized.GET("/assessments/:id", assessmentHandler.Get)
		authorized.GET("/assessments/:id/audit", assessmentHandler.AuditRecord)

		authorized.POST("/students", studentHandler.Create)
		authorized.GET("/students", studentHandler.List)
		authorized.GET("/students/:id", studentHandler.Get)
		authorized.GET("/students/:id/assessments", assessmentHandler.ListByStudent)
	}

	admin := api.Group("/")
	admin.Use(AdminRequired())
	{
		admin.GET("/statistics", statisticsHandler.Rows)
		admin.GET("/statistics/chart", statisticsHandler.Chart)
		admin.PUT("/assessments/:id/risk-override", assessmentHandler.OverrideRisk)
	}

	return router
}
