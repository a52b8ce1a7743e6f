package v1

import (
	"html/template"
	"net/http"

	"mock-interview-backend/config"
	"mock-interview-backend/internal/delivery/http/middleware"
	"mock-interview-backend/internal/delivery/http/response"
	"mock-interview-backend/internal/delivery/http/web"
	"mock-interview-backend/internal/domain"
	"mock-interview-backend/internal/usecase"
	"mock-interview-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CVUC        domain.CVUsecase
	QuestionUC  domain.QuestionUsecase
	InterviewUC domain.InterviewUsecase
	AuthUC      domain.AuthUsecase
	HealthUC    usecase.HealthUsecase
	Tokens      *auth.TokenService
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(web.Templates()))

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	NewPageHandler(r, "/api")

	api := r.Group("/api")
	// Only session and account routes look at credentials
	identified := api.Group("", middleware.OptionalAuth(deps.Tokens))

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	uploadLimiter := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(deps.Config.UploadRateLimitPerMinute))
	signupLimiter := middleware.RateLimitMiddleware(middleware.SignupRateLimitConfig())

	NewCVHandler(api, deps.CVUC, uploadLimiter)
	NewQuestionHandler(api, deps.QuestionUC)
	NewInterviewHandler(identified, deps.InterviewUC)
	NewAuthHandler(identified, deps.AuthUC, signupLimiter)

	return r
}
