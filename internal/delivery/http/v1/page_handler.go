package v1

import (
	"net/http"
	"time"

	"mock-interview-backend/internal/delivery/http/web"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	apiBase string
	now     func() time.Time
}

// NewPageHandler serves the landing and signup pages. apiBase is the path or URL
// the signup form posts to.
func NewPageHandler(r *gin.Engine, apiBase string) {
	handler := &PageHandler{apiBase: apiBase, now: time.Now}

	r.GET("/", handler.Landing)
	r.GET("/signup", handler.Signup)
	r.StaticFS("/static", web.Static())
}

func (h *PageHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "landing.html", gin.H{
		"Title":    "Practice interviews",
		"Year":     h.now().Year(),
		"Features": web.LandingFeatures,
	})
}

func (h *PageHandler) Signup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"Title":            "Sign up",
		"Year":             h.now().Year(),
		"SignupEndpoint":   h.apiBase + "/auth/signup",
		"StrengthEndpoint": h.apiBase + "/auth/password-strength",
	})
}
