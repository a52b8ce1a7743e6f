package v1

import (
	"net/http"

	"mock-interview-backend/internal/delivery/http/middleware"
	"mock-interview-backend/internal/delivery/http/response"
	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"
	"mock-interview-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(r *gin.RouterGroup, authUC domain.AuthUsecase, signupLimiter gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", signupLimiter, handler.Signup)
		authGroup.POST("/password-strength", handler.PasswordStrength)
		authGroup.GET("/me", middleware.RequireAuth(), handler.Me)
	}
}

type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

type PasswordStrengthResponse struct {
	Strength validation.Strength `json:"strength"`
}

// Signup godoc
// @Summary      User signup
// @Description  Creates an account. Invalid forms return one message per offending field under "errors".
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signup  body      domain.SignupRequest  true  "Signup form"
// @Success      201     {object}  response.Response{data=domain.SignupResult}
// @Failure      400     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.authUC.Signup(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created", result)
}

// PasswordStrength godoc
// @Summary      Rate a password
// @Description  Classifies a password as weak, medium or strong for the signup form indicator.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      PasswordStrengthRequest  true  "Password"
// @Success      200      {object}  response.Response{data=PasswordStrengthResponse}
// @Failure      400      {object}  response.Response
// @Router       /auth/password-strength [post]
func (h *AuthHandler) PasswordStrength(c *gin.Context) {
	var req PasswordStrengthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	response.Success(c, http.StatusOK, "Password rated", PasswordStrengthResponse{
		Strength: validation.PasswordStrength(req.Password),
	})
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User profile retrieved", user)
}
