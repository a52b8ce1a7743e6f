package v1

import (
	"net/http"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionUC domain.QuestionUsecase
}

func NewQuestionHandler(r *gin.RouterGroup, questionUC domain.QuestionUsecase) {
	handler := &QuestionHandler{questionUC: questionUC}
	r.POST("/generate-questions", handler.Generate)
}

// Generate godoc
// @Summary      Generate interview questions
// @Description  Returns five sample questions after a short delay. The input only has to carry a job description.
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        request  body      domain.GenerateQuestionsRequest  true  "Job description and optional CV text"
// @Success      200      {object}  domain.GenerateQuestionsResponse
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /generate-questions [post]
func (h *QuestionHandler) Generate(c *gin.Context) {
	var req domain.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	res, err := h.questionUC.Generate(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, res)
}
