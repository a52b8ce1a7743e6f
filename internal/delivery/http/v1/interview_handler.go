package v1

import (
	"net/http"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := r.Group("/interviews")
	{
		interviews.POST("/start", handler.Start)
		interviews.GET("/:id", handler.Get)
		interviews.POST("/:id/responses", handler.RecordResponse)
		interviews.POST("/:id/complete", handler.Complete)
		interviews.GET("/:id/export", handler.Export)
	}
}

// Start godoc
// @Summary      Start interview session
// @Description  Opens an in-progress session for the given questions. A bearer token, when present, records the owner.
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        request  body      domain.StartInterviewRequest  true  "Questions and job description"
// @Success      201      {object}  domain.InterviewSession
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /interviews/start [post]
func (h *InterviewHandler) Start(c *gin.Context) {
	var req domain.StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	session, err := h.interviewUC.Start(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// Get godoc
// @Summary      Get interview session
// @Tags         interview
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  domain.InterviewSession
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
func (h *InterviewHandler) Get(c *gin.Context) {
	session, err := h.interviewUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// RecordResponse godoc
// @Summary      Record an answer
// @Description  Appends an answer to an in-progress session. Completed sessions reject further answers.
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Session ID"
// @Param        request  body      domain.InterviewResponse  true  "Answer"
// @Success      201      {object}  domain.InterviewSession
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /interviews/{id}/responses [post]
func (h *InterviewHandler) RecordResponse(c *gin.Context) {
	var req domain.InterviewResponse
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("questionId is required"))
		return
	}

	session, err := h.interviewUC.RecordResponse(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Complete godoc
// @Summary      Complete interview session
// @Tags         interview
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  domain.InterviewSession
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /interviews/{id}/complete [post]
func (h *InterviewHandler) Complete(c *gin.Context) {
	session, err := h.interviewUC.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Export godoc
// @Summary      Export interview transcript
// @Description  Downloads the questions and latest answers as Excel or CSV.
// @Tags         interview
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param        id      path      string  true   "Session ID"
// @Param        format  query     string  false  "Export format (xlsx, csv). Default: xlsx"
// @Success      200     {file}    file
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /interviews/{id}/export [get]
func (h *InterviewHandler) Export(c *gin.Context) {
	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportXLSX)))

	data, filename, err := h.interviewUC.Export(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, format.ContentType(), data)
}
