package v1

import (
	"net/http"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"
	"mock-interview-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type CVHandler struct {
	cvUC domain.CVUsecase
}

func NewCVHandler(r *gin.RouterGroup, cvUC domain.CVUsecase, limiter gin.HandlerFunc) {
	handler := &CVHandler{cvUC: cvUC}
	r.POST("/upload-cv", limiter, handler.Upload)
}

// Upload godoc
// @Summary      Upload CV
// @Description  Accepts a CV as multipart field "file" and returns a placeholder parse of its first bytes.
// @Tags         interview
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CV file"
// @Success      200   {object}  domain.UploadCVResponse
// @Failure      400   {object}  response.Response
// @Failure      413   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /upload-cv [post]
func (h *CVHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		security.DefaultLogger().LogUploadRejected(c.ClientIP(), c.GetString("RequestID"), "missing file part")
		c.Error(apperror.BadRequest("No file provided"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, err.Error(), err))
		return
	}
	defer file.Close()

	res, err := h.cvUC.Parse(c.Request.Context(), domain.CVUpload{
		FileName:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, res)
}
