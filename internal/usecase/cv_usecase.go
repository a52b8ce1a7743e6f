package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"
	"mock-interview-backend/pkg/logger"
	"mock-interview-backend/pkg/security"
	"mock-interview-backend/pkg/security/antivirus"

	"github.com/google/uuid"
)

const (
	// cvReadLimit bounds how much of the file the placeholder parser looks at
	cvReadLimit = 1000
	// cvPreviewChars is the length of the preview embedded in parsedContent
	cvPreviewChars = 200

	uploadCVMessage = "CV uploaded successfully. Note: This is a placeholder. Connect a CV parsing service for real text extraction."
)

type cvUsecase struct {
	archive domain.CVArchive
	scanner antivirus.Scanner
}

// CVOption configures the CV usecase.
type CVOption func(*cvUsecase)

// WithCVArchive stores every accepted upload in full before it is parsed.
func WithCVArchive(archive domain.CVArchive) CVOption {
	return func(u *cvUsecase) { u.archive = archive }
}

// WithCVScanner rejects uploads the scanner flags. Scanner failures reject too.
func WithCVScanner(scanner antivirus.Scanner) CVOption {
	return func(u *cvUsecase) { u.scanner = scanner }
}

func NewCVUsecase(opts ...CVOption) domain.CVUsecase {
	u := &cvUsecase{}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Parse stands in for the external CV parser: it reports what it was given and
// a short text preview of the first bytes.
func (u *cvUsecase) Parse(ctx context.Context, upload domain.CVUpload) (*domain.UploadCVResponse, error) {
	if upload.Content == nil {
		return nil, apperror.BadRequest("No file provided")
	}

	// Without scanning or archiving only the head is ever read
	var full []byte
	var head []byte
	var err error
	if u.scanner != nil || u.archive != nil {
		full, err = io.ReadAll(io.LimitReader(upload.Content, security.MaxCVSize+1))
		if err == nil && int64(len(full)) > security.MaxCVSize {
			security.DefaultLogger().LogUploadRejected("", requestIDFrom(ctx), "too_large")
			return nil, apperror.New(http.StatusRequestEntityTooLarge, security.ErrFileTooLarge.Error(), security.ErrFileTooLarge)
		}
		head = full[:min(len(full), cvReadLimit)]
	} else {
		head, err = io.ReadAll(io.LimitReader(upload.Content, cvReadLimit))
	}
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, err.Error(), err)
	}

	contentType := security.DetectMIME(upload.FileName, head, upload.ContentType)

	if u.scanner != nil {
		if err := u.scan(ctx, upload.FileName, full); err != nil {
			return nil, err
		}
	}

	if u.archive != nil {
		// Archive failures never fail the upload
		key := archiveKey(time.Now(), upload.FileName)
		if err := u.archive.Store(ctx, key, contentType, bytes.NewReader(full), int64(len(full))); err != nil {
			logger.Log.Warn("CV archive failed", "key", key, "error", err)
		}
	}

	text := strings.ToValidUTF8(string(head), "�")

	parsed := fmt.Sprintf("CV File: %s\nSize: %d bytes\nType: %s\n\nContent Preview:\n%s...",
		upload.FileName, upload.Size, contentType, truncateRunes(text, cvPreviewChars))

	logger.Log.Info("CV received",
		"file_name", upload.FileName,
		"size", upload.Size,
		"type", contentType)

	return &domain.UploadCVResponse{
		FileName:      upload.FileName,
		ParsedContent: parsed,
		Message:       uploadCVMessage,
	}, nil
}

func (u *cvUsecase) scan(ctx context.Context, fileName string, data []byte) error {
	result := u.scanner.Scan(ctx, fileName, bytes.NewReader(data))
	requestID := requestIDFrom(ctx)

	if result.Error != nil {
		logger.Log.Error("CV scan failed", "scanner", result.ScannerName, "error", result.Error)
		security.DefaultLogger().LogUploadRejected("", requestID, "scan_failed")
		return apperror.New(http.StatusServiceUnavailable, "File scanning is unavailable. Please try again.", result.Error)
	}
	if result.Infected {
		logger.Log.Warn("CV rejected by scanner", "scanner", result.ScannerName, "threat", result.ThreatName)
		security.DefaultLogger().LogUploadRejected("", requestID, "malware:"+result.ThreatName)
		return apperror.BadRequest("The file was rejected by the malware scanner")
	}
	return nil
}

// archiveKey builds "cvs/YYYY/MM/<uuid>-<base name>".
func archiveKey(now time.Time, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" {
		base = "cv"
	}
	return fmt.Sprintf("cvs/%s/%s-%s", now.UTC().Format("2006/01"), uuid.NewString(), base)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
