package security

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventSignupSucceeded    EventType = "signup_succeeded"
	EventSignupRejected     EventType = "signup_rejected"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventInvalidToken       EventType = "invalid_token"
	EventUploadRejected     EventType = "upload_rejected"
)

// Severity is derived from the EventType, never supplied by the caller
type Severity string

const (
	SeverityINFO Severity = "INFO"
	SeverityWARN Severity = "WARN"
	SeverityHIGH Severity = "HIGH"
)

var eventSeverity = map[EventType]Severity{
	EventSignupSucceeded:    SeverityINFO,
	EventSignupRejected:     SeverityINFO,
	EventUploadRejected:     SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,
	EventInvalidToken:       SeverityHIGH,
}

// SeverityOf returns the severity for an event type. Unknown types are WARN.
func SeverityOf(event EventType) Severity {
	if s, ok := eventSeverity[event]; ok {
		return s
	}
	return SeverityWARN
}

func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time
	Event        EventType
	SubjectType  string // "email", "ip", "user_id"
	SubjectValue string // Masked or hashed for PII
	IP           string
	UserAgent    string
	RequestID    string
	Reason       string
}

// SecurityLogger writes security events as structured zap entries, separate
// from the application log so they can be shipped and retained on their own.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var defaultLogger atomic.Pointer[SecurityLogger]

// NewSecurityLogger wraps an existing zap logger.
func NewSecurityLogger(zl *zap.Logger, serviceName, environment string) *SecurityLogger {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &SecurityLogger{
		zapLogger:   zl,
		serviceName: serviceName,
		environment: environment,
	}
}

// InitSecurityLogger builds a production zap logger writing to stdout and
// installs it as the default.
func InitSecurityLogger(serviceName string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		zl, _ = zap.NewProduction()
	}

	sl := NewSecurityLogger(zl, serviceName, getEnvironment())
	SetDefaultLogger(sl)
	return sl
}

// SetDefaultLogger replaces the logger returned by DefaultLogger.
func SetDefaultLogger(sl *SecurityLogger) {
	defaultLogger.Store(sl)
}

// DefaultLogger returns the installed security logger, or a no-op one before
// InitSecurityLogger runs.
func DefaultLogger() *SecurityLogger {
	if sl := defaultLogger.Load(); sl != nil {
		return sl
	}
	return NewSecurityLogger(nil, "", getEnvironment())
}

// Log logs a security event
func (sl *SecurityLogger) Log(event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	severity := SeverityOf(event.Event)

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(severity)),
		zap.Time("occurred_at", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}

	sl.zapLogger.Log(severity.level(), string(event.Event), fields...)
}

// LogSignupSucceeded records a created account by hashed user id.
func (sl *SecurityLogger) LogSignupSucceeded(userID, requestID string) {
	sl.Log(SecurityEvent{
		Event:        EventSignupSucceeded,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		RequestID:    requestID,
	})
}

// LogSignupRejected records a refused signup. The email is masked.
func (sl *SecurityLogger) LogSignupRejected(email, requestID, reason string) {
	sl.Log(SecurityEvent{
		Event:        EventSignupRejected,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		RequestID:    requestID,
		Reason:       reason,
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ip, userAgent, requestID, endpoint string) {
	sl.Log(SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Reason:       endpoint,
	})
}

// LogInvalidToken logs a bearer token that failed verification
func (sl *SecurityLogger) LogInvalidToken(ip, userAgent, requestID, reason string) {
	sl.Log(SecurityEvent{
		Event:     EventInvalidToken,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Reason:    reason,
	})
}

// LogUploadRejected logs an upload refused before parsing
func (sl *SecurityLogger) LogUploadRejected(ip, requestID, reason string) {
	sl.Log(SecurityEvent{
		Event:     EventUploadRejected,
		IP:        ip,
		RequestID: requestID,
		Reason:    reason,
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func getEnvironment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
