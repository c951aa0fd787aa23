package graph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/redact"
	"github.com/phrazzld/quill-api/internal/store"
)

// Error codes reported in the "code" extension.
const (
	CodeInvalidID      = "INVALID_ID"
	CodeNicknameExists = "NICKNAME_EXISTS"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL"
)

// Error categories reported in the "category" extension.
const (
	CategoryValidation = "VALIDATION"
	CategoryConflict   = "CONFLICT"
	CategoryNotFound   = "NOT_FOUND"
	CategoryInternal   = "INTERNAL"
)

const internalMessage = "internal server error"

// Error is a client-visible resolver error. graphql-go copies Extensions
// into the "extensions" member of the response error.
type Error struct {
	Code     string
	Category string
	Message  string
	// Nickname is set for CodeNicknameExists.
	Nickname string
	// TraceID is set for CodeInternal so clients can quote it.
	TraceID string

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the error the resolver failed with.
func (e *Error) Unwrap() error {
	return e.cause
}

// Extensions implements gqlerrors.ExtendedError.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"code":     e.Code,
		"category": e.Category,
	}
	if e.Nickname != "" {
		ext["nickname"] = e.Nickname
	}
	if e.TraceID != "" {
		ext["trace_id"] = e.TraceID
	}
	return ext
}

// toGraphQLError converts a resolver failure into an *Error. Opaque
// failures are logged with the redacted cause and reported with a generic
// message.
func toGraphQLError(ctx context.Context, field string, err error) *Error {
	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		return &Error{
			Code:     CodeInvalidID,
			Category: CategoryValidation,
			Message:  parseErr.Error(),
			cause:    err,
		}
	}

	if conflict, ok := store.AsNicknameExists(err); ok {
		return &Error{
			Code:     CodeNicknameExists,
			Category: CategoryConflict,
			Message:  conflict.Error(),
			Nickname: conflict.Nickname,
			cause:    err,
		}
	}

	if store.IsNotFoundError(err) {
		return &Error{
			Code:     CodeNotFound,
			Category: CategoryNotFound,
			Message:  "not found",
			cause:    err,
		}
	}

	traceID := shared.GetTraceID(ctx)
	logger.FromContext(ctx).Error("resolver failed",
		slog.String("field", field),
		redact.ErrorAttr(err),
		slog.String("trace_id", traceID))

	return &Error{
		Code:     CodeInternal,
		Category: CategoryInternal,
		Message:  internalMessage,
		TraceID:  traceID,
		cause:    err,
	}
}

// outcome labels the GraphQL operation metric.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var gqlErr *Error
	if errors.As(err, &gqlErr) {
		return gqlErr.Code
	}
	return CodeInternal
}
