package errors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *BrandError
		want string
	}{
		{
			name: "code and message",
			err:  NewValidationError("ERR_X", "bad input"),
			want: "[ERR_X] bad input",
		},
		{
			name: "with file",
			err:  NewConfigError("ERR_READ", "cannot read").WithFile("brand.json"),
			want: "[ERR_READ] brand.json cannot read",
		},
		{
			name: "with cause",
			err:  WrapIO(io.ErrUnexpectedEOF, "ERR_READ", "cannot read"),
			want: "[ERR_READ] cannot read: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestBrandErrorIsAndUnwrap(t *testing.T) {
	err := NewNetworkError("ERR_FETCH", "fetch failed", io.EOF)

	assert.True(t, errors.Is(err, io.EOF))
	assert.True(t, errors.Is(err, &BrandError{Type: ErrorTypeNetwork, Code: "ERR_FETCH"}))
	assert.False(t, errors.Is(err, &BrandError{Type: ErrorTypeIO, Code: "ERR_FETCH"}))

	wrapped := fmt.Errorf("outer: %w", err)
	var be *BrandError
	require.True(t, errors.As(wrapped, &be))
	assert.Equal(t, "ERR_FETCH", be.Code)
}

func TestConstructorsSetRecoverability(t *testing.T) {
	assert.True(t, NewValidationError("A", "a").Recoverable)
	assert.True(t, NewNetworkError("A", "a", nil).Recoverable)
	assert.True(t, NewImportError("A", "a", nil).Recoverable)
	assert.False(t, NewSecurityError("A", "a").Recoverable)
	assert.False(t, NewConfigError("A", "a").Recoverable)
	assert.False(t, NewInternalError("A", "a", nil).Recoverable)
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsSecurityError(ErrPathTraversal("../x")))
	assert.True(t, IsSecurityError(ErrInvalidOrigin("http://evil")))
	assert.False(t, IsSecurityError(ErrInvalidPath("x")))

	fields := FieldErrors{NewFieldError("colors.chart", CodeInvalidArrayLength, "need 5")}
	importErr := NewImportError(ErrCodeImportRejected, "import rejected", fields)
	assert.True(t, IsImportError(importErr))

	var got FieldErrors
	require.True(t, errors.As(importErr, &got))
	assert.Len(t, got, 1)
}

func TestTemplateAndFormatLookupErrors(t *testing.T) {
	err := ErrTemplateNotFound("retro")
	assert.Equal(t, ErrCodeTemplateNotFound, err.Code)
	assert.Equal(t, "retro", err.Context["template"])

	err = ErrFormatNotFound("pdf")
	assert.Equal(t, ErrCodeFormatNotFound, err.Code)
	assert.Contains(t, err.Error(), "pdf")
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeIO, "A", "a"))

	base := errors.New("disk full")
	wrapped := WrapIO(base, "ERR_WRITE", "write failed")
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeIO, wrapped.Type)
	assert.False(t, wrapped.Recoverable)
	assert.ErrorIs(t, wrapped, base)

	inner := NewValidationError("ERR_INNER", "inner").WithFile("a.json").WithContext("k", "v")
	outer := WrapConfig(inner, "ERR_OUTER", "outer")
	assert.Equal(t, "a.json", outer.FilePath)
	assert.Equal(t, "v", outer.Context["k"])
	assert.False(t, outer.Recoverable)
	assert.ErrorIs(t, outer, inner)

	assert.True(t, WrapNetwork(base, "N", "n").Recoverable)
	assert.Equal(t, ErrorTypeInternal, WrapInternal(base, "I", "i").Type)
}

func TestGetErrorContext(t *testing.T) {
	err := WrapIO(io.EOF, "ERR_READ", "cannot read").WithFile("x.json").WithContext("size", 10)
	ctx := GetErrorContext(err)
	assert.Equal(t, "x.json", ctx["file"])
	assert.Equal(t, 10, ctx["size"])
	assert.Equal(t, "io", ctx["type"])
	assert.Equal(t, "ERR_READ", ctx["code"])
	assert.Equal(t, false, ctx["recoverable"])

	plain := GetErrorContext(errors.New("boom"))
	assert.Equal(t, "unknown", plain["type"])
	assert.Equal(t, "boom", plain["message"])
}

func TestCombineErrors(t *testing.T) {
	assert.NoError(t, CombineErrors(nil, nil))

	one := errors.New("one")
	assert.Same(t, one, CombineErrors(nil, one))

	two := errors.New("two")
	combined := CombineErrors(one, nil, two)
	require.Error(t, combined)
	assert.ErrorIs(t, combined, one)
	assert.ErrorIs(t, combined, two)
	assert.Equal(t, 2, GetErrorContext(combined)["error_count"])
}

type recordingLogger struct {
	errors []string
	warns  []string
	fields []interface{}
}

func (l *recordingLogger) Error(_ context.Context, _ error, msg string, fields ...interface{}) {
	l.errors = append(l.errors, msg)
	l.fields = fields
}

func (l *recordingLogger) Warn(_ context.Context, _ error, msg string, fields ...interface{}) {
	l.warns = append(l.warns, msg)
	l.fields = fields
}

type recordingNotifier struct {
	notified []*BrandError
}

func (n *recordingNotifier) NotifyError(_ context.Context, err *BrandError) error {
	n.notified = append(n.notified, err)

	return nil
}

func TestErrorHandler(t *testing.T) {
	logger := &recordingLogger{}
	notifier := &recordingNotifier{}
	h := NewErrorHandler(logger, notifier)
	ctx := context.Background()

	h.Handle(ctx, nil)
	assert.Empty(t, logger.errors)
	assert.Empty(t, logger.warns)

	h.Handle(ctx, ErrPathTraversal("../../etc").WithContext("path", "../../etc"))
	assert.Len(t, logger.errors, 1)
	assert.Len(t, notifier.notified, 1)
	assert.Equal(t, []interface{}{
		"code", ErrCodePathTraversal,
		"path", "../../etc",
		"recoverable", false,
		"type", "security",
	}, logger.fields)

	h.Handle(ctx, NewImportError(ErrCodeImportRejected, "rejected", nil))
	h.Handle(ctx, FieldErrors{NewFieldError("metadata.name", CodeRequiredField, "required")})
	h.Handle(ctx, NewNetworkError("N", "timeout", nil))
	assert.Len(t, logger.warns, 3)

	h.Handle(ctx, errors.New("plain"))
	assert.Len(t, logger.errors, 2)
}

func TestErrorHandlerWithoutLogger(t *testing.T) {
	notifier := &recordingNotifier{}
	h := NewErrorHandler(nil, notifier)

	assert.NotPanics(t, func() {
		h.Handle(context.Background(), NewSecurityError("S", "s"))
		h.Handle(context.Background(), errors.New("plain"))
	})
	assert.Len(t, notifier.notified, 1)
}
