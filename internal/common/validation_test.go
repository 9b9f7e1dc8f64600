package common

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestValidator_Chain(t *testing.T) {
	v := NewValidator().
		Field("path", "  ", Required).
		Field("name", strings.Repeat("a", 6), MaxLength(5)).
		Field("ok", "fine", Required, MaxLength(5))

	require.True(t, v.HasErrors())
	require.Len(t, v.Errors(), 2)
	assert.Equal(t, "path", v.Errors()[0].Field)
	assert.Contains(t, v.ErrorMessage(), "must be at most 5 characters")
	assert.ErrorIs(t, v.Error(), ErrValidation)

	err := ValidateAndReturnError(v)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.NoError(t, ValidateAndReturnError(NewValidator().Field("path", "/tmp/a.pdf", Required)))
}

func TestMaxLength_CountsRunes(t *testing.T) {
	assert.Nil(t, MaxLength(3)("f", "ſſſ"))
	assert.NotNil(t, MaxLength(2)("f", "ſſſ"))
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Name string `validate:"required"`
	}
	err := ValidateStruct(req{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "failed required")
	assert.NoError(t, ValidateStruct(req{Name: "x"}))
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	scoped := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "r-1")
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.Same(t, fallback, LoggerFromContext(context.Background(), fallback))
	assert.Same(t, slog.Default(), LoggerFromContext(context.Background(), nil))

	ctx := WithLogger(context.Background(), scoped)
	LoggerFromContext(ctx, fallback).Info("ingest.file.start")
	assert.Contains(t, buf.String(), "request_id=r-1")
}
