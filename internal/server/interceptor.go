package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
)

// RequestIDHeader is read from incoming metadata and echoed back.
const RequestIDHeader = "x-request-id"

// UnaryInterceptor tags each call with a request id and a scoped logger,
// logs its outcome, and maps application errors onto gRPC status codes.
func UnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()
		rid := requestID(ctx)
		l := logger.With("request_id", rid, "method", info.FullMethod)
		ctx = common.WithLogger(common.WithRequestID(ctx, rid), l)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, rid))

		defer func() {
			if r := recover(); r != nil {
				l.Error("rpc.panic", "panic", fmt.Sprint(r))
				err = common.InternalErrorf("panic in %s", info.FullMethod)
				resp = nil
			}
		}()

		resp, err = next(ctx, req)
		err = common.ToStatus(err)

		code := status.Code(err)
		attrs := []any{"code", code.String(), "elapsed_ms", time.Since(start).Milliseconds()}
		if err != nil {
			l.Warn("rpc.failed", append(attrs, "error", err)...)
		} else {
			l.Info("rpc.ok", attrs...)
		}
		return resp, err
	}
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(RequestIDHeader); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return uuid.NewString()
}
