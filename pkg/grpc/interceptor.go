package grpc

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/scienceol/osfarm/pkg/middleware/logger"
)

// quiet methods are polled often and not worth a log line.
func quiet(fullMethod string) bool {
	return fullMethod == "/grpc.health.v1.Health/Check" ||
		fullMethod == "/grpc.health.v1.Health/Watch"
}

func UnaryLogInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if !quiet(info.FullMethod) || err != nil {
			logger.Infof(ctx, "grpc %s code: %s cost: %s", info.FullMethod, status.Code(err), time.Since(start))
		}
		return resp, err
	}
}

func StreamLogInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		if !quiet(info.FullMethod) || err != nil {
			logger.Infof(ss.Context(), "grpc stream %s code: %s cost: %s", info.FullMethod, status.Code(err), time.Since(start))
		}
		return err
	}
}

func recovered(ctx context.Context, method string, r any) error {
	logger.Errorf(ctx, "grpc %s panic: %v\n%s", method, r, debug.Stack())
	return status.Error(codes.Internal, fmt.Sprintf("panic in %s", method))
}

// UnaryRecoveryInterceptor turns a handler panic into codes.Internal.
func UnaryRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, info.FullMethod, r)
			}
		}()
		return handler(ctx, req)
	}
}

func StreamRecoveryInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ss.Context(), info.FullMethod, r)
			}
		}()
		return handler(srv, ss)
	}
}
