package grpc

import (
	"context"
	"fmt"
	"net"

	ggrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/scienceol/osfarm/pkg/middleware/logger"
	"github.com/scienceol/osfarm/pkg/utils"
)

// ServiceName is the health service entry reported next to the overall "".
const ServiceName = "osfarm.v1.Farm"

type Server struct {
	*ggrpc.Server
	Health *health.Server
}

// New builds the server with health and reflection registered. Both are
// marked serving.
func New() *Server {
	s := ggrpc.NewServer(
		ggrpc.ChainUnaryInterceptor(UnaryRecoveryInterceptor(), UnaryLogInterceptor()),
		ggrpc.ChainStreamInterceptor(StreamRecoveryInterceptor(), StreamLogInterceptor()),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return &Server{Server: s, Health: hs}
}

// NewServer listens on port and serves in the background.
func NewServer(ctx context.Context, port int) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	s := New()
	utils.SafelyGo(func() {
		logger.Infof(ctx, "gRPC server starting on port %d", port)
		if err := s.Serve(lis); err != nil {
			logger.Errorf(ctx, "gRPC server error: %v", err)
		}
	}, func(err error) {
		logger.Errorf(ctx, "gRPC server panic: %+v", err)
	})
	return s, nil
}

// GracefulStop reports NOT_SERVING to watchers before draining.
func (s *Server) GracefulStop() {
	s.Health.Shutdown()
	s.Server.GracefulStop()
}
