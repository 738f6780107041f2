package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/muyuda/khaya/pkg/auth"
	"github.com/muyuda/khaya/pkg/tlsutil"
)

// ServerOptions tunes the gRPC server.
type ServerOptions struct {
	ServiceName string
	Reflection  bool
}

// Server wraps a gRPC server with the KPR handler registered.
type Server struct {
	gs      *grpc.Server
	health  *health.Server
	handler *KPRHandler
	logger  *slog.Logger
}

// NewServer creates and configures the gRPC server. When jwtService is nil
// UpsertBank is refused for every caller. A TLS configuration that cannot be
// loaded is an error; the server never falls back to plaintext.
func NewServer(handler *KPRHandler, logger *slog.Logger, jwtService *auth.JWTService, opts ServerOptions) (*Server, error) {
	interceptors := []grpc.UnaryServerInterceptor{observeInterceptor(opts.ServiceName, logger)}
	if jwtService != nil {
		interceptors = append(interceptors,
			auth.UnaryRoleInterceptor(jwtService, []string{MethodUpsertBank}, auth.RoleAdmin))
	}

	serverOpts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}

	// Optional TLS: set GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE to enable.
	certFile, keyFile := os.Getenv("GRPC_TLS_CERT_FILE"), os.Getenv("GRPC_TLS_KEY_FILE")
	switch {
	case certFile != "" && keyFile != "":
		creds, err := tlsutil.ServerCredentials(certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("load gRPC TLS credentials: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
		logger.Info("gRPC TLS enabled", "cert", certFile, "key", keyFile)
	case certFile != "" || keyFile != "":
		return nil, errors.New("gRPC TLS needs both GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE")
	default:
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(opts.ServiceName, healthpb.HealthCheckResponse_SERVING)

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterKPRServiceServer(gs, handler)

	return &Server{
		gs:      gs,
		health:  healthSrv,
		handler: handler,
		logger:  logger,
	}, nil
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop marks the server as not serving and stops it gracefully.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}

// observeInterceptor wraps every unary call in a span and logs its outcome.
func observeInterceptor(serviceName string, logger *slog.Logger) grpc.UnaryServerInterceptor {
	tracer := otel.Tracer(serviceName)
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		ctx, span := tracer.Start(ctx, info.FullMethod)
		defer span.End()

		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		span.SetAttributes(attribute.String("rpc.grpc.status_code", code.String()))
		if err != nil {
			span.SetStatus(otelcodes.Error, code.String())
		}
		logger.InfoContext(ctx, "rpc",
			"method", info.FullMethod,
			"code", code.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}
