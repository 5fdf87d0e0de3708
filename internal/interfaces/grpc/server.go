// Package grpc exposes the standard grpc.health.v1 service so that gRPC-aware
// load balancers can follow the engine's readiness.
package grpc

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
)

// ServiceName is the health service name reported alongside the overall ("")
// status.
const ServiceName = "mfr.risk.v1.RiskEngine"

const (
	defaultGracefulTimeout = 10 * time.Second
	defaultPollInterval    = 5 * time.Second
)

var defaultKeepaliveParams = keepalive.ServerParameters{
	MaxConnectionIdle:     15 * time.Minute,
	MaxConnectionAge:      30 * time.Minute,
	MaxConnectionAgeGrace: 5 * time.Second,
	Time:                  5 * time.Minute,
	Timeout:               1 * time.Second,
}

// Option configures the gRPC Server.
type Option func(*serverOptions)

type serverOptions struct {
	logger          logging.Logger
	ready           func() bool
	pollInterval    time.Duration
	gracefulTimeout time.Duration
}

func WithLogger(l logging.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReadiness makes the health status follow ready, polled every interval.
// Without it the server always reports SERVING.
func WithReadiness(ready func() bool, interval time.Duration) Option {
	return func(o *serverOptions) {
		o.ready = ready
		if interval > 0 {
			o.pollInterval = interval
		}
	}
}

func WithGracefulTimeout(d time.Duration) Option {
	return func(o *serverOptions) {
		if d > 0 {
			o.gracefulTimeout = d
		}
	}
}

// Server wraps a grpc.Server carrying only the health service.
type Server struct {
	grpcServer   *grpc.Server
	listener     net.Listener
	opts         *serverOptions
	healthServer *health.Server

	mu      sync.Mutex
	started bool
	closed  bool
	stop    chan struct{}
}

// NewServer binds addr and registers the health service.
func NewServer(addr string, opts ...Option) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return NewServerWithListener(lis, opts...), nil
}

// NewServerWithListener is NewServer over an existing listener.
func NewServerWithListener(lis net.Listener, opts ...Option) *Server {
	sopts := &serverOptions{
		logger:          logging.NewNopLogger(),
		pollInterval:    defaultPollInterval,
		gracefulTimeout: defaultGracefulTimeout,
	}
	for _, o := range opts {
		o(sopts)
	}

	gs := grpc.NewServer(
		grpc.KeepaliveParams(defaultKeepaliveParams),
		grpc.ChainUnaryInterceptor(
			recoveryUnaryInterceptor(sopts.logger),
			loggingUnaryInterceptor(sopts.logger),
		),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	s := &Server{
		grpcServer:   gs,
		listener:     lis,
		opts:         sopts,
		healthServer: hs,
		stop:         make(chan struct{}),
	}
	s.SyncHealth()
	return s
}

// SyncHealth publishes the current readiness immediately.
func (s *Server) SyncHealth() {
	st := healthpb.HealthCheckResponse_SERVING
	if s.opts.ready != nil && !s.opts.ready() {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.healthServer.SetServingStatus("", st)
	s.healthServer.SetServingStatus(ServiceName, st)
}

// Start serves until Stop. It blocks.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("server already started")
	}
	s.started = true
	s.mu.Unlock()

	if s.opts.ready != nil {
		go s.pollReadiness()
	}
	s.opts.logger.Info("grpc server starting", logging.String("address", s.Addr()))
	return s.grpcServer.Serve(s.listener)
}

func (s *Server) pollReadiness() {
	t := time.NewTicker(s.opts.pollInterval)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.SyncHealth()
		}
	}
}

// Stop marks every service NOT_SERVING, then stops gracefully. If ctx or the
// graceful timeout expires first the server is stopped forcibly. A server
// stopped before Start never serves.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if !s.started {
		s.mu.Unlock()
		return s.listener.Close()
	}
	close(s.stop)
	s.mu.Unlock()

	s.opts.logger.Info("grpc server stopping")
	s.healthServer.Shutdown()

	gracefulCtx, cancel := context.WithTimeout(ctx, s.opts.gracefulTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		s.opts.logger.Info("grpc server stopped gracefully")
	case <-gracefulCtx.Done():
		s.opts.logger.Warn("grpc graceful stop timed out, forcing stop")
		s.grpcServer.Stop()
	}
	return nil
}

// Addr returns the actual listen address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func recoveryUnaryInterceptor(logger logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("grpc panic recovered",
					logging.String("method", info.FullMethod),
					logging.String("panic", fmt.Sprintf("%v", r)),
					logging.String("stack", string(debug.Stack())),
				)
				err = status.Errorf(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}

func isHealthCheck(method string) bool {
	return strings.HasPrefix(method, "/grpc.health.v1.Health/")
}

func loggingUnaryInterceptor(logger logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []logging.Field{
			logging.String("method", info.FullMethod),
			logging.Duration("duration", time.Since(start)),
			logging.String("code", status.Code(err).String()),
		}
		if isHealthCheck(info.FullMethod) {
			logger.Debug("grpc request", fields...)
		} else {
			logger.Info("grpc request", fields...)
		}
		return resp, err
	}
}

//Personal.AI order the ending
