package server

import (
	"net"

	"github.com/MKhiriev/zonesync/internal/config"
	myGRPC "github.com/MKhiriev/zonesync/internal/handler/grpc"
	"github.com/MKhiriev/zonesync/internal/logger"

	"google.golang.org/grpc"
)

// grpcServer is the gRPC transport slot. No services are registered on it
// yet; the listener and lifecycle wiring are in place for when the sync API
// grows a gRPC surface.
type grpcServer struct {
	handler *myGRPC.Handler

	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	return &grpcServer{
		handler: handler,
		server:  grpc.NewServer(),
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer() {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		g.logger.Error().Msgf("gRPC server Listen: %v", err)
		return
	}

	if err := g.server.Serve(listener); err != nil {
		g.logger.Error().Msgf("gRPC server Serve: %v", err)
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.server.GracefulStop()
}
