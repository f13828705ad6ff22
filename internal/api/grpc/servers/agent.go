// Package servers implements the local gRPC control plane.
package servers

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	grpcstatus "google.golang.org/grpc/status"

	pb "github.com/agentmesh/agentmesh/gen/proto/agentservice"
	"github.com/agentmesh/agentmesh/internal/events"
	"github.com/agentmesh/agentmesh/internal/messaging"
)

// AgentSummary is one row of a ListAgents snapshot.
type AgentSummary struct {
	AgentID        string
	PeerID         string
	AgentName      string
	ConnectedSince int64
}

// AgentHandler is the interface the node controller implements for the
// control plane.
type AgentHandler interface {
	PeerID() string
	Send(ctx context.Context, to string, content []byte) (string, error)
	Agents() []AgentSummary
	Subscribe() (<-chan events.Event, func())
	Shutdown()
}

// AgentServiceServer implements the AgentService gRPC server.
type AgentServiceServer struct {
	pb.UnimplementedAgentServiceServer
	handler AgentHandler
	logger  *zap.Logger
}

// NewAgentServiceServer creates an AgentServiceServer.
func NewAgentServiceServer(handler AgentHandler, logger *zap.Logger) *AgentServiceServer {
	return &AgentServiceServer{handler: handler, logger: logger}
}

// Serve starts the gRPC listener.
func (s *AgentServiceServer) Serve(addr string) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{Time: 300 * time.Second}),
	)
	pb.RegisterAgentServiceServer(srv, s)
	go func() {
		if err := srv.Serve(lis); err != nil {
			s.logger.Error("AgentService gRPC server stopped", zap.Error(err))
		}
	}()
	s.logger.Info("AgentService gRPC listening", zap.String("addr", addr))
	return srv, nil
}

// Connect opens the event stream. Ready is always first; afterwards
// events flow in the order the node observed them. A slow or closed
// client misses events; there is no replay.
func (s *AgentServiceServer) Connect(req *pb.ConnectRequest, stream pb.AgentService_ConnectServer) error {
	if err := stream.Send(&pb.P2PEvent{Event: &pb.P2PEvent_Ready{
		Ready: &pb.Ready{PeerId: s.handler.PeerID()},
	}}); err != nil {
		return err
	}

	ch, cancel := s.handler.Subscribe()
	defer cancel()

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			out := toProto(ev)
			if out == nil {
				continue
			}
			if err := stream.Send(out); err != nil {
				return err
			}
		}
	}
}

// SendMessage delegates to the messaging layer. Content is opaque; the
// node encrypts according to its own configuration.
func (s *AgentServiceServer) SendMessage(ctx context.Context, req *pb.Message) (*pb.SendResult, error) {
	messageID, err := s.handler.Send(ctx, req.To, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, messaging.ErrNoRoute):
			return nil, grpcstatus.Errorf(codes.NotFound, "no route: %v", err)
		case errors.Is(err, messaging.ErrEncryption):
			return nil, grpcstatus.Errorf(codes.FailedPrecondition, "encryption: %v", err)
		case errors.Is(err, messaging.ErrPublishFailed):
			return nil, grpcstatus.Errorf(codes.Unavailable, "publish: %v", err)
		default:
			return nil, grpcstatus.Errorf(codes.Internal, "send: %v", err)
		}
	}
	return &pb.SendResult{MessageId: messageID}, nil
}

// Stop initiates cooperative shutdown.
func (s *AgentServiceServer) Stop(ctx context.Context, _ *pb.StopRequest) (*pb.StopResponse, error) {
	s.logger.Info("stop requested via control plane")
	go s.handler.Shutdown()
	return &pb.StopResponse{}, nil
}

// ListAgents returns the current directory snapshot.
func (s *AgentServiceServer) ListAgents(ctx context.Context, _ *pb.ListRequest) (*pb.ListAgentsResponse, error) {
	agents := s.handler.Agents()
	resp := &pb.ListAgentsResponse{Agents: make([]*pb.AgentInfo, 0, len(agents))}
	for _, a := range agents {
		resp.Agents = append(resp.Agents, &pb.AgentInfo{
			AgentId:        a.AgentID,
			PeerId:         a.PeerID,
			AgentName:      a.AgentName,
			ConnectedSince: a.ConnectedSince,
		})
	}
	return resp, nil
}

// toProto maps a bus event onto the wire variant. Ready events are
// stream-local and never re-emitted.
func toProto(ev events.Event) *pb.P2PEvent {
	switch ev.Kind {
	case events.KindPeerConnected:
		return &pb.P2PEvent{Event: &pb.P2PEvent_PeerConnected{
			PeerConnected: &pb.PeerConnected{PeerId: ev.PeerID},
		}}
	case events.KindMessage:
		if ev.Msg == nil {
			return nil
		}
		return &pb.P2PEvent{Event: &pb.P2PEvent_Message{
			Message: &pb.InboundMessage{
				MessageId: ev.Msg.MessageID,
				From:      ev.Msg.From,
				To:        ev.Msg.To,
				Content:   ev.Msg.Content,
				Timestamp: ev.Msg.Timestamp,
			},
		}}
	case events.KindError:
		return &pb.P2PEvent{Event: &pb.P2PEvent_Error{
			Error: &pb.StreamError{Code: ev.Code, Message: ev.Message},
		}}
	default:
		return nil
	}
}
