// Package clients provides gRPC clients for the local control plane.
package clients

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	pb "github.com/agentmesh/agentmesh/gen/proto/agentservice"
)

// AgentClient is a gRPC client for the AgentService.
type AgentClient struct {
	conn   *grpc.ClientConn
	client pb.AgentServiceClient
	logger *zap.Logger
	target string
}

// NewAgentClient dials the node's control plane.
func NewAgentClient(target string, logger *zap.Logger) (*AgentClient, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{Time: 300 * time.Second}),
	)
	if err != nil {
		return nil, err
	}
	return &AgentClient{
		conn:   conn,
		client: pb.NewAgentServiceClient(conn),
		logger: logger,
		target: target,
	}, nil
}

func (c *AgentClient) Close() error { return c.conn.Close() }

func (c *AgentClient) Target() string { return c.target }

// Connect opens the event stream. The caller iterates with Recv until
// the stream closes; there is no retry contract, the client reconnects.
func (c *AgentClient) Connect(ctx context.Context) (pb.AgentService_ConnectClient, error) {
	return c.client.Connect(ctx, &pb.ConnectRequest{})
}

// SendMessage publishes one message and returns its message id.
func (c *AgentClient) SendMessage(ctx context.Context, to string, content []byte) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	resp, err := c.client.SendMessage(callCtx, &pb.Message{To: to, Content: content})
	if err != nil {
		return "", err
	}
	return resp.MessageId, nil
}

// Stop asks the node to shut down gracefully.
func (c *AgentClient) Stop(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := c.client.Stop(callCtx, &pb.StopRequest{})
	return err
}

// ListAgents fetches the current directory snapshot.
func (c *AgentClient) ListAgents(ctx context.Context) ([]*pb.AgentInfo, error) {
	callCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	resp, err := c.client.ListAgents(callCtx, &pb.ListRequest{})
	if err != nil {
		return nil, err
	}
	return resp.Agents, nil
}
