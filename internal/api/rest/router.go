// Package rest provides the Gin-based read-only debug API.
package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agentmesh/agentmesh/internal/directory"
	"github.com/agentmesh/agentmesh/internal/messaging"
	"github.com/agentmesh/agentmesh/internal/overlay"
	"github.com/agentmesh/agentmesh/internal/status"
)

// Server is the REST debug server. All endpoints are read-only and
// intended for local inspection.
type Server struct {
	engine   *gin.Engine
	node     *overlay.Engine
	dir      *directory.Directory
	msg      *messaging.Service
	reporter *status.Broadcaster
	selfAddr string
	logger   *zap.Logger
}

// New creates a REST Server.
func New(node *overlay.Engine, dir *directory.Directory, msg *messaging.Service, reporter *status.Broadcaster, selfAddr string, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		node:     node,
		dir:      dir,
		msg:      msg,
		reporter: reporter,
		selfAddr: selfAddr,
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

// Start starts the REST server on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("REST API listening", zap.String("addr", addr))
	return s.engine.Run(addr)
}

func (s *Server) registerRoutes() {
	mesh := s.engine.Group("/agentmesh")
	{
		mesh.GET("/health", s.health)
		mesh.GET("/node", s.nodeInfo)
		mesh.GET("/peers", s.peers)
		mesh.GET("/status", s.statusReports)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) nodeInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"agentId":          s.selfAddr,
		"peerId":           s.node.PeerID(),
		"multiaddrs":       s.node.Multiaddrs(),
		"connectedPeers":   len(s.node.ConnectedPeers()),
		"routingTableSize": s.node.RoutingTableSize(),
		"messagesSent":     s.msg.Sent(),
		"messagesReceived": s.msg.Received(),
	})
}

func (s *Server) peers(c *gin.Context) {
	c.JSON(http.StatusOK, s.dir.Snapshot())
}

func (s *Server) statusReports(c *gin.Context) {
	c.JSON(http.StatusOK, s.reporter.Reports())
}
