package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zeromicro/go-zero/core/logx"

	"capsule-bridge/internal/svc"
	"capsule-bridge/pkg/mainthread"
)

const (
	serverName    = "capsule-bridge"
	serverVersion = "0.1.0"
)

// Server exposes the bridge commands as MCP tools and pumps the main-thread
// queue while it serves.
type Server struct {
	mcpServer *mcp.Server
	queue     *mainthread.Queue
}

// New registers the generate_capsule tool against the service context.
func New(sc *svc.ServiceContext) (*Server, error) {
	if sc == nil || sc.CapsuleHandler == nil || sc.Queue == nil {
		return nil, errors.New("mcpserver: service context is not initialised")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(mcpServer, GenerateCapsuleTool(), GenerateCapsuleHandler(sc.CapsuleHandler))
	return &Server{mcpServer: mcpServer, queue: sc.Queue}, nil
}

// Serve runs the server on stdio until ctx is done or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Run serves over transport. The queue loop runs alongside; when serving ends
// the queue is closed and the loop returns once pending tasks have run.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}

	queueCtx, cancelQueue := context.WithCancel(context.Background())
	defer cancelQueue()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.queue.Run(queueCtx); err != nil && !errors.Is(err, context.Canceled) {
			logx.Errorf("[mcpserver] main-thread queue stopped: %v", err)
		}
	}()

	err := s.mcpServer.Run(ctx, transport)

	s.queue.Close()
	wg.Wait()

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
