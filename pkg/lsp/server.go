package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/matzehuels/crates-lsp/pkg/buildinfo"
	"github.com/matzehuels/crates-lsp/pkg/hints"
)

// HintProvider computes hints for a file on disk.
type HintProvider interface {
	ForFile(ctx context.Context, path string) []hints.Hint
}

// Server dispatches LSP messages for a single connection.
type Server struct {
	provider HintProvider
	logger   *log.Logger

	writeMu  sync.Mutex
	inflight sync.WaitGroup
	conn     jsonrpc2.Conn
	shutdown atomic.Bool
	exited   atomic.Bool
}

// NewServer creates a server answering hint requests from provider.
func NewServer(provider HintProvider, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{provider: provider, logger: logger}
}

// Serve runs the protocol over rwc until the client sends exit, the stream
// ends or ctx is cancelled. A clean exit or end of input returns nil.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	s.conn = jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	s.conn.Go(ctx, s.handle)

	select {
	case <-ctx.Done():
		s.conn.Close()
		<-s.conn.Done()
		s.inflight.Wait()
		return ctx.Err()
	case <-s.conn.Done():
	}
	s.inflight.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.conn.Err()
	if s.exited.Load() || err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
		return nil
	}
	return err
}

func (s *Server) reply(ctx context.Context, reply jsonrpc2.Replier, result any, err error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return reply(ctx, result, err)
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	method := req.Method()
	if s.shutdown.Load() && method != methodExit {
		return s.reply(ctx, reply, nil, fmt.Errorf("%q after shutdown: %w", method, jsonrpc2.ErrInvalidRequest))
	}

	switch method {
	case methodInitialize:
		return s.initialize(ctx, reply, req.Params())
	case methodInitialized:
		s.logger.Debug("client initialized")
		return s.reply(ctx, reply, nil, nil)
	case methodShutdown:
		s.shutdown.Store(true)
		s.logger.Debug("shutdown requested")
		return s.reply(ctx, reply, nil, nil)
	case methodExit:
		s.exited.Store(true)
		s.logger.Debug("exit")
		s.conn.Close()
		return nil
	case methodDidOpen, methodDidChange, methodDidSave, methodDidClose:
		var params textDocumentParams
		if err := json.Unmarshal(req.Params(), &params); err == nil {
			s.logger.Debug("document event", "method", method, "uri", params.TextDocument.URI)
		}
		return s.reply(ctx, reply, nil, nil)
	case methodCancel, methodSetTrace:
		return s.reply(ctx, reply, nil, nil)
	case methodInlayHint:
		var params InlayHintParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return s.reply(ctx, reply, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
		}
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			result := s.inlayHints(ctx, params)
			if err := s.reply(ctx, reply, result, nil); err != nil {
				s.logger.Debug("failed to send inlay hints", "error", err)
			}
		}()
		return nil
	default:
		if strings.HasPrefix(method, "$/") {
			return s.reply(ctx, reply, nil, nil)
		}
		s.logger.Debug("unhandled method", "method", method)
		return s.reply(ctx, reply, nil, fmt.Errorf("%q: %w", method, jsonrpc2.ErrMethodNotFound))
	}
}

func (s *Server) initialize(ctx context.Context, reply jsonrpc2.Replier, raw json.RawMessage) error {
	var params initializeParams
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			return s.reply(ctx, reply, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
		}
	}
	if params.ClientInfo != nil {
		s.logger.Info("initialize", "client", params.ClientInfo.Name, "client_version", params.ClientInfo.Version)
	} else {
		s.logger.Info("initialize")
	}

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			ServerCapabilities: protocol.ServerCapabilities{
				TextDocumentSync: protocol.TextDocumentSyncKindIncremental,
			},
			InlayHintProvider: &InlayHintOptions{ResolveProvider: false},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    buildinfo.Name,
			Version: buildinfo.Version,
		},
	}
	return s.reply(ctx, reply, result, nil)
}

// inlayHints never returns nil so the reply serializes as an empty array.
func (s *Server) inlayHints(ctx context.Context, params InlayHintParams) []InlayHint {
	out := []InlayHint{}

	path, ok := filename(params.TextDocument.URI)
	if !ok {
		s.logger.Debug("ignoring non-file document", "uri", params.TextDocument.URI)
		return out
	}

	for _, h := range s.provider.ForFile(ctx, path) {
		if !inRange(params.Range, h.Line) {
			continue
		}
		out = append(out, InlayHint{
			Position:     protocol.Position{Line: h.Line, Character: h.Character},
			Label:        h.Label,
			Kind:         InlayHintKind(h.Kind),
			PaddingLeft:  h.PaddingLeft,
			PaddingRight: h.PaddingRight,
		})
	}
	return out
}

func filename(u protocol.DocumentURI) (string, bool) {
	if !strings.HasPrefix(string(u), uri.FileScheme+"://") {
		return "", false
	}
	return uri.URI(u).Filename(), true
}

// inRange treats an empty range as the whole document.
func inRange(r protocol.Range, line uint32) bool {
	if r.Start == r.End {
		return true
	}
	return line >= r.Start.Line && line <= r.End.Line
}
