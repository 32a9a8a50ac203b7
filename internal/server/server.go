// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/ThinkInAIXYZ/go-mcp/server"
	"github.com/ThinkInAIXYZ/go-mcp/transport"

	"diet-planner/internal/catalog"
	"diet-planner/internal/config"
	"diet-planner/internal/logger"
	"diet-planner/internal/mealgen"
	"diet-planner/internal/models"
	"diet-planner/internal/storage"
)

type MealPlanServer struct {
	server     *server.Server
	httpServer *http.Server
	storage    *storage.SQLiteStorage
	generator  *mealgen.Generator
	tools      map[string]func(*protocol.CallToolRequest) (*protocol.CallToolResult, error)
	log        *logger.Logger
	config     *config.Config
	now        func() time.Time
}

func NewMealPlanServer(cfg *config.Config, log *logger.Logger) (*MealPlanServer, error) {
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	stor, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	s := newMealPlanServer(stor, mealgen.New(cat), log)
	s.config = cfg

	// The MCP server only runs in stdio mode; over HTTP the tool calls are
	// decoded and dispatched by handleHTTP.
	mcpServer, err := server.NewServer(
		transport.NewStdioServerTransport(),
		server.WithServerInfo(protocol.Implementation{
			Name:    "diet-planner",
			Version: "1.0.0",
		}),
	)
	if err != nil {
		stor.Close()
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}
	s.server = mcpServer

	for name, handler := range s.tools {
		mcpServer.RegisterTool(&protocol.Tool{Name: name, Description: toolDescriptions[name]}, handler)
		log.Debug("registered tool", "tool", name)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHTTP)
	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// newMealPlanServer wires the tool table without any transport.
func newMealPlanServer(stor *storage.SQLiteStorage, gen *mealgen.Generator, log *logger.Logger) *MealPlanServer {
	s := &MealPlanServer{
		storage:   stor,
		generator: gen,
		log:       log,
		now:       time.Now,
	}
	s.registerTools()
	return s
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded catalog: %w", err)
		}
		return cat, nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return cat, nil
}

func (s *MealPlanServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	start := time.Now()
	result, err := handler(&request)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.log.Error("tool failed", "tool", request.Name, "error", err)
		} else {
			s.log.Info("tool rejected", "tool", request.Name, "status", status, "error", err)
		}
		http.Error(w, err.Error(), status)
		return
	}
	s.log.Debug("tool call", "tool", request.Name, "duration", time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Warn("failed to encode response", "tool", request.Name, "error", err)
	}
}

// statusFor maps tool errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidParams), errors.Is(err, models.ErrInvalidProfile),
		errors.Is(err, mealgen.ErrNotAnOption):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, mealgen.ErrNoCandidates):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Start blocks serving the configured transport until Stop is called.
func (s *MealPlanServer) Start(ctx context.Context) error {
	if s.config != nil && s.config.Transport == "stdio" {
		s.log.Info("serving MCP over stdio")
		return s.server.Run()
	}

	s.log.Info("starting diet planner server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *MealPlanServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if s.config != nil && s.config.Transport == "stdio" && s.server != nil {
		errs = append(errs, s.server.Shutdown(ctx))
	} else if s.httpServer != nil {
		errs = append(errs, s.httpServer.Shutdown(ctx))
	}
	if s.storage != nil {
		errs = append(errs, s.storage.Close())
	}
	return errors.Join(errs...)
}

func (s *MealPlanServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
