package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MEKXH/passgauge/internal/config"
	"github.com/MEKXH/passgauge/internal/policy"
	"github.com/MEKXH/passgauge/internal/version"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxEvaluateBody = 64 << 10

type Server struct {
	cfg        config.GatewayConfig
	evaluator  policy.Evaluator
	httpServer *http.Server
}

func New(cfg config.GatewayConfig, evaluator policy.Evaluator) *Server {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 18791
	}

	cfg.Host = host
	cfg.Port = port
	return &Server{
		cfg:       cfg,
		evaluator: evaluator,
	}
}

func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           NewHandler(s.cfg, s.evaluator, NewMetrics()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("gateway listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// NewHandler wires the feedback endpoints. Passwords are never logged.
func NewHandler(cfg config.GatewayConfig, evaluator policy.Evaluator, metrics *Metrics) http.Handler {
	if metrics == nil {
		metrics = NewMetrics()
	}
	token := strings.TrimSpace(cfg.Token)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r)
		if r.Method != http.MethodGet {
			writeError(w, requestID, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"request_id": requestID,
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r)
		if r.Method != http.MethodGet {
			writeError(w, requestID, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"version":    version.Version,
			"request_id": requestID,
		})
	})
	mux.HandleFunc("/policy", func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r)
		if r.Method != http.MethodGet {
			writeError(w, requestID, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		p := evaluator.Config()
		writeJSON(w, http.StatusOK, map[string]any{
			"policy": map[string]any{
				"min_length":            p.MinLength,
				"require_uppercase":     p.RequireUppercase,
				"require_lowercase":     p.RequireLowercase,
				"require_numbers":       p.RequireNumbers,
				"require_special_chars": p.RequireSpecialChars,
				"special_chars":         p.SpecialChars,
			},
			"requirements": evaluator.Requirements(),
			"max_score":    policy.MaxScore,
			"request_id":   requestID,
		})
	})
	mux.HandleFunc("/evaluate", func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r)
		if r.Method != http.MethodPost {
			writeError(w, requestID, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		if token != "" && !isAuthorized(r, token) {
			writeError(w, requestID, http.StatusUnauthorized, "unauthorized", "missing or invalid bearer token")
			return
		}

		var req struct {
			Password *string `json:"password"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxEvaluateBody)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, requestID, http.StatusRequestEntityTooLarge, "too_large", "request body too large")
				return
			}
			writeError(w, requestID, http.StatusBadRequest, "bad_request", "invalid json request")
			return
		}
		if req.Password == nil {
			writeError(w, requestID, http.StatusBadRequest, "bad_request", "password is required")
			return
		}

		res := evaluator.Evaluate(*req.Password)
		metrics.ObserveEvaluation(res)
		slog.Debug("password evaluated", "request_id", requestID, "tier", res.Tier, "valid", res.Valid)

		writeJSON(w, http.StatusOK, map[string]any{
			"result":     res,
			"request_id": requestID,
		})
	})
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))

	return metrics.Middleware(RateLimit(cfg.RateLimit, cfg.Burst)(mux))
}

func isAuthorized(r *http.Request, expected string) bool {
	got := strings.TrimSpace(r.Header.Get("Authorization"))
	if got == "" {
		return false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(got, prefix) {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(got, prefix))
	return token == expected
}

func getRequestID(r *http.Request) string {
	rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
	if rid != "" {
		return rid
	}
	return uuid.NewString()
}

func writeError(w http.ResponseWriter, requestID string, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"code":       code,
		"message":    message,
		"request_id": requestID,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusLabel(code int) string {
	return strconv.Itoa(code)
}
