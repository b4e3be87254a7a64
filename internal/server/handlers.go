package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/autolayout/pkg/buildinfo"
	"github.com/matzehuels/autolayout/pkg/diagram"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
)

// layoutRequest is a diagram plus optional per-request overrides.
type layoutRequest struct {
	Nodes []diagram.Node `json:"nodes"`
	Edges []diagram.Edge `json:"edges"`
	// Options is merged over the server's engine options.
	Options           json.RawMessage `json:"options,omitempty"`
	OptimizeOnFailure *bool           `json:"optimize_on_failure,omitempty"`
}

type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)

	var req layoutRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed JSON"))
		return
	}

	if err := errors.ValidateDiagram(diagram.Diagram{Nodes: req.Nodes, Edges: req.Edges}); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.opts.EngineOptions
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, &opts); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options"))
			return
		}
		if err := opts.Validate(); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	optimize := s.opts.OptimizeOnFailure
	if req.OptimizeOnFailure != nil {
		optimize = *req.OptimizeOnFailure
	}

	l := layout.New(s.opts.Engine,
		layout.WithLogger(s.logger.With("request_id", RequestIDFromContext(r.Context()))),
		layout.WithEngineName(s.opts.EngineName),
		layout.WithEngineOptions(opts),
		layout.WithOptimizeOnFailure(optimize))
	ctx := r.Context()
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}
	res := l.Run(ctx, req.Nodes, req.Edges)

	if res.Nodes == nil {
		res.Nodes = []diagram.Node{}
	}
	if res.Edges == nil {
		res.Edges = []diagram.Edge{}
	}
	writeJSON(w, http.StatusOK, res)
}

// writeError answers with err's code and the matching HTTP status.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(err)
	s.logger.Debug("request rejected", "code", code, "status", status, "err", err)
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
