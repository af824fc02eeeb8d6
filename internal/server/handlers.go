package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/rohith0110/Wikipedia-Graph/pkg/config"
	"github.com/rohith0110/Wikipedia-Graph/pkg/errors"
	"github.com/rohith0110/Wikipedia-Graph/pkg/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/pipeline"
)

// LayoutRequest is the body of POST /api/layout and POST /api/view.
// Empty fields take the server defaults.
type LayoutRequest struct {
	Elements []graph.Element `json:"elements" validate:"required"`

	Mode   string `json:"mode,omitempty" validate:"omitempty,oneof=overview detail"`
	Topic  string `json:"topic,omitempty" validate:"required_if=Mode detail,max=512"`
	Engine string `json:"engine,omitempty" validate:"omitempty,oneof=geometric galaxy neighborhood force"`
	Seed   uint64 `json:"seed,omitempty"`

	Top            int  `json:"top,omitempty" validate:"gte=0"`
	Ego            bool `json:"ego,omitempty"`
	SizeByDegree   bool `json:"size_by_degree,omitempty"`
	DetectClusters bool `json:"detect_clusters,omitempty"`
	Refresh        bool `json:"refresh,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) engines(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"engines": pipeline.EngineNames(),
		"default": pipeline.DefaultEngine,
	})
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), req.Elements, s.options(req))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) showView(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.session.Show(r.Context(), req.Elements, s.options(req))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) getView(w http.ResponseWriter, _ *http.Request) {
	cur, ok := s.session.Current()
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no view has been shown"))
		return
	}
	if mem, ok := cur.(*pipeline.MemorySurface); ok {
		if data := mem.Bytes(); data != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(data)
			return
		}
	}
	writeJSON(w, http.StatusOK, cur.Layout())
}

func (s *Server) viewClusters(w http.ResponseWriter, _ *http.Request) {
	last, ok := s.session.Last()
	if !ok || last.Graph == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no view has been shown"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":   last.RunID,
		"clusters": pipeline.SummarizeClusters(last.Graph),
	})
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (LayoutRequest, error) {
	var req LayoutRequest
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.opts.MaxBodyBytes)
		}
		return req, errors.New(errors.ErrCodeInvalidInput, "decode request: %v", err)
	}
	if err := config.ValidateStruct(req); err != nil {
		return req, errors.New(errors.ErrCodeInvalidInput, "invalid request: %v", err)
	}
	return req, nil
}

// options merges a request over the server defaults.
func (s *Server) options(req LayoutRequest) pipeline.Options {
	opts := s.opts.Defaults
	opts.Logger = s.logger
	if req.Mode != "" {
		opts.Mode = req.Mode
	}
	if req.Engine != "" {
		opts.Engine = req.Engine
	}
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	if req.Top != 0 {
		opts.Top = req.Top
	}
	opts.Topic = req.Topic
	opts.Ego = req.Ego
	opts.SizeByDegree = opts.SizeByDegree || req.SizeByDegree
	opts.DetectClusters = opts.DetectClusters || req.DetectClusters
	opts.Refresh = req.Refresh
	return opts
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
