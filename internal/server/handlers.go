package server

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/segmentio/encoding/json"

	"github.com/matzehuels/bspgen/pkg/buildinfo"
	"github.com/matzehuels/bspgen/pkg/config"
	"github.com/matzehuels/bspgen/pkg/errors"
	"github.com/matzehuels/bspgen/pkg/pipeline"
	"github.com/matzehuels/bspgen/pkg/split"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handlePolicies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"policies": split.Names()})
}

func (s *Server) handleDungeon(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	cfg, err := parseConfig(q, s.defaults)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := checkLimits(cfg); err != nil {
		s.writeError(w, err)
		return
	}
	detailed, err := parseBool(q, "detailed", false)
	if err != nil {
		s.writeError(w, err)
		return
	}
	siblings, err := parseBool(q, "siblings", false)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Config:   cfg,
		Formats:  []string{format},
		Detailed: detailed,
		Siblings: siblings,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Bspgen-Seed", strconv.FormatInt(result.Dungeon.Seed, 10))
	w.Header().Set("X-Bspgen-Version", buildinfo.UserAgent())
	if result.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// parseConfig applies query parameters on top of defaults.
func parseConfig(q url.Values, defaults config.Config) (config.Config, error) {
	cfg := defaults
	floats := map[string]*float64{
		"width":     &cfg.Map.Width,
		"height":    &cfg.Map.Height,
		"min_ratio": &cfg.Split.MinRatio,
		"max_ratio": &cfg.Split.MaxRatio,
		"padding":   &cfg.Rooms.Padding,
		"min_room":  &cfg.Rooms.MinSize,
		"corridor":  &cfg.Rooms.CorridorWidth,
		"scale":     &cfg.Render.Scale,
	}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s: %q", name, v)
			}
			*dst = f
		}
	}

	if v := q.Get("depth"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid depth: %q", v)
		}
		cfg.Split.Depth = n
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid seed: %q", v)
		}
		cfg.Split.Seed = n
	}
	if v := q.Get("policy"); v != "" {
		cfg.Split.Policy = v
	}

	var err error
	if cfg.Render.ShowRegions, err = parseBool(q, "regions", cfg.Render.ShowRegions); err != nil {
		return cfg, err
	}
	if cfg.Render.ShowIDs, err = parseBool(q, "ids", cfg.Render.ShowIDs); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// checkLimits rejects requests whose tree or map would be too large to
// serve. Negative values are left to config validation.
func checkLimits(cfg config.Config) error {
	area := cfg.Map.Width * cfg.Map.Height
	if area > MaxMapArea {
		return errors.New(errors.ErrCodeInvalidInput,
			"map too large: %gx%g exceeds %d cells", cfg.Map.Width, cfg.Map.Height, MaxMapArea)
	}
	depth := cfg.Split.Depth
	if depth > MaxDepth {
		return errors.New(errors.ErrCodeInvalidInput, "depth too large: %d exceeds %d", depth, MaxDepth)
	}
	if depth >= 0 && float64(int(1)<<depth) > area {
		return errors.New(errors.ErrCodeInvalidInput,
			"depth %d yields %d leaves, more than the %g cells of a %gx%g map",
			depth, 1<<depth, area, cfg.Map.Width, cfg.Map.Height)
	}
	return nil
}

func parseBool(q url.Values, name string, def bool) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s: %q", name, v)
	}
	return b, nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRegion, errors.ErrCodeInvalidPolicy,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	resp := errorResponse{Error: string(code), Message: errors.UserMessage(err)}
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		resp.Detail = e.Cause.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
