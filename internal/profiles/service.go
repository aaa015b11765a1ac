// Package profiles validates social handles: syntactic checks first, then
// a memoized existence probe against the platform's public profile URL.
package profiles

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"

	"sanctuary_backend/platform/cache"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
	platformvalidator "sanctuary_backend/platform/validator"
)

// probeURLs maps a platform to its public profile URL pattern.
var probeURLs = map[string]string{
	"github":    "https://github.com/%s",
	"x":         "https://x.com/%s",
	"instagram": "https://www.instagram.com/%s/",
	"youtube":   "https://www.youtube.com/@%s",
}

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]{0,38}$`)

// ValidateRequest is the profile check payload.
type ValidateRequest struct {
	Handle   string `json:"handle" binding:"required" validate:"required,handle"`
	Platform string `json:"platform" binding:"required" validate:"required,oneof=github x instagram youtube"`
}

// ValidateResponse reports both syntactic validity and existence.
type ValidateResponse struct {
	Handle   string `json:"handle"`
	Platform string `json:"platform"`
	Valid    bool   `json:"valid"`
	Exists   bool   `json:"exists"`
}

// Service performs the syntactic validation and the existence probe.
type Service struct {
	validator *platformvalidator.Validator
	http      *http.Client
	memo      *cache.Memo[bool]
	log       *logger.Logger
}

func NewService(cfg config.ProfilesConfig, log *logger.Logger) (*Service, error) {
	v := platformvalidator.New()
	if err := v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	memo, err := cache.NewMemo[bool](cfg.GetProfileCacheSize())
	if err != nil {
		return nil, err
	}

	return &Service{
		validator: v,
		http:      &http.Client{Timeout: cfg.GetProfileProbeTimeout()},
		memo:      memo,
		log:       log,
	}, nil
}

// Validate checks the handle syntactically and, when it passes, probes the
// platform for an existing profile. Probe results are memoized per
// handle|platform pair.
func (s *Service) Validate(ctx context.Context, req ValidateRequest) (*ValidateResponse, error) {
	resp := &ValidateResponse{Handle: req.Handle, Platform: req.Platform}

	if err := s.validator.Struct(req); err != nil {
		return resp, nil
	}
	resp.Valid = true

	key := req.Handle + "|" + req.Platform
	exists, err := s.memo.GetOrCompute(key, func() (bool, error) {
		return s.probe(ctx, req.Handle, req.Platform)
	})
	if err != nil {
		return nil, err
	}
	resp.Exists = exists
	return resp, nil
}

// probe issues a HEAD request against the public profile URL. Any 2xx
// counts as existing; 404 means the handle is unclaimed.
func (s *Service) probe(ctx context.Context, handle, platform string) (bool, error) {
	pattern, ok := probeURLs[platform]
	if !ok {
		return false, fmt.Errorf("unsupported platform %q", platform)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fmt.Sprintf(pattern, handle), nil)
	if err != nil {
		return false, err
	}

	res, err := s.http.Do(req)
	if err != nil {
		s.log.UpstreamError(platform, "profile probe", err)
		return false, err
	}
	defer res.Body.Close()

	return res.StatusCode >= 200 && res.StatusCode < 300, nil
}
