package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"quotation-backend/config"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const cachedTemplateName = "quotation_template.docx"

// TemplateService resolves the quotation template. When a remote URL is
// configured the latest copy is fetched and cached; any fetch failure falls
// back to the cached copy, then to the bundled local template. Remote fetches
// are rate limited so repeated generation requests do not hammer the template
// host.
type TemplateService struct {
	cfg     config.AppConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewTemplateService(cfg config.AppConfig) *TemplateService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{
		cfg:     cfg,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Minute), 1),
		logger:  logger,
	}
}

// ResolveTemplate returns the path of the template to mutate for this run.
func (s *TemplateService) ResolveTemplate(ctx context.Context) (string, error) {
	if s.cfg.TemplateURL != "" {
		if path, err := s.fetchRemote(ctx); err == nil {
			return path, nil
		} else {
			s.logger.Warn("Remote template fetch failed, falling back to local template",
				zap.String("url", s.cfg.TemplateURL), zap.Error(err))
		}
		if cached := s.cachedPath(); fileExists(cached) {
			return cached, nil
		}
	}
	if fileExists(s.cfg.TemplatePath) {
		return s.cfg.TemplatePath, nil
	}
	return "", errors.New("no quotation template available")
}

func (s *TemplateService) cachedPath() string {
	return filepath.Join(s.cfg.TemplateCacheDir, cachedTemplateName)
}

func (s *TemplateService) fetchRemote(ctx context.Context) (string, error) {
	if !s.limiter.Allow() {
		if cached := s.cachedPath(); fileExists(cached) {
			return cached, nil
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.TemplateURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("template host returned status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(s.cfg.TemplateCacheDir, 0o755); err != nil {
		return "", err
	}
	cached := s.cachedPath()
	tmp := cached + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, cached); err != nil {
		return "", err
	}
	return cached, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
