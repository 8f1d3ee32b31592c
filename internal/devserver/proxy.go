package devserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/vango-dev/toolbox/internal/config"
)

// newProxy forwards requests under prefix to rule.Target. The Host header
// is set to the upstream, and prefix is replaced by rule.Rewrite when set.
func newProxy(prefix string, rule config.ProxyRule, logger *slog.Logger) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(rule.Target)
	if err != nil {
		return nil, fmt.Errorf("proxy %s: %w", prefix, err)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			if rule.Rewrite != "" {
				rewritten := rule.Rewrite + strings.TrimPrefix(pr.In.URL.Path, prefix)
				pr.Out.URL.Path = strings.Replace(rewritten, "//", "/", 1)
				pr.Out.URL.RawPath = ""
			}
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn("proxy: upstream failed", "prefix", prefix, "target", rule.Target, "path", r.URL.Path, "error", err)
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
		},
	}, nil
}
