package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"enquiry_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	cacheNoCache = "no-cache"
	cacheOneDay  = "public, max-age=86400"
)

// staticOrNotFound serves files from dir for unmatched GET and HEAD requests
// outside /api, and answers everything else with the JSON 404 envelope.
func staticOrNotFound(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if dir != "" && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) &&
			!strings.HasPrefix(c.Request.URL.Path, "/api/") {
			if file, ok := resolveStatic(dir, c.Request.URL.Path); ok {
				if strings.EqualFold(filepath.Ext(file), ".html") {
					c.Header("Cache-Control", cacheNoCache)
				} else {
					c.Header("Cache-Control", cacheOneDay)
				}
				c.File(file)
				return
			}
		}
		httpkit.NotFound(c)
	}
}

// resolveStatic maps a URL path to a regular file under dir. Directory paths
// resolve to their index.html.
func resolveStatic(dir, urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if strings.HasSuffix(urlPath, "/") {
		clean = path.Join(clean, "index.html")
	}
	file := filepath.Join(dir, filepath.FromSlash(clean))

	info, err := os.Stat(file)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		file = filepath.Join(file, "index.html")
		if info, err = os.Stat(file); err != nil {
			return "", false
		}
	}
	if !info.Mode().IsRegular() {
		return "", false
	}
	return file, true
}
