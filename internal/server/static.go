package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the compiled dashboard frontend. When the directory is
// absent the server runs in API-only mode, which is what tests and headless
// deployments use.
func (s *Server) mountStatic() {
	if s.staticDir == "" {
		s.logger.Warn("static directory not configured; API only mode")
		return
	}
	if info, err := os.Stat(s.staticDir); err != nil || !info.IsDir() {
		s.logger.Warn("static directory missing; API only mode", "path", s.staticDir)
		return
	}

	index := filepath.Join(s.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		s.logger.Warn("index.html not found", "path", index)
		return
	}

	s.engine.GET("/", func(c *gin.Context) {
		c.File(index)
	})
	// The dashboard is a single-page app: unknown non-API paths fall back
	// to index.html so client-side routing works on reload.
	s.engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
			return
		}
		c.File(index)
	})

	for _, sub := range []string{"assets", "img"} {
		dir := filepath.Join(s.staticDir, sub)
		if _, err := os.Stat(dir); err == nil {
			s.engine.StaticFS("/"+sub, gin.Dir(dir, true))
		}
	}
	if favicon := filepath.Join(s.staticDir, "favicon.ico"); fileExists(favicon) {
		s.engine.StaticFile("/favicon.ico", favicon)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
