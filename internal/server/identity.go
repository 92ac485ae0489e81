package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// identityHeader names the header the excluded auth layer forwards the
// signed-in user id in.
const identityHeader = "X-User-ID"

// currentUserID resolves the acting user for a request: the identity header
// when present (must be a UUID), otherwise the configured default owner.
// On failure it writes the error response and returns false.
func (s *Server) currentUserID(c *gin.Context) (string, bool) {
	raw := c.GetHeader(identityHeader)
	if raw == "" {
		if s.defaultOwner == "" {
			s.respondError(c, http.StatusUnauthorized, fmt.Errorf("missing %s header", identityHeader))
			return "", false
		}
		return s.defaultOwner, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid %s header: %w", identityHeader, err))
		return "", false
	}
	return id.String(), true
}
