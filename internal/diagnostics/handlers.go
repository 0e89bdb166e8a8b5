package diagnostics

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleDictionaries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"protocols": s.snapshot.All()})
}

func (s *Server) handleDictionary(c *gin.Context) {
	protocol := c.Param("protocol")

	summary, ok := s.snapshot.ByProtocol(protocol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "NOT_FOUND", "message": "unknown protocol: " + protocol},
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
