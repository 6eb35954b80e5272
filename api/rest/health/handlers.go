package health

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/algopatterns/envelope/internal/response"
)

const (
	serviceName = "envelope"
	version     = "1.0.0"
)

// returns the server health status
func Handler(c *gin.Context) {
	response.Success(c, Response{
		Status:  "healthy",
		Service: serviceName,
		Version: version,
	})
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	response.Success(c, PingResponse{Message: "pong"})
}
