package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v0common "canteen/internal/v0/common"
)

type StatusResponse struct {
	InternalServerLatency string `json:"internal_server_latency"`
	Uptime                string `json:"uptime"`
}

// Uptime Logic
var startTime time.Time

func uptime() time.Duration {
	return time.Since(startTime)
}

func init() {
	startTime = time.Now()
}

// Ping Logic
func ping() time.Duration {
	start := time.Now()
	duration := time.Since(start)
	return duration
}

func Status(c *gin.Context) {
	data := StatusResponse{
		InternalServerLatency: ping().String(),
		Uptime:                uptime().Truncate(time.Second).String(),
	}
	response := v0common.CreateSuccessResponse(data)
	c.JSON(http.StatusOK, response)
}

func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/status", Status)
}
