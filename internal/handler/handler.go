package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/customer-pages-service/internal/service"
)

// APIV1Prefix is the canonical base path for public HTTP API v1.
const APIV1Prefix = "/api/v1"

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, repo Pinger, customerSvc service.CustomerService) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewCustomerHandler(customerSvc).Register(api)
	}
}
