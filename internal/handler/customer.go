package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/customer-pages-service/internal/service"
	"github.com/maxviazov/customer-pages-service/pkg/response"
)

const serviceTimeout = 5 * time.Second

// CustomersPath is the collection route, relative to APIV1Prefix.
const CustomersPath = "/customers"

type CustomerHandler struct {
	svc service.CustomerService
}

func NewCustomerHandler(svc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) Register(r *gin.RouterGroup) {
	g := r.Group(CustomersPath)
	{
		g.GET("", h.list)
		g.GET("/:page", h.list)
		g.GET("/by-id/:id", h.getByID)
	}
}

// intParam parses an optional integer; empty means zero so the service applies its default.
func intParam(raw, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.NewInvalidInputError([]service.FieldError{{Field: field, Message: "must be a valid integer"}})
	}
	return n, nil
}

// list serves both GET /customers?page=N and GET /customers/N. The path wins when both are set.
func (h *CustomerHandler) list(c *gin.Context) {
	rawPage := c.Param("page")
	if rawPage == "" {
		rawPage = c.Query("page")
	}
	page, err := intParam(rawPage, "page")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	size, err := intParam(c.Query("page_size"), "page_size")
	if err != nil {
		response.WriteError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	res, err := h.svc.ListCustomers(ctx, service.CustomerQuery{
		Page:     page,
		PageSize: size,
		Search:   c.Query("search"),
	})
	if err != nil {
		RequestLogger(c).Error().Err(err).Int("page", page).Msg("list customers failed")
		response.WriteError(c, err)
		return
	}

	if link := BuildLinkHeader(APIV1Prefix+CustomersPath, c.Request.URL.Query(), res.Window); link != "" {
		c.Header("Link", link)
	}
	c.Header("X-Total-Count", strconv.Itoa(res.Window.TotalItems()))
	response.WriteData(c, http.StatusOK, res)
}

func (h *CustomerHandler) getByID(c *gin.Context) {
	customer, err := h.svc.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, customer)
}
