package handlers

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/leozw/domain-scout/internal/registrar"
)

func (h *Handler) ListDomains(c *gin.Context) {
	entries, err := h.store.ListDomains(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list domains"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"domains": entries,
		"count":   len(entries),
	})
}

func (h *Handler) ExportDomains(c *gin.Context) {
	entries, err := h.store.ListDomains(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list domains"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="portfolio.csv"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"domain", "strategy", "category", "is_premium", "premium_price", "registrar", "acquired_at"})
	for _, e := range entries {
		w.Write([]string{
			e.Domain,
			e.Strategy,
			string(e.Category),
			strconv.FormatBool(e.IsPremium),
			strconv.Itoa(e.PremiumPrice),
			e.Registrar,
			e.AcquiredAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	w.Flush()
}

func (h *Handler) CheckDomain(c *gin.Context) {
	domain := c.Param("domain")

	result, err := h.registrar.CheckAvailability(c.Request.Context(), domain)
	if err != nil {
		h.renderRegistrarError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type VariationsRequest struct {
	Base string   `json:"base" binding:"required"`
	TLDs []string `json:"tlds"`
}

func (h *Handler) GenerateVariations(c *gin.Context) {
	var req VariationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.registrar.GenerateVariations(c.Request.Context(), req.Base, req.TLDs)
	if err != nil {
		h.renderRegistrarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"base":      req.Base,
		"available": results,
		"count":     len(results),
	})
}

func (h *Handler) renderRegistrarError(c *gin.Context, err error) {
	if errors.Is(err, registrar.ErrEmptyDomainList) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var regErr *registrar.RegistrarError
	if errors.As(err, &regErr) && !regErr.Transport() {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":           "registrar rejected the request",
			"provider_status": regErr.StatusCode,
			"provider_errors": regErr.Errors,
		})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{"error": "registrar unreachable"})
}
