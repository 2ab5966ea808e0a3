package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"janazaboard/internal/geo"
)

// Locate resolves the viewer position: explicit lat/lng query parameters win,
// otherwise the locale fallback city is returned.
func Locate() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := geo.ResolveViewer(
			c.Query("lat"),
			c.Query("lng"),
			c.GetHeader("Accept-Language"),
		)
		c.JSON(http.StatusOK, viewer)
	}
}

// GeocodeAddress is the manual strategy: one-shot lookup, first candidate
// accepted.
func GeocodeAddress(resolver geo.AddressResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}

		resolved, err := resolver.Resolve(c.Request.Context(), query)
		if err != nil {
			respondGeoError(c, err)
			return
		}
		c.JSON(http.StatusOK, resolved)
	}
}

// SuggestAddresses is the autocomplete strategy: ranked candidates, each
// carrying a formatted address and coordinates.
func SuggestAddresses(resolver geo.AddressResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}

		candidates, err := resolver.Suggest(c.Request.Context(), query)
		if err != nil {
			respondGeoError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": candidates, "count": len(candidates)})
	}
}

func respondGeoError(c *gin.Context, err error) {
	switch err {
	case geo.ErrAddressNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
	case geo.ErrProviderUnavailable:
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding service unavailable"})
	default:
		log.Println("[GEO] [ERROR] unexpected resolver error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
