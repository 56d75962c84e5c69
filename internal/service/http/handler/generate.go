package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/promptforge/image-relay/config"
	"github.com/promptforge/image-relay/internal/consts"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/promptforge/image-relay/internal/modules/ai/image"
	"github.com/promptforge/image-relay/internal/modules/ai/style"
	"github.com/promptforge/image-relay/internal/modules/logs"
	"github.com/promptforge/image-relay/internal/modules/stock"
	"github.com/promptforge/image-relay/internal/service/http/handler/request"
	"github.com/promptforge/image-relay/internal/service/http/handler/response"
)

// generateProviders and stockImages are seams so tests can run the handler
// against fakes and keep the stock policy off the network.
var (
	generateProviders = image.DefaultProviders
	stockImages       = stock.Images
)

func Generate(c *gin.Context) {
	form := request.Generate{}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
		return
	}
	form.FullWithDefault()

	cfg := config.GConfig
	prompt := style.Compose(strings.TrimSpace(form.Prompt), form.Style)
	opts := image.Options{Override: cfg.ProviderOverride, Timeout: cfg.Timeout()}
	images, err := image.Generate(c.Request.Context(), opts, generateProviders(cfg.Credentials), prompt, form.Count)
	if err == nil {
		c.JSON(http.StatusOK, response.Generate{Images: images})
		return
	}
	switch {
	case errors.Is(err, ai.PromptError):
		c.JSON(http.StatusBadRequest, response.Error("prompt rejected by content policy"))
	case errors.Is(err, ai.NoProviderError):
		c.JSON(http.StatusInternalServerError, response.Error("no image provider configured"))
	case errors.Is(err, ai.ExhaustedError):
		if cfg.Policy() == consts.PolicyStock {
			logs.Logger.Warn().Err(err).Msg("generation chain exhausted, substituting stock images")
			c.JSON(http.StatusOK, response.Generate{Images: stockImages(c.Request.Context(), strings.TrimSpace(form.Prompt), form.Count)})
			return
		}
		c.JSON(http.StatusServiceUnavailable, response.Error("image generation unavailable, use client-side fallback"))
	default:
		c.JSON(http.StatusBadGateway, response.Error("upstream image provider failed"))
	}
}
