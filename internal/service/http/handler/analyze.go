package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/promptforge/image-relay/config"
	"github.com/promptforge/image-relay/internal/modules/ai"
	"github.com/promptforge/image-relay/internal/modules/ai/vision"
	"github.com/promptforge/image-relay/internal/service/http/handler/request"
	"github.com/promptforge/image-relay/internal/service/http/handler/response"
	"github.com/promptforge/image-relay/tools"
)

// visionProviders is a seam so tests can run the handler against fakes.
var visionProviders = vision.DefaultProviders

func Analyze(c *gin.Context) {
	form := request.Analyze{}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
		return
	}

	var input ai.AnalysisInput
	if form.ImageBase64 != "" {
		data, mimeType, err := form.Decode()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(err.Error()))
			return
		}
		input = ai.AnalysisInput{Bytes: data, MIMEType: mimeType}
	} else {
		data, contentType, err := tools.GetOnlineImage(c.Request.Context(), form.ImageURL)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("could not fetch imageUrl"))
			return
		}
		if !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusBadRequest, response.Error("imageUrl does not point to an image"))
			return
		}
		input = ai.AnalysisInput{Bytes: data, MIMEType: contentType, URL: form.ImageURL}
	}

	cfg := config.GConfig
	opts := vision.Options{Override: cfg.ProviderOverride, Timeout: cfg.Timeout()}
	result, err := vision.Analyze(c.Request.Context(), opts, visionProviders(cfg.Credentials), input)
	if err == nil {
		c.JSON(http.StatusOK, response.Analyze{
			Analysis: response.Analysis{
				Objects:  result.Objects,
				Style:    result.Style,
				Mood:     result.Mood,
				Lighting: result.Lighting,
			},
			SuggestedPrompt: result.SuggestedPrompt,
		})
		return
	}
	switch {
	case errors.Is(err, ai.PromptError):
		c.JSON(http.StatusBadRequest, response.Error("image rejected by content policy"))
	case errors.Is(err, ai.NoProviderError):
		c.JSON(http.StatusInternalServerError, response.Error("no vision provider configured"))
	default:
		c.JSON(http.StatusBadGateway, response.Error("upstream vision provider failed"))
	}
}
