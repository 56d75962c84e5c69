package http

import (
	"github.com/gin-gonic/gin"
	"github.com/promptforge/image-relay/internal/service/http/handler"
	"github.com/promptforge/image-relay/internal/service/http/middleware"
)

func Serve(port string) {
	e := gin.New()
	initRouter(e)
	if err := e.Run(port); err != nil {
		panic(err)
	}
}

func initRouter(e *gin.Engine) {
	e.Use(gin.Recovery(), middleware.RequestLogger())
	v1 := e.Group("/v1")
	images := v1.Group("/images")
	{
		images.POST("/generations", handler.Generate)
		images.POST("/analysis", handler.Analyze)
	}
}
