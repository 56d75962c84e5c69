package main

import (
	"flag"

	"github.com/joho/godotenv"
	"github.com/promptforge/image-relay/config"
	"github.com/promptforge/image-relay/internal/modules/logs"
	"github.com/promptforge/image-relay/internal/service/http"
)

var (
	httpPort   string
	configPath string
)

func init() {
	flag.StringVar(&httpPort, "http-port", ":8080", "listen http port")
	flag.StringVar(&configPath, "config", "config.yml", "config file path")
}

func main() {
	flag.Parse()
	// Secrets come from the environment; a .env file is optional.
	_ = godotenv.Load()
	config.Init(configPath)
	logs.InitLogger()
	http.Serve(httpPort)
}
