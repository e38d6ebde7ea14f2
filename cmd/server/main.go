// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/halfsuit/fish/internal/auth"
	"github.com/halfsuit/fish/internal/handlers"
	"github.com/halfsuit/fish/internal/middleware"
)

func main() {
	auth.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	mux := http.NewServeMux()

	mux.HandleFunc("/ping", handlers.PingHandler)
	mux.HandleFunc("/halfsuits", handlers.HalfSuitsHandler)

	// room server + game websocket
	srv := handlers.NewRoomServer()
	mux.Handle("/fish/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.FishWSHandler(logger, srv),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
