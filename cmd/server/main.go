package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"cardrush-server/internal/config"
	"cardrush-server/internal/mux"
	"cardrush-server/pkg/chat"
	"cardrush-server/pkg/room"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the TCP listen address (overrides config)")
var apiAddr = flag.String("api-addr", "", "the HTTP API listen address (overrides config)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	listenAddr := cfg.ListenAddr
	if *addr != "" {
		listenAddr = *addr
	}

	moderator := chat.NewFromFile(cfg.Chat.BadWordsPath)

	hub := room.NewHub(room.Options{
		GameDuration: time.Duration(cfg.Game.DurationSeconds) * time.Second,
		MuteDuration: time.Duration(cfg.Chat.MuteSeconds) * time.Second,
		MaxWarnings:  cfg.Chat.MaxWarnings,
		Moderator:    moderator,
	})

	go serveAPI(hub)

	logrus.Fatal(hub.ListenAndServe(listenAddr))
}

func serveAPI(hub *room.Hub) {
	cfg := config.Instance()

	listenAddr := cfg.APIAddr
	if *apiAddr != "" {
		listenAddr = *apiAddr
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, hub))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("api listening")
	logrus.Fatal(srv.ListenAndServe())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
