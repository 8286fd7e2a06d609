package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	outlineApp "outline/internal/app"
	"outline/internal/httpapi"
	mcpserver "outline/internal/mcp"
)

func main() {
	var (
		mcpStdio = flag.Bool("mcp", false, "serve MCP tools on stdin/stdout")
		httpAddr = flag.String("http", "", "serve the JSON API on this address (e.g. :8787)")
		debug    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().
		Logger()

	if !*mcpStdio && *httpAddr == "" {
		fmt.Fprintln(os.Stderr, "nothing to serve: pass -mcp and/or -http")
		flag.Usage()
		os.Exit(2)
	}

	app := outlineApp.New(log)

	if *httpAddr != "" {
		api := httpapi.New(app.Pages(), app.Blocks(), log)
		serve := func() error {
			log.Info().Str("addr", *httpAddr).Msg("serving json api")
			return http.ListenAndServe(*httpAddr, api.Handler())
		}
		if *mcpStdio {
			go func() {
				if err := serve(); err != nil {
					log.Fatal().Err(err).Msg("http server failed")
				}
			}()
		} else {
			if err := serve(); err != nil {
				log.Fatal().Err(err).Msg("http server failed")
			}
			return
		}
	}

	srv := mcpserver.New(context.Background(), mcpserver.Deps{
		Emitter: app.Emitter(),
		Pages:   app.Pages(),
		Blocks:  app.Blocks(),
		Logger:  log,
	})
	if err := srv.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("mcp server failed")
	}
}
