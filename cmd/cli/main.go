package main

import (
	"context"
	"log"
	"os"

	"github.com/deckpilot/deckpilot/internal/buildinfo"
	"github.com/deckpilot/deckpilot/internal/client/cli"
	"github.com/deckpilot/deckpilot/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
