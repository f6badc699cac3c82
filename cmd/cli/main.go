package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/calcapi/internal/client/cli"
	"github.com/dmitrijs2005/calcapi/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfigFromOS()
	app := cli.NewApp(cfg)

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		os.Exit(1)
	}

}
