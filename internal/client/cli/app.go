package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/calcapi/internal/client/client"
	"github.com/dmitrijs2005/calcapi/internal/client/config"
)

// ClientFactory builds the API client once flags have been parsed.
type ClientFactory func(cfg *config.Config) (client.Client, error)

type App struct {
	config    *config.Config
	newClient ClientFactory
	client    client.Client
}

func NewApp(c *config.Config) *App {
	return &App{config: c, newClient: newHTTPClient}
}

func newHTTPClient(cfg *config.Config) (client.Client, error) {
	return client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
}

// Run executes the command line given in args.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd := a.RootCommand()
	cmd.SetOut(os.Stdout)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
