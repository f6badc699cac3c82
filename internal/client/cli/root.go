package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/calcapi/internal/client/client"
	"github.com/spf13/cobra"
)

// RootCommand builds the command tree. Flags are bound to a.config so they
// override values from the config file and environment.
func (a *App) RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "calc",
		Short:        "Command-line client for the calcapi service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.newClient(a.config)
			if err != nil {
				return err
			}
			c.SetAccessToken(a.config.Token)
			a.client = c
			return nil
		},
	}

	// -c/--config is consumed by config.LoadConfig before cobra runs.
	var configFile string
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.PersistentFlags().StringVar(&a.config.ServerURL, "server", a.config.ServerURL, "base URL of the calcapi server")
	cmd.PersistentFlags().DurationVar(&a.config.RequestTimeout, "timeout", a.config.RequestTimeout, "request timeout")
	cmd.PersistentFlags().StringVar(&a.config.Token, "token", a.config.Token, "bearer token (defaults to CALC_TOKEN)")

	cmd.AddCommand(a.newRegisterCmd())
	cmd.AddCommand(a.newLoginCmd())
	cmd.AddCommand(a.newBinaryCmd(client.OperationAdd, "Add two numbers"))
	cmd.AddCommand(a.newBinaryCmd(client.OperationSubtract, "Subtract num2 from num1"))
	cmd.AddCommand(a.newBinaryCmd(client.OperationMultiply, "Multiply two numbers"))
	cmd.AddCommand(a.newRootCmd())
	cmd.AddCommand(a.newHistoryCmd())
	cmd.AddCommand(a.newPingCmd())

	return cmd
}

// explain adds a hint to errors the user can act on.
func explain(err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("%w (run 'calc login' and pass the token via --token or CALC_TOKEN)", err)
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Errorf("%w (is the server running?)", err)
	}
	return err
}
