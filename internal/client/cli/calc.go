package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/calcapi/internal/client/client"
	"github.com/spf13/cobra"
)

func (a *App) newBinaryCmd(operation, short string) *cobra.Command {
	return &cobra.Command{
		Use:   operation + " <num1> <num2>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			num1, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			num2, err := parseNumber(args[1])
			if err != nil {
				return err
			}

			res, err := a.client.Calculate(cmd.Context(), operation, num1, num2)
			if err != nil {
				return explain(err)
			}

			printResult(cmd, res)
			return nil
		},
	}
}

func (a *App) newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "root <number>",
		Short: "Square root of a non-negative number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[0])
			if err != nil {
				return err
			}

			res, err := a.client.Root(cmd.Context(), number)
			if err != nil {
				return explain(err)
			}

			printResult(cmd, res)
			return nil
		},
	}
}

func (a *App) newHistoryCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List your operations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := a.client.History(cmd.Context())
			if err != nil {
				return explain(err)
			}

			if jsonOutput {
				b, err := json.MarshalIndent(ops, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				cmd.Println(string(b))
				return nil
			}

			if len(ops) == 0 {
				cmd.Println("No operations yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tOPERATION\tNUM1\tNUM2\tRESULT\tTIMESTAMP")
			for _, op := range ops {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", op.ID, op.Operation,
					formatNumber(op.Num1), formatNumber(op.Num2), formatNumber(op.Result),
					op.Timestamp.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output history as JSON")

	return cmd
}

func (a *App) newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Ping(cmd.Context()); err != nil {
				return explain(err)
			}
			cmd.Println("OK")
			return nil
		},
	}
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func printResult(cmd *cobra.Command, res *client.Result) {
	if res.Operation == "root" {
		cmd.Printf("root(%s) = %s\n", formatNumber(res.Num1), formatNumber(res.Result))
		return
	}
	cmd.Printf("%s(%s, %s) = %s\n", res.Operation, formatNumber(res.Num1), formatNumber(res.Num2), formatNumber(res.Result))
}
