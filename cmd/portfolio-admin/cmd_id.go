package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Convert between project ids and URL tokens",
}

var idEncodeCmd = &cobra.Command{
	Use:   "encode <id>...",
	Short: "Print the URL token of each id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			id, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", arg)
			}
			fmt.Fprintln(cmd.OutOrStdout(), codec.Encode(id))
		}
		return nil
	},
}

var idDecodeCmd = &cobra.Command{
	Use:   "decode <token>...",
	Short: "Print the id behind each URL token",
	Long: `Print the id behind each URL token. Plain decimal ids are accepted as well,
the same way edit links are resolved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			id, err := codec.Resolve(arg)
			if err != nil {
				return fmt.Errorf("%q: %w", arg, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func init() {
	idCmd.AddCommand(idEncodeCmd)
	idCmd.AddCommand(idDecodeCmd)
}
