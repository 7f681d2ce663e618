package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-jevois-sample/pkg/engine"
	"github.com/teslashibe/go-jevois-sample/pkg/sample"
)

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Send one command to the module and print the reply",
	Example: `  samplemodule exec hello
  samplemodule exec help`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(runExec(strings.Join(args, " ")))
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(line string) string {
	serial := engine.NewSerialOut(engine.SerOutNone)
	r := engine.NewRunner(sample.New(serial), sample.Mapping, serial)
	return r.Command(line)
}
