package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teslashibe/go-jevois-sample/pkg/sample"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the module video mapping, authorship and commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(infoJSON)
	},
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Print metadata as JSON")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sample.Info)
	}

	fmt.Println(sample.Info.String())
	fmt.Println()
	fmt.Println(runExec("help"))
	return nil
}
