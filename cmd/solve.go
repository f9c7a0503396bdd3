package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wardplan/wardplan/app"
	"github.com/wardplan/wardplan/core/roster"
)

var requestPath string

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a single scheduling request from a JSON file",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&requestPath, "file", "f", "", "request JSON file")
	if err := solveCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(requestPath)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	var req roster.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return err
	}
	req.ApplyDefaults()

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	result, err := svc.Engine().Schedule(context.Background(), req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Response())
}
