package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch and import the next queued job",
	Long: `Fetch the queued job list, pick the first job, download its payload,
import it, and report the result back to the server. Processes at most one
job; invoke again for the next one.`,
	RunE: runImport,
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Validate token and API access",
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(testCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	outcome, err := jobRunner.Run(cmd.Context())
	if err != nil {
		return err
	}
	if outcome.NoJobs {
		fmt.Println("No queued jobs.")
		return nil
	}
	fmt.Printf("Imported job %s. Objects: %d\n", outcome.JobID, outcome.Imported)
	return nil
}

func runTest(cmd *cobra.Command, args []string) error {
	count, err := jobRunner.TestConnection(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Connection OK. Queued jobs: %d\n", count)
	return nil
}
