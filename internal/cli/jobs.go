package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List queued import jobs",
	RunE:  runListJobs,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}

func runListJobs(cmd *cobra.Command, args []string) error {
	jobs, err := jobRunner.FetchJobs(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch jobs: %w", err)
	}

	if len(jobs) == 0 {
		fmt.Println("No queued jobs.")
		return nil
	}

	fmt.Printf("%-26s %-26s %-6s %s\n", "JOB", "ASSET", "FORMAT", "DOWNLOAD")
	for _, job := range jobs {
		format := job.Format
		if format == "" {
			format = "-"
		}
		fmt.Printf("%-26s %-26s %-6s %s\n", job.JobID, job.AssetID, format, job.DownloadURL)
	}
	return nil
}
