package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/server"
)

var (
	servePort       int
	serveUploadDir  string
	serveResultPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts resume uploads and runs the matching pipeline.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveUploadDir, "upload-dir", "uploads", "Directory for scratch resume copies")
	serveCmd.Flags().StringVar(&serveResultPath, "output", "", "Path for the matched-jobs JSON (defaults to output/top_5_matched_jobs.json)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// A missing key is logged rather than fatal so the health and results
	// endpoints stay usable; upload runs will fail until it is set.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: GEMINI_API_KEY is not set; match runs will fail until it is configured")
	}

	cfg := server.Config{
		Port:       servePort,
		APIKey:     apiKey,
		UploadDir:  serveUploadDir,
		ResultPath: serveResultPath,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
