package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"vatreport/internal/config"
	"vatreport/internal/logger"
	"vatreport/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the report web form",
	Long: `Start a local web server with a form for picking the report date range.
Submitting the form generates a report exactly like the report command and
links the new file for download.

The form opens in the default browser unless --no-browser is given.`,
	Example: `  # Serve on PORT (default 3003) and open the browser
  vatreport serve

  # Serve on another port without opening a browser
  vatreport serve --port 8080 --no-browser`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default: PORT)")
	serveCmd.Flags().Bool("no-browser", false, "Do not open the form in a browser")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	port, _ := cmd.Flags().GetInt("port")
	noBrowser, _ := cmd.Flags().GetBool("no-browser")

	cfg, err := config.Load()
	if err != nil {
		return handleReportError(err, log)
	}
	if port != 0 {
		cfg.Port = port
	}

	ctx, cancel := createReportContext(log)
	defer cancel()

	service, err := buildReportService(ctx, cfg, log)
	if err != nil {
		return handleReportError(err, log)
	}

	router := web.NewRouter(web.NewHandler(service, cfg.ReportTimezone, cfg.ReportsDir))

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	fmt.Printf("Hi! Go to the following link in your browser to start the app: %s\n", url)

	if !noBrowser {
		browser.Stdout = io.Discard
		browser.Stderr = io.Discard
		if err := browser.OpenURL(url); err != nil {
			log.Warn().Err(err).Msg("Could not open browser")
		}
	}

	return web.Run(ctx, fmt.Sprintf(":%d", cfg.Port), router)
}
