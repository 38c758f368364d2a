package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"doccms/internal/logging"
)

var root = &cobra.Command{
	Use:           "cms",
	Short:         "cms serves and edits a directory of text and markdown documents",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	root.AddCommand(serveCmd, userCmd)
}

// @title Document CMS
// @version 1.0
// @description JSON endpoints of the document CMS.
// @BasePath /
func main() {
	if err := root.Execute(); err != nil {
		logger := logging.Default()
		logger.Error().Err(err).Msg("command_failed")
		os.Exit(1)
	}
}
