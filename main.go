package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	settingsFile string
	exportFile   string
	postsDir     string
	outputDir    string
)

var rootCmd = &cobra.Command{
	Use:   "blog-cleaner",
	Short: "Deduplicate and normalize a blog corpus into clean markdown",
	Long: `Merges a WordPress JSON export and a directory of loose markdown
posts into one deduplicated corpus of markdown files with consistent
YAML front matter.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := ensureConfigExists(); err != nil {
			log.Fatalf("Config setup failed: %v", err)
		}

		settings, err := LoadSettings(settingsFile)
		if err != nil {
			log.Fatalf("Loading settings failed: %v", err)
		}

		// Flags win over settings
		if exportFile != "" {
			settings.ExportFile = exportFile
		}
		if postsDir != "" {
			settings.PostsDirectory = postsDir
		}
		if outputDir != "" {
			settings.OutputDirectory = outputDir
		}

		processor := NewProcessor(settings)
		if _, err := processor.Run(); err != nil {
			log.Fatalf("Processing failed: %v", err)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&settingsFile, "settings", "", "Path to settings YAML file")
	rootCmd.Flags().StringVar(&exportFile, "export", "", "Path to WordPress export JSON")
	rootCmd.Flags().StringVar(&postsDir, "posts", "", "Directory of loose markdown posts")
	rootCmd.Flags().StringVar(&outputDir, "output", "", "Output directory for cleaned markdown")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
