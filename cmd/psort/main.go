package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/photo-sorter/internal/dupes"
	"github.com/franz/photo-sorter/internal/meta"
	"github.com/franz/photo-sorter/internal/project"
	"github.com/franz/photo-sorter/internal/report"
	"github.com/franz/photo-sorter/internal/session"
	"github.com/franz/photo-sorter/internal/util"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "psort",
		Short: "Photo Sorter - tag a directory of photos and export them into tag folders",
		Long: `psort is a local, single-user photo curation tool. It tags the photos at
the top level of a directory, tracks curation progress in a durable
project file, flags probable duplicates, and on export reorganizes the
files into tag-named folders. The reorganization is reversible: revert
restores the original flat layout from the project record.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./psort.yaml)")
	rootCmd.PersistentFlags().StringP("root", "r", ".", "photo root directory")
	rootCmd.PersistentFlags().Bool("no-exif", false, "disable EXIF capture-time ordering")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Bind flags to viper
	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("no-exif", rootCmd.PersistentFlags().Lookup("no-exif"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("psort")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("PSORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

// openSession resolves configuration and opens a session on the chosen
// root. Every command goes through here so log levels, metadata
// capability, and the audit log are wired the same way.
func openSession() (*session.Session, *session.OpenInfo, *report.EventLogger, error) {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))
	if viper.GetBool("no-color") || !util.IsTerminal(os.Stderr.Fd()) {
		util.SetColors(false)
	}

	root := viper.GetString("root")
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil, nil, fmt.Errorf("root directory does not exist: %s", root)
	}

	var times meta.TimeSource
	if viper.GetBool("no-exif") {
		times = meta.Null()
	} else {
		times = meta.NewEXIF()
	}

	logLevel := report.LevelInfo
	if viper.GetBool("quiet") {
		logLevel = report.LevelWarning
	} else if viper.GetBool("verbose") {
		logLevel = report.LevelDebug
	}

	logger, err := report.NewEventLogger(filepath.Join(project.Dir(root), "logs"), logLevel)
	if err != nil {
		util.WarnLog("Failed to create event logger: %v", err)
		logger = report.NullLogger()
	}

	sess, info, err := session.Open(&session.Config{
		Root:       root,
		TimeSource: times,
		Detector:   dupes.New(),
		Logger:     logger,
	})
	if err != nil {
		logger.Close()
		return nil, nil, nil, err
	}

	return sess, info, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
