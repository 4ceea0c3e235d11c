package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/eventhub"
	"github.com/agentstation/eventhub/internal/cmd/globals"
	"github.com/agentstation/eventhub/internal/cmd/output"
	"github.com/agentstation/eventhub/pkg/i18n"
	"github.com/agentstation/eventhub/pkg/logging"
)

var (
	configFile  string
	globalFlags *globals.Flags

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "eventhub",
	Short: "EventHub event registration CLI",
	Long: `EventHub is a client for the EventHub event registration service.

Browse and search events, register for them, and track your registration
status. Admins can manage events, approve or reject registrations, and
export dashboard statistics.

The session persists between invocations; log in once with
"eventhub auth login" and subsequent commands reuse it.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.eventhub.yaml)")
	rootCmd.PersistentFlags().String("server", "", "EventHub API base URL")
	globalFlags = globals.AddFlags(rootCmd)

	if err := viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")); err != nil {
		panic(fmt.Sprintf("Failed to bind server flag: %v", err))
	}
	if err := viper.BindPFlag("lang", rootCmd.PersistentFlags().Lookup("lang")); err != nil {
		panic(fmt.Sprintf("Failed to bind lang flag: %v", err))
	}
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
	if err := viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")); err != nil {
		panic(fmt.Sprintf("Failed to bind quiet flag: %v", err))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".eventhub")
	}

	// .env files load before viper's env binding so both see them.
	loadEnvFiles()

	viper.SetEnvPrefix("eventhub")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil && globalFlags != nil && globalFlags.Verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// setupCommand is called before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	if globalFlags.Output == "" {
		globalFlags.Output = string(output.DetectFormat(""))
	}
	if _, err := output.ParseFormat(globalFlags.Output); err != nil {
		return err
	}
	return nil
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := zerolog.WarnLevel
	if globalFlags != nil && globalFlags.Verbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if globalFlags != nil && globalFlags.Quiet || viper.GetBool("quiet") {
		level = zerolog.ErrorLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	config := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    os.Getenv("LOG_OUTPUT"),
		AddCaller: level <= zerolog.DebugLevel,
	}
	if config.Format == "" {
		config.Format = "auto"
	}
	if config.Output == "" {
		config.Output = "stderr"
	}

	logging.Configure(config)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil {
			if globalFlags != nil && globalFlags.Verbose {
				fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
			}
		}
	}
}

// newClient assembles the EventHub client from flags, config file, and
// environment.
func newClient() (eventhub.EventHub, error) {
	opts := []eventhub.Option{}
	if server := viper.GetString("server"); server != "" {
		opts = append(opts, eventhub.WithBaseURL(server))
	}
	if lang := viper.GetString("lang"); lang != "" {
		opts = append(opts, eventhub.WithLanguage(lang))
	}
	return eventhub.New(opts...)
}

// locale returns the display locale for the current invocation.
func locale(hub eventhub.EventHub) *i18n.Locale {
	if globalFlags != nil && globalFlags.Lang != "" {
		return i18n.Match(globalFlags.Lang)
	}
	return hub.Locale()
}

// formatter returns the output formatter the global flags selected.
func formatter() output.Formatter {
	return output.NewFormatter(output.Format(globalFlags.Output))
}
