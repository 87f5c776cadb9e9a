package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordbridge/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordbridge",
		Short: "Resumable sentence-level corpus translator",
		Long: `wordbridge translates a CSV corpus of articles sentence by sentence,
preserving embedded URLs and checkpointing progress so an interrupted run
can be resumed without re-translating finished articles.

Examples:
  wordbridge -i articles.csv -o articles_en.csv
  wordbridge -i articles.csv -o articles_en.csv --sleep 0.1 --checkpoint-every 20
  wordbridge -i articles.csv -o articles_en.csv --start-idx 500 --max-rows 250
  wordbridge --list-models              # List usable OpenAI translation models
  wordbridge -o articles_en.csv --archive   # Archive a finished run`,
		Args:         cobra.NoArgs,
		Version:      internal.Version,
		SilenceUsage: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wordbridge.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "Path to input CSV (needs sourceText; id recommended)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Path to output CSV, also used as the checkpoint")
	cmd.Flags().Float64Var(&flags.Sleep, "sleep", 0, "Seconds to sleep between sentence requests")
	cmd.Flags().IntVar(&flags.CheckpointEvery, "checkpoint-every", flags.CheckpointEvery, "Write the output CSV every N processed articles")
	cmd.Flags().BoolVar(&flags.Overwrite, "overwrite", false, "Re-translate all rows even if translatedText exists")
	cmd.Flags().IntVar(&flags.StartIdx, "start-idx", 0, "Row index to start from after resume logic")
	cmd.Flags().IntVar(&flags.MaxRows, "max-rows", flags.MaxRows, "Limit number of rows to process this run (0 = unbounded)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List OpenAI models usable for translation with the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the existing output table and progress log, then exit")

	// Translation flags
	cmd.Flags().StringVar(&flags.SourceLang, "source-lang", flags.SourceLang, "Source language (BCP 47 tag, e.g. ru)")
	cmd.Flags().StringVar(&flags.TargetLang, "target-lang", flags.TargetLang, "Target language (BCP 47 tag, e.g. en)")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model name (default depends on provider)")
	cmd.Flags().IntVar(&flags.MaxRetries, "max-retries", flags.MaxRetries, "Retries per sentence before keeping the original text")
	cmd.Flags().Float64Var(&flags.RetryDelay, "retry-delay", flags.RetryDelay, "Base retry backoff in seconds (doubles per attempt)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("run.sleep", cmd.Flags().Lookup("sleep"))
	viper.BindPFlag("run.checkpoint_every", cmd.Flags().Lookup("checkpoint-every"))
	viper.BindPFlag("translation.source_lang", cmd.Flags().Lookup("source-lang"))
	viper.BindPFlag("translation.target_lang", cmd.Flags().Lookup("target-lang"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translation.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translation.max_retries", cmd.Flags().Lookup("max-retries"))
	viper.BindPFlag("translation.retry_delay", cmd.Flags().Lookup("retry-delay"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".wordbridge" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wordbridge")
	}

	// Environment variables
	viper.SetEnvPrefix("WORDBRIDGE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("translation.gemini_key")
}
