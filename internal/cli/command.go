package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/sgs/internal"
	"codeberg.org/snonux/sgs/internal/logging"
	"codeberg.org/snonux/sgs/internal/speech"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sgs",
		Short: "Speech generating symbol board",
		Long: `sgs is an AAC board: press word buttons to build a phrase and have it
spoken aloud.

Examples:
  sgs                              # Launch the board window (default)
  sgs --tui                        # Launch the board in the terminal
  sgs --system my.yaml             # Use your own system file
  sgs compose I want eat --speak   # Compose a phrase without a window`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var extra []io.Writer
		if flags.Console != nil && viper.GetBool("gui.debug") {
			extra = append(extra, flags.Console)
		}
		rt, err := logging.New(viper.GetString("log.level"), extra...)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
			return nil
		}
		flags.runtime = rt
		flags.Logger = rt.Logger
		flags.Logger.Debug("command started", "command", cmd.CommandPath())
		return nil
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return flags.runtime.Close()
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newValidateCommand(flags),
		newShowCommand(flags),
		newSayCommand(flags),
		newComposeCommand(flags),
		newGenerateCommand(flags),
		newOBFCommand(flags),
		newVoicesCommand(flags),
		newCacheCommand(flags),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()

	// Global flags
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.sgs.yaml)")
	pf.StringVarP(&flags.SystemPath, "system", "s", "", "System file (.json, .jsonc, .yaml, .obf or .obz; default: bundled system)")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Local flags
	cmd.Flags().BoolVar(&flags.TUI, "tui", false, "Run the board in the terminal instead of a window")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "Show the debug console in the board window")

	// Speech flags
	pf.StringVar(&flags.Speech, "speech", flags.Speech, "Speech backend: espeak, openai, gemini or log")
	pf.StringVar(&flags.Fallback, "fallback", "", "Backend used when the primary speech backend fails")
	pf.StringVar(&flags.Voice, "voice", flags.Voice, "espeak-ng voice (e.g. en, en-us, en+f3)")
	pf.IntVar(&flags.Speed, "speed", flags.Speed, "espeak-ng speed in words per minute (80-450)")
	pf.IntVar(&flags.Pitch, "pitch", flags.Pitch, "espeak-ng pitch (0-99)")
	pf.IntVar(&flags.Amplitude, "amplitude", flags.Amplitude, "espeak-ng amplitude (0-200)")
	pf.IntVar(&flags.WordGap, "word-gap", 0, "espeak-ng gap between words in 10ms units")
	pf.BoolVar(&flags.Cache, "cache", flags.Cache, "Cache synthesized audio")
	pf.StringVar(&flags.CacheDir, "cache-dir", flags.CacheDir, "Speech cache directory")
	pf.IntVar(&flags.CacheMaxMB, "cache-max-mb", flags.CacheMaxMB, "Speech cache size limit in MB")

	// OpenAI flags
	pf.StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	pf.StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, shimmer, verse")
	pf.Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	pf.StringVar(&flags.OpenAIInstruction, "openai-instruction", flags.OpenAIInstruction, "Voice instructions for gpt-4o-mini-tts")

	// Gemini flags
	pf.StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini TTS model")
	pf.StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice (e.g. Kore, Puck)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	viper.BindPFlag("system.path", pf.Lookup("system"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("gui.debug", cmd.Flags().Lookup("debug"))
	viper.BindPFlag("speech.backend", pf.Lookup("speech"))
	viper.BindPFlag("speech.fallback", pf.Lookup("fallback"))
	viper.BindPFlag("speech.voice", pf.Lookup("voice"))
	viper.BindPFlag("speech.speed", pf.Lookup("speed"))
	viper.BindPFlag("speech.pitch", pf.Lookup("pitch"))
	viper.BindPFlag("speech.amplitude", pf.Lookup("amplitude"))
	viper.BindPFlag("speech.word_gap", pf.Lookup("word-gap"))
	viper.BindPFlag("speech.cache", pf.Lookup("cache"))
	viper.BindPFlag("speech.cache_dir", pf.Lookup("cache-dir"))
	viper.BindPFlag("speech.cache_max_mb", pf.Lookup("cache-max-mb"))
	viper.BindPFlag("speech.openai_model", pf.Lookup("openai-model"))
	viper.BindPFlag("speech.openai_voice", pf.Lookup("openai-voice"))
	viper.BindPFlag("speech.openai_speed", pf.Lookup("openai-speed"))
	viper.BindPFlag("speech.openai_instruction", pf.Lookup("openai-instruction"))
	viper.BindPFlag("speech.gemini_model", pf.Lookup("gemini-model"))
	viper.BindPFlag("speech.gemini_voice", pf.Lookup("gemini-voice"))
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

		// Search config in home directory with name ".sgs" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sgs")
	}

	// Environment variables
	viper.SetEnvPrefix("SGS")
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
	return viper.GetString("speech.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("speech.gemini_key")
}

// SpeechConfig assembles the speech configuration from flags, config file
// and environment.
func SpeechConfig() *speech.Config {
	cfg := speech.DefaultConfig()
	setString := func(dst *string, key string) {
		if viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}
	setInt := func(dst *int, key string) {
		if viper.IsSet(key) {
			*dst = viper.GetInt(key)
		}
	}

	setString(&cfg.Backend, "speech.backend")
	setString(&cfg.Fallback, "speech.fallback")
	setString(&cfg.Voice, "speech.voice")
	setInt(&cfg.Speed, "speech.speed")
	setInt(&cfg.Pitch, "speech.pitch")
	setInt(&cfg.Amplitude, "speech.amplitude")
	setInt(&cfg.WordGap, "speech.word_gap")
	setString(&cfg.OpenAIModel, "speech.openai_model")
	setString(&cfg.OpenAIVoice, "speech.openai_voice")
	setString(&cfg.OpenAIInstruction, "speech.openai_instruction")
	setString(&cfg.GeminiModel, "speech.gemini_model")
	setString(&cfg.GeminiVoice, "speech.gemini_voice")
	setString(&cfg.CacheDir, "speech.cache_dir")
	setInt(&cfg.CacheMaxMB, "speech.cache_max_mb")
	if viper.IsSet("speech.openai_speed") {
		cfg.OpenAISpeed = viper.GetFloat64("speech.openai_speed")
	}
	if viper.IsSet("speech.cache") {
		cfg.Cache = viper.GetBool("speech.cache")
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = speech.DefaultCacheDir()
	}

	cfg.OpenAIKey = GetOpenAIKey()
	cfg.GeminiKey = GetGeminiKey()
	return cfg
}
