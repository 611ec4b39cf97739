package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "aptitude-screener"
)

type Config struct {
	// Input is the directory holding the resumes to screen.
	Input     string  `mapstructure:"input"`
	Threshold float64 `mapstructure:"threshold"`

	Phones     *PhonesConfig     `mapstructure:"phones"`
	OCR        *OCRConfig        `mapstructure:"ocr"`
	AI         *AIConfig         `mapstructure:"ai"`
	Enrichment *EnrichmentConfig `mapstructure:"enrichment"`
}

type PhonesConfig struct {
	PreferDefaultCountryCode bool   `mapstructure:"prefer-default-country-code"`
	DefaultCountryCode       string `mapstructure:"default-country-code"`
	// AllowedPrefixes is a comma-separated list. Empty accepts any prefix.
	AllowedPrefixes string `mapstructure:"allowed-prefixes"`
}

type OCRConfig struct {
	Pdftotext string `mapstructure:"pdftotext"`
	Pdftoppm  string `mapstructure:"pdftoppm"`
	Tesseract string `mapstructure:"tesseract"`
	DPI       int    `mapstructure:"dpi"`
	MaxPages  int    `mapstructure:"max-pages"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
	Groq         *GroqConfig   `mapstructure:"groq"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type GroqConfig struct {
	APIKeyFile  string  `mapstructure:"api-key-file"`
	BaseURL     string  `mapstructure:"base-url"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// EnrichmentConfig overrides the shipped signal keyword lists. Empty lists
// keep the defaults.
type EnrichmentConfig struct {
	StrongPhone     []string `mapstructure:"strong-phone"`
	Outbound        []string `mapstructure:"outbound"`
	Inbound         []string `mapstructure:"inbound"`
	KPI             []string `mapstructure:"kpi"`
	PhoneEvidence   []string `mapstructure:"phone-evidence"`
	GenericEvidence []string `mapstructure:"generic-evidence"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "aptitude-screener is a cli for screening resumes for phone-based customer contact roles",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	if err := viper.BindEnv("ai.groq.api-key-file", "GROQ_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GROQ_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is aptitude-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("threshold", 0.35)
	viper.SetDefault("phones.default-country-code", "+39")
	viper.SetDefault("ai.provider", "gemini")
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing config file is fine: flags and defaults cover a full run.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
