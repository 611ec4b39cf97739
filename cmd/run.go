package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tlk-hr/aptitude-screener/internal/ai"
	"github.com/tlk-hr/aptitude-screener/internal/ai/gemini"
	"github.com/tlk-hr/aptitude-screener/internal/ai/groq"
	"github.com/tlk-hr/aptitude-screener/internal/document"
	"github.com/tlk-hr/aptitude-screener/internal/enrich"
	"github.com/tlk-hr/aptitude-screener/internal/extract"
	"github.com/tlk-hr/aptitude-screener/internal/logger"
	"github.com/tlk-hr/aptitude-screener/internal/screening"
	"github.com/tlk-hr/aptitude-screener/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptReport     = "Show the screening report"
	PromptRowsToFile = "Dump rows to file"
	PromptExit       = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReport, PromptRowsToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Screen all resumes found in the input directory",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input", "i", "", "directory with resumes to screen")
	runCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without prompting")
	runCmd.Flags().Float64P("threshold", "t", 0.35, "blended confidence acceptance gate")

	viper.BindPFlag("input", runCmd.Flags().Lookup("input"))
	viper.BindPFlag("threshold", runCmd.Flags().Lookup("threshold"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the aptitude-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		config = &Config{}
	}

	input := strings.TrimSpace(config.Input)
	if input == "" {
		logger.Fatal("input directory is required",
			zap.String("hint", "pass --input or set the 'input' key in the configuration file"),
		)
	}

	paths, err := collectDocuments(input)
	if err != nil {
		logger.Fatal("collecting documents", zap.Error(err))
	}

	if len(paths) == 0 {
		logger.Info("exiting", zap.String("reason", "no supported documents found"), zap.String("input", input))
		return
	}

	logger.Info("collected documents", zap.Int("count", len(paths)))

	screener := buildScreener(ctx, config, logger)

	result := screener.Run(ctx, paths)

	logger.Info("screening finished",
		zap.Int("accepted", len(result.Rows)),
		zap.Int("low_confidence", len(result.LowConfidence)),
		zap.Int("unreadable", len(result.Unreadable)),
		zap.Any("labels", result.CountByLabel()),
	)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		fmt.Println(result.Report())
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, result, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, result *screening.Result, logger *zap.Logger) error {
	switch action {
	case PromptReport:
		fmt.Println(result.Report())
		return nil
	case PromptRowsToFile:
		filename, err := result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// collectDocuments returns the supported documents of dir, sorted by name.
func collectDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if document.Supported(path) {
			paths = append(paths, path)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// buildScreener wires the pipeline from the configuration. A provider that
// cannot be constructed downgrades the run to deterministic extraction only.
func buildScreener(ctx context.Context, config *Config, log *zap.Logger) *screening.Screener {
	aiCfg := config.AI
	if aiCfg == nil {
		aiCfg = &AIConfig{}
	}

	generator, err := newGenerator(ctx, aiCfg, log)
	if err != nil {
		log.Warn("running without generative extraction",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or ai.groq.api-key-file to enable it"),
		)
	}

	docs := document.New(documentConfig(config.OCR), log)
	extractor := ai.NewExtractor(generator, log, aiCfg.MaxLogLength)
	scorer := ai.NewScorer(generator, log, aiCfg.MaxLogLength)

	opts := screening.Options{
		Threshold: config.Threshold,
		Contacts:  contactsConfig(config.Phones),
		Rules:     enrichmentRules(config.Enrichment),
	}

	return screening.New(docs, extractor, scorer, opts, log)
}

func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", "gemini":
		gc := cfg.Gemini
		if gc == nil {
			gc = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: gc.APIKeyFile,
		})
		if err != nil {
			return nil, err
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, gc.Model)
		if err != nil {
			return nil, err
		}

		log.Info("using generative provider", logger.CommonFields("gemini", generator.Model())...)
		return generator, nil
	case "groq":
		gc := cfg.Groq
		if gc == nil {
			gc = &GroqConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "groq api key",
			File: gc.APIKeyFile,
		})
		if err != nil {
			return nil, err
		}

		generator, err := groq.NewGenerator(groq.Config{
			APIKey:      apiKey,
			BaseURL:     gc.BaseURL,
			Model:       gc.Model,
			Temperature: gc.Temperature,
		}, logger.WithCommonFields(log, "groq", gc.Model))
		if err != nil {
			return nil, err
		}

		log.Info("using generative provider", logger.CommonFields("groq", generator.Model())...)
		return generator, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func documentConfig(cfg *OCRConfig) document.Config {
	if cfg == nil {
		return document.Config{}
	}

	return document.Config{
		Pdftotext: cfg.Pdftotext,
		Pdftoppm:  cfg.Pdftoppm,
		Tesseract: cfg.Tesseract,
		DPI:       cfg.DPI,
		MaxPages:  cfg.MaxPages,
	}
}

func contactsConfig(cfg *PhonesConfig) extract.Config {
	if cfg == nil {
		return extract.Config{DefaultCountryCode: "+39"}
	}

	return extract.Config{
		PreferDefaultCountryCode: cfg.PreferDefaultCountryCode,
		DefaultCountryCode:       cfg.DefaultCountryCode,
		AllowedPrefixes:          extract.ParsePrefixList(cfg.AllowedPrefixes),
	}
}

func enrichmentRules(cfg *EnrichmentConfig) enrich.Rules {
	if cfg == nil {
		return enrich.Rules{}
	}

	return enrich.Rules{
		StrongPhone:     cfg.StrongPhone,
		Outbound:        cfg.Outbound,
		Inbound:         cfg.Inbound,
		KPI:             cfg.KPI,
		PhoneEvidence:   cfg.PhoneEvidence,
		GenericEvidence: cfg.GenericEvidence,
	}
}
