package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/IdiotCoffee/jobforge/internal/adapter/http"
	"github.com/IdiotCoffee/jobforge/internal/config"
	"github.com/IdiotCoffee/jobforge/internal/domain"
	"github.com/IdiotCoffee/jobforge/internal/model"
	"github.com/IdiotCoffee/jobforge/internal/usecase"
	"github.com/IdiotCoffee/jobforge/pkg/ai"
	infra "github.com/IdiotCoffee/jobforge/pkg/infrastructure"
	"github.com/IdiotCoffee/jobforge/pkg/logger"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "resumectl",
		Short:         "Assemble, render and export resumes from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = c
			// stdout carries command output, so logs go to stderr
			l, f, err := logger.New().FromWriter(os.Stderr).Level(cfg.Log.Level).FromPath(cfg.Log.File).Make()
			if err != nil {
				return err
			}
			log.Logger = l
			if f != nil {
				closeLog = f.Close
			}
			return nil
		},
	}
	configPath string
	outPath    string
	authorName string

	cfg      *config.Config
	closeLog = func() error { return nil }
)

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "-", "Output file (- for stdout)")

	assembleCmd.Flags().StringVarP(&authorName, "name", "n", "", "Name used for the contact heading")
	improveCmd.Flags().StringVar(&fieldKind, "field", "summary", "Field to improve (summary, skills, experience, education, project)")
	improveCmd.Flags().IntVar(&fieldIndex, "index", 0, "Entry index for experience, education and project")
	improveCmd.Flags().StringVar(&industry, "industry", "", "Target industry")
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "External user id")
	tokenCmd.Flags().StringVar(&tokenName, "display-name", "", "Display name carried in the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(assembleCmd, renderCmd, exportCmd, improveCmd, tokenCmd)
}

// readInput reads the named file, or stdin when args is empty or "-".
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func writeOutput(data []byte) error {
	if outPath == "" || outPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

func readDraft(args []string) (model.ResumeDraft, error) {
	var d model.ResumeDraft
	raw, err := readInput(args)
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return d, errors.Wrap(err, "decode draft")
	}
	return d, nil
}

func chrome() *infra.ChromedpRenderer {
	return infra.NewChromedpRenderer(infra.ChromeOptions{
		ExecPath:      cfg.Export.ChromePath,
		Scale:         cfg.Export.Scale,
		Timeout:       cfg.Export.RenderTimeout,
		SettleTimeout: cfg.Export.SettleTimeout,
		Format:        cfg.PageFormat(),
	})
}

var assembleCmd = &cobra.Command{
	Use:   "assemble [draft.json]",
	Short: "Assemble a draft into the markdown document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := readDraft(args)
		if err != nil {
			return err
		}
		if err := model.ValidateDraft(d); err != nil {
			return err
		}
		return writeOutput([]byte(usecase.Assemble(d, authorName)))
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [resume.md]",
	Short: "Render a markdown document to the preview HTML page",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		md, err := readInput(args)
		if err != nil {
			return err
		}
		html, err := infra.NewMarkdownRenderer("Resume").RenderHTML(string(md))
		if err != nil {
			return err
		}
		return writeOutput([]byte(html))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [resume.md]",
	Short: "Export a markdown document to a paginated PDF",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		md, err := readInput(args)
		if err != nil {
			return err
		}
		ex := usecase.NewExporter(infra.NewMarkdownRenderer("Resume"), chrome(), infra.NewPDFWriter("Resume"), cfg.PageFormat(), cfg.Export.FileName)
		out, err := ex.Export(cmd.Context(), usecase.NormalizeContent(string(md)))
		if err != nil {
			return err
		}
		if outPath == "-" {
			outPath = out.FileName
		}
		if err := writeOutput(out.Data); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d pages)\n", outPath, out.Pages)
		return nil
	},
}

var (
	fieldKind  string
	fieldIndex int
	industry   string
)

var improveCmd = &cobra.Command{
	Use:   "improve [draft.json]",
	Short: "Ask the AI provider to improve one field of a draft",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := readDraft(args)
		if err != nil {
			return err
		}
		kind, err := usecase.ParseFieldKind(fieldKind)
		if err != nil {
			return err
		}
		current, err := usecase.FieldRef{Kind: kind, Index: fieldIndex}.Read(d)
		if err != nil {
			return err
		}
		if current == "" {
			return usecase.ErrEmptyField
		}

		ctx := cmd.Context()
		completer, closeAI, err := ai.NewCompleter(ctx, cfg.AI.Provider, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.ServiceURL)
		if err != nil {
			return err
		}
		defer closeAI()

		improved, err := ai.NewClient(completer, cfg.AI.Timeout).Improve(ctx, current, string(kind), industry)
		if err != nil {
			return err
		}
		return writeOutput([]byte(improved + "\n"))
	},
}

var (
	tokenUser string
	tokenName string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign an API token for a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Auth.JWTSecret == "" {
			return errors.New("JWT_SECRET is required")
		}
		tok, err := http.SignToken(cfg.Auth.JWTSecret, cfg.Auth.Issuer, domain.Identity{UserID: tokenUser, DisplayName: tokenName}, tokenTTL)
		if err != nil {
			return err
		}
		return writeOutput([]byte(tok + "\n"))
	},
}
