// Package cli wires the expando commands. The binary entry point in
// cmd/expando only calls NewRootCmd and handles the exit status, so
// tests can drive the full command tree in process.
package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/term"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/expando/internal/version"
	"github.com/arthur-debert/expando/pkg/cobrax/topics"
	"github.com/arthur-debert/expando/pkg/config"
	"github.com/arthur-debert/expando/pkg/errors"
	"github.com/arthur-debert/expando/pkg/expando"
	"github.com/arthur-debert/expando/pkg/fields"
	"github.com/arthur-debert/expando/pkg/logging"
	"github.com/arthur-debert/expando/pkg/paths"
	"github.com/arthur-debert/expando/pkg/ui"
	"github.com/arthur-debert/expando/pkg/ui/display"
)

//go:embed docs
var docsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "expando",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			// Show help but return an error to indicate incorrect usage
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringP("format", "f", "auto", MsgFlagFormat)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help system from the embedded docs
	if docs, err := fs.Sub(docsFS, "docs"); err == nil {
		opts := topics.Options{
			Extensions: []string{".txt", ".md"},
			// Always use Glamour renderer for markdown files
			Renderer: topics.NewGlamourRenderer(),
		}
		_ = topics.InitializeWithOptions(rootCmd, docs, opts)
	}

	return rootCmd
}

// loadConfig loads the layered configuration for one command run
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// newRenderer builds the output renderer selected by the --format flag
func newRenderer(cmd *cobra.Command) (ui.Renderer, error) {
	formatStr, _ := cmd.Flags().GetString("format")
	format, err := ui.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// templateNamesCompletion provides shell completion for configured template names
func templateNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return cfg.TemplateNames(), cobra.ShellCompDirectiveNoFileComp
}

// resolveTemplate picks the template for a run: the positional argument,
// the configured template named by --name, or the one named "default"
// when neither is given.
func resolveTemplate(cmd *cobra.Command, args []string, cfg *config.Config) (name, template string, err error) {
	name, _ = cmd.Flags().GetString("name")
	if len(args) > 0 {
		if name != "" {
			return "", "", errors.New(errors.ErrInvalidInput, "pass a template argument or --name, not both")
		}
		return "", args[0], nil
	}
	if name == "" {
		name = "default"
	}
	template, err = cfg.Template(name)
	if err != nil {
		return "", "", err
	}
	return name, template, nil
}

// detectColumns finds the terminal width. It tries the stdout TTY
// first, then the COLUMNS variable, then falls back to 80.
func detectColumns() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render [template]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Args:    cobra.MaximumNArgs(1),
		Example: MsgRenderExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			name, template, err := resolveTemplate(cmd, args, cfg)
			if err != nil {
				return err
			}

			cols, _ := cmd.Flags().GetInt("cols")
			if !cmd.Flags().Changed("cols") {
				cols = cfg.Columns
			}
			if cols <= 0 {
				cols = detectColumns()
			}

			maxBytes, _ := cmd.Flags().GetInt("max-bytes")
			if maxBytes <= 0 {
				maxBytes = cfg.MaxBytes
			}

			startCol, _ := cmd.Flags().GetInt("start-col")

			noFilter, _ := cmd.Flags().GetBool("no-filter")
			if !cmd.Flags().Changed("no-filter") {
				noFilter = !cfg.AllowFilter
			}

			arrowCursor, _ := cmd.Flags().GetBool("arrow-cursor")
			if !cmd.Flags().Changed("arrow-cursor") {
				arrowCursor = cfg.ArrowCursor
			}

			set := fields.Builtin(version.Version)
			for key, value := range cfg.Fields {
				set.SetAuto(key[0], value)
			}
			fieldFlags, _ := cmd.Flags().GetStringArray("field")
			for _, spec := range fieldFlags {
				key, value, ok := strings.Cut(spec, "=")
				if !ok || len(key) != 1 {
					return errors.Newf(errors.ErrFieldInvalid, "fields are set as char=value, got %q", spec)
				}
				set.SetAuto(key[0], value)
			}

			var flags expando.Flags
			if arrowCursor {
				flags |= expando.FlagArrowCursor
			}
			if noFilter {
				flags |= expando.FlagNoFilter
			}

			log.Debug().
				Str("template", template).
				Int("cols", cols).
				Int("max_bytes", maxBytes).
				Msg("Rendering template")

			output := expando.Format(template, maxBytes, startCol, cols, fields.Expand, set, flags)
			report := display.NewRenderReport(name, template, output, cols)

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderResult(report)
		},
	}

	cmd.Flags().StringP("name", "n", "", MsgFlagName)
	cmd.Flags().Int("cols", 0, MsgFlagCols)
	cmd.Flags().Int("start-col", 0, MsgFlagStartCol)
	cmd.Flags().Int("max-bytes", 0, MsgFlagMaxBytes)
	cmd.Flags().StringArray("field", nil, MsgFlagField)
	cmd.Flags().Bool("no-filter", false, MsgFlagNoFilter)
	cmd.Flags().Bool("arrow-cursor", false, MsgFlagArrowCursor)
	_ = cmd.RegisterFlagCompletionFunc("name", templateNamesCompletion)

	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check [templates...]",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")

			var reports []*display.CheckReport
			switch {
			case len(args) > 0:
				if name != "" {
					return errors.New(errors.ErrInvalidInput, "pass template arguments or --name, not both")
				}
				for _, template := range args {
					reports = append(reports, checkOne("", template))
				}
			case name != "":
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				template, err := cfg.Template(name)
				if err != nil {
					return err
				}
				reports = append(reports, checkOne(name, template))
			default:
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				for _, n := range cfg.TemplateNames() {
					template, _ := cfg.Template(n)
					reports = append(reports, checkOne(n, template))
				}
			}

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			problems := 0
			for _, report := range reports {
				if err := renderer.RenderResult(report); err != nil {
					return err
				}
				problems += len(report.Problems)
			}
			if problems > 0 {
				return errors.Newf(errors.ErrTemplateInvalid, "found %d problem(s)", problems)
			}
			return nil
		},
	}

	cmd.Flags().StringP("name", "n", "", MsgFlagName)
	_ = cmd.RegisterFlagCompletionFunc("name", templateNamesCompletion)

	return cmd
}

// checkOne builds the problem report for a single template
func checkOne(name, template string) *display.CheckReport {
	report := &display.CheckReport{Name: name, Template: template}
	for _, p := range expando.Check(template) {
		report.Problems = append(report.Problems, display.Problem{Offset: p.Offset, Message: p.Message})
	}
	return report
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			list := &display.TemplateList{}
			for _, name := range cfg.TemplateNames() {
				template, _ := cfg.Template(name)
				list.Templates = append(list.Templates, display.TemplateEntry{Name: name, Template: template})
			}

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderResult(list)
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			effective, _ := cmd.Flags().GetBool("effective")
			write, _ := cmd.Flags().GetBool("write")

			content := config.DefaultTOML()
			if effective {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				out, err := toml.Marshal(cfg)
				if err != nil {
					return errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
				}
				content = string(out)
			}

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			path := paths.ConfigFilePath()
			if _, err := os.Stat(path); err == nil {
				return errors.Newf(errors.ErrInvalidInput, "%s already exists, refusing to overwrite", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			log.Info().Str("path", path).Msg("Written config file")
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)
	cmd.Flags().Bool("effective", false, MsgFlagEffective)

	return cmd
}

func newManCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Long:    MsgManLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create man directory: %w", err)
			}
			header := &doc.GenManHeader{
				Title:   "EXPANDO",
				Section: "1",
				Source:  "expando " + version.Version,
				Manual:  "expando manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return nil
		},
	}

	cmd.Flags().String("dir", filepath.Join(paths.DataDir(), "man"), MsgFlagManDir)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), MsgCommitFormat, version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), MsgBuiltFormat, version.Date)
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
