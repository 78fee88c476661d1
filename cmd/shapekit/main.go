// Package main provides the CLI entry point for shapekit.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/shapekit-go/pkg/shapekit"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/config"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/models"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/output"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/shape"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries state shared by every subcommand.
type cli struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "shapekit",
		Short: "Classify and build DrawingML shapes",
		Long: `shapekit classifies the shapes of Excel and PowerPoint files as
auto shapes, freeforms or text boxes, and prints the default XML of new shapes.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Config file (default: $SHAPEKIT_CONFIG or ~/.config/shapekit/config.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(c.inspectCmd(), c.prototypeCmd(), c.classifyCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg

	zcfg := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zcfg.Level = level
	if c.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	c.logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func (c *cli) inspectCmd() *cobra.Command {
	var (
		outputPath string
		pretty     bool
		mode       string
		format     string
		sheetsDir  string
	)

	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx|input.pptx]",
		Short: "Extract classified shapes from a workbook or presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("mode") {
				mode = c.cfg.Extract.Mode
			}
			if !flags.Changed("format") {
				format = c.cfg.Output.Format
			}
			if !flags.Changed("pretty") {
				pretty = c.cfg.Output.Pretty
			}

			extractMode, err := shapekit.ParseMode(mode)
			if err != nil {
				return err
			}
			if format != "json" && format != "yaml" {
				return fmt.Errorf("invalid format: %s (must be json or yaml)", format)
			}

			doc, err := shapekit.Extract(args[0], shapekit.Options{
				Mode:   extractMode,
				Logger: c.logger,
			})
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			data, err := encodeDocument(doc, format, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, data, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			} else if sheetsDir == "" {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
				if format == "json" {
					fmt.Fprintln(cmd.OutOrStdout())
				}
			}

			if sheetsDir != "" {
				if err := writeSheetFiles(doc, sheetsDir, format, pretty); err != nil {
					return fmt.Errorf("failed to write sheet files: %w", err)
				}
			}

			c.logger.Debug("inspect finished",
				zap.String("file", doc.FileName),
				zap.Int("sheets", len(doc.Sheets)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&mode, "mode", "standard", "Extraction mode: light, standard, verbose")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, yaml")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	return cmd
}

func encodeDocument(doc *models.DocumentData, format string, pretty bool) ([]byte, error) {
	if format == "yaml" {
		return output.ToYAML(doc)
	}
	return output.ToJSON(doc, pretty)
}

func writeSheetFiles(doc *models.DocumentData, dir, format string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range doc.Sheets {
		sheet := &doc.Sheets[i]
		var (
			data []byte
			err  error
		)
		if format == "yaml" {
			data, err = output.SheetToYAML(sheet)
		} else {
			data, err = output.SheetToJSON(sheet, pretty)
		}
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetFileName(sheet.Name)+"."+format)
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}

// sheetFileName replaces path separators so a sheet name is a single file name.
func sheetFileName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}

func (c *cli) prototypeCmd() *cobra.Command {
	var (
		kind   string
		id     int
		text   string
		preset string
	)

	cmd := &cobra.Command{
		Use:   "prototype",
		Short: "Print the default XML of a new shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				el  *dml.Shape
				err error
			)
			switch strings.ToLower(kind) {
			case "autoshape":
				el, err = shape.NewAutoShapeElement(id)
			case "textbox":
				el, err = shape.NewTextBoxElement(id)
			case "freeform":
				el, err = shape.NewFreeformElement(id)
			default:
				return fmt.Errorf("invalid kind: %s (must be autoshape, textbox, or freeform)", kind)
			}
			if err != nil {
				return err
			}

			sh := shape.Wrap(el, nil)
			if preset != "" {
				auto, ok := sh.(*shape.AutoShape)
				if !ok {
					return fmt.Errorf("--preset applies to autoshape only, got %s", sh.Kind())
				}
				if err := auto.SetPreset(preset); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("text") {
				sh.SetText(text)
			}

			data, err := dml.Marshal(el)
			if err != nil {
				return err
			}
			c.logger.Debug("prototype built", zap.Stringer("shape", sh))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "autoshape", "Shape kind: autoshape, textbox, freeform")
	cmd.Flags().IntVar(&id, "id", 1, "Shape id (1 to 4294967295)")
	cmd.Flags().StringVar(&text, "text", "", "Text content; creates the text body when set")
	cmd.Flags().StringVar(&preset, "preset", "", "Preset geometry for autoshape (default rect)")
	return cmd
}

func (c *cli) classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [shape.xml|-]",
		Short: "Classify a single sp element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			el, err := dml.Decode(data)
			if err != nil {
				return err
			}
			sh, err := shape.NewSheet("input").AddElement(el)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\tid=%d\tname=%q\tpreset=%q\ttext=%q\n",
				sh.Kind(), sh.ID(), sh.Name(), sh.Preset(), sh.Text())
			return err
		},
	}
}
