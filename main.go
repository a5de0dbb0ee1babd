package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pivolan/frame_preview/config"
	"github.com/pivolan/frame_preview/datatable"
	"github.com/pivolan/frame_preview/plot"
)

var rootCmd = &cobra.Command{
	Use:   "frame_preview",
	Short: "Preview DataFrame HTML tables",
	Long:  `Enhance DataFrame HTML tables with per-column dtype and chart previews`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLevel(config.GetConfig().LogLevel)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	SilenceUsage: true,
}

var renderCmd = &cobra.Command{
	Use:   "render [flags] [file|-]",
	Short: "Render the enhanced table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

var describeCmd = &cobra.Command{
	Use:   "describe [flags] [file|-]",
	Short: "Print how every column is classified",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDescribe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an upload form rendering table previews",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringToString("types", nil, "column types as column=tag, column by name or index")
	rootCmd.PersistentFlags().Bool("strict", false, "fail on unrecognized type tags")

	renderCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	renderCmd.Flags().Bool("finalize", false, "render static images with disabled controls")
	describeCmd.Flags().Bool("markdown", false, "markdown output")

	rootCmd.AddCommand(renderCmd, describeCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// previewOptions turns the configuration into enhancer options.
func previewOptions(cfg *config.Config) datatable.Options {
	return datatable.Options{
		ColumnDefs: datatable.DefaultColumnDefs(),
		DateFormat: cfg.DateFormat,
		Strict:     cfg.StrictDTypes,
		Limit:      cfg.Limit,
		SampleSize: cfg.SampleSize,
		Size:       plot.Size{Width: cfg.Width, Height: cfg.Height},
		Logger:     log.StandardLogger(),
	}
}

// commandOptions layers the command flags over the configuration.
func commandOptions(cmd *cobra.Command) (datatable.Options, map[string]string, error) {
	opts := previewOptions(config.GetConfig())
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		opts.Strict = true
	}
	if cmd.Flags().Lookup("finalize") != nil {
		opts.Finalize, _ = cmd.Flags().GetBool("finalize")
	}
	types, err := cmd.Flags().GetStringToString("types")
	return opts, types, err
}

// typeDefs resolves column=tag pairs against the parsed header.
func typeDefs(t *datatable.Table, types map[string]string) ([]datatable.ColumnDef, error) {
	var defs []datatable.ColumnDef
	for key, tag := range types {
		index := -1
		for i, name := range t.Columns {
			if name == key {
				index = i
				break
			}
		}
		if index < 0 {
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= t.NumColumns() {
				return nil, fmt.Errorf("%w: %q", datatable.ErrColumnOutOfRange, key)
			}
			index = i
		}
		defs = append(defs, datatable.ColumnDef{Targets: []int{index}, Type: tag})
	}
	return defs, nil
}

// enhance parses r and builds its preview.
func enhance(r io.Reader, opts datatable.Options, types map[string]string) (*datatable.Preview, error) {
	t, err := datatable.Parse(r)
	if err != nil {
		return nil, err
	}
	defs, err := typeDefs(t, types)
	if err != nil {
		return nil, err
	}
	opts.ColumnDefs = append(opts.ColumnDefs, defs...)
	return datatable.Enhance(t, opts)
}

func loadPreview(cmd *cobra.Command, args []string) (*datatable.Preview, error) {
	opts, types, err := commandOptions(cmd)
	if err != nil {
		return nil, err
	}
	input := "-"
	if len(args) > 0 {
		input = args[0]
	}
	r, err := openInput(input)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	log.WithField("input", input).Debug("reading table")
	var src io.Reader = r
	if isCSV(input) {
		if src, err = csvToTable(r); err != nil {
			return nil, err
		}
	}
	return enhance(src, opts, types)
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := loadPreview(cmd, args)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return p.Render(w)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	p, err := loadPreview(cmd, args)
	if err != nil {
		return err
	}
	summaries, numeric, err := describePreview(p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if markdown, _ := cmd.Flags().GetBool("markdown"); markdown {
		fmt.Fprintln(out, GenerateTableMarkdown(summaries))
		return nil
	}
	fmt.Fprintln(out, GenerateTable(summaries))
	if len(numeric) > 0 {
		fmt.Fprintln(out, GenerateNumericTable(numeric))
	}
	if p.Table.NumRows() < p.Table.TotalRows() {
		fmt.Fprintf(out, "sampled %d of %d rows\n", p.Table.NumRows(), p.Table.TotalRows())
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	opts, types, err := commandOptions(cmd)
	if err != nil {
		return err
	}
	log.WithField("addr", cfg.Addr).Info("listening")
	return newServer(opts, types).ListenAndServe(cfg.Addr)
}
