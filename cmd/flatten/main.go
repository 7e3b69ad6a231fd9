// Command flatten streams the lines of its inputs as a flat sequence of tokens.
package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zircuit-labs/zkr-go-iter/config"
	"github.com/zircuit-labs/zkr-go-iter/flatten"
	"github.com/zircuit-labs/zkr-go-iter/log"
	"github.com/zircuit-labs/zkr-go-iter/version"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/errclass"
	"github.com/zircuit-labs/zkr-go-iter/xerrors/stacktrace"
)

const serviceName = "flatten"

// flag name -> configuration key, for flags that override a setting
var settingKeys = map[string]string{
	"mode":             "mode",
	"separator":        "separator",
	"distinct":         "distinct",
	"skip-blank":       "skipblank",
	"cache-size":       "cachesize",
	"max-line-size":    "maxlinesize",
	"output-separator": "output.separator",
	"log-level":        "log.level",
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "flatten [file...]",
		Short: "Write the tokens of every input line as one flat stream",
		Long: `
flatten reads its inputs line by line, expands every line into tokens and writes
the tokens in order. Lines that produce no tokens are skipped. Standard input is
read when no file is given or a file is "-".
`,
		Example: `  $ flatten --mode chars --output-separator "" words.txt
  $ cat data.csv | flatten --mode split --separator , --skip-blank --distinct
  `,
		Version:       version.Info.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configPath, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "TOML settings file with a [default] section")
	flags.StringP("mode", "m", string(flatten.ModeWords), "token mode: chars, words, split or bytes")
	flags.StringP("separator", "s", "", "field separator for split mode")
	flags.BoolP("distinct", "d", false, "drop tokens already written")
	flags.Bool("skip-blank", false, "drop tokens made only of whitespace")
	flags.Int("cache-size", 0, "number of distinct lines whose tokens are memoized")
	flags.Int("max-line-size", 0, "longest input line in bytes, 0 for 1MiB")
	flags.StringP("output-separator", "o", "\n", "written between tokens")
	flags.String("log-level", "info", "debug, info, warn or error")

	return cmd
}

// overrides collects the flags set on the command line, so that unset flags leave the file and env values alone.
func overrides(flags *pflag.FlagSet) map[string]any {
	out := make(map[string]any)
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := settingKeys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})
	return out
}

func loadSettings(configPath string, flags *pflag.FlagSet) (flatten.Settings, error) {
	opts := []config.Option{config.WithOverrides(overrides(flags))}

	// without a file only env vars and flags apply
	var fsys fs.FS
	if configPath != "" {
		fsys = os.DirFS(filepath.Dir(configPath))
		opts = append(opts, config.WithFilePath(filepath.Base(configPath)))
	}

	cfg, err := config.NewConfiguration(fsys, opts...)
	if err != nil {
		return flatten.Settings{}, err
	}
	return config.Load(cfg, "", flatten.DefaultSettings())
}

func openInputs(stdin io.Reader, args []string) ([]io.Reader, func(), error) {
	if len(args) == 0 {
		return []io.Reader{stdin}, func() {}, nil
	}

	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	inputs := make([]io.Reader, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			inputs = append(inputs, stdin)
			continue
		}
		f, err := os.Open(arg)
		if err != nil {
			closeAll()
			return nil, nil, errclass.WrapAs(stacktrace.Wrap(err), errclass.Persistent)
		}
		files = append(files, f)
		inputs = append(inputs, f)
	}
	return inputs, closeAll, nil
}

func run(cmd *cobra.Command, configPath string, args []string) error {
	logger := log.NewLoggerTo(serviceName, cmd.ErrOrStderr())

	settings, err := loadSettings(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := log.SetLogLevel(settings.Log.Level); err != nil {
		return errclass.WrapAs(stacktrace.Wrap(fmt.Errorf("log level: %w", err)), errclass.Persistent)
	}

	inputs, closeInputs, err := openInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	defer closeInputs()

	logger.Debug("flattening", "inputs", len(inputs), "mode", settings.Mode)
	_, err = flatten.Run(cmd.Context(), settings, inputs, cmd.OutOrStdout(), flatten.WithLogger(logger))
	return err
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		// stdout carries the tokens, so failures are logged to stderr
		logger := log.NewLoggerTo(serviceName, cmd.ErrOrStderr())
		logger.Error("flatten failed", log.ErrAttr(err), slog.String("class", errclass.GetClass(err).String()))
	}
	return err
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
