package cmd

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wayneeseguin/debugkit/pkg/backends"
	"github.com/wayneeseguin/debugkit/pkg/config"
	"github.com/wayneeseguin/debugkit/pkg/debugkit"
	"github.com/wayneeseguin/debugkit/pkg/formatters"
	"github.com/wayneeseguin/debugkit/pkg/topics"
)

// EnvDebug supplies the debug labels when --debug is not given
const EnvDebug = "DEBUGKIT_DEBUG"

type rootOptions struct {
	debug      []string
	configPath string
	output     string
	subject    string
	style      string
	timestamp  bool
}

// NewRootCmd builds the demo command. Input files and configuration are
// read from fs; stdout and stderr stand in for the process streams.
func NewRootCmd(fs afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "debugkit-demo [flags] <file>",
		Short: "Demonstrate topic-filtered debug output",
		Long: `debugkit-demo announces every enabled debug topic and then reports on a file.

Topics are enabled by label with --debug, from the debug list of --config,
or from the DEBUGKIT_DEBUG environment variable (also read from .env).
The built-in topics are info, warning, error, critical and the catch-all all.

Examples:
  debugkit-demo --debug error notes.txt            # error topic only
  debugkit-demo -d info,warning notes.txt          # two topics
  debugkit-demo -d all --timestamp notes.txt       # everything, timestamped
  debugkit-demo -d all -o nats://127.0.0.1:4222 --subject app.debug notes.txt
  debugkit-demo --config debug.yaml notes.txt      # topics, mask and format from YAML`,
		Version:      debugkit.Version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, fs, opts, args[0])
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML file declaring topics, debug labels and format")

	flags := rootCmd.Flags()
	flags.StringSliceVarP(&opts.debug, "debug", "d", nil, "enable debugging for the given topic labels")
	flags.StringVarP(&opts.output, "output", "o", "stderr", "destination: stderr, stdout, discard, a file path or nats://host:port/subject")
	flags.StringVar(&opts.subject, "subject", "", "NATS subject, overriding the subject in --output")
	flags.StringVar(&opts.style, "style", formatters.StyleDebug, "output style: debug, compact or bare")
	flags.BoolVar(&opts.timestamp, "timestamp", false, "prefix every line with a timestamp and topic label")

	rootCmd.AddCommand(newTopicsCmd(fs, opts))

	return rootCmd
}

func runRoot(cmd *cobra.Command, fs afero.Fs, opts *rootOptions, file string) error {
	cfg, err := loadConfig(fs, opts.configPath)
	if err != nil {
		return err
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	mask, err := reg.Parse(resolveLabels(cmd, opts, cfg))
	if err != nil {
		return err
	}

	format, err := resolveFormat(cmd, opts, cfg)
	if err != nil {
		return err
	}

	sink, closeSink, err := openSink(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeSink() // Best effort close
	}()

	e := debugkit.New(sink,
		debugkit.WithFormatOptions(format),
		debugkit.WithErrorHandler(func(err *debugkit.SinkError) {
			fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
		}),
	)

	emit := e.Dbg
	if opts.timestamp {
		emit = e.DlogTopic
	}

	for _, label := range []string{"info", "warning", "error", "critical"} {
		if topic, ok := reg.Lookup(label); ok {
			emit(topic, mask, label+"-level debugging active")
		}
	}

	return reportFile(fs, reg, mask, emit, file)
}

// reportFile reports the file size on the info topic, or a missing file on
// the error topic. A missing file is not a command failure.
func reportFile(fs afero.Fs, reg *topics.Registry, mask topics.Set, emit func(topics.Topic, topics.Set, string), file string) error {
	info, err := fs.Stat(file)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "stat %s", file)
		}
		if topic, ok := reg.Lookup("error"); ok {
			emit(topic, mask, fmt.Sprintf("File '%s' not found", file))
		}
		return nil
	}

	if info.IsDir() {
		return errors.Errorf("%s is a directory", file)
	}

	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return errors.Wrapf(err, "read %s", file)
	}
	if topic, ok := reg.Lookup("info"); ok {
		emit(topic, mask, fmt.Sprintf("File '%s' is %d bytes", file, len(data)))
	}
	return nil
}

func loadConfig(fs afero.Fs, path string) (*config.File, error) {
	if path == "" {
		return &config.File{}, nil
	}
	return config.Load(fs, path)
}

// resolveLabels picks the debug labels: --debug, then the config file, then
// the environment.
func resolveLabels(cmd *cobra.Command, opts *rootOptions, cfg *config.File) []string {
	if cmd.Flags().Changed("debug") {
		return opts.debug
	}
	if len(cfg.Debug) > 0 {
		return cfg.Debug
	}
	return config.SplitLabels(os.Getenv(EnvDebug))
}

// resolveFormat uses an explicit --style, then the config format section,
// then the default style.
func resolveFormat(cmd *cobra.Command, opts *rootOptions, cfg *config.File) (formatters.FormatOptions, error) {
	if !cmd.Flags().Changed("style") && cfg.Format != nil {
		return cfg.FormatOptions(), nil
	}
	return formatters.DefaultFactory.Options(opts.style)
}

func openSink(cmd *cobra.Command, opts *rootOptions) (io.Writer, func() error, error) {
	noClose := func() error { return nil }

	if opts.subject == "" {
		switch opts.output {
		case "", "-", "stderr":
			return cmd.ErrOrStderr(), noClose, nil
		case "stdout":
			return cmd.OutOrStdout(), noClose, nil
		}
	}

	uri := opts.output
	if opts.subject != "" {
		u, err := url.Parse(uri)
		if err != nil || u.Scheme != "nats" {
			return nil, nil, errors.Errorf("--subject requires a nats:// output, got %q", uri)
		}
		u.Path = "/" + opts.subject
		uri = u.String()
	}

	sink, err := backends.Open(uri)
	if err != nil {
		return nil, nil, err
	}
	return sink, sink.Close, nil
}
