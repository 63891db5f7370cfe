package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/recipedesk/internal/api"
	"github.com/hammamikhairi/recipedesk/internal/config"
	"github.com/hammamikhairi/recipedesk/internal/logger"
	"github.com/hammamikhairi/recipedesk/internal/notify"
)

// appEnv holds what every command needs once flags are parsed.
type appEnv struct {
	v        *viper.Viper
	cfg      *config.Config
	log      *logger.Logger
	closeLog func()
}

func newRootCommand() *cobra.Command {
	env := &appEnv{v: config.NewViper()}
	var cfgPath string

	root := &cobra.Command{
		Use:           "recipedesk",
		Short:         "Browse and edit the recipes of a recipe server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.load(cmd, cfgPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, env, "")
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "config file (default ./recipedesk.toml, then the user config dir)")
	pf.String("base-url", "", "recipe server base URL")
	pf.Int("timeout", 0, "HTTP timeout in seconds")
	pf.String("log-level", "", "log level: off, normal or verbose")
	pf.String("log-file", "", `log file ("stderr" logs to the console)`)
	_ = env.v.BindPFlag(config.KeyBaseURL, pf.Lookup("base-url"))
	_ = env.v.BindPFlag(config.KeyTimeout, pf.Lookup("timeout"))
	_ = env.v.BindPFlag(config.KeyLevel, pf.Lookup("log-level"))
	_ = env.v.BindPFlag(config.KeyLogFile, pf.Lookup("log-file"))

	root.AddCommand(
		newTUICommand(env),
		newListCommand(env),
		newShowCommand(env),
		newCreateCommand(env),
		newUpdateCommand(env),
		newDeleteCommand(env),
		newServeCommand(env),
		newConfigCommand(env),
	)
	return root
}

// load reads the configuration and opens the log.
func (e *appEnv) load(cmd *cobra.Command, path string) error {
	cfg, err := config.Load(e.v, path)
	if err != nil {
		return err
	}
	level, _ := cfg.LogLevel()

	out, closeFn := openLog(cfg.Log.File, level, cmd.ErrOrStderr())
	e.cfg = cfg
	e.log = logger.New(level, out)
	e.closeLog = closeFn
	e.log.Debug("config: loaded (file=%q, base_url=%s)", config.Source(e.v), cfg.API.BaseURL)
	return nil
}

func (e *appEnv) close() {
	if e.log != nil {
		_ = e.log.Sync()
	}
	if e.closeLog != nil {
		e.closeLog()
		e.closeLog = nil
	}
}

// client returns an API client for the configured server.
func (e *appEnv) client() *api.Client {
	return api.NewClient(e.cfg.API.BaseURL, e.log, api.WithHTTPTimeout(e.cfg.Timeout()))
}

// notifier reports to the command's output streams.
func (e *appEnv) notifier(cmd *cobra.Command) *notify.CLINotifier {
	out := cmd.OutOrStdout()
	printFn := func(format string, a ...interface{}) {
		fmt.Fprintf(out, format+"\n", a...)
	}
	return notify.NewCLINotifier(e.log, printFn, cmd.ErrOrStderr(), colorOutput(out))
}

// openLog directs logs to a file by default so the terminal stays clean.
// It falls back to fallback when the file cannot be opened.
func openLog(path string, level logger.Level, fallback io.Writer) (io.Writer, func()) {
	if level == logger.LevelOff {
		return io.Discard, func() {}
	}
	if path == "" || path == "stderr" {
		return fallback, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(fallback, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return fallback, func() {}
	}
	return f, func() { _ = f.Close() }
}

// colorOutput reports whether w is a terminal that can take ANSI codes.
func colorOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// interactive reports whether forms and prompts can be shown. Replaced
// in tests.
var interactive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
