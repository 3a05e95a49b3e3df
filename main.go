package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperr "sqlcompiler/pkg/error"
	"sqlcompiler/pkg/lexer"
	"sqlcompiler/pkg/logging"
	"sqlcompiler/pkg/server"
	"sqlcompiler/pkg/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Configuration struct {
	Mode            string
	Addr            string
	File            string
	CaseInsensitive bool
	LogLevel        string
	LogFormat       string
	LogPath         string
	NoSplash        bool
}

func main() {
	os.Exit(run(parseArguments()))
}

// run executes the selected mode and returns the process exit code. The
// logger is closed before returning so a -log-file is flushed on every path.
func run(config Configuration) int {
	if err := initLogging(config); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		return 1
	}
	defer logging.Close()

	var err error
	switch config.Mode {
	case "serve":
		err = runServer(config)
	case "lex":
		err = runLex(config, os.Stdin, os.Stdout)
	case "tui":
		if !config.NoSplash {
			showSplashScreen()
		}
		err = startInteractiveMode(config)
	default:
		err = fmt.Errorf("unknown mode %q (want serve, tui or lex)", config.Mode)
	}

	if err != nil {
		logging.WithError(err).Error("exiting", "mode", config.Mode)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// parseArguments processes command-line flags
func parseArguments() Configuration {
	var config Configuration

	flag.StringVar(&config.Mode, "mode", "tui", "Run mode: serve, tui or lex")
	flag.StringVar(&config.Addr, "addr", server.DefaultConfig().Addr, "HTTP listen address (serve mode)")
	flag.StringVar(&config.File, "file", "", "Source file to tokenize (lex mode; stdin when empty)")
	flag.BoolVar(&config.CaseInsensitive, "ci", false, "Match keywords case-insensitively")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.LogFormat, "log-format", "text", "Log format: text or json")
	flag.StringVar(&config.LogPath, "log-file", "", "Log file path (stdout for serve, stderr for lex, discarded for tui when empty)")
	flag.BoolVar(&config.NoSplash, "no-splash", false, "Skip the splash screen (tui mode)")

	flag.Parse()

	return config
}

// initLogging keeps log output away from whatever the mode writes itself:
// JSON on stdout in lex mode, the alternate screen in tui mode.
func initLogging(config Configuration) error {
	cfg := logging.Config{
		Level:      logging.ParseLevel(config.LogLevel),
		OutputPath: config.LogPath,
		Format:     config.LogFormat,
	}
	if config.LogPath == "" {
		switch config.Mode {
		case "lex":
			cfg.Writer = os.Stderr
		case "tui":
			cfg.Writer = io.Discard
		}
	}
	return logging.Init(cfg)
}

func lexerOptions(config Configuration) []lexer.Option {
	if config.CaseInsensitive {
		return []lexer.Option{lexer.WithCaseInsensitiveKeywords()}
	}
	return nil
}

// runServer serves HTTP until SIGINT or SIGTERM.
func runServer(config Configuration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := server.DefaultConfig()
	cfg.Addr = config.Addr

	return server.New(cfg).Run(ctx)
}

// runLex tokenizes one file (or stdin) and prints the token list as JSON.
// ERROR tokens are part of the output, not a failure of the command.
func runLex(config Configuration, stdin io.Reader, stdout io.Writer) error {
	origin := config.File
	var (
		data []byte
		err  error
	)
	if origin == "" {
		origin = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(config.File)
	}
	if err != nil {
		return apperr.Wrap(err, apperr.CodeReadSource, "ReadSource", "CLI").
			WithHint("check the -file path or pipe source text on stdin")
	}

	source := string(data)
	start := time.Now()
	tokens := lexer.Tokenize(source, lexerOptions(config)...)
	if tokens == nil {
		tokens = []lexer.Token{}
	}
	summary := lexer.Summarize(tokens)

	logging.WithSource(origin, len(source)).Info("tokenized",
		"tokens", summary.Total,
		"errors", summary.Errors,
		"halted", summary.Halted,
		"duration", time.Since(start))

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tokens); err != nil {
		return apperr.Wrap(err, apperr.CodeEncodeResponse, "Encode", "CLI")
	}
	return nil
}

// showSplashScreen displays a short welcome banner
func showSplashScreen() {
	splash := `
╔══════════════════════════════════════════════╗
║                                              ║
║             SQL  Lexer  Playground           ║
║                                              ║
║     keywords · types · literals · errors     ║
║                                              ║
╚══════════════════════════════════════════════╝
`

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	fmt.Println(style.Render(splash))
	time.Sleep(time.Second)
}

// startInteractiveMode launches the Bubble Tea UI
func startInteractiveMode(config Configuration) error {
	var opts []ui.Option
	if config.CaseInsensitive {
		opts = append(opts, ui.WithCaseInsensitiveKeywords(true))
	}
	if config.File != "" {
		data, err := os.ReadFile(config.File)
		if err != nil {
			return apperr.Wrap(err, apperr.CodeReadSource, "ReadSource", "CLI")
		}
		opts = append(opts, ui.WithSource(string(data)))
	}

	p := tea.NewProgram(
		ui.NewModel(opts...),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %v", err)
	}

	return nil
}
