package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/logrusorgru/aurora"

	"bitvavo-api/pkg/config"
	"bitvavo-api/pkg/exchanges/bitvavo"
)

const usageHeader = `usage: bitvavo [-v] [-sync-time] <command> [flags] [args]

Settings come from BITVAVO_* environment variables, an optional .env file and
the YAML file named by BITVAVO_CONFIG.

commands:`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	verbose := false
	syncTime := false
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "-v", "--v":
			verbose = true
		case "-sync-time", "--sync-time":
			syncTime = true
		case "-h", "-help", "--help":
			printUsage(stdout)
			return 0
		default:
			fmt.Fprintf(stderr, "%s unknown flag %s\n", aurora.Red("error:"), args[0])
			printUsage(stderr)
			return 2
		}
		args = args[1:]
	}
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "%s unknown command %q\n", aurora.Red("error:"), args[0])
		printUsage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "%s config: %v\n", aurora.Red("error:"), err)
		return 1
	}

	env := &cli{cfg: cfg, out: stdout}
	if cmd.needsClient {
		client, err := newClient(cfg, verbose, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "%s %v\n", aurora.Red("error:"), err)
			return 1
		}
		defer client.Close()
		if cmd.private && !client.Signed() {
			fmt.Fprintf(stderr, "%s %s needs BITVAVO_API_KEY and BITVAVO_API_SECRET\n", aurora.Red("error:"), args[0])
			return 1
		}
		if syncTime {
			if err := client.SyncTime(ctx); err != nil {
				fmt.Fprintf(stderr, "%s time sync: %v\n", aurora.Yellow("warning:"), err)
			}
		}
		env.client = client
	}

	result, err := cmd.run(ctx, env, args[1:])
	if err != nil {
		reportError(stderr, err)
		return 1
	}
	if result != nil {
		if err := env.print(result); err != nil {
			reportError(stderr, err)
			return 1
		}
	}
	return 0
}

func newClient(cfg *config.Config, verbose bool, stderr io.Writer) (*bitvavo.Client, error) {
	key, secret, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}
	clientCfg := bitvavo.Config{
		APIKey:     key,
		APISecret:  secret,
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if verbose {
		clientCfg.Logger = log.New(stderr, "", log.LstdFlags)
	}
	client, err := bitvavo.New(clientCfg)
	if err != nil {
		key.Wipe()
		secret.Wipe()
		return nil, err
	}
	return client, nil
}

func reportError(w io.Writer, err error) {
	var ex *bitvavo.ExchangeError
	var verr *bitvavo.ValidationError
	switch {
	case errors.As(err, &ex):
		fmt.Fprintf(w, "%s %s (errorCode %d, HTTP %d)\n",
			aurora.Red("exchange error:"), ex.Message, aurora.Bold(ex.Code), ex.Status)
	case errors.As(err, &verr):
		fmt.Fprintf(w, "%s %v\n", aurora.Yellow("invalid request:"), verr.Err)
	default:
		fmt.Fprintf(w, "%s %v\n", aurora.Red("error:"), err)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, usageHeader)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].usage)
	}
}

// cli is what a command runs against.
type cli struct {
	cfg    *config.Config
	client *bitvavo.Client
	out    io.Writer
}

func (c *cli) print(v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(c.out, s)
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// market returns the first positional argument or the configured default.
func (c *cli) market(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return c.cfg.Market
}
