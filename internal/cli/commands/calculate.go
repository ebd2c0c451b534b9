package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/telbill/internal/logging"
	"github.com/ccollicutt/telbill/pkg/bill"
	"github.com/ccollicutt/telbill/pkg/config"
	"github.com/ccollicutt/telbill/pkg/output"
	"github.com/ccollicutt/telbill/pkg/parser"
	"github.com/ccollicutt/telbill/pkg/webhook"
)

// StdinName is the source name used when the log is read from standard input.
const StdinName = "<stdin>"

// CalculateOptions holds command-line options for the calculate command.
type CalculateOptions struct {
	ConfigFile string
	Output     string
	Verbose    bool
	Quiet      bool
	LogLevel   string

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewCalculateCommand creates the calculate command.
func NewCalculateCommand() *cobra.Command {
	opts := &CalculateOptions{}

	cmd := &cobra.Command{
		Use:   "calculate [log-file]",
		Short: "Calculate the bill for a call log",
		Long: `Calculate the total cost of the calls in a call log.

Each line of the log is one call:
  <phone number>,<dd-mm-yyyy HH:mm:ss start>,<dd-mm-yyyy HH:mm:ss end>

The log is read from standard input when no file is given or the file is "-".
Calls to the most called number are free.

Exit codes:
  0 - Bill calculated
  1 - The call log was rejected (invalid line)
  2 - Configuration or runtime error`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "Path to a YAML configuration file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutputFormat, "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "List every call with its minute breakdown")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print the total only")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnCharge), "When to fire webhook (on_charge|always|never)")

	return cmd
}

func runCalculate(cmd *cobra.Command, args []string, opts *CalculateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer closeLog()

	formatter, err := output.NewFormatter(cfg.Output.Format, output.FormatOptions{
		Verbose: cfg.Output.Verbose,
		Quiet:   cfg.Output.Quiet,
	})
	if err != nil {
		return err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	source, err := openLog(cmd, path)
	if err != nil {
		return err
	}
	defer source.Close()

	logger.Debug("calculating bill", zap.String("source", source.Name()))

	b, err := bill.New(bill.WithLogger(logger)).Run(ctx, source)
	if err != nil {
		return err
	}
	if b.IsEmpty() {
		logger.Info("call log is empty", zap.String("source", source.Name()))
	}

	report := output.NewReport(b, source.Name())

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (failures reported but don't fail the calculation)
	sendWebhooks(ctx, cmd.ErrOrStderr(), logger, collectWebhooks(cfg, opts), report)

	return nil
}

// loadConfig builds the effective configuration: defaults or the config
// file, then environment overrides, then explicitly set flags.
func loadConfig(ctx context.Context, cmd *cobra.Command, opts *CalculateOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigFile != "" {
		loaded, err := config.Load(ctx, opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironmentOverrides()
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Format = opts.Output
	}
	if flags.Changed("verbose") {
		cfg.Output.Verbose = opts.Verbose
	}
	if flags.Changed("quiet") {
		cfg.Output.Quiet = opts.Quiet
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.WebhookURL != "" {
		if err := config.ValidateTrigger(config.WebhookTrigger(opts.WebhookTrigger)); err != nil {
			return nil, fmt.Errorf("--webhook-trigger: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// openLog returns a record source for path, or for standard input when
// path is empty or "-".
func openLog(cmd *cobra.Command, path string) (*parser.ReaderSource, error) {
	if path == "" || path == "-" {
		return parser.NewReaderSource(io.NopCloser(cmd.InOrStdin()), StdinName), nil
	}
	return parser.NewFileSource(path)
}

// sendWebhooks sends the report to all configured webhooks.
// Results are written to w; failures never change the exit code.
func sendWebhooks(ctx context.Context, w io.Writer, logger *zap.Logger, webhooks []config.WebhookConfig, report *output.Report) {
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasCharge()) {
			logger.Debug("webhook skipped", zap.String("url", wh.URL), zap.String("trigger", string(wh.Trigger)))
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(w, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			logger.Warn("webhook failed", zap.String("webhook", name), zap.Error(resp.Error))
			fmt.Fprintf(w, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *CalculateOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)

	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnCharge
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger and charge.
func shouldFireWebhook(trigger config.WebhookTrigger, hasCharge bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasCharge
	}
}
