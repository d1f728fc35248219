// Command attendance-report keeps the office roster, builds the daily
// attendance report and emails it.
//
// Usage:
//
//	attendance-report [-env-file path] serve
//	attendance-report [-env-file path] report [-absent 張三=sick ...]
//	attendance-report [-env-file path] send [-absent 張三=sick ...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrymomot/attendance-report/pkg/api"
	"github.com/dmitrymomot/attendance-report/pkg/attendance"
	"github.com/dmitrymomot/attendance-report/pkg/config"
	"github.com/dmitrymomot/attendance-report/pkg/email"
	"github.com/dmitrymomot/attendance-report/pkg/logger"
	"github.com/dmitrymomot/attendance-report/pkg/requestid"
	"github.com/dmitrymomot/attendance-report/pkg/settings"
	"github.com/dmitrymomot/attendance-report/svc/reporting"
)

const usage = `usage: attendance-report [-env-file path] <command> [flags]

commands:
  serve    run the HTTP API
  report   print today's report
  send     email today's report to the saved recipients
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("attendance-report", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	envFile := global.String("env-file", "", "dotenv file read before the environment is parsed")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}
	if *envFile != "" {
		if err := config.LoadEnv(*envFile); err != nil {
			return err
		}
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "serve":
		return serve(ctx, rest, stderr)
	case "report":
		return report(ctx, rest, stdout, stderr, false)
	case "send":
		return report(ctx, rest, stdout, stderr, true)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// app is everything a command needs, built from the environment.
type app struct {
	log   *slog.Logger
	codec *settings.Codec
	svc   *reporting.Service
}

func newApp(ctx context.Context, stderr io.Writer) (*app, error) {
	var (
		appCfg      config.App
		emailCfg    email.Config
		settingsCfg settings.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&emailCfg),
		config.Load(&settingsCfg),
	); err != nil {
		return nil, err
	}

	opts := []logger.Option{
		logger.WithEnvironment(appCfg.Env, appCfg.ServiceName),
		logger.WithOutput(stderr),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if appCfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(appCfg.LogLevel))
	}
	if appCfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(appCfg.LogFormat)))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	codec, err := settings.Open(ctx, settingsCfg)
	if err != nil {
		return nil, err
	}

	transport, err := email.NewTransport(emailCfg)
	if err != nil {
		_ = codec.Close()
		return nil, err
	}
	dispatcher := email.NewDispatcher(transport,
		email.WithFromName(emailCfg.FromName),
		email.WithLogger(log),
	)

	svc := reporting.New(codec, dispatcher, reporting.WithLogger(log))
	if err := svc.Load(ctx); err != nil {
		// the service starts blank and stays usable
		fmt.Fprintln(stderr, reporting.Message(err))
	}

	return &app{log: log, codec: codec, svc: svc}, nil
}

func serve(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, stderr)
	if err != nil {
		return err
	}
	defer a.codec.Close()

	var httpCfg api.Config
	if err := config.Load(&httpCfg); err != nil {
		return err
	}

	srv := api.NewServer(httpCfg,
		api.WithServerLogger(a.log),
		api.WithStopHook(a.svc.Save),
	)
	return srv.Run(ctx, api.NewRouter(a.svc, a.log))
}

func report(ctx context.Context, args []string, stdout, stderr io.Writer, send bool) error {
	name := "report"
	if send {
		name = "send"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var absences absenceFlag
	fs.Var(&absences, "absent", "name=reason, repeatable; reasons: "+reasonCodes())
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, stderr)
	if err != nil {
		return err
	}
	defer a.codec.Close()

	for _, ab := range absences {
		if err := a.svc.SetReason(ab.name, ab.reason, true); err != nil {
			return errors.New(reporting.Message(err))
		}
	}

	text := a.svc.GenerateReport()
	fmt.Fprintln(stdout, text)
	if !send {
		return nil
	}

	if err := a.svc.SendReport(ctx); err != nil {
		return errors.New(reporting.Message(err))
	}
	fmt.Fprintln(stderr, reporting.MsgReportSent)
	return nil
}

type absence struct {
	name   string
	reason attendance.Reason
}

// absenceFlag collects repeated -absent name=reason values.
type absenceFlag []absence

func (f *absenceFlag) String() string {
	parts := make([]string, 0, len(*f))
	for _, a := range *f {
		parts = append(parts, a.name+"="+a.reason.Code())
	}
	return strings.Join(parts, ",")
}

func (f *absenceFlag) Set(v string) error {
	name, code, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("expected name=reason, got %q", v)
	}
	reason, err := attendance.ParseReason(strings.TrimSpace(code))
	if err != nil {
		return err
	}
	*f = append(*f, absence{name: strings.TrimSpace(name), reason: reason})
	return nil
}

func reasonCodes() string {
	codes := make([]string, 0, len(attendance.Reasons()))
	for _, r := range attendance.Reasons() {
		codes = append(codes, r.Code())
	}
	return strings.Join(codes, ", ")
}
