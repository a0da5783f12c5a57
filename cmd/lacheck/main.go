package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"lacheck"
	"lacheck/checking"
	"lacheck/config"
	"lacheck/report"
	"lacheck/rpc"
	"lacheck/trace"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const remoteTimeout = 30 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the exit code.
// The exit code is 0 if all checks passed and 1 otherwise.
func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", 0)

	settings, err := config.ParseEnv()
	if err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}

	fs := flag.NewFlagSet("lacheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lacheck [OPTIONS] <config_dir> <output_dir> [num_processes]\n")
		fmt.Fprintf(stderr, "       lacheck -serve <addr>\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&settings.Format, "format", settings.Format, "Report format: text, json or yaml")
	fs.StringVar(&settings.Listen, "serve", settings.Listen, "Serve validation requests on the address instead of checking locally")
	remote := fs.String("remote", "", "Submit the traces to the validation service at the address")
	fs.BoolVar(&settings.WarnDivergence, "warn-divergence", settings.WarnDivergence, "Warn when proposal traces have different lengths")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if settings.Listen != "" {
		return serve(settings, logger)
	}

	positional := fs.Args()
	if len(positional) > 0 {
		settings.ConfigDir = positional[0]
	}
	if len(positional) > 1 {
		settings.OutputDir = positional[1]
	}
	if len(positional) > 2 {
		n, err := strconv.Atoi(positional[2])
		if err != nil {
			logger.Printf("Error: invalid number of processes %q", positional[2])
			return 1
		}
		settings.NumProcesses = n
	}
	if settings.ConfigDir == "" || settings.OutputDir == "" {
		fs.Usage()
		return 1
	}
	if err := settings.Validate(); err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}

	logger.Printf("Validating Lattice Agreement...")
	logger.Printf("Config Dir: %v", settings.ConfigDir)
	logger.Printf("Output Dir: %v", settings.OutputDir)

	proposals := trace.NewConfigDir(settings.ConfigDir, logger)
	decisions := trace.NewOutputDir(settings.OutputDir)

	var verdict checking.Verdict
	if *remote != "" {
		verdict, err = validateRemote(*remote, proposals, decisions, settings.NumProcesses)
	} else {
		verdict, err = lacheck.Validate(proposals, decisions, settings.NumProcesses,
			lacheck.WithLogger(logger),
			lacheck.WithDivergenceWarning(settings.WarnDivergence),
		)
	}
	if err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}

	reporter, err := report.New(settings.Format)
	if err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}
	if err := reporter.Report(stdout, verdict); err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}
	if !verdict.Passed {
		return 1
	}
	return 0
}

func serve(settings config.Settings, logger *log.Logger) int {
	lis, err := net.Listen("tcp", settings.Listen)
	if err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}
	srv := rpc.NewServer(logger, lacheck.WithDivergenceWarning(settings.WarnDivergence))
	if err := srv.Serve(lis); err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}
	return 0
}

func validateRemote(addr string, proposals trace.ProposalSource, decisions trace.DecisionSource, numProcesses int) (checking.Verdict, error) {
	m, err := trace.Collect(proposals, decisions, numProcesses)
	if err != nil {
		return checking.Verdict{}, err
	}
	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return checking.Verdict{}, err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()
	return rpc.NewClient(conn).Validate(ctx, m, numProcesses)
}
