// Package main defines the Votara coordinator server. The coordinator owns
// the off-chain half of the poll lifecycle and reconciles it against the
// Voting contract through a confirmed-event tail.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/althof3/votara/cmd"
	"github.com/althof3/votara/cmd/coordinator/flags"
	"github.com/althof3/votara/coordinator/node"
	"github.com/althof3/votara/io/logs"
	"github.com/althof3/votara/runtime/debug"
	"github.com/althof3/votara/runtime/version"
	"github.com/joho/godotenv"
	joonix "github.com/joonix/log"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var log = logrus.WithField("prefix", "main")

func startCoordinator(cliCtx *cli.Context) error {
	verbosity := cliCtx.String(cmd.VerbosityFlag.Name)
	level, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	coordinator, err := node.New(cliCtx)
	if err != nil {
		return err
	}
	coordinator.Start()
	return nil
}

var appFlags = []cli.Flag{
	flags.ChainFlag,
	flags.RPCEndpointFlag,
	flags.VotingContractFlag,
	flags.MembershipContractFlag,
	flags.SigningKeyFlag,
	flags.DeploymentBlockFlag,
	flags.MerkleTreeDurationFlag,
	flags.HTTPListenAddrFlag,
	flags.HTTPCorsDomainFlag,
	flags.ServerKeyFlag,
	flags.TokenTTLFlag,
	flags.LoginDomainFlag,
	flags.TailPollIntervalFlag,
	flags.TailMaxWindowFlag,
	flags.ConfirmationsFlag,
	flags.MonitoringPortFlag,
	cmd.VerbosityFlag,
	cmd.DataDirFlag,
	cmd.EnableTracingFlag,
	cmd.TracingProcessNameFlag,
	cmd.TracingEndpointFlag,
	cmd.TraceSampleFractionFlag,
	cmd.MonitoringHostFlag,
	cmd.DisableMonitoringFlag,
	cmd.LogFileName,
	cmd.LogFormat,
	cmd.MaxGoroutines,
	cmd.ClearDB,
	cmd.ForceClearDB,
	cmd.ConfigFileFlag,
	cmd.ChainConfigFileFlag,
	cmd.EnableBackupWebhookFlag,
	cmd.BackupWebhookOutputDir,
	debug.PProfFlag,
	debug.PProfAddrFlag,
	debug.PProfPortFlag,
	debug.MemProfileRateFlag,
	debug.CPUProfileFlag,
	debug.TraceFlag,
}

func init() {
	appFlags = cmd.WrapFlags(appFlags)
}

func main() {
	// A .env file in the working directory feeds the environment-bound flags
	// below; absence is not an error.
	_ = godotenv.Load()

	app := cli.App{}
	app.Name = "coordinator"
	app.Usage = "launches the Votara coordinator, the server that drives anonymous polls from draft to on-chain tally."
	app.Version = version.GetVersion()
	app.Flags = appFlags
	app.Action = startCoordinator
	app.Before = func(ctx *cli.Context) error {
		// Load any flags from file, if specified.
		if ctx.IsSet(cmd.ConfigFileFlag.Name) {
			if err := altsrc.InitInputSourceWithContext(
				appFlags,
				altsrc.NewYamlSourceFromFlagFunc(
					cmd.ConfigFileFlag.Name))(ctx); err != nil {
				return err
			}
		}

		format := ctx.String(cmd.LogFormat.Name)
		switch format {
		case "text":
			formatter := new(prefixed.TextFormatter)
			formatter.TimestampFormat = "2006-01-02 15:04:05"
			formatter.FullTimestamp = true
			// If persistent log files are written - we disable the log messages coloring because
			// the colors are ANSI codes and seen as Gibberish in the log files.
			formatter.DisableColors = ctx.String(cmd.LogFileName.Name) != ""
			logrus.SetFormatter(formatter)
		case "fluentd":
			logrus.SetFormatter(joonix.NewFormatter())
		case "json":
			logrus.SetFormatter(&logrus.JSONFormatter{})
		default:
			return fmt.Errorf("unknown log format %s", format)
		}

		logFileName := ctx.String(cmd.LogFileName.Name)
		if logFileName != "" {
			if err := logs.ConfigurePersistentLogging(logFileName); err != nil {
				log.WithError(err).Error("Failed to configuring logging to disk.")
			}
		}

		runtime.GOMAXPROCS(runtime.NumCPU())
		return debug.Setup(ctx)
	}

	app.After = func(ctx *cli.Context) error {
		debug.Exit(ctx)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
