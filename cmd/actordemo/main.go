// Command actordemo exercises bollywood's public contract end to end: its
// root actor's seeded HELLO fans out N echo children, each of which
// records its parent and immediately retires itself, and the demo joins
// the system once every actor has gone idle. It is a demonstration
// harness, not part of the runtime itself — spec.md scopes the console/
// signal front-end out of the core, so this only ever calls the public
// bollywood.System surface.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lguibr/bollywood/bollywood"
	"github.com/lguibr/bollywood/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	flagPoolSize   int
	flagQueueLimit int
	flagCastLimit  int
	flagChildren   int
	flagLogFile    string
	flagConfigFile string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actordemo",
		Short: "Drive a small bollywood actor system",
		Long: "actordemo spawns a root actor that fans out N echo children, " +
			"sends each a message, and waits for the system to go idle or " +
			"for an interrupt.",
		RunE: runDemo,
	}

	def := config.DefaultConfig()
	cmd.Flags().IntVar(&flagPoolSize, "pool-size", def.PoolSize, "fixed worker pool size")
	cmd.Flags().IntVar(&flagQueueLimit, "queue-limit", def.QueueLimit, "per-actor mailbox capacity")
	cmd.Flags().IntVar(&flagCastLimit, "cast-limit", def.CastLimit, "maximum number of actors the registry will hold")
	cmd.Flags().IntVar(&flagChildren, "children", 8, "number of echo children the root spawns")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "", "optional rotating log file (defaults to stderr)")
	cmd.Flags().StringVar(&flagConfigFile, "config", "", "optional config file overriding the flags above")

	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	logger := buildLogger()
	defer logger.Sync()

	role := echoRole(flagChildren)

	sys, err := bollywood.NewSystem(role,
		bollywood.WithPoolSize(cfg.PoolSize),
		bollywood.WithQueueLimit(cfg.QueueLimit),
		bollywood.WithCastLimit(cfg.CastLimit),
		bollywood.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("actordemo: creating system: %w", err)
	}

	sys.Join(context.Background())

	snap := sys.Metrics()
	logger.Info("actordemo: system idle",
		zap.Int64("messages_processed", snap.MessagesProcessed),
		zap.Int64("handler_panics", snap.HandlerPanics))

	return nil
}

func resolveConfig() (config.Config, error) {
	if flagConfigFile == "" && !flagsExplicit() {
		return config.Load("")
	}
	if flagConfigFile != "" {
		return config.Load(flagConfigFile)
	}
	return config.Config{
		PoolSize:   flagPoolSize,
		QueueLimit: flagQueueLimit,
		CastLimit:  flagCastLimit,
	}, nil
}

// flagsExplicit reports whether any of the tunable flags differ from
// config.DefaultConfig(), a cheap proxy for "the user passed at least one
// of --pool-size/--queue-limit/--cast-limit" without threading
// cobra.Command.Flags().Changed through every call site.
func flagsExplicit() bool {
	def := config.DefaultConfig()
	return flagPoolSize != def.PoolSize || flagQueueLimit != def.QueueLimit || flagCastLimit != def.CastLimit
}

func buildLogger() *zap.Logger {
	if flagLogFile == "" {
		l, _ := zap.NewDevelopment()
		return l
	}

	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   flagLogFile,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
	})
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, sink, zap.InfoLevel)
	return zap.New(core)
}

// echoRole builds a demo Role: handler 0 fans the root out into
// childCount echo actors, each of whose HELLO handler records its parent
// and immediately sends itself GODIE — the fan-out scenario spec.md §8
// describes.
func echoRole(childCount int) bollywood.Role {
	child := bollywood.Role{
		Handlers: []bollywood.HandlerFunc{
			func(ctx bollywood.Context, state *any, msg bollywood.Message) {
				if hello, ok := msg.Payload.(bollywood.HelloPayload); ok {
					*state = hello.SpawnerID
				}
				_ = ctx.Send(ctx.Self(), bollywood.Message{Type: bollywood.GODIE})
			},
		},
	}

	return bollywood.Role{
		Handlers: []bollywood.HandlerFunc{
			func(ctx bollywood.Context, state *any, msg bollywood.Message) {
				for i := 0; i < childCount; i++ {
					if err := ctx.Spawn(child); err != nil {
						break
					}
				}
				_ = ctx.Send(ctx.Self(), bollywood.Message{Type: bollywood.GODIE})
			},
		},
	}
}
