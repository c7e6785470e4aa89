package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/tombowditch/pasty-go/internal/config"
	"github.com/tombowditch/pasty-go/internal/ratelimit"
	"github.com/tombowditch/pasty-go/internal/server/httpserver"
	"github.com/tombowditch/pasty-go/internal/server/tcpserver"
	"github.com/tombowditch/pasty-go/internal/store"
)

// Options are the server's command line flags.
type Options struct {
	Config string `short:"c" long:"config" env:"PASTY_CONFIG" description:"path to a YAML config file"`
}

// parseOptions parses args. The bool is false when help was printed and
// the process should exit cleanly.
func parseOptions(args []string, stdout io.Writer) (*Options, bool, error) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "pasty-serv"
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return nil, false, nil
		}
		return nil, false, err
	}
	return opts, true, nil
}

func main() {
	opts, ok, err := parseOptions(os.Args[1:], os.Stdout)
	if err != nil {
		slog.Error("invalid arguments", "error", err)
		os.Exit(2)
	}
	if !ok {
		return
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	var s store.Store
	if cfg.RedisURI != "" {
		rs, err := store.NewRedis(cfg.RedisURI, cfg.RedisPassword, cfg.RedisDB, cfg.PasteTTL)
		if err != nil {
			slog.Error("could not connect to redis", "error", err)
			os.Exit(1)
		}
		defer rs.Close()
		s = rs
		slog.Info("connected to redis")
	} else {
		s = store.NewMemory(cfg.PasteTTL)
		slog.Warn("REDIS_URI not set, pastes are kept in memory")
	}

	var readLimiter, writeLimiter, tcpLimiter ratelimit.Limiter = ratelimit.Nop{}, ratelimit.Nop{}, ratelimit.Nop{}
	if cfg.RateLimit {
		if cfg.RedisURI == "" {
			slog.Error("rate limiting requires redis")
			os.Exit(1)
		}
		// The rate limiter library keeps its own Redis connection.
		redisHost, redisPort := store.ParseRedisURI(cfg.RedisURI)
		if err := ratelimit.Setup(redisHost, redisPort, cfg.RedisPassword); err != nil {
			slog.Error("could not initialize rate limiter", "error", err)
			os.Exit(1)
		}
		readLimiter = ratelimit.NewRedis("pasty_http_rl_", time.Second, 5)
		writeLimiter = ratelimit.NewRedis("pasty_http_write_rl_", 5*time.Second, 1)
		tcpLimiter = ratelimit.NewRedis("pasty_tcp_rl_", 5*time.Second, 5)
	}

	if cfg.TCPAddr != "" {
		tcpSrv := tcpserver.New(s, cfg.BaseURL, tcpLimiter)
		go func() {
			if err := tcpSrv.Serve(cfg.TCPAddr); err != nil {
				slog.Error("tcp server failed", "error", err)
				os.Exit(1)
			}
		}()
	}

	slog.Info("starting http server", "addr", cfg.HTTPAddr)
	handler := httpserver.NewHandler(s,
		httpserver.WithConfig(cfg),
		httpserver.WithLimiters(readLimiter, writeLimiter),
	)
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}
