package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dfstats/deltaquery/internal/auth"
	"github.com/dfstats/deltaquery/internal/core/domain"
	"github.com/dfstats/deltaquery/internal/endpoints"
	"github.com/dfstats/deltaquery/internal/health"
	"github.com/dfstats/deltaquery/internal/infra/api"
	"github.com/dfstats/deltaquery/internal/infra/cache"
	"github.com/dfstats/deltaquery/internal/query"
	"github.com/dfstats/deltaquery/internal/sink"
)

var (
	paramFlags []string
	outputMode string
)

var queryCmd = &cobra.Command{
	Use:   "query <endpoint>",
	Short: "Run one query endpoint",
	Long: `Runs the named endpoint through the query pipeline.
Parameters are passed as repeated --param key=value flags, e.g.:

  deltaquery query weekly-report --param stat_date=20250106 --param mode=sol --param s_area=36`,
	Args:         cobra.ExactArgs(1),
	RunE:         runQuery,
	SilenceUsage: true,
}

// errQueryFailed signals a non-zero exit to cobra after deferred cleanup
// (cache connections, health server) has unwound.
var errQueryFailed = errors.New("query did not complete")

func runResult(delivered bool) error {
	if !delivered {
		return errQueryFailed
	}
	return nil
}

func init() {
	queryCmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "query parameter as key=value")
	queryCmd.Flags().StringVarP(&outputMode, "output", "o", "json", "output format: json or text")
}

// flagSource feeds CLI --param values into the pipeline as a ParamSource.
type flagSource struct {
	params domain.Params
}

func (s flagSource) Params(ctx context.Context) (domain.Params, error) {
	return s.params.Clone(), nil
}

// cliNotifier relays pipeline outcomes to stderr, one line per run.
type cliNotifier struct{}

func (cliNotifier) Failure(descriptor, stage, message string) {
	fmt.Fprintf(os.Stderr, "%s failed at %s: %s\n", descriptor, stage, message)
}

func (cliNotifier) Success(descriptor, label string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", descriptor, label)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return err
	}

	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}

	var resultSink query.Sink
	switch outputMode {
	case "json":
		resultSink = sink.NewJSON(os.Stdout)
	case "text":
		resultSink = sink.NewText(os.Stdout)
	default:
		return fmt.Errorf("unknown output format %q", outputMode)
	}

	reg, err := endpoints.BuildRegistry(func(endpoints.Definition) query.ParamSource {
		return flagSource{params: params}
	}, resultSink)
	if err != nil {
		return err
	}

	d, ok := reg.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown endpoint %q (see `deltaquery endpoints`)", args[0])
	}

	var responseCache cache.ResponseCache
	if cfg.Cache.Redis.URL != "" {
		redisCache, err := cache.NewRedis(cfg.Cache.Redis, cfg.Cache.Expiry, slog.Default())
		if err != nil {
			slog.Error("Failed to connect response cache", "error", err)
			return err
		}
		defer redisCache.Close()
		responseCache = redisCache
	} else {
		responseCache = cache.NewMemory(cfg.Cache.Expiry)
	}

	if cfg.Server.Port > 0 {
		srv := health.NewServer(cfg.Server.Port)
		go func() {
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				slog.Error("Health server stopped", "error", err)
			}
		}()
		defer srv.Stop(context.Background())
	}

	executor := api.New(responseCache, slog.Default(), api.Config{BackoffUnit: cfg.Query.BackoffUnit})
	creds := auth.NewSource(cfg.Auth, slog.Default())
	pipeline := query.New(executor, creds, cliNotifier{}, slog.Default(), query.Config{
		Timeout:    cfg.Query.Timeout,
		MaxRetries: cfg.Query.RetryCount,
	})

	return runResult(pipeline.Run(cmd.Context(), d))
}

func parseParams(flags []string) (domain.Params, error) {
	params := domain.Params{}
	for _, f := range flags {
		key, value, found := strings.Cut(f, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", f)
		}
		params[key] = value
	}
	return params, nil
}
