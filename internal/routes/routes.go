package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/x31a/acrobits-websvc/internal/balance"
	"github.com/x31a/acrobits-websvc/internal/config"
	"github.com/x31a/acrobits-websvc/internal/contacts"
	"github.com/x31a/acrobits-websvc/internal/metrics"
	"github.com/x31a/acrobits-websvc/internal/middleware"
	"github.com/x31a/acrobits-websvc/internal/rate"
	"github.com/x31a/acrobits-websvc/internal/ratelimit"
)

// ErrNoEnabledFeatures is returned when balance, rate and contacts are all
// disabled. A gateway serving none of them is a misconfiguration.
var ErrNoEnabledFeatures = errors.New("no enabled features: enable at least one of balance, rate or contacts")

// Deps aggregates shared dependencies required to wire routes. Collaborators
// are only required for the features that are enabled.
type Deps struct {
	Cfg      config.Config
	Logger   *slog.Logger
	Balance  balance.Fetcher
	Rate     rate.Fetcher
	Contacts contacts.Fetcher
	Cache    *redis.Client
	Metrics  *metrics.Metrics
}

// Setup configures middlewares and mounts every enabled endpoint under the
// configured base path.
func Setup(app *fiber.App, d Deps) error {
	cfg := d.Cfg
	if !cfg.Balance.Enabled && !cfg.Rate.Enabled && !cfg.Contacts.Enabled {
		return ErrNoEnabledFeatures
	}
	if err := checkFetchers(d); err != nil {
		return err
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	app.Use(middleware.Metrics(d.Metrics))
	app.Use(middleware.Deadline(cfg.HandlerTimeout))

	limit := middleware.RateLimit(ratelimit.New(d.Cache, cfg.RateLimitPerMinute), d.Metrics, d.Logger)

	mount := func(name string, feature config.Feature, handler fiber.Handler, extra ...fiber.Handler) error {
		if !feature.Enabled {
			return nil
		}
		path, err := Join(cfg.BasePath, feature.Path)
		if err != nil {
			return fmt.Errorf("%s path: %w", name, err)
		}
		app.Get(path, append(extra, handler)...)
		d.Logger.Info("endpoint mounted", slog.String("feature", name), slog.String("path", path))
		return nil
	}

	var errs []error
	if d.Balance != nil {
		h := balance.NewHandler(d.Balance, cfg.Balance, d.Logger)
		errs = append(errs, mount("balance", cfg.Balance.Feature, h.Get, limit))
	}
	if d.Rate != nil {
		h := rate.NewHandler(d.Rate, cfg.Rate, d.Logger)
		errs = append(errs, mount("rate", cfg.Rate.Feature, h.Get, limit))
	}
	if d.Contacts != nil {
		h := contacts.NewHandler(d.Contacts, d.Logger)
		errs = append(errs, mount("contacts", cfg.Contacts, h.Get, limit))
	}
	errs = append(errs, mount("healthcheck", cfg.Health, Liveness))
	if d.Metrics != nil {
		errs = append(errs, mount("metrics", cfg.Metrics, d.Metrics.Handler()))
	}
	return errors.Join(errs...)
}

func checkFetchers(d Deps) error {
	var errs []error
	if d.Cfg.Balance.Enabled && d.Balance == nil {
		errs = append(errs, errors.New("balance is enabled but its fetcher is nil"))
	}
	if d.Cfg.Rate.Enabled && d.Rate == nil {
		errs = append(errs, errors.New("rate is enabled but its fetcher is nil"))
	}
	if d.Cfg.Contacts.Enabled && d.Contacts == nil {
		errs = append(errs, errors.New("contacts is enabled but its fetcher is nil"))
	}
	if d.Cfg.Metrics.Enabled && d.Metrics == nil {
		errs = append(errs, errors.New("metrics is enabled but no registry was provided"))
	}
	return errors.Join(errs...)
}

// Join resolves path against base the way a browser resolves a relative
// link: "/api/" + "balance" is "/api/balance", while "/api" + "balance" is
// "/balance" and an absolute path replaces the base entirely.
func Join(base, path string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	p, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	joined := b.ResolveReference(p)
	if joined.Path == "" {
		return "/", nil
	}
	return joined.Path, nil
}
