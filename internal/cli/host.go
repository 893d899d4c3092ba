package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/interchange"
	"github.com/aretw0/interchange/internal/demo"
	"github.com/aretw0/interchange/internal/settings"
	"github.com/aretw0/interchange/pkg/adapters/memory"
	"github.com/aretw0/interchange/pkg/adapters/redis"
	"github.com/aretw0/interchange/pkg/completion"
	"github.com/aretw0/interchange/pkg/config"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/observability"
	"github.com/aretw0/interchange/pkg/ports"
	"github.com/aretw0/interchange/pkg/registry"
	"github.com/aretw0/interchange/pkg/worker"
)

// Host owns everything the console needs to run commands: the registry, the
// shared worker pool, the cooldown store and the metrics registry.
type Host struct {
	Registry   *registry.Registry
	Components *demo.Components
	Grants     *memory.Grants
	Metrics    *prometheus.Registry
	Logger     *slog.Logger

	settings settings.Settings
	pool     *worker.Pool
	store    ports.CooldownStore
	checks   map[string]observability.HealthCheck
	closers  []func() error
}

// NewHost wires the host from s. Action output is written to out.
// Commands come from s.Definitions when set, otherwise the built-in demo
// commands are used.
func NewHost(s settings.Settings, out io.Writer) (*Host, error) {
	logger := createLogger(s)
	h := &Host{
		Components: demo.NewComponents(logger),
		Grants:     memory.NewGrants(),
		Metrics:    prometheus.NewRegistry(),
		Logger:     logger,
		settings:   s,
		pool:       worker.New(worker.WithLogger(logger)),
		checks:     make(map[string]observability.HealthCheck),
	}
	demo.Seed(h.Components)

	if s.RedisAddr != "" {
		store := redis.New(s.RedisAddr, s.RedisPassword, s.RedisDB, redis.WithPrefix(s.RedisPrefix))
		h.store = store
		h.checks["redis"] = store.Ping
		h.closers = append(h.closers, store.Close)
		logger.Debug("Using redis cooldown store", "addr", s.RedisAddr)
	} else {
		h.store = memory.NewCooldownStore(memory.WithLogger(logger))
	}

	h.Metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(h.Metrics)
	if err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("error registering metrics: %w", err)
	}
	hooks := metrics.Hooks()
	if s.Debug {
		hooks = domain.ChainHooks(hooks, observability.LogHooks(logger))
	}

	opts := []interchange.Option{
		interchange.WithWorkerPool(h.pool),
		interchange.WithCooldownStore(h.store),
		interchange.WithApprovalChecker(h.Grants),
		interchange.WithLogger(logger),
		interchange.WithLifecycleHooks(hooks),
	}
	if h.Registry, err = h.commands(out, opts); err != nil {
		_ = h.Close()
		return nil, err
	}
	return h, nil
}

func (h *Host) commands(out io.Writer, opts []interchange.Option) (*registry.Registry, error) {
	if h.settings.Definitions == "" {
		cmds, err := demo.Commands(h.Components, out, opts...)
		if err != nil {
			return nil, fmt.Errorf("error building demo commands: %w", err)
		}
		list := make([]registry.Command, 0, len(cmds))
		for _, cmd := range cmds {
			list = append(list, cmd)
		}
		return registry.New(list...)
	}

	file, err := config.LoadFile(h.settings.Definitions)
	if err != nil {
		return nil, fmt.Errorf("error loading definitions: %w", err)
	}
	return file.Registry(h.Bindings(out), opts...)
}

// Bindings exposes the demo actions and the component asset to definitions.
func (h *Host) Bindings(out io.Writer) config.Bindings {
	actions := registry.NewActions()
	demo.Bind(actions, h.Components, out)
	return config.Bindings{
		Actions: actions,
		Assets: map[string]completion.Component{
			"component": demo.Asset(h.Components),
		},
		Logger: h.Logger,
	}
}

// Run keeps the background services alive until ctx is done: the cooldown
// cleaner for the memory store and the admin endpoint when an address is set.
func (h *Host) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if store, ok := h.store.(*memory.CooldownStore); ok && h.settings.CooldownCleanup > 0 {
		g.Go(func() error {
			store.RunCleaner(ctx, h.settings.CooldownCleanup)
			return nil
		})
	}
	if h.settings.MetricsAddr != "" {
		g.Go(func() error {
			return observability.Serve(ctx, h.settings.MetricsAddr, observability.Handler(h.Metrics, h.checks), h.Logger)
		})
	}
	return g.Wait()
}

// Grant gives approvals to the executor called name. "component" is short
// for "interchange.component".
func (h *Host) Grant(name string, approvals ...string) {
	for _, a := range approvals {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if !strings.Contains(a, ".") && a != "*" {
			a = "interchange." + a
		}
		h.Grants.Grant(name, domain.Approval(a))
	}
}

// Close drains the worker pool and releases the cooldown store.
func (h *Host) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	errs := []error{h.pool.Close(ctx)}
	for _, closer := range h.closers {
		errs = append(errs, closer())
	}
	return errors.Join(errs...)
}

// ParseExecutor builds the executor a session runs as.
func ParseExecutor(kind, name string) (domain.Executor, error) {
	k, ok := domain.ParseExecutorKind(kind)
	if !ok {
		return nil, fmt.Errorf("unknown executor kind %q (want console or player)", kind)
	}
	if k == domain.KindConsole {
		return domain.Console(), nil
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("a player needs a name")
	}
	return domain.Player(name), nil
}
