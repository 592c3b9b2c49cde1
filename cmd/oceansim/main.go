package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/ocean-terrain/internal/config"
	"github.com/annel0/ocean-terrain/internal/island"
	"github.com/annel0/ocean-terrain/internal/logging"
	"github.com/annel0/ocean-terrain/internal/metrics"
	"github.com/annel0/ocean-terrain/internal/observability"
	"github.com/annel0/ocean-terrain/internal/terrain"
	"github.com/annel0/ocean-terrain/internal/tile"
	"github.com/annel0/ocean-terrain/internal/vec"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (falls back to OCEAN_CONFIG)")
		steps      = flag.Int("steps", 10, "Number of focus moves")
		dx         = flag.Float64("dx", 35, "Focus step along X")
		dz         = flag.Float64("dz", 20, "Focus step along Z")
		verbose    = flag.Bool("verbose", false, "Log every tile description at the end of the walk")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("❌ Ошибка конфигурации логирования: %v", err)
	}
	if *verbose && level > logging.DEBUG {
		level = logging.DEBUG
	}

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("oceansim", level, cfg.Logging.File); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	logging.GetLoggerManager().SetDefaultLevel(level)
	defer logging.GetLoggerManager().CloseAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Warn("Ошибка остановки OpenTelemetry: %v", err)
		}
	}()

	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(registry)
	if err != nil {
		logging.Error("❌ Ошибка регистрации метрик: %v", err)
		os.Exit(1)
	}

	logHook := terrain.NewLogHook(nil)
	hooks := tile.Hooks{
		logHook,
		collector,
		observability.NewTracingHook(ctx, nil),
	}

	manager, err := terrain.NewManager(cfg.Terrain, island.NewGenerator(cfg.Islands), hooks)
	if err != nil {
		logging.Error("❌ Ошибка создания менеджера местности: %v", err)
		os.Exit(1)
	}
	manager.SetListener(listeners{logHook, collector})

	logging.Info("🌊 Симуляция океана: tile_size=%.1f radius=%d seed=%d steps=%d",
		manager.TileSize(), manager.Radius(), cfg.Islands.Seed, *steps)

	walk(ctx, manager, *steps, vec.Vec3Float{X: *dx, Z: *dz})

	if *verbose {
		for _, t := range manager.Tiles() {
			logging.Debug("%s", t)
		}
	}

	if stats, err := observability.CollectProcessStats(); err != nil {
		logging.Warn("Статистика процесса недоступна: %v", err)
	} else {
		logging.Info("Процесс до освобождения тайлов: %s", stats)
	}

	released := manager.Shutdown()
	logging.Info("Освобождено тайлов: %d", released)

	if addr := cfg.Metrics.GetMetricsAddr(); addr != "" && ctx.Err() == nil {
		logging.Info("Метрики остаются доступны до SIGINT/SIGTERM")
		if err := metrics.Serve(ctx, addr, registry); err != nil {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}

	logging.Info("✅ Симуляция завершена")
}

// walk двигает фокус steps раз и обновляет активную зону
func walk(ctx context.Context, m *terrain.Manager, steps int, step vec.Vec3Float) {
	logger := logging.GetTerrainLogger()
	focus := vec.Vec3Float{X: m.TileSize() / 2, Z: m.TileSize() / 2}

	for i := 0; i <= steps; i++ {
		if ctx.Err() != nil {
			logger.Warn("Прогулка прервана на шаге %d", i)
			return
		}

		stats, err := m.Update(focus)
		if err != nil {
			logger.Warn("Шаг %d: конфликт связей тайлов: %v", i, err)
		}
		logger.Info("Шаг %d: фокус %s ячейка %v, +%d/-%d тайлов, островов %d, активно %d",
			i, focus, stats.Focus, stats.Created, stats.Deactivated, stats.Islands, stats.Active)

		if t, ok := m.TileAt(focus); ok {
			logger.Debug("Под фокусом: %s", t)
		}

		focus = focus.Add(step)
	}
}

// listeners рассылает события менеджера нескольким слушателям
type listeners []terrain.Listener

func (ls listeners) TileCreated(t *tile.Tile, islands int) {
	for _, l := range ls {
		l.TileCreated(t, islands)
	}
}

func (ls listeners) TileReleased(t *tile.Tile) {
	for _, l := range ls {
		l.TileReleased(t)
	}
}
