// Package wire provides dependency injection for the bestiary application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/bestiary/internal/adapters/cli"
	"github.com/example/bestiary/internal/adapters/filesystem"
	"github.com/example/bestiary/internal/adapters/sqlite"
	"github.com/example/bestiary/internal/app"
	"github.com/example/bestiary/internal/config"
	"github.com/example/bestiary/internal/core/query"
	"github.com/example/bestiary/internal/db"
	"github.com/example/bestiary/internal/logging"
	"github.com/example/bestiary/internal/ports/primary"
)

// Options controls how the services are built. Set it before the first
// service accessor runs.
type Options struct {
	Dir     string // workspace root; empty means the working directory
	Verbose bool
}

var (
	opts Options

	database         *sql.DB
	logger           *zap.Logger
	queryService     primary.QueryService
	recordService    primary.RecordService
	randomizeService primary.RandomizeService
	importService    primary.ImportService
	exportService    primary.ExportService
	plannerService   primary.BuildPlannerService
	historyService   primary.HistoryService
	initErr          error
	once             sync.Once
)

// Configure records options for the lazy initialization.
func Configure(o Options) {
	opts = o
}

// Err reports the initialization error, if any. Accessors return nil
// services when initialization failed.
func Err() error {
	once.Do(initServices)
	return initErr
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// QueryService returns the singleton QueryService instance.
func QueryService() primary.QueryService {
	once.Do(initServices)
	return queryService
}

// RecordService returns the singleton RecordService instance.
func RecordService() primary.RecordService {
	once.Do(initServices)
	return recordService
}

// RandomizeService returns the singleton RandomizeService instance.
func RandomizeService() primary.RandomizeService {
	once.Do(initServices)
	return randomizeService
}

// ImportService returns the singleton ImportService instance.
func ImportService() primary.ImportService {
	once.Do(initServices)
	return importService
}

// ExportService returns the singleton ExportService instance.
func ExportService() primary.ExportService {
	once.Do(initServices)
	return exportService
}

// BuildPlannerService returns the singleton BuildPlannerService instance.
func BuildPlannerService() primary.BuildPlannerService {
	once.Do(initServices)
	return plannerService
}

// HistoryService returns the singleton HistoryService instance.
func HistoryService() primary.HistoryService {
	once.Do(initServices)
	return historyService
}

// Close flushes the logger and closes the database.
func Close() {
	if logger != nil {
		_ = logger.Sync()
	}
	if database != nil {
		database.Close()
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			initErr = fmt.Errorf("failed to get working directory: %w", err)
			return
		}
		dir = wd
	}

	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		initErr = err
		return
	}

	logger, err = logging.New(cfg.LogLevel, opts.Verbose)
	if err != nil {
		initErr = err
		return
	}

	database, err = db.Open(cfg.DatabaseFile(dir))
	if err != nil {
		initErr = fmt.Errorf("failed to initialize database: %w", err)
		return
	}

	// Create repository adapters (secondary ports)
	store := sqlite.NewStore(database)
	historyRepo := sqlite.NewHistoryRepository(database)
	planStore := filesystem.NewPlanStore(config.PlanFile(dir))

	// Create services (primary ports implementation)
	queryService = app.NewQueryService(store, query.NewBuilder(), logger)
	recordService = app.NewRecordService(store, logger)
	randomizeService = app.NewRandomizeService(store, historyRepo, logger)
	importService = app.NewImportService(store, historyRepo, logger)
	exportService = app.NewExportService(store, logger)
	plannerService = app.NewBuildPlannerService(store, planStore, logger)
	historyService = app.NewHistoryService(historyRepo)

	logger.Debug("services initialized", zap.String("workspace", dir), zap.String("database", cfg.DatabaseFile(dir)))
}

// QueryAdapter returns a new QueryAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func QueryAdapter() *cliadapter.QueryAdapter {
	return QueryAdapterWithOutput(os.Stdout)
}

// QueryAdapterWithOutput returns a new QueryAdapter writing to the given output.
func QueryAdapterWithOutput(out io.Writer) *cliadapter.QueryAdapter {
	return cliadapter.NewQueryAdapter(QueryService(), out)
}

// RecordAdapter returns a new RecordAdapter writing to stdout.
func RecordAdapter() *cliadapter.RecordAdapter {
	return RecordAdapterWithOutput(os.Stdout)
}

// RecordAdapterWithOutput returns a new RecordAdapter writing to the given output.
func RecordAdapterWithOutput(out io.Writer) *cliadapter.RecordAdapter {
	return cliadapter.NewRecordAdapter(RecordService(), out)
}

// RandomizeAdapter returns a new RandomizeAdapter writing to stdout.
func RandomizeAdapter() *cliadapter.RandomizeAdapter {
	return RandomizeAdapterWithOutput(os.Stdout)
}

// RandomizeAdapterWithOutput returns a new RandomizeAdapter writing to the given output.
func RandomizeAdapterWithOutput(out io.Writer) *cliadapter.RandomizeAdapter {
	return cliadapter.NewRandomizeAdapter(RandomizeService(), out)
}

// ImportAdapter returns a new ImportAdapter writing to stdout.
func ImportAdapter() *cliadapter.ImportAdapter {
	return ImportAdapterWithOutput(os.Stdout)
}

// ImportAdapterWithOutput returns a new ImportAdapter writing to the given output.
func ImportAdapterWithOutput(out io.Writer) *cliadapter.ImportAdapter {
	return cliadapter.NewImportAdapter(ImportService(), out)
}

// ExportAdapter returns a new ExportAdapter writing to stdout.
func ExportAdapter() *cliadapter.ExportAdapter {
	return ExportAdapterWithOutput(os.Stdout)
}

// ExportAdapterWithOutput returns a new ExportAdapter writing to the given output.
func ExportAdapterWithOutput(out io.Writer) *cliadapter.ExportAdapter {
	return cliadapter.NewExportAdapter(ExportService(), QueryService(), out)
}

// PlanAdapter returns a new PlanAdapter writing to stdout.
func PlanAdapter() *cliadapter.PlanAdapter {
	return PlanAdapterWithOutput(os.Stdout)
}

// PlanAdapterWithOutput returns a new PlanAdapter writing to the given output.
func PlanAdapterWithOutput(out io.Writer) *cliadapter.PlanAdapter {
	return cliadapter.NewPlanAdapter(BuildPlannerService(), out)
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
func HistoryAdapter() *cliadapter.HistoryAdapter {
	return HistoryAdapterWithOutput(os.Stdout)
}

// HistoryAdapterWithOutput returns a new HistoryAdapter writing to the given output.
func HistoryAdapterWithOutput(out io.Writer) *cliadapter.HistoryAdapter {
	return cliadapter.NewHistoryAdapter(HistoryService(), out)
}
