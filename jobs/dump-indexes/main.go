package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/case-framework/mongo-index-dump/pkg/db"
	indexcatalog "github.com/case-framework/mongo-index-dump/pkg/db/index-catalog"
	indexdefinitions "github.com/case-framework/mongo-index-dump/pkg/exporter/index-definitions"
	"github.com/case-framework/mongo-index-dump/pkg/utils"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("Dump indexes job failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	slog.Info("Starting dump indexes job", slog.String("db", conf.Dump.DatabaseName), slog.String("source", string(conf.Dump.Source)))
	start := time.Now()

	indexCatalogDBService, err := indexcatalog.NewIndexCatalogDBService(db.DBConfigFromYamlObj(conf.DBConfigs.TargetDB))
	if err != nil {
		slog.Error("Error connecting to target DB", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := indexCatalogDBService.Close(context.Background()); err != nil {
			slog.Error("Error closing DB connection", slog.String("error", err.Error()))
		}
	}()

	count, err := dumpIndexes(ctx, indexCatalogDBService)
	if err != nil {
		return err
	}

	slog.Info("Dump indexes job completed", slog.Int("indexes", count), slog.String("duration", time.Since(start).String()))
	return nil
}

func dumpIndexes(ctx context.Context, indexCatalogDBService *indexcatalog.IndexCatalogDBService) (int, error) {
	cursor, err := indexCatalogDBService.OpenIndexCursor(ctx, conf.Dump.DatabaseName, indexcatalog.CursorOptions{
		Source:             conf.Dump.Source,
		ExcludeCollections: conf.Dump.ExcludeCollections,
		AnnotateNamespace:  conf.Dump.AnnotateNamespace,
		MaxTime:            queryMaxTime,
	})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := cursor.Close(context.Background()); err != nil {
			slog.Error("Error closing index cursor", slog.String("error", err.Error()))
		}
	}()

	out, err := utils.OpenOutputTarget(conf.Dump.Output.FilePath, os.Stdout)
	if err != nil {
		return 0, err
	}

	count, err := indexdefinitions.DumpIndexes(ctx, cursor, out.Writer(), indexdefinitions.ExportOptions{
		Mode:   conf.Dump.Output.ExtJSONMode,
		Pretty: conf.Dump.Output.Pretty,
	})
	if err != nil {
		out.Discard()
		return count, err
	}

	if err := out.Commit(); err != nil {
		out.Discard()
		return count, err
	}
	if !out.IsConsole() {
		slog.Info("Index definitions written", slog.String("path", conf.Dump.Output.FilePath))
	}
	return count, nil
}
