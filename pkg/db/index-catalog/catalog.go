package indexcatalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/case-framework/mongo-index-dump/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CatalogSource string

const (
	CatalogSourceListIndexes   CatalogSource = "list_indexes"
	CatalogSourceSystemIndexes CatalogSource = "system_indexes"
)

func (source CatalogSource) IsValid() bool {
	switch source {
	case CatalogSourceListIndexes, CatalogSourceSystemIndexes:
		return true
	default:
		return false
	}
}

type CursorOptions struct {
	Source             CatalogSource
	ExcludeCollections []string
	AnnotateNamespace  bool
	// MaxTime is sent as maxTimeMS on each catalog query, zero means no limit
	MaxTime time.Duration
}

// OpenIndexCursor opens a forward-only cursor over every index definition of
// the database. The caller owns the cursor and must Close it.
func (dbService *IndexCatalogDBService) OpenIndexCursor(ctx context.Context, dbName string, opts CursorOptions) (IndexCursor, error) {
	switch opts.Source {
	case CatalogSourceSystemIndexes:
		return dbService.openSystemIndexesCursor(ctx, dbName, opts)
	case CatalogSourceListIndexes, "":
		return dbService.openListIndexesCursor(ctx, dbName, opts)
	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", opts.Source)
	}
}

func (dbService *IndexCatalogDBService) openSystemIndexesCursor(ctx context.Context, dbName string, opts CursorOptions) (IndexCursor, error) {
	findOpts := options.Find().SetNoCursorTimeout(dbService.noCursorTimeout)
	if opts.MaxTime > 0 {
		findOpts.SetMaxTime(opts.MaxTime)
	}

	cursor, err := dbService.collectionSystemIndexes(dbName).Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find on %s.%s: %w", dbService.getDBName(dbName), COLLECTION_NAME_SYSTEM_INDEXES, err)
	}
	return &systemIndexesCursor{cursor: cursor}, nil
}

func (dbService *IndexCatalogDBService) openListIndexesCursor(ctx context.Context, dbName string, opts CursorOptions) (IndexCursor, error) {
	database := dbService.database(dbName)

	// views have no indexes and listIndexes fails on them
	filter := bson.D{{Key: "type", Value: bson.D{{Key: "$ne", Value: "view"}}}}
	names, err := database.ListCollectionNames(ctx, filter, options.ListCollections().SetAuthorizedCollections(true))
	if err != nil {
		return nil, fmt.Errorf("list collections of %s: %w", database.Name(), err)
	}

	excluded := utils.NewStringSet(opts.ExcludeCollections)
	collections := make([]string, 0, len(names))
	for _, name := range names {
		if excluded.Has(name) {
			slog.Debug("Skipping excluded collection", slog.String("collection", name))
			continue
		}
		collections = append(collections, name)
	}

	listOpts := options.ListIndexes()
	if opts.MaxTime > 0 {
		listOpts.SetMaxTime(opts.MaxTime)
	}

	slog.Debug("Listing indexes", slog.String("db", database.Name()), slog.Int("collections", len(collections)))
	return &listIndexesCursor{
		database:          database,
		collections:       collections,
		listOpts:          listOpts,
		annotateNamespace: opts.AnnotateNamespace,
	}, nil
}
