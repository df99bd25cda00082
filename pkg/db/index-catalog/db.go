package indexcatalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/case-framework/mongo-index-dump/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_SYSTEM_INDEXES = "system.indexes"
)

type IndexCatalogDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
}

func NewIndexCatalogDBService(configs db.DBConfig) (*IndexCatalogDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer conCancel()

	if err = dbClient.Ping(ctx, nil); err != nil {
		if dErr := dbClient.Disconnect(context.Background()); dErr != nil {
			slog.Error("Error closing DB connection after failed ping", slog.String("error", dErr.Error()))
		}
		return nil, err
	}

	return &IndexCatalogDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
	}, nil
}

func (dbService *IndexCatalogDBService) Close(ctx context.Context) error {
	return dbService.DBClient.Disconnect(ctx)
}

func (dbService *IndexCatalogDBService) getDBName(dbName string) string {
	return dbService.DBNamePrefix + dbName
}

func (dbService *IndexCatalogDBService) database(dbName string) *mongo.Database {
	return dbService.DBClient.Database(dbService.getDBName(dbName))
}

func (dbService *IndexCatalogDBService) collectionSystemIndexes(dbName string) *mongo.Collection {
	return dbService.database(dbName).Collection(COLLECTION_NAME_SYSTEM_INDEXES)
}
