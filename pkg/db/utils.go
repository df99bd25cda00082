package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const errCodeNamespaceNotFound = 26

// IsNamespaceNotFound reports whether err is the server's NamespaceNotFound
// command error, returned e.g. for listIndexes on a dropped collection.
func IsNamespaceNotFound(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == errCodeNamespaceNotFound
}

// OpenCollectionIndexCursor runs listIndexes on the collection. A missing
// collection yields a nil cursor and no error.
func OpenCollectionIndexCursor(ctx context.Context, collection *mongo.Collection, opts ...*options.ListIndexesOptions) (*mongo.Cursor, error) {
	cursor, err := collection.Indexes().List(ctx, opts...)
	if err != nil {
		if IsNamespaceNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return cursor, nil
}
