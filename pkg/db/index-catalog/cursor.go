package indexcatalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/case-framework/mongo-index-dump/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexCursor is a lazy, forward-only sequence of index definition documents.
// Current is valid until the next call to Next.
type IndexCursor interface {
	Next(ctx context.Context) bool
	Current() bson.Raw
	Err() error
	Close(ctx context.Context) error
}

type systemIndexesCursor struct {
	cursor *mongo.Cursor
}

func (c *systemIndexesCursor) Next(ctx context.Context) bool {
	return c.cursor.Next(ctx)
}

func (c *systemIndexesCursor) Current() bson.Raw {
	return c.cursor.Current
}

func (c *systemIndexesCursor) Err() error {
	return c.cursor.Err()
}

func (c *systemIndexesCursor) Close(ctx context.Context) error {
	return c.cursor.Close(ctx)
}

// listIndexesCursor chains one listIndexes cursor per collection.
type listIndexesCursor struct {
	database          *mongo.Database
	collections       []string
	listOpts          *options.ListIndexesOptions
	annotateNamespace bool

	pos       int
	active    *mongo.Cursor
	namespace string
	current   bson.Raw
	err       error
}

func (c *listIndexesCursor) Next(ctx context.Context) bool {
	c.current = nil
	for c.err == nil {
		if c.active != nil {
			if c.active.Next(ctx) {
				c.current = c.active.Current
				if c.annotateNamespace {
					doc, err := withNamespace(c.current, c.namespace)
					if err != nil {
						c.err = fmt.Errorf("annotate index of %s: %w", c.namespace, err)
						return false
					}
					c.current = doc
				}
				return true
			}
			if err := c.active.Err(); err != nil {
				c.err = fmt.Errorf("list indexes of %s: %w", c.namespace, err)
				return false
			}
			if err := c.closeActive(ctx); err != nil {
				c.err = err
				return false
			}
		}

		if c.pos >= len(c.collections) {
			return false
		}
		name := c.collections[c.pos]
		c.pos++

		cursor, err := db.OpenCollectionIndexCursor(ctx, c.database.Collection(name), c.listOpts)
		if err != nil {
			c.err = fmt.Errorf("list indexes of %s.%s: %w", c.database.Name(), name, err)
			return false
		}
		if cursor == nil {
			slog.Debug("Collection vanished before listing its indexes", slog.String("db", c.database.Name()), slog.String("collection", name))
			continue
		}
		c.active = cursor
		c.namespace = c.database.Name() + "." + name
	}
	return false
}

func (c *listIndexesCursor) Current() bson.Raw {
	return c.current
}

func (c *listIndexesCursor) Err() error {
	return c.err
}

func (c *listIndexesCursor) Close(ctx context.Context) error {
	return c.closeActive(ctx)
}

func (c *listIndexesCursor) closeActive(ctx context.Context) error {
	if c.active == nil {
		return nil
	}
	err := c.active.Close(ctx)
	c.active = nil
	return err
}
