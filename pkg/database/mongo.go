package database

import (
	"context"
	"regexp"

	"github.com/libooktrac/libooktrac/pkg/config"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoDialer returns a Dialer that opens a client against the configured
// deployment. Each bootstrap attempt gets a fresh client so a half-dead pool
// from a failed attempt is never reused.
func MongoDialer(cfg *config.Config) Dialer {
	return func(ctx context.Context) (Conn, error) {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.DatabaseURI()).
				SetConnectTimeout(cfg.DatabaseConnectRetryDelay),
		)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return &mongoConn{
			client: client,
			db:     client.Database(cfg.DatabaseName),
		}, nil
	}
}

type mongoConn struct {
	client *mongo.Client
	db     *mongo.Database
}

func (c *mongoConn) Ping(ctx context.Context) error {
	return errors.WithStack(c.client.Ping(ctx, nil))
}

func (c *mongoConn) CollectionExists(ctx context.Context, name string) (bool, error) {
	names, err := c.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return false, errors.WithStack(err)
	}
	return len(names) > 0, nil
}

func (c *mongoConn) CreateCollection(ctx context.Context, name string) error {
	return errors.WithStack(c.db.CreateCollection(ctx, name))
}

func (c *mongoConn) Store() Store {
	return &mongoStore{db: c.db}
}

func (c *mongoConn) Close(ctx context.Context) error {
	return errors.WithStack(c.client.Disconnect(ctx))
}

type mongoStore struct {
	db *mongo.Database
}

func (s *mongoStore) Find(ctx context.Context, collection string, q Query, out any) error {
	opts := options.Find()
	if q.Sort != "" {
		opts = opts.SetSort(bson.D{{Key: q.Sort, Value: 1}})
	}
	if q.Limit > 0 {
		opts = opts.SetLimit(int64(q.Limit))
	}
	if q.Offset > 0 {
		opts = opts.SetSkip(int64(q.Offset))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, buildFilter(q), opts)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(cursor.All(ctx, out))
}

func (s *mongoStore) FindOne(ctx context.Context, collection string, q Query, out any) (bool, error) {
	err := s.db.Collection(collection).FindOne(ctx, buildFilter(q)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, errors.WithStack(err)
	}
	return true, nil
}

func (s *mongoStore) Insert(ctx context.Context, collection string, record any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if id, ok := res.InsertedID.(string); ok {
		return id, nil
	}
	return "", nil
}

func (s *mongoStore) Update(ctx context.Context, collection string, id string, fields any) (bool, error) {
	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: fields}},
	)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return res.MatchedCount > 0, nil
}

func (s *mongoStore) Delete(ctx context.Context, collection string, id string) (bool, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, errors.WithStack(err)
	}
	return res.DeletedCount > 0, nil
}

func buildFilter(q Query) bson.D {
	filter := bson.D{}
	for field, value := range q.Exact {
		filter = append(filter, bson.E{Key: field, Value: value})
	}
	for field, value := range q.Substring {
		filter = append(filter, bson.E{Key: field, Value: bson.Regex{
			Pattern: regexp.QuoteMeta(value),
			Options: "i",
		}})
	}
	for field, value := range q.Prefix {
		filter = append(filter, bson.E{Key: field, Value: bson.Regex{
			Pattern: "^" + regexp.QuoteMeta(value),
			Options: "i",
		}})
	}
	return filter
}
