package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neofit/paycalc_backend/config"
	"github.com/neofit/paycalc_backend/models"
)

// SalesRepository is the storage collaborator for daily sales records. One
// document per calendar day, _id = YYYY-MM-DD, so lexicographic _id range
// filters are date range filters. Writes are single-document upserts with
// last-writer-wins semantics; callers re-fetch before mutating.
type SalesRepository struct {
	collection *mongo.Collection
}

// NewSalesRepository creates a sales repository over the given client.
func NewSalesRepository(client *mongo.Client) *SalesRepository {
	return &SalesRepository{
		collection: config.GetCollection(client, "sales"),
	}
}

// FetchRange returns a snapshot of all records with startKey <= date <=
// endKey, keyed by date. Dates without a document are simply absent; the
// engine treats them as empty records.
func (r *SalesRepository) FetchRange(ctx context.Context, startKey, endKey string) (map[string]models.DailyRecord, error) {
	filter := bson.M{"_id": bson.M{"$gte": startKey, "$lte": endKey}}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("fetching sales range %s..%s: %w", startKey, endKey, err)
	}
	defer cursor.Close(ctx)

	records := make(map[string]models.DailyRecord)
	for cursor.Next(ctx) {
		var record models.DailyRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("decoding sales record: %w", err)
		}
		records[record.Date] = record
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales range: %w", err)
	}
	return records, nil
}

// Get returns the record for one date. A missing document is not an error:
// it returns the implicit empty record for that date.
func (r *SalesRepository) Get(ctx context.Context, dateKey string) (models.DailyRecord, error) {
	var record models.DailyRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": dateKey}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return models.EmptyDailyRecord(dateKey), nil
	}
	if err != nil {
		return models.DailyRecord{}, fmt.Errorf("fetching sales record %s: %w", dateKey, err)
	}
	return record, nil
}

// Save upserts a record under its date key and invalidates the cached
// monthly report for that month.
func (r *SalesRepository) Save(ctx context.Context, record models.DailyRecord) error {
	now := time.Now()
	record.ModifiedAt = &now

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": record.Date}, record, opts); err != nil {
		return fmt.Errorf("saving sales record %s: %w", record.Date, err)
	}

	r.invalidateMonthCache(ctx, record.Date)
	return nil
}

// MonthCacheKey is the Redis key holding a month's cached report.
func MonthCacheKey(year, month int) string {
	return fmt.Sprintf("report:month:%04d-%02d", year, month)
}

// invalidateMonthCache drops the cached report for the month a date key
// belongs to. Cache misses are cheap; stale reports are not.
func (r *SalesRepository) invalidateMonthCache(ctx context.Context, dateKey string) {
	redisClient := config.GetRedisClient()
	if redisClient == nil || len(dateKey) < 7 {
		return
	}
	if err := redisClient.Del(ctx, "report:month:"+dateKey[:7]).Err(); err != nil {
		config.GetLogger().Warnf("Failed to invalidate report cache for %s: %v", dateKey[:7], err)
	}
}

// Watch streams every insert/replace/update of a sales record to fn, the
// push-based variant of FetchRange. Requires a replica set; on deployments
// without change streams it logs a warning and returns, leaving clients on
// one-shot fetches.
func (r *SalesRepository) Watch(ctx context.Context, fn func(models.DailyRecord)) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "replace", "update"}},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.collection.Watch(ctx, pipeline, opts)
	if err != nil {
		config.GetLogger().Warnf("Change streams unavailable, realtime mirroring disabled: %v", err)
		return
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var event struct {
			FullDocument models.DailyRecord `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			config.GetLogger().Warnf("Failed to decode change stream event: %v", err)
			continue
		}
		if event.FullDocument.Date != "" {
			fn(event.FullDocument)
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		config.GetLogger().Warnf("Sales change stream closed: %v", err)
	}
}
