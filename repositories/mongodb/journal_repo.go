package mongodb

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	models "cash-kiosk/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// JournalRepository keeps every finalized transaction, synced or not, so
// unsynced records can be found and reconciled later.
type JournalRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewJournalRepository(client *mongo.Client, database string) *JournalRepository {
	return &JournalRepository{client: client, database: database, collection: "transactions"}
}

// InsertTransaction journals a finalized transaction
func (r *JournalRepository) InsertTransaction(ctx context.Context, tx models.FinalizedTransaction) error {
	collection := r.client.Database(r.database).Collection(r.collection)
	_, err := collection.InsertOne(ctx, tx.Transform())
	if err != nil {
		return err
	}
	return nil
}

// MarkSynced records a later successful submission of the transaction with id
func (r *JournalRepository) MarkSynced(ctx context.Context, id string, outcome models.Outcome) error {
	collection := r.client.Database(r.database).Collection(r.collection)
	update := bson.M{
		"$set": bson.M{
			"status":    string(outcome.Status),
			"synced":    true,
			"synced_at": time.Now().UTC(),
		},
		"$unset": bson.M{"reason": ""},
	}
	_, err := collection.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	return nil
}
