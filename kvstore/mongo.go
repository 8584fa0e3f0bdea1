package kvstore

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// kvDocument is how Mongo stores one key. The JSON payload rides in value
// verbatim so the adapter contract stays identical across backends.
type kvDocument struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

// Mongo keeps one document per key in a single collection.
type Mongo struct {
	coll *mongo.Collection
}

// NewMongo connects using MONGODB_URI.
func NewMongo(ctx context.Context) (*Mongo, error) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return &Mongo{coll: client.Database("wayfare").Collection("kv")}, nil
}

func (m *Mongo) Get(ctx context.Context, key string, out any) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc kvDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("kvstore: mongo get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(doc.Value), out); err != nil {
		log.Printf("kvstore: mongo get %s: corrupt payload: %v", key, err)
		return false
	}
	return true
}

func (m *Mongo) Set(ctx context.Context, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("kvstore: mongo set %s: %v", key, err)
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"value": string(raw)}}
	opts := options.Update().SetUpsert(true)
	if _, err := m.coll.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		log.Printf("kvstore: mongo set %s: %v", key, err)
		return false
	}
	return true
}
