package replaystore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gorbit/orbitalrush/internal/replay"
)

// MongoStore persists keyframes and frames as BSON documents, one
// keyframe document per room and one document per frame, for deployments
// that want replay history to survive the server process and be queryable
// across rooms (e.g. an admin tool listing every room a given player was
// in).
type MongoStore struct {
	client         *mongo.Client
	keyframes      *mongo.Collection
	frames         *mongo.Collection
}

type keyframeDoc struct {
	RoomId    string      `bson:"room_id"`
	Tick      int64       `bson:"tick"`
	Canonical interface{} `bson:"canonical"`
}

type frameDoc struct {
	RoomId string           `bson:"room_id"`
	Tick   int64            `bson:"tick"`
	Ops    []replay.PatchOp `bson:"ops"`
}

// NewMongoStore connects to uri and prepares the collections/indexes
// replay lookups need.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("replaystore: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("replaystore: ping mongo: %w", err)
	}

	db := client.Database(database)
	keyframes := db.Collection("replay_keyframes")
	frames := db.Collection("replay_frames")

	if _, err := keyframes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "room_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return nil, fmt.Errorf("replaystore: create keyframe index: %w", err)
	}
	if _, err := frames.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "tick", Value: 1}},
	}); err != nil {
		return nil, fmt.Errorf("replaystore: create frame index: %w", err)
	}

	return &MongoStore{client: client, keyframes: keyframes, frames: frames}, nil
}

func (m *MongoStore) SaveKeyframe(ctx context.Context, roomId string, tick int64, canonical interface{}) error {
	_, err := m.keyframes.ReplaceOne(ctx,
		bson.D{{Key: "room_id", Value: roomId}},
		keyframeDoc{RoomId: roomId, Tick: tick, Canonical: canonical},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replaystore: save keyframe for room %s: %w", roomId, err)
	}
	if _, err := m.frames.DeleteMany(ctx, bson.D{{Key: "room_id", Value: roomId}}); err != nil {
		return fmt.Errorf("replaystore: truncate frames for room %s: %w", roomId, err)
	}
	return nil
}

func (m *MongoStore) AppendFrame(ctx context.Context, roomId string, frame replay.Frame) error {
	_, err := m.frames.InsertOne(ctx, frameDoc{RoomId: roomId, Tick: frame.Tick, Ops: frame.Ops})
	if err != nil {
		return fmt.Errorf("replaystore: append frame for room %s: %w", roomId, err)
	}
	return nil
}

func (m *MongoStore) LoadKeyframe(ctx context.Context, roomId string) (interface{}, bool, error) {
	var doc keyframeDoc
	err := m.keyframes.FindOne(ctx, bson.D{{Key: "room_id", Value: roomId}}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("replaystore: load keyframe for room %s: %w", roomId, err)
	}
	return doc.Canonical, true, nil
}

func (m *MongoStore) LoadFrames(ctx context.Context, roomId string, fromTick int64) ([]replay.Frame, error) {
	cursor, err := m.frames.Find(ctx,
		bson.D{{Key: "room_id", Value: roomId}, {Key: "tick", Value: bson.D{{Key: "$gte", Value: fromTick}}}},
		options.Find().SetSort(bson.D{{Key: "tick", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("replaystore: load frames for room %s: %w", roomId, err)
	}
	defer cursor.Close(ctx)

	var frames []replay.Frame
	for cursor.Next(ctx) {
		var doc frameDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("replaystore: decode frame for room %s: %w", roomId, err)
		}
		frames = append(frames, replay.Frame{Tick: doc.Tick, Ops: doc.Ops})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("replaystore: iterate frames for room %s: %w", roomId, err)
	}
	return frames, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
