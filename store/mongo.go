package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gymlink/models"
)

// Mongo backs the store with a MongoDB collection, one document per
// conversation id. Writes notify in-process subscribers on success.
type Mongo struct {
	notifier
	coll *mongo.Collection
}

func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

func (s *Mongo) Get(ctx context.Context, id string) (*models.ConversationDoc, error) {
	var doc models.ConversationDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Mongo) Set(ctx context.Context, id string, doc *models.ConversationDoc) error {
	doc.ID = id
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	s.notify(id)
	return nil
}

func (s *Mongo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	s.notify(id)
	return nil
}

func (s *Mongo) AppendToArray(ctx context.Context, id, field string, value interface{}) error {
	update := bson.M{
		"$push":        bson.M{field: value},
		"$setOnInsert": bson.M{"createdAt": time.Now().Unix()},
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	s.notify(id)
	return nil
}

func (s *Mongo) RemoveFromArray(ctx context.Context, id, field string, match string) error {
	var pull interface{} = bson.M{"id": match}
	if field == FieldParticipants {
		pull = match
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{field: pull}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	s.notify(id)
	return nil
}

func (s *Mongo) List(ctx context.Context) ([]models.ConversationDoc, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.ConversationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
