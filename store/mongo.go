package store

import (
	"context"
	"fmt"
	"time"

	"debatematch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of MongoDB collections.
type MongoStore struct {
	users   *mongo.Collection
	matches *mongo.Collection
	debates *mongo.Collection
	votes   *mongo.Collection
	eloLog  *mongo.Collection
	xpLog   *mongo.Collection
}

// NewMongoStore wires the store to its collections and ensures the indexes
// the engines rely on (unique votes per voter, unique match per pair).
func NewMongoStore(ctx context.Context, database *mongo.Database) (*MongoStore, error) {
	s := &MongoStore{
		users:   database.Collection("users"),
		matches: database.Collection("user_matches"),
		debates: database.Collection("debates"),
		votes:   database.Collection("votes"),
		eloLog:  database.Collection("elo_log"),
		xpLog:   database.Collection("xp_log"),
	}

	_, err := s.votes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "debateId", Value: 1}, {Key: "voterId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vote index: %w", err)
	}

	_, err = s.matches.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "pairKey", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create match index: %w", err)
	}

	return s, nil
}

func (s *MongoStore) CreateProfile(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := s.users.InsertOne(ctx, user)
	return err
}

func (s *MongoStore) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) UpdateProfileStats(ctx context.Context, id primitive.ObjectID, stats ProfileStats) error {
	update := bson.M{
		"$set": bson.M{
			"eloRating":    stats.EloRating,
			"xpPoints":     stats.XPPoints,
			"totalDebates": stats.TotalDebates,
			"wins":         stats.Wins,
			"losses":       stats.Losses,
			"currentRank":  stats.CurrentRank,
		},
	}
	res, err := s.users.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCandidates excludes the user and everyone already present in a match
// record with them, expressed as an explicit anti-join over user_matches.
func (s *MongoStore) ListCandidates(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.User, error) {
	cursor, err := s.matches.Find(ctx, bson.M{
		"$or": []bson.M{{"user1Id": userID}, {"user2Id": userID}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	seen := []primitive.ObjectID{userID}
	for cursor.Next(ctx) {
		var match models.UserMatch
		if err := cursor.Decode(&match); err != nil {
			return nil, err
		}
		if match.User1ID == userID {
			seen = append(seen, match.User2ID)
		} else {
			seen = append(seen, match.User1ID)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	findOpts := options.Find().SetLimit(int64(limit))
	userCursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$nin": seen}}, findOpts)
	if err != nil {
		return nil, err
	}
	defer userCursor.Close(ctx)

	var users []models.User
	if err := userCursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoStore) ListProfilesByRating(ctx context.Context, limit int) ([]models.User, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "eloRating", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.users.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoStore) GetOrCreateMatch(ctx context.Context, actor, target primitive.ObjectID) (*models.UserMatch, bool, error) {
	pairKey := models.PairKey(actor, target)
	now := time.Now()

	// Upsert keyed by the pair so two concurrent first swipes converge on a
	// single record. The actor of the first write lands in the user1 slot.
	filter := bson.M{"pairKey": pairKey}
	update := bson.M{
		"$setOnInsert": bson.M{
			"pairKey":   pairKey,
			"user1Id":   actor,
			"user2Id":   target,
			"isMatched": false,
			"createdAt": now,
			"updatedAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var existing models.UserMatch
	err := s.matches.FindOneAndUpdate(ctx, filter, update, opts).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		// Created by this call; read it back.
		var created models.UserMatch
		if err := s.matches.FindOne(ctx, filter).Decode(&created); err != nil {
			return nil, false, err
		}
		return &created, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func (s *MongoStore) UpdateMatch(ctx context.Context, match *models.UserMatch) error {
	match.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"user1SwipedRight": match.User1SwipedRight,
			"user2SwipedRight": match.User2SwipedRight,
			"isMatched":        match.IsMatched,
			"updatedAt":        match.UpdatedAt,
		},
	}
	res, err := s.matches.UpdateOne(ctx, bson.M{"pairKey": match.PairKey}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) InsertDebate(ctx context.Context, debate *models.Debate) error {
	if debate.ID.IsZero() {
		debate.ID = primitive.NewObjectID()
	}
	_, err := s.debates.InsertOne(ctx, debate)
	return err
}

func (s *MongoStore) GetDebate(ctx context.Context, id primitive.ObjectID) (*models.Debate, error) {
	var debate models.Debate
	err := s.debates.FindOne(ctx, bson.M{"_id": id}).Decode(&debate)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &debate, nil
}

func (s *MongoStore) UpdateDebate(ctx context.Context, debate *models.Debate) error {
	debate.UpdatedAt = time.Now()
	res, err := s.debates.ReplaceOne(ctx, bson.M{"_id": debate.ID}, debate)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListExpiredVotingDebates(ctx context.Context, now time.Time) ([]models.Debate, error) {
	cursor, err := s.debates.Find(ctx, bson.M{
		"status":        models.DebateStatusVoting,
		"votingEndTime": bson.M{"$lte": now},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var debates []models.Debate
	if err := cursor.All(ctx, &debates); err != nil {
		return nil, err
	}
	return debates, nil
}

func (s *MongoStore) AppendVote(ctx context.Context, vote *models.Vote) error {
	if vote.ID.IsZero() {
		vote.ID = primitive.NewObjectID()
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}
	_, err := s.votes.InsertOne(ctx, vote)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateVote
	}
	return err
}

func (s *MongoStore) TallyVotes(ctx context.Context, debateID primitive.ObjectID) (models.VoteTally, error) {
	var tally models.VoteTally

	count1, err := s.votes.CountDocuments(ctx, bson.M{"debateId": debateID, "voteFor": models.VoteForParticipant1})
	if err != nil {
		return tally, err
	}
	count2, err := s.votes.CountDocuments(ctx, bson.M{"debateId": debateID, "voteFor": models.VoteForParticipant2})
	if err != nil {
		return tally, err
	}

	tally.Participant1Count = int(count1)
	tally.Participant2Count = int(count2)
	return tally, nil
}

func (s *MongoStore) AppendEloLog(ctx context.Context, entry *models.EloLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := s.eloLog.InsertOne(ctx, entry)
	return err
}

func (s *MongoStore) AppendXPLog(ctx context.Context, entry *models.XPLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := s.xpLog.InsertOne(ctx, entry)
	return err
}
