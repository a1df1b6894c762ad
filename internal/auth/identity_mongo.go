package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type identityDoc struct {
	Email        string    `bson:"_id"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// MongoIdentityProvider stores credentials in the `identities` collection.
// Secrets are bcrypt-hashed; only the profile keeps the plaintext access
// code for super-admin display.
type MongoIdentityProvider struct {
	coll *mongo.Collection
}

func NewMongoIdentityProvider(db *mongo.Database) *MongoIdentityProvider {
	return &MongoIdentityProvider{coll: db.Collection("identities")}
}

func (p *MongoIdentityProvider) Create(ctx context.Context, email, secret string) error {
	err := p.coll.FindOne(ctx, bson.M{"_id": email}).Err()
	if err == nil {
		return ErrEmailInUse
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = p.coll.InsertOne(ctx, identityDoc{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailInUse
	}
	return err
}

func (p *MongoIdentityProvider) SignIn(ctx context.Context, email, secret string) error {
	var doc identityDoc
	err := p.coll.FindOne(ctx, bson.M{"_id": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(secret)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (p *MongoIdentityProvider) SignOut(ctx context.Context, email string) error {
	// Sessions are stateless bearer tokens; sign-out is a no-op at the
	// provider and enforced by the profile check on every request.
	return nil
}
