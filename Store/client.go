package Store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Document is one remote document: its store-generated id plus its fields.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// DocClient is the raw document-store surface the gateway drives. The
// production implementation wraps Firestore; tests swap in an in-memory one.
type DocClient interface {
	// StreamAll returns every document of a collection.
	StreamAll(ctx context.Context, collection string) ([]Document, error)
	// DeleteAll removes every document of a collection in one atomic batch.
	DeleteAll(ctx context.Context, collection string) error
	// InsertAll creates one fresh-id document per row in one atomic batch.
	InsertAll(ctx context.Context, collection string, rows []map[string]interface{}) error
	// DeleteOne removes a single document.
	DeleteOne(ctx context.Context, collection, docID string) error
	// AddOne creates a single document and returns its generated id.
	AddOne(ctx context.Context, collection string, fields map[string]interface{}) (string, error)
	// UpdateOne merges fields into an existing document.
	UpdateOne(ctx context.Context, collection, docID string, fields map[string]interface{}) error
}

// FirestoreClient implements DocClient on Cloud Firestore.
type FirestoreClient struct {
	client *firestore.Client
}

// Connect initializes the Firebase app from the FIREBASE_CONFIG service
// account JSON and opens a Firestore client. The private key arrives with
// escaped line breaks that must be unescaped before the credential is usable.
func Connect(ctx context.Context) (*FirestoreClient, error) {
	raw := os.Getenv("FIREBASE_CONFIG")
	if raw == "" {
		return nil, fmt.Errorf("FIREBASE_CONFIG not set")
	}
	credentials, err := normalizeCredentials([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("error parsing FIREBASE_CONFIG: %v", err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %v", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %v", err)
	}
	log.Println("Firestore connected")
	return &FirestoreClient{client: client}, nil
}

// normalizeCredentials unescapes the private-key line breaks inside the
// service account JSON.
func normalizeCredentials(raw []byte) ([]byte, error) {
	var account map[string]interface{}
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, err
	}
	if key, ok := account["private_key"].(string); ok {
		account["private_key"] = strings.ReplaceAll(key, `\n`, "\n")
	}
	return json.Marshal(account)
}

// Close releases the underlying Firestore client.
func (f *FirestoreClient) Close() error {
	return f.client.Close()
}

func (f *FirestoreClient) StreamAll(ctx context.Context, collection string) ([]Document, error) {
	var docs []Document
	it := f.client.Collection(collection).Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error streaming %s: %v", collection, err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}
	return docs, nil
}

func (f *FirestoreClient) DeleteAll(ctx context.Context, collection string) error {
	it := f.client.Collection(collection).Documents(ctx)
	defer it.Stop()
	batch := f.client.Batch()
	count := 0
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("error listing %s for delete: %v", collection, err)
		}
		batch.Delete(snap.Ref)
		count++
	}
	if count == 0 {
		return nil
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("error committing delete batch for %s: %v", collection, err)
	}
	return nil
}

func (f *FirestoreClient) InsertAll(ctx context.Context, collection string, rows []map[string]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	col := f.client.Collection(collection)
	batch := f.client.Batch()
	for _, row := range rows {
		batch.Set(col.NewDoc(), row)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("error committing insert batch for %s: %v", collection, err)
	}
	return nil
}

func (f *FirestoreClient) DeleteOne(ctx context.Context, collection, docID string) error {
	_, err := f.client.Collection(collection).Doc(docID).Delete(ctx)
	return err
}

func (f *FirestoreClient) AddOne(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	ref, _, err := f.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (f *FirestoreClient) UpdateOne(ctx context.Context, collection, docID string, fields map[string]interface{}) error {
	_, err := f.client.Collection(collection).Doc(docID).Set(ctx, fields, firestore.MergeAll)
	return err
}
