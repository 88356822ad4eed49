package db

import (
	"context"
	"fmt"

	rating_out "github.com/sportlink/sportlink-api/pkg/domain/rating/ports/out"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTransactionManager runs closures inside a MongoDB multi-document
// transaction. Repository calls made with the session context join it, and
// any error aborts the whole transaction.
type MongoTransactionManager struct {
	client *mongo.Client
}

func NewMongoTransactionManager(client *mongo.Client) rating_out.TransactionManager {
	return &MongoTransactionManager{client: client}
}

func (m *MongoTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

var _ rating_out.TransactionManager = (*MongoTransactionManager)(nil)
