// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the optional data-store client. MongoClient is nil when
// mongo_uri is blank.
type DBDeps struct {
	MongoClient *mongo.Client
}
