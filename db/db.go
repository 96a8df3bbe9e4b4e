package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	AccountCollection       *mongo.Collection
	UserCollection          *mongo.Collection
	PrincipalLinkCollection *mongo.Collection
	WorkerCollection        *mongo.Collection
	BusinessCollection      *mongo.Collection
	ShiftCollection         *mongo.Collection
	ApplicationCollection   *mongo.Collection
	WorkHistoryCollection   *mongo.Collection
	RatingCollection        *mongo.Collection
	DIDCollection           *mongo.Collection
	NotificationCollection  *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ClientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	AccountCollection = Client.Database("flexwagedb").Collection("accounts")
	UserCollection = Client.Database("flexwagedb").Collection("users")
	PrincipalLinkCollection = Client.Database("flexwagedb").Collection("principal_links")
	WorkerCollection = Client.Database("flexwagedb").Collection("workers")
	BusinessCollection = Client.Database("flexwagedb").Collection("businesses")
	ShiftCollection = Client.Database("flexwagedb").Collection("shifts")
	ApplicationCollection = Client.Database("flexwagedb").Collection("applications")
	WorkHistoryCollection = Client.Database("flexwagedb").Collection("workhistory")
	RatingCollection = Client.Database("flexwagedb").Collection("ratings")
	DIDCollection = Client.Database("flexwagedb").Collection("creds")
	NotificationCollection = Client.Database("flexwagedb").Collection("notifications")
}
