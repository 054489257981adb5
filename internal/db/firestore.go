package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"coaching-backend/internal/config"
	"coaching-backend/internal/firebase"
)

var (
	// fsClient is the global Firestore client instance.
	fsClient *firestore.Client
	// fbAuthClient is the global Firebase Auth client instance.
	fbAuthClient *auth.Client
)

// InitFirestore initializes the Firebase Admin SDK and sets up the global
// Firestore and Auth clients.
//
// Credentials are resolved by firebase.NewApp: a service account file, then
// base64 encoded JSON, then Application Default Credentials. When the Auth
// client cannot be created the Firestore client is closed again. Call
// CloseFirestore on shutdown.
func InitFirestore(ctx context.Context, appConfig *config.Config, logger *zap.Logger) error {
	if appConfig == nil {
		return fmt.Errorf("InitFirestore: appConfig cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Build the Firebase App shared by both clients.
	app, err := firebase.NewApp(ctx, appConfig, logger)
	if err != nil {
		return err
	}

	// Firestore client used by FirestoreStore.
	client, err := app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("app.Firestore: %w", err)
	}
	fsClient = client

	// Auth client used for ID token verification and user management.
	authCl, err := app.Auth(ctx)
	if err != nil {
		_ = fsClient.Close()
		return fmt.Errorf("app.Auth: %w", err)
	}
	fbAuthClient = authCl

	logger.Info("Firebase Admin SDK initialized", zap.String("projectID", appConfig.FirebaseProjectID))
	return nil
}

// GetFirestoreClient returns the global Firestore client, or nil before InitFirestore.
func GetFirestoreClient() *firestore.Client {
	return fsClient
}

// GetFirebaseAuthClient returns the global Firebase Auth client, or nil before InitFirestore.
func GetFirebaseAuthClient() *auth.Client {
	return fbAuthClient
}

// CloseFirestore closes the global Firestore client if it was opened. It is
// safe to call when InitFirestore never ran or failed.
func CloseFirestore() error {
	if fsClient == nil {
		return nil
	}
	return fsClient.Close()
}
