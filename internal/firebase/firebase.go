// Package firebase builds the Firebase Admin app shared by the Firestore
// store and the ID token verifier.
package firebase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	fb "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"coaching-backend/internal/config"
)

// NewApp initializes the Admin SDK. Credentials come from a file path, a
// base64 encoded service account, or Application Default Credentials, in
// that order.
func NewApp(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*fb.App, error) {
	if appConfig == nil {
		return nil, errors.New("firebase.NewApp: appConfig cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var opts []option.ClientOption
	switch {
	case appConfig.GoogleApplicationCredentials != "":
		logger.Info("Initializing Firebase with credentials file", zap.String("path", appConfig.GoogleApplicationCredentials))
		if _, err := os.Stat(appConfig.GoogleApplicationCredentials); os.IsNotExist(err) {
			logger.Warn("Credentials file does not exist; falling back to ADC resolution inside the SDK",
				zap.String("path", appConfig.GoogleApplicationCredentials))
		}
		opts = append(opts, option.WithCredentialsFile(appConfig.GoogleApplicationCredentials))
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		logger.Info("Initializing Firebase with base64 encoded service account JSON")
		jsonKey, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, errors.New("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is not a valid base64 string")
		}
		opts = append(opts, option.WithCredentialsJSON(jsonKey))
	default:
		logger.Info("Initializing Firebase using Application Default Credentials")
	}

	var conf *fb.Config
	if appConfig.FirebaseProjectID != "" {
		conf = &fb.Config{ProjectID: appConfig.FirebaseProjectID}
	}

	app, err := fb.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	return app, nil
}
