package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"coaching-backend/internal/config"
)

// CORSMiddleware builds the gin-contrib/cors handler from the application
// configuration.
//
// CLIENT_URL holds a comma separated list of allowed origins. When it lists
// at least one origin, only those origins are accepted and credentials are
// allowed. An empty CLIENT_URL accepts any origin without credentials; the
// native mobile client sends no Origin header at all.
//
// The request id header is both accepted and exposed.
func CORSMiddleware(appConfig *config.Config) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	// Split and trim the configured origins, skipping empty items.
	var origins []string
	if appConfig != nil {
		for _, o := range strings.Split(appConfig.ClientURL, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
