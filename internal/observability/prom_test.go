package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coaching-backend/internal/db"
)

func TestGinHandleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := NewProm(prometheus.NewRegistry())
	r := gin.New()
	r.Use(p.GinHandleMiddleware())
	r.GET("/events/:eventId", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/"+id, nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(p.RequestsTotal.WithLabelValues("GET", "/events/:eventId", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestInstrumentedStore(t *testing.T) {
	ctx := context.Background()
	p := NewProm(prometheus.NewRegistry())
	store := InstrumentStore(db.NewMemoryStore(), p)

	_, err := store.Get(ctx, db.GoalsCollection, "missing")
	require.ErrorIs(t, err, db.ErrNotFound)
	require.NoError(t, store.Merge(ctx, db.GoalsCollection, "u1", map[string]interface{}{"goals": []interface{}{}}))
	_, err = store.Get(ctx, db.GoalsCollection, "u1")
	require.NoError(t, err)

	assert.Equal(t, 0.0, testutil.ToFloat64(p.StoreErrors.WithLabelValues(db.GoalsCollection, "get")))
	assert.Equal(t, 3, testutil.CollectAndCount(p.StoreOpDuration))
}
