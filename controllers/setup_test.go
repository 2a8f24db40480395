package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"go-shop/controllers"
	"go-shop/models"
	"go-shop/routes"
	"go-shop/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Handler tests run against a real MongoDB instance (MONGO_URI, default
// localhost) and are skipped when none is reachable. Every test gets its
// own database, dropped on cleanup.
func testRouter(t *testing.T) *mux.Router {
	t.Helper()
	router, _ := testEnv(t)
	return router
}

// testEnv also exposes the test database for assertions against the raw
// collections.
func testEnv(t *testing.T) (*mux.Router, *mongo.Database) {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://127.0.0.1:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("MongoDB not available at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("MongoDB not available at %s: %v", uri, err)
	}

	dbName := "shop_test_" + strings.ToLower(strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db := client.Database(dbName)
	require.NoError(t, db.Drop(ctx))
	require.NoError(t, utils.EnsureIndexes(ctx, db))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	router := mux.NewRouter()
	routes.RegisterRoutes(router,
		controllers.NewAccountController(db, utils.NewEmailService()),
		controllers.NewProductController(db),
		controllers.NewCartController(db),
	)
	return router, db
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func createProduct(t *testing.T, router *mux.Router, name string, price float64) models.Product {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/products", map[string]interface{}{
		"name":        name,
		"price":       price,
		"description": "a test product",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var product models.Product
	decodeBody(t, rec, &product)
	require.False(t, product.ID.IsZero())
	return product
}

// cartBody matches the {message, cart} responses of the cart mutations.
type cartBody struct {
	Message string `json:"message"`
	Cart    struct {
		ID    string `json:"id"`
		Items []struct {
			Product  string `json:"product"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
	} `json:"cart"`
}

// cartViewBody matches the {cart, totalPrice} response of GET /cart.
type cartViewBody struct {
	Cart struct {
		ID    string `json:"id"`
		Items []struct {
			Product  models.Product `json:"product"`
			Quantity int            `json:"quantity"`
		} `json:"items"`
	} `json:"cart"`
	TotalPrice float64 `json:"totalPrice"`
}
