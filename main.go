// main.go
package main

import (
	"context"
	"fmt"
	"go-shop/controllers"
	"go-shop/middleware"
	"go-shop/routes"
	"go-shop/utils"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()
	db := client.Database(utils.DatabaseName())

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := utils.EnsureIndexes(indexCtx, db); err != nil {
		cancel()
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Initialize controllers
	accountController := controllers.NewAccountController(db, emailService)
	productController := controllers.NewProductController(db)
	cartController := controllers.NewCartController(db)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, accountController, productController, cartController)
	router.Use(middleware.RequestID)

	// The storefront is served from a different origin, so allow
	// cross-origin calls.
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	handler := handlers.RecoveryHandler()(cors(router))

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
