// routes/routes.go
package routes

import (
	"go-shop/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, accountController *controllers.AccountController, productController *controllers.ProductController, cartController *controllers.CartController) {
	// Account routes
	router.HandleFunc("/register", accountController.Register).Methods("POST")
	router.HandleFunc("/login", accountController.Login).Methods("POST")
	router.HandleFunc("/change-password", accountController.ChangePassword).Methods("POST")

	// Product routes
	router.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")
	router.HandleFunc("/products/{id}", productController.UpdateProduct).Methods("PATCH")
	router.HandleFunc("/products/{id}", productController.DeleteProduct).Methods("DELETE")

	// Cart routes
	router.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	router.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	router.HandleFunc("/cart/{productId}", cartController.UpdateCartItem).Methods("PUT")
	router.HandleFunc("/cart/{productId}", cartController.RemoveFromCart).Methods("DELETE")
	router.HandleFunc("/checkout", cartController.Checkout).Methods("POST")
}
