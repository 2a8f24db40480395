package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"go-shop/models"
	"go-shop/utils"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductController handles product-related requests
type ProductController struct {
	Collection *mongo.Collection
}

// NewProductController creates a new ProductController
func NewProductController(db *mongo.Database) *ProductController {
	return &ProductController{
		Collection: db.Collection("products"),
	}
}

// CreateProduct handles adding a new product
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	// Price is a pointer so an absent field is distinguishable from a free
	// product.
	var payload struct {
		Name        string   `json:"name"`
		Price       *float64 `json:"price"`
		Description string   `json:"description"`
		Image       string   `json:"image"`
	}
	// Decode the request body
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if payload.Name == "" || payload.Price == nil || payload.Description == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Name, price and description are required")
		return
	}
	if *payload.Price < 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "Price must not be negative")
		return
	}

	product := models.Product{
		Name:        payload.Name,
		Price:       *payload.Price,
		Description: payload.Description,
		Image:       payload.Image,
	}

	// Insert the product into the database
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := pc.Collection.InsertOne(ctx, product)
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while creating the product", err)
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, product)
}

// GetProducts retrieves all products
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products := []models.Product{}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Find all products
	cursor, err := pc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while fetching the products", err)
		return
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondStoreError(w, "An error occurred while reading the products", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while fetching the product", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

// UpdateProduct merges the given fields into an existing product and
// returns the updated record
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var fields map[string]interface{}
	err = json.NewDecoder(r.Body).Decode(&fields)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Only known fields make it into the update; _id and anything else the
	// client sends along are ignored.
	update := bson.M{}
	for _, key := range []string{"name", "price", "description", "image"} {
		if value, ok := fields[key]; ok {
			update[key] = value
		}
	}
	if len(update) == 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}
	if raw, ok := update["price"]; ok {
		price, ok := raw.(float64)
		if !ok || price < 0 {
			utils.RespondMessage(w, http.StatusBadRequest, "Price must be a non-negative number")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = pc.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while updating the product", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles deleting a product
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while deleting the product", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Product deleted successfully")
}
