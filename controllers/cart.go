package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

// CartController handles cart-related requests
type CartController struct {
	Collection        *mongo.Collection
	ProductCollection *mongo.Collection
}

// NewCartController creates a new CartController
func NewCartController(db *mongo.Database) *CartController {
	return &CartController{
		Collection:        db.Collection("carts"),
		ProductCollection: db.Collection("products"),
	}
}

// cartFilter scopes cart lookups to an owner when one is given. Without an
// owner every operation targets the first cart in the store, which keeps
// the shared-singleton behavior of the storefront.
func cartFilter(userID string) (bson.M, error) {
	if userID == "" {
		return bson.M{}, nil
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	return bson.M{"user": id}, nil
}

// AddToCart adds a product to the cart, creating the cart on first use.
// Adding a product already in the cart bumps its quantity instead of
// creating a second line item.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		UserID    string `json:"userId,omitempty"`
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	productID, err := primitive.ObjectIDFromHex(payload.ProductID)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	if payload.Quantity < 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	quantity := payload.Quantity
	if quantity == 0 {
		quantity = 1
	}

	filter, err := cartFilter(payload.UserID)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Find the cart this operation targets, creating one if none exists.
	// The upsert makes find-or-create a single atomic operation, so two
	// concurrent first adds cannot end up with two carts. An owner given
	// in the filter is carried onto the inserted document by the upsert.
	var cart models.Cart
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err = cc.Collection.FindOneAndUpdate(ctx, filter,
		bson.M{"$setOnInsert": bson.M{"items": []models.CartItem{}}}, opts).Decode(&cart)
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while creating the cart", err)
		return
	}

	// Bump the quantity if the product is already carted. The filtered
	// positional update is a single atomic operation, so two concurrent
	// adds cannot lose each other's increment.
	res, err := cc.Collection.UpdateOne(ctx,
		bson.M{"_id": cart.ID, "items.product": productID},
		bson.M{"$inc": bson.M{"items.$.quantity": quantity}})
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while adding the product to the cart", err)
		return
	}
	if res.MatchedCount == 0 {
		// Product not in the cart yet; append a new line item. The $ne
		// guard keeps a concurrent add of the same product from producing
		// two line items.
		pushRes, pushErr := cc.Collection.UpdateOne(ctx,
			bson.M{"_id": cart.ID, "items.product": bson.M{"$ne": productID}},
			bson.M{"$push": bson.M{"items": models.CartItem{ProductID: productID, Quantity: quantity}}})
		if pushErr != nil {
			utils.RespondStoreError(w, "An error occurred while adding the product to the cart", pushErr)
			return
		}
		if pushRes.MatchedCount == 0 {
			// Lost the race to a concurrent add of the same product; fold
			// the quantity into the line item that won.
			_, err = cc.Collection.UpdateOne(ctx,
				bson.M{"_id": cart.ID, "items.product": productID},
				bson.M{"$inc": bson.M{"items.$.quantity": quantity}})
			if err != nil {
				utils.RespondStoreError(w, "An error occurred while adding the product to the cart", err)
				return
			}
		}
	}

	if err := cc.Collection.FindOne(ctx, bson.M{"_id": cart.ID}).Decode(&cart); err != nil {
		utils.RespondStoreError(w, "An error occurred while adding the product to the cart", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product added to cart",
		"cart":    cart,
	})
}

// UpdateCartItem overwrites the quantity of a product already in the cart
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var payload struct {
		NewQuantity int    `json:"newQuantity"`
		UserID      string `json:"userId,omitempty"`
	}
	err = json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if payload.NewQuantity < 1 {
		utils.RespondMessage(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	filter, err := cartFilter(payload.UserID)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	err = cc.Collection.FindOne(ctx, filter).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondMessage(w, http.StatusNotFound, "Cart does not exist")
		return
	}
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while updating the cart", err)
		return
	}

	res, err := cc.Collection.UpdateOne(ctx,
		bson.M{"_id": cart.ID, "items.product": productID},
		bson.M{"$set": bson.M{"items.$.quantity": payload.NewQuantity}})
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while updating the cart", err)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondMessage(w, http.StatusNotFound,
			fmt.Sprintf("Product '%s' is not in the cart", params["productId"]))
		return
	}

	if err := cc.Collection.FindOne(ctx, bson.M{"_id": cart.ID}).Decode(&cart); err != nil {
		utils.RespondStoreError(w, "An error occurred while updating the cart", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Quantity updated",
		"cart":    cart,
	})
}

// RemoveFromCart removes a product's line item from the cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	filter, err := cartFilter(r.URL.Query().Get("userId"))
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	err = cc.Collection.FindOne(ctx, filter).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondMessage(w, http.StatusNotFound, "Cart does not exist")
		return
	}
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while removing the product from the cart", err)
		return
	}

	res, err := cc.Collection.UpdateOne(ctx,
		bson.M{"_id": cart.ID},
		bson.M{"$pull": bson.M{"items": bson.M{"product": productID}}})
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while removing the product from the cart", err)
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondMessage(w, http.StatusNotFound,
			fmt.Sprintf("Product '%s' is not in the cart", params["productId"]))
		return
	}

	if err := cc.Collection.FindOne(ctx, bson.M{"_id": cart.ID}).Decode(&cart); err != nil {
		utils.RespondStoreError(w, "An error occurred while removing the product from the cart", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Product '%s' removed from cart", params["productId"]),
		"cart":    cart,
	})
}

// GetCart returns the cart with every item's product reference resolved
// into the full product record, plus the cart's total price. Items whose
// product has since been deleted are dropped from the view.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	filter, err := cartFilter(r.URL.Query().Get("userId"))
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	err = cc.Collection.FindOne(ctx, filter).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondMessage(w, http.StatusNotFound, "Cart does not exist")
		return
	}
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while fetching the cart", err)
		return
	}

	populated := models.PopulatedCart{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  []models.PopulatedItem{},
	}
	for _, item := range cart.Items {
		var product models.Product
		err := cc.ProductCollection.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product)
		if errors.Is(err, mongo.ErrNoDocuments) {
			// The product was deleted after it was carted; skip the line
			// item rather than failing the whole view.
			continue
		}
		if err != nil {
			utils.RespondStoreError(w, "An error occurred while fetching the cart", err)
			return
		}
		populated.Items = append(populated.Items, models.PopulatedItem{
			Product:  product,
			Quantity: item.Quantity,
		})
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"cart":       populated,
		"totalPrice": populated.TotalPrice(),
	})
}

// Checkout deletes every cart in the store. No order record is created;
// this mirrors the storefront's fire-and-forget checkout.
func (cc *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := cc.Collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		utils.RespondStoreError(w, "An error occurred during checkout", err)
		return
	}

	utils.RespondMessage(w, http.StatusOK, "Checkout successful!")
}
