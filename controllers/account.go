package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"go-shop/models"
	"go-shop/utils"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AccountController handles registration and login requests
type AccountController struct {
	Collection   *mongo.Collection
	EmailService *utils.EmailService
}

// NewAccountController creates a new AccountController with EmailService
func NewAccountController(db *mongo.Database, emailService *utils.EmailService) *AccountController {
	return &AccountController{
		Collection:   db.Collection("users"),
		EmailService: emailService,
	}
}

// Register handles user registration. The password is stored exactly as
// received, which is the contract Login relies on.
func (ac *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	// Decode the request body
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	// Check if user already exists
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := ac.Collection.CountDocuments(ctx, bson.M{"email": creds.Email})
	if err != nil {
		utils.RespondStoreError(w, "An error occurred during registration", err)
		return
	}
	if count > 0 {
		utils.RespondMessage(w, http.StatusBadRequest, "Email is already in use")
		return
	}

	user := models.User{Email: creds.Email, Password: creds.Password}
	_, err = ac.Collection.InsertOne(ctx, user)
	if err != nil {
		// Two concurrent registrations can both pass the count check; the
		// unique index on email settles it.
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondMessage(w, http.StatusBadRequest, "Email is already in use")
			return
		}
		utils.RespondStoreError(w, "An error occurred during registration", err)
		return
	}

	if ac.EmailService.Enabled() {
		go func(email string) {
			if err := ac.EmailService.SendWelcomeEmail(email); err != nil {
				log.Printf("Failed to send welcome email to %s: %v", email, err)
			}
		}(creds.Email)
	}

	utils.RespondMessage(w, http.StatusCreated, "Registration successful!")
}

// Login handles user authentication. On success the stored user record is
// returned as-is; no token is issued, the service is session-less.
func (ac *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	// Decode the request body
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Find the user in the database
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	err = ac.Collection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondMessage(w, http.StatusUnauthorized, "Incorrect login credentials")
		return
	}
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while processing the login", err)
		return
	}

	// Compare the stored password by exact string equality
	if user.Password != creds.Password {
		utils.RespondMessage(w, http.StatusUnauthorized, "Incorrect login credentials")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// ChangePassword overwrites the stored password after checking the old one
func (ac *AccountController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email       string `json:"email"`
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if payload.NewPassword == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "New password is required")
		return
	}

	// Find the user in the database
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	err = ac.Collection.FindOne(ctx, bson.M{"email": payload.Email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while changing the password", err)
		return
	}

	if user.Password != payload.OldPassword {
		utils.RespondMessage(w, http.StatusBadRequest, "Old password is incorrect")
		return
	}

	// Store the new password verbatim, consistent with Register
	_, err = ac.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{"password": payload.NewPassword},
	})
	if err != nil {
		utils.RespondStoreError(w, "An error occurred while changing the password", err)
		return
	}

	if ac.EmailService.Enabled() {
		go func(email string) {
			if err := ac.EmailService.SendPasswordChangedEmail(email); err != nil {
				log.Printf("Failed to send password change notice to %s: %v", email, err)
			}
		}(user.Email)
	}

	utils.RespondMessage(w, http.StatusOK, "Password changed successfully!")
}
