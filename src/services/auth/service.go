package auth

import (
	DB "Backend-Formforge/src/database"
	"Backend-Formforge/src/models"
	"Backend-Formforge/src/utils"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Login verifies an admin's credentials and returns a signed token.
func Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var admin models.Admin
	err := DB.AdminCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&admin)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(admin.ID.Hex(), admin.Email)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, Admin: admin}, nil
}

// EnsureDefaultAdmin bootstraps the first admin account from ADMIN_EMAIL /
// ADMIN_PASSWORD. Idempotent: an existing account is left untouched.
func EnsureDefaultAdmin(ctx context.Context) error {
	email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ ADMIN_EMAIL / ADMIN_PASSWORD not set. Skipping admin bootstrap.")
		return nil
	}

	err := DB.AdminCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  string(hash),
		Name:      "Administrator",
		CreatedAt: time.Now(),
	}

	if _, err := DB.AdminCollection.InsertOne(ctx, admin); err != nil {
		return err
	}

	log.Println("✅ Default admin account created:", email)
	return nil
}
