package main

import (
	_ "Backend-Formforge/docs"
	"Backend-Formforge/src/controllers"
	"Backend-Formforge/src/database"
	"Backend-Formforge/src/jobs"
	"Backend-Formforge/src/routes"
	"Backend-Formforge/src/seeder"
	"Backend-Formforge/src/services/auth"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

// @title        Formforge API
// @version      1.0
// @description  Form builder backend: schemas, versions, submissions, audit trail.
// @BasePath     /
func main() {

	err := database.ConnectMongoDB()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	database.InitRedis()
	database.InitAsynq()

	controllers.InitUploadStore()
	controllers.InitDraftRepository()

	ctx := context.Background()
	if err := auth.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatalf("Error bootstrapping admin account: %v", err)
	}
	if os.Getenv("SEED_FORMS") == "true" {
		if err := seeder.SeedSampleForms(ctx); err != nil {
			log.Fatalf("Error seeding forms: %v", err)
		}
	}

	jobs.StartWorker()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // must stay false with "*"
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app)

	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888"
	}

	log.Println("Server is running on port " + appURI)
	err = app.Listen(fmt.Sprintf(":%s", appURI))
	if err != nil {
		log.Fatal(err)
	}

}
