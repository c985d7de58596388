package seeder

import (
	DB "Backend-Formforge/src/database"
	"Backend-Formforge/src/models"
	"Backend-Formforge/src/services/forms"
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureForm makes sure a form with the given slug exists with the given
// schema and is published. Idempotent: an already published form is left
// alone, so running the seeder twice produces no extra versions.
func EnsureForm(ctx context.Context, slug, name string, schema models.FormSchema) error {
	var form models.Form
	err := DB.FormCollection.FindOne(ctx, bson.M{"slug": slug}).Decode(&form)
	if err == mongo.ErrNoDocuments {
		created, err := forms.CreateForm(ctx, &models.CreateFormRequest{Name: name, Slug: slug})
		if err != nil {
			return err
		}
		form = *created
	} else if err != nil {
		return err
	}

	if form.Status == models.FormStatusPublished && form.CurrentVersionID != nil {
		return nil
	}

	if _, err := DB.FormCollection.UpdateOne(ctx,
		bson.M{"_id": form.ID},
		bson.M{"$set": bson.M{"draftSchema": schema}},
	); err != nil {
		return err
	}

	if _, err := forms.PublishForm(ctx, form.ID); err != nil {
		return err
	}

	log.Println("✅ Seeded form:", slug)
	return nil
}

// SeedSampleForms bootstraps the fixed well-known forms.
func SeedSampleForms(ctx context.Context) error {
	minTwo := 2
	contact := models.FormSchema{
		Steps: []models.FormStep{
			{
				ID:    "step-contact",
				Title: "Contact",
				Fields: []models.FormField{
					{
						ID:       "name",
						Type:     "text",
						Label:    "Full Name",
						Required: true,
						Validation: &models.FieldValidation{
							MinLength: &minTwo,
						},
					},
					{
						ID:       "email",
						Type:     "email",
						Label:    "Email Address",
						Required: true,
					},
					{
						ID:          "message",
						Type:        "textarea",
						Label:       "Message",
						Placeholder: "How can we help?",
						Required:    true,
					},
					{
						ID:       "topic",
						Type:     "select",
						Label:    "Topic",
						Required: true,
						Options: []models.FieldOption{
							{Value: "general", Label: "General"},
							{Value: "support", Label: "Support"},
							{Value: "billing", Label: "Billing"},
						},
					},
				},
			},
		},
		Settings: models.FormSettings{
			SubmitButtonText: "Send",
			SuccessMessage:   "Thanks, we'll get back to you shortly.",
		},
	}

	return EnsureForm(ctx, "contact", "Contact Us", contact)
}
