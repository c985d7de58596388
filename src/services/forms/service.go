package forms

import (
	DB "Backend-Formforge/src/database"
	"Backend-Formforge/src/models"
	"Backend-Formforge/src/schema"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrFormNotFound      = errors.New("form not found")
	ErrVersionNotFound   = errors.New("form version not found")
	ErrSlugTaken         = errors.New("slug is already taken")
	ErrSlugReserved      = errors.New("slug is reserved")
	ErrSlugEmpty         = errors.New("slug cannot be empty")
	ErrInvalidSchema     = errors.New("invalid form schema")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrNotPublished      = errors.New("form has no published version")
)

// CreateForm creates a new draft form with an empty schema.
func CreateForm(ctx context.Context, req *models.CreateFormRequest) (*models.Form, error) {
	slug, err := checkSlug(ctx, req.Slug, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	form := &models.Form{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Status:      models.FormStatusDraft,
		DraftSchema: models.EmptyFormSchema(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := DB.FormCollection.InsertOne(ctx, form)
	if err != nil {
		return nil, mapSlugIndexError(err)
	}

	form.ID = result.InsertedID.(primitive.ObjectID)
	return form, nil
}

// GetForms retrieves forms for the admin dashboard, newest first.
func GetForms(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	params.Normalize()

	filter := bson.M{}
	if params.Search != "" {
		filter["name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := DB.FormCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := DB.FormCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	forms := []models.Form{}
	if err = cursor.All(ctx, &forms); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(forms, total, params), nil
}

// GetFormByID retrieves one form including its draft schema (admin only).
func GetFormByID(ctx context.Context, formID primitive.ObjectID) (*models.Form, error) {
	var form models.Form
	err := DB.FormCollection.FindOne(ctx, bson.M{"_id": formID}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return &form, nil
}

// UpdateForm applies a partial metadata/draft-schema update. Draft schema
// edits only need to parse; structural validation waits until publish so the
// builder can save transiently invalid drafts.
func UpdateForm(ctx context.Context, formID primitive.ObjectID, req *models.UpdateFormRequest) (*models.Form, error) {
	set := bson.M{"updatedAt": time.Now()}

	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Slug != nil {
		slug, err := checkSlug(ctx, *req.Slug, formID)
		if err != nil {
			return nil, err
		}
		set["slug"] = slug
	}
	if len(req.DraftSchema) > 0 {
		var draft models.FormSchema
		if err := json.Unmarshal(req.DraftSchema, &draft); err != nil {
			return nil, fmt.Errorf("%w: draft schema is not valid JSON: %v", ErrInvalidSchema, err)
		}
		set["draftSchema"] = draft
	}

	result := DB.FormCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": formID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var form models.Form
	if err := result.Decode(&form); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		// checkSlug raced a concurrent slug change; the unique index is the
		// authority.
		return nil, mapSlugIndexError(err)
	}
	return &form, nil
}

// mapSlugIndexError turns a unique-slug-index violation into ErrSlugTaken so
// callers answer with a conflict instead of a server error.
func mapSlugIndexError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlugTaken
	}
	return err
}

// PublishForm freezes the draft schema into a new immutable FormVersion and
// flips the form to published. Republishing an already published form simply
// creates the next version. The unique (formId, version) index serializes
// racing publishes; the loser retries with a fresh version number.
func PublishForm(ctx context.Context, formID primitive.ObjectID) (*models.FormVersion, error) {
	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	if problems := schema.ValidatePublish(form.DraftSchema); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSchema, strings.Join(problems, "; "))
	}
	// Compile catches what the structural gate cannot, e.g. a broken regex
	// pattern.
	if _, err := schema.Compile(form.DraftSchema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	var version *models.FormVersion
	for attempt := 0; attempt < 2; attempt++ {
		version, err = insertNextVersion(ctx, form)
		if err == nil {
			break
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		// Lost the version-number race; re-read and try once more.
	}
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Published form %s as v%d (version id %s)", form.Slug, version.Version, version.ID.Hex())
	return version, nil
}

func insertNextVersion(ctx context.Context, form *models.Form) (*models.FormVersion, error) {
	next := 1
	var latest models.FormVersionSummary
	err := DB.FormVersionCollection.FindOne(ctx,
		bson.M{"formId": form.ID},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}).SetProjection(bson.M{"schema": 0}),
	).Decode(&latest)
	if err == nil {
		next = latest.Version + 1
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	version := &models.FormVersion{
		ID:          primitive.NewObjectID(),
		FormID:      form.ID,
		Version:     next,
		Schema:      form.DraftSchema, // snapshotted verbatim
		PublishedAt: time.Now(),
	}

	err = DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := DB.FormVersionCollection.InsertOne(sc, version); err != nil {
			return err
		}
		_, err := DB.FormCollection.UpdateOne(sc,
			bson.M{"_id": form.ID},
			bson.M{"$set": bson.M{
				"status":           models.FormStatusPublished,
				"currentVersionId": version.ID,
				"updatedAt":        time.Now(),
			}},
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return version, nil
}

// SetStatus applies a pure status transition (archive/unarchive). It never
// touches the draft schema or versions. Publishing goes through PublishForm,
// and published -> draft directly is not allowed.
func SetStatus(ctx context.Context, formID primitive.ObjectID, status string) (*models.Form, error) {
	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	if form.Status == status {
		return form, nil
	}

	switch {
	case status == models.FormStatusArchived:
		// any state may be archived
	case form.Status == models.FormStatusArchived && status == models.FormStatusDraft:
		// unarchive back to draft
	case form.Status == models.FormStatusArchived && status == models.FormStatusPublished:
		if form.CurrentVersionID == nil {
			return nil, ErrNotPublished
		}
	default:
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, form.Status, status)
	}

	result := DB.FormCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": formID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Form
	if err := result.Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetBySlug is the public read path. It returns the current published
// version's schema only — the draft schema is never exposed here.
func GetBySlug(ctx context.Context, slug string) (*models.PublicForm, error) {
	var form models.Form
	err := DB.FormCollection.FindOne(ctx, bson.M{"slug": NormalizeSlug(slug)}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	if form.Status != models.FormStatusPublished || form.CurrentVersionID == nil {
		return nil, ErrFormNotFound
	}

	var version models.FormVersion
	err = DB.FormVersionCollection.FindOne(ctx, bson.M{"_id": *form.CurrentVersionID}).Decode(&version)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}

	return &models.PublicForm{
		ID:          form.ID,
		Name:        form.Name,
		Slug:        form.Slug,
		Description: form.Description,
		VersionID:   version.ID,
		Version:     version.Version,
		Schema:      version.Schema,
	}, nil
}

// DuplicateForm copies name and draft schema into a fresh draft form with a
// unique slug. Versions and submissions are not copied.
func DuplicateForm(ctx context.Context, formID primitive.ObjectID) (*models.Form, error) {
	src, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	slug := fmt.Sprintf("%s-copy-%s", src.Slug, uuid.NewString()[:8])

	now := time.Now()
	copyForm := &models.Form{
		Name:        src.Name + " (copy)",
		Slug:        slug,
		Description: src.Description,
		Status:      models.FormStatusDraft,
		DraftSchema: src.DraftSchema,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := DB.FormCollection.InsertOne(ctx, copyForm)
	if err != nil {
		return nil, err
	}
	copyForm.ID = result.InsertedID.(primitive.ObjectID)
	return copyForm, nil
}

// GetFormVersions lists version metadata newest-first, without schema bodies.
func GetFormVersions(ctx context.Context, formID primitive.ObjectID) ([]models.FormVersionSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "version", Value: -1}}).
		SetProjection(bson.M{"schema": 0})

	cursor, err := DB.FormVersionCollection.Find(ctx, bson.M{"formId": formID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	versions := []models.FormVersionSummary{}
	if err = cursor.All(ctx, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// GetFormVersion returns one full immutable snapshot.
func GetFormVersion(ctx context.Context, formID primitive.ObjectID, version int) (*models.FormVersion, error) {
	var v models.FormVersion
	err := DB.FormVersionCollection.FindOne(ctx, bson.M{"formId": formID, "version": version}).Decode(&v)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}
	return &v, nil
}

// checkSlug normalizes and validates a requested slug, excluding ownID from
// the uniqueness check so a form can keep its own slug on update.
func checkSlug(ctx context.Context, raw string, ownID primitive.ObjectID) (string, error) {
	slug := NormalizeSlug(raw)
	if slug == "" {
		return "", ErrSlugEmpty
	}
	if IsReservedSlug(slug) {
		return "", ErrSlugReserved
	}

	filter := bson.M{"slug": slug}
	if !ownID.IsZero() {
		filter["_id"] = bson.M{"$ne": ownID}
	}

	count, err := DB.FormCollection.CountDocuments(ctx, filter)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrSlugTaken
	}
	return slug, nil
}
