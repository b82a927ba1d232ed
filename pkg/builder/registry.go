package builder

import (
	"context"
	"strings"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"
	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/internal/repository/unitofwork"
	"cmms-dashboard-be/pkg/admin/events"
	"cmms-dashboard-be/pkg/admin/feature"

	"github.com/google/uuid"
)

// NavigationRegistrar receives the navigation entry of every saved or deleted feature.
type NavigationRegistrar interface {
	RegisterFeatureNavEntry(feature *entity.CustomFeatureDefinition)
	UpdateFeatureNavEntry(feature *entity.CustomFeatureDefinition)
	UnregisterFeature(id uuid.UUID)
}

// FeedbackNotifier delivers short user-facing messages (toasts) about builder actions.
type FeedbackNotifier interface {
	Success(ctx context.Context, title, message string)
	Failure(ctx context.Context, title, message string)
}

// Registry owns the stored custom feature definitions and keeps the navigation in sync with them.
type Registry struct {
	uowFactory unitofwork.RepositoryFactory
	manager    *feature.Manager
	navigation NavigationRegistrar
	publisher  events.Publisher
	feedback   FeedbackNotifier
	logger     logger.ILogger
	templates  []Template
}

func NewRegistry(
	uowFactory unitofwork.RepositoryFactory,
	manager *feature.Manager,
	navigation NavigationRegistrar,
	publisher events.Publisher,
	feedback FeedbackNotifier,
	logger logger.ILogger,
) *Registry {
	if feedback == nil {
		feedback = nopFeedback{}
	}
	return &Registry{
		uowFactory: uowFactory,
		manager:    manager,
		navigation: navigation,
		publisher:  publisher,
		feedback:   feedback,
		logger:     logger,
		templates:  DefaultTemplates(),
	}
}

// Save creates the draft's feature when it has no id yet, otherwise replaces the stored one.
func (r *Registry) Save(ctx context.Context, draft *Draft) (*entity.CustomFeatureDefinition, error) {
	def := draft.Definition()
	def.Name = strings.TrimSpace(def.Name)
	def.Slug = strings.TrimSpace(def.Slug)

	if problems := def.Validate(); len(problems) > 0 {
		appErr := validationError(problems)
		r.feedback.Failure(ctx, "Validation Error", appErr.Message)
		return nil, appErr
	}

	creating := def.IsNew()

	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	var saved *entity.CustomFeatureDefinition
	var err error
	if creating {
		saved, err = r.manager.Create(ctx, uow, def)
	} else {
		saved, err = r.manager.Update(ctx, uow, def)
	}
	if err != nil {
		uow.Rollback()
		r.logger.Warn("FEATURE_REGISTRY", "Failed to save feature", map[string]interface{}{
			"slug":  def.Slug,
			"error": err.Error(),
		})
		r.feedback.Failure(ctx, "Error", saveFailureMessage(err))
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if creating {
		r.navigation.RegisterFeatureNavEntry(saved)
		r.publisher.PublishFeatureCreated(ctx, saved)
		r.feedback.Success(ctx, "Success", "Feature created successfully.")
	} else {
		r.navigation.UpdateFeatureNavEntry(saved)
		r.publisher.PublishFeatureUpdated(ctx, saved)
		r.feedback.Success(ctx, "Success", "Feature updated successfully.")
	}

	r.logger.Info("FEATURE_REGISTRY", "Feature saved", map[string]interface{}{
		"feature_id": saved.Id.String(),
		"slug":       saved.Slug,
		"created":    creating,
	})
	return saved, nil
}

// Delete removes the feature and its navigation entry.
func (r *Registry) Delete(ctx context.Context, id uuid.UUID) error {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	deleted, err := r.manager.Delete(ctx, uow, id)
	if err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	r.navigation.UnregisterFeature(id)
	r.publisher.PublishFeatureDeleted(ctx, id, deleted.Name, deleted.Slug)
	r.feedback.Success(ctx, "Success", "Feature deleted successfully.")

	r.logger.Info("FEATURE_REGISTRY", "Feature deleted", map[string]interface{}{
		"feature_id": id.String(),
		"slug":       deleted.Slug,
	})
	return nil
}

func (r *Registry) List(ctx context.Context) ([]*entity.CustomFeatureDefinition, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	return r.manager.GetAll(ctx, uow)
}

func (r *Registry) Get(ctx context.Context, id uuid.UUID) (*entity.CustomFeatureDefinition, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	return r.manager.Get(ctx, uow, id)
}

func (r *Registry) GetBySlug(ctx context.Context, slug string) (*entity.CustomFeatureDefinition, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	return r.manager.GetBySlug(ctx, uow, slug)
}

// Templates returns deep copies of the example features.
func (r *Registry) Templates() []Template {
	out := make([]Template, len(r.templates))
	for i, t := range r.templates {
		out[i] = Template{Feature: t.Feature.Clone(), Details: t.Details}
	}
	return out
}

// TemplateBySlug finds an example feature by its slug.
func (r *Registry) TemplateBySlug(slug string) (*entity.CustomFeatureDefinition, error) {
	for _, t := range r.templates {
		if t.Feature.Slug == slug {
			return t.Feature.Clone(), nil
		}
	}
	return nil, apperror.NotFound(apperror.CodeTemplateNotFound, "template not found").
		WithParams(map[string]interface{}{"slug": slug})
}

// InstantiateFromTemplate turns an example into a new draft named "<name> (Copy)"
// with slug "<slug>-copy". The example itself is left untouched.
func (r *Registry) InstantiateFromTemplate(example *entity.CustomFeatureDefinition) *Draft {
	copied := example.Clone()
	copied.Id = uuid.Nil
	copied.Name = copied.Name + " (Copy)"
	copied.Slug = copied.Slug + "-copy"
	return draftOf(copied, false)
}

// Rehydrate registers navigation entries for every stored feature, oldest first.
func (r *Registry) Rehydrate(ctx context.Context) (int, error) {
	features, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, f := range features {
		r.navigation.RegisterFeatureNavEntry(f)
	}
	r.logger.Info("FEATURE_REGISTRY", "Navigation rehydrated", map[string]interface{}{
		"count": len(features),
	})
	return len(features), nil
}

func validationError(problems []string) *apperror.AppError {
	message := "Some view placements reference fields that no longer exist."
	fieldErrors := make([]apperror.FieldError, 0, len(problems))
	for _, p := range problems {
		if p == "name" || p == "slug" {
			message = "Please fill in name and slug."
			fieldErrors = append(fieldErrors, apperror.Required(p))
			continue
		}
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   p,
			Code:    "UNKNOWN_FIELD",
			Message: "placement references a field that does not exist",
		})
	}
	return apperror.Validation(message, fieldErrors...)
}

func saveFailureMessage(err error) string {
	if appErr, ok := apperror.IsAppError(err); ok {
		return appErr.Message
	}
	return "Failed to save feature."
}

type nopFeedback struct{}

func (nopFeedback) Success(context.Context, string, string) {}
func (nopFeedback) Failure(context.Context, string, string) {}
