package builder_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"
	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/internal/repository/memory"
	"cmms-dashboard-be/pkg/admin/events"
	"cmms-dashboard-be/pkg/admin/feature"
	"cmms-dashboard-be/pkg/builder"
	"cmms-dashboard-be/pkg/navigation"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	kind string
	id   uuid.UUID
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) record(kind string, id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{kind: kind, id: id})
}

func (p *recordingPublisher) PublishFeatureCreated(_ context.Context, f *entity.CustomFeatureDefinition) {
	p.record(events.TypeFeatureCreated, f.Id)
}

func (p *recordingPublisher) PublishFeatureUpdated(_ context.Context, f *entity.CustomFeatureDefinition) {
	p.record(events.TypeFeatureUpdated, f.Id)
}

func (p *recordingPublisher) PublishFeatureDeleted(_ context.Context, id uuid.UUID, _, _ string) {
	p.record(events.TypeFeatureDeleted, id)
}

type recordingFeedback struct {
	successes []string
	failures  []string
}

func (f *recordingFeedback) Success(_ context.Context, _, message string) {
	f.successes = append(f.successes, message)
}

func (f *recordingFeedback) Failure(_ context.Context, _, message string) {
	f.failures = append(f.failures, message)
}

type fixture struct {
	registry  *builder.Registry
	composer  *navigation.Composer
	publisher *recordingPublisher
	feedback  *recordingFeedback
	store     *memory.CustomFeatureStore
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newFixture() *fixture {
	store := memory.NewCustomFeatureStore()
	composer := navigation.NewComposer(navigation.DefaultTree())
	publisher := &recordingPublisher{}
	feedback := &recordingFeedback{}
	manager := feature.NewManager().WithClock(func() time.Time { return fixedNow })

	registry := builder.NewRegistry(
		memory.NewRepositoryFactory(store),
		manager,
		composer,
		publisher,
		feedback,
		logger.NewNopLogger(),
	)
	return &fixture{registry: registry, composer: composer, publisher: publisher, feedback: feedback, store: store}
}

func namedDraft(t *testing.T, name string) *builder.Draft {
	t.Helper()
	d := builder.NewDraft()
	d.SetName(name)
	require.NoError(t, d.AddField("title", "Title", entity.FieldTypeText))
	d.AddFieldToView(entity.ViewTypeList, "title")
	return d
}

func TestRegistry_SaveCreatesFeature(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	saved, err := f.registry.Save(ctx, namedDraft(t, "Safety Inspections"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, saved.Id)
	assert.Equal(t, "safety-inspections", saved.Slug)
	assert.Equal(t, fixedNow, saved.CreatedAt)
	assert.Equal(t, fixedNow, saved.UpdatedAt)

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.Id, list[0].Id)

	entries := f.composer.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "/custom/safety-inspections", entries[0].Href)

	assert.Equal(t, []recordedEvent{{kind: events.TypeFeatureCreated, id: saved.Id}}, f.publisher.events)
	assert.Equal(t, []string{"Feature created successfully."}, f.feedback.successes)
}

func TestRegistry_SaveAssignsUniqueIds(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.registry.Save(ctx, namedDraft(t, "Safety Inspections"))
	require.NoError(t, err)
	second, err := f.registry.Save(ctx, namedDraft(t, "Vendor Management"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.Id, list[0].Id, "listed in creation order")
}

func TestRegistry_SaveValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft func() *builder.Draft
		field string
	}{
		{
			name:  "empty name",
			draft: builder.NewDraft,
			field: "name",
		},
		{
			name: "blank slug",
			draft: func() *builder.Draft {
				d := builder.NewDraft()
				d.SetName("Vendor Management")
				d.SetSlug("   ")
				return d
			},
			field: "slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			saved, err := f.registry.Save(context.Background(), tt.draft())

			assert.Nil(t, saved)
			appErr, ok := apperror.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidationFailed, appErr.Code)
			assert.Equal(t, 400, appErr.HTTPStatus)
			fields := make([]string, 0, len(appErr.FieldErrors))
			for _, fe := range appErr.FieldErrors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)

			assert.Empty(t, f.composer.Entries())
			assert.Empty(t, f.publisher.events)
			assert.Len(t, f.feedback.failures, 1)
		})
	}
}

func TestRegistry_SaveUpdatesExistingFeature(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.registry.Save(ctx, namedDraft(t, "Safety Inspections"))
	require.NoError(t, err)

	d := builder.EditDraft(created)
	d.SetName("Site Inspections")
	d.SetSlug("site-inspections")
	d.SetIcon("ShieldCheck")

	updated, err := f.registry.Save(ctx, d)
	require.NoError(t, err)

	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Site Inspections", list[0].Name)

	assert.Equal(t, []entity.NavigationItem{{
		Name: "Site Inspections", Href: "/custom/site-inspections", IconName: entity.IconShieldCheck, IsCustom: true,
	}}, f.composer.Entries())
	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, events.TypeFeatureUpdated, f.publisher.events[1].kind)
}

func TestRegistry_SaveUpdateOfMissingFeature(t *testing.T) {
	f := newFixture()
	d := builder.EditDraft(&entity.CustomFeatureDefinition{Id: uuid.New(), Name: "Ghost", Slug: "ghost"})

	_, err := f.registry.Save(context.Background(), d)

	assert.True(t, apperror.HasCode(err, apperror.CodeFeatureNotFound))
	assert.Empty(t, f.composer.Entries())
}

func TestRegistry_SaveRejectsSlugConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.registry.Save(ctx, namedDraft(t, "Vendor Management"))
	require.NoError(t, err)

	_, err = f.registry.Save(ctx, namedDraft(t, "Vendor  Management!"))

	appErr, ok := apperror.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeSlugConflict, appErr.Code)
	assert.Equal(t, 409, appErr.HTTPStatus)

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Len(t, f.composer.Entries(), 1)
}

func TestRegistry_SaveRejectsDanglingPlacement(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.registry.Save(ctx, namedDraft(t, "Vendor Management"))
	require.NoError(t, err)

	created.UISchema.FormView = append(created.UISchema.FormView, entity.ViewFieldPlacement{
		FieldName: "ghost", ComponentType: entity.ComponentFormInput,
	})
	_, err = f.registry.Save(ctx, builder.EditDraft(created))

	assert.True(t, apperror.HasCode(err, apperror.CodeValidationFailed))
}

func TestRegistry_DeleteCascadesNavigation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first, err := f.registry.Save(ctx, namedDraft(t, "Safety Inspections"))
	require.NoError(t, err)
	second, err := f.registry.Save(ctx, namedDraft(t, "Vendor Management"))
	require.NoError(t, err)

	require.NoError(t, f.registry.Delete(ctx, first.Id))

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.Id, list[0].Id)

	entries := f.composer.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "/custom/vendor-management", entries[0].Href)

	_, err = f.registry.Get(ctx, first.Id)
	assert.True(t, apperror.HasCode(err, apperror.CodeFeatureNotFound))

	err = f.registry.Delete(ctx, first.Id)
	assert.True(t, apperror.HasCode(err, apperror.CodeFeatureNotFound))
}

func TestRegistry_GetBySlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	saved, err := f.registry.Save(ctx, namedDraft(t, "Incident Reports"))
	require.NoError(t, err)

	found, err := f.registry.GetBySlug(ctx, "incident-reports")
	require.NoError(t, err)
	assert.Equal(t, saved.Id, found.Id)

	_, err = f.registry.GetBySlug(ctx, "nope")
	assert.True(t, apperror.HasCode(err, apperror.CodeFeatureNotFound))
}

func TestRegistry_Templates(t *testing.T) {
	f := newFixture()

	templates := f.registry.Templates()

	require.Len(t, templates, 6)
	wantNames := []string{
		"Safety Inspections", "Equipment Calibration", "Maintenance Schedules",
		"Incident Reports", "Vendor Management", "Environmental Monitoring",
	}
	for i, tpl := range templates {
		assert.Equal(t, wantNames[i], tpl.Feature.Name)
		assert.Equal(t, entity.Slugify(tpl.Feature.Name), tpl.Feature.Slug)
		assert.NotEmpty(t, tpl.Feature.Fields)
		assert.NotEmpty(t, tpl.Feature.UISchema.ListView)
		assert.Empty(t, tpl.Feature.DanglingPlacements())
		assert.Len(t, tpl.Feature.AccessControls, len(entity.Roles))
		assert.NotEmpty(t, tpl.Details)
	}

	templates[0].Feature.Name = "mutated"
	assert.Equal(t, "Safety Inspections", f.registry.Templates()[0].Feature.Name)
}

func TestRegistry_InstantiateFromTemplate(t *testing.T) {
	f := newFixture()
	example, err := f.registry.TemplateBySlug("vendor-management")
	require.NoError(t, err)

	d := f.registry.InstantiateFromTemplate(example)
	copied := d.Definition()

	assert.False(t, d.Editing())
	assert.Equal(t, uuid.Nil, copied.Id)
	assert.Equal(t, "Vendor Management (Copy)", copied.Name)
	assert.Equal(t, "vendor-management-copy", copied.Slug)
	if diff := cmp.Diff(example.Fields, copied.Fields); diff != "" {
		t.Errorf("fields mismatch (-example +copy):\n%s", diff)
	}
	if diff := cmp.Diff(example.UISchema, copied.UISchema); diff != "" {
		t.Errorf("ui schema mismatch (-example +copy):\n%s", diff)
	}
	assert.Equal(t, example.AccessControls, copied.AccessControls)

	d.RemoveField(0)
	d.SetAccessControl(entity.RoleViewer, entity.PermissionRead, false)
	assert.NotEqual(t, len(example.Fields), len(d.Definition().Fields))
	assert.True(t, example.AccessControls.Allows(entity.RoleViewer, entity.PermissionRead))

	saved, err := f.registry.Save(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "vendor-management-copy", saved.Slug)
}

func TestRegistry_TemplateBySlugUnknown(t *testing.T) {
	f := newFixture()

	_, err := f.registry.TemplateBySlug("work-orders")

	assert.True(t, apperror.HasCode(err, apperror.CodeTemplateNotFound))
}

func TestRegistry_RehydrateRegistersStoredFeatures(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.registry.Save(ctx, namedDraft(t, "Safety Inspections"))
	require.NoError(t, err)
	_, err = f.registry.Save(ctx, namedDraft(t, "Vendor Management"))
	require.NoError(t, err)

	composer := navigation.NewComposer(navigation.DefaultTree())
	restarted := builder.NewRegistry(
		memory.NewRepositoryFactory(f.store),
		feature.NewManager(),
		composer,
		events.NewNatsPublisher(nil, logger.NewNopLogger()),
		nil,
		logger.NewNopLogger(),
	)

	count, err := restarted.Rehydrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	if diff := cmp.Diff(f.composer.Compose(), composer.Compose()); diff != "" {
		t.Errorf("rehydrated tree mismatch (-live +rehydrated):\n%s", diff)
	}
}

func TestRegistry_ComposeScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.registry.Save(ctx, namedDraft(t, "Safety Inspections"))
	require.NoError(t, err)
	_, err = f.registry.Save(ctx, namedDraft(t, "Vendor Management"))
	require.NoError(t, err)

	tree := f.composer.Compose()

	var group *entity.NavigationItem
	for _, item := range tree {
		if item.Name != navigation.AdminGroupName {
			continue
		}
		for i := range item.SubItems {
			if item.SubItems[i].Name == navigation.CustomModulesGroupName {
				group = &item.SubItems[i]
			}
		}
	}
	require.NotNil(t, group)
	require.Len(t, group.SubItems, 2)
	assert.Equal(t, "/custom/safety-inspections", group.SubItems[0].Href)
	assert.Equal(t, "/custom/vendor-management", group.SubItems[1].Href)
}
