package activitylog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/inventory-admin/internal/models"
)

// gadget is a plain Subject with no overrides.
type gadget struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Secret   string `json:"-"`
}

func (gadget) LogName() string     { return "gadget" }
func (g *gadget) SubjectKey() uint { return g.ID }

// fancyGadget overrides description, tag and properties.
type fancyGadget struct {
	gadget
}

func (fancyGadget) LogDescription(event string) string {
	return "gadget was " + event
}

func (fancyGadget) LogTag() string { return "inventory" }

func (fancyGadget) LogProperties(event string, attrs, old map[string]any) map[string]any {
	return map[string]any{"attributes": attrs, "event": event}
}

func props(t *testing.T, entry *models.ActivityLog) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(entry.Properties, &out))
	return out
}

func TestBuildEntryCreated(t *testing.T) {
	causer := &models.User{ID: 42}
	g := &gadget{ID: 7, Name: "Widget", Quantity: 10, Secret: "hidden"}

	entry, err := buildEntry(causer, g, EventCreated, nil)
	require.NoError(t, err)

	assert.Equal(t, "created gadget", entry.Description)
	assert.Equal(t, "gadget", entry.LogName)

	require.NotNil(t, entry.SubjectType)
	assert.Equal(t, "gadget", *entry.SubjectType)
	require.NotNil(t, entry.SubjectID)
	assert.Equal(t, uint(7), *entry.SubjectID)

	require.NotNil(t, entry.CauserType)
	assert.Equal(t, "user", *entry.CauserType)
	require.NotNil(t, entry.CauserID)
	assert.Equal(t, uint(42), *entry.CauserID)

	p := props(t, entry)
	attrs, ok := p["attributes"].(map[string]any)
	require.True(t, ok, "properties must always carry an attributes snapshot")
	assert.Equal(t, "Widget", attrs["name"])
	assert.Equal(t, float64(10), attrs["quantity"])
	assert.NotContains(t, attrs, "Secret", "json-hidden fields stay out of the log")
	assert.NotContains(t, p, "old", "created entries carry no old snapshot")
}

func TestBuildEntryUpdatedCarriesOldSnapshot(t *testing.T) {
	g := &gadget{ID: 7, Name: "Widget", Quantity: 5}
	old := map[string]any{"id": float64(7), "name": "Widget", "quantity": float64(10)}

	entry, err := buildEntry(nil, g, EventUpdated, old)
	require.NoError(t, err)

	p := props(t, entry)
	assert.Equal(t, float64(5), p["attributes"].(map[string]any)["quantity"])
	assert.Equal(t, float64(10), p["old"].(map[string]any)["quantity"])
}

func TestBuildEntryNilCauser(t *testing.T) {
	g := &gadget{ID: 1}

	entry, err := buildEntry(nil, g, EventDeleted, nil)
	require.NoError(t, err)

	assert.Nil(t, entry.CauserType)
	assert.Nil(t, entry.CauserID)
	assert.Equal(t, "deleted gadget", entry.Description)
}

func TestBuildEntryOverrides(t *testing.T) {
	g := &fancyGadget{gadget{ID: 3, Name: "Widget"}}

	entry, err := buildEntry(nil, g, EventCreated, nil)
	require.NoError(t, err)

	assert.Equal(t, "gadget was created", entry.Description)
	assert.Equal(t, "inventory", entry.LogName, "tag override changes log_name only")

	require.NotNil(t, entry.SubjectType)
	assert.Equal(t, "gadget", *entry.SubjectType, "subject kind is not affected by the tag")

	p := props(t, entry)
	assert.Equal(t, "created", p["event"])
}

func TestSnapshotDropsAssociations(t *testing.T) {
	item := &models.Item{
		ID:       1,
		Name:     "Bolt",
		SKU:      "BLT-1",
		Quantity: 3,
		Room:     models.Room{ID: 2, Name: "Main"},
	}

	attrs, err := Snapshot(item)
	require.NoError(t, err)

	assert.Equal(t, "Bolt", attrs["name"])
	assert.NotContains(t, attrs, "room", "preloaded associations stay out of the snapshot")
	assert.NotContains(t, attrs, "category")
}

func TestSnapshotHidesPasswordHash(t *testing.T) {
	user := &models.User{ID: 1, Name: "Ana", Email: "ana@example.com", PasswordHash: "bcrypt..."}

	attrs, err := Snapshot(user)
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", attrs["email"])
	for k := range attrs {
		assert.NotContains(t, k, "password")
	}
}
