package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tacodelsol/tacodelsol-api/models"
)

func TestGetMenu(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []models.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Categories)
}

func TestGetMenuItem(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/menu/street-taco", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/menu/lobster-roll", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Every customization group in the catalog must have a known type, and every
// remove group must offer the synthetic "everything" option.
func TestCatalog_CustomizationGroupsWellFormed(t *testing.T) {
	for _, category := range models.Catalog {
		for _, item := range category.Items {
			for _, group := range item.Customizations {
				switch group.Type {
				case models.CustomizationSelect, models.CustomizationAdd:
				case models.CustomizationRemove:
					found := false
					for _, opt := range group.Options {
						if opt.Id == models.EverythingOptionId {
							found = true
						}
					}
					assert.True(t, found, "remove group %s on %s lacks the everything option", group.Id, item.Id)
				default:
					t.Errorf("unknown customization type %q on %s/%s", group.Type, item.Id, group.Id)
				}
				assert.NotEmpty(t, group.Options, "group %s on %s has no options", group.Id, item.Id)
			}
		}
	}
}
