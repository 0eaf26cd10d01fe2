package handler

import (
	"context"
	"net/http"
	"testing"

	"medicamp_api/internal/app/service"
	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCamps_ParsesQuery(t *testing.T) {
	tests := []struct {
		name string
		path string
		want model.CampListQuery
	}{
		{"defaults", "/camps", model.CampListQuery{}},
		{"home", "/camps?home=true", model.CampListQuery{Home: true}},
		{"all params", "/camps?sort=Camp%20Fees&search=eye&page=3&available=true",
			model.CampListQuery{Sort: "Camp Fees", Search: "eye", Page: 3, Available: true}},
		{"bad page", "/camps?page=abc", model.CampListQuery{}},
		{"negative page", "/camps?page=-2", model.CampListQuery{}},
		{"huge page", "/camps?page=1844674407370955161", model.CampListQuery{Page: model.MaxPage}},
		{"overflowing page", "/camps?page=99999999999999999999", model.CampListQuery{}},
		{"home must be literal true", "/camps?home=1", model.CampListQuery{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.CampListQuery
			svc := &mockCampService{
				listFn: func(_ context.Context, q model.CampListQuery) ([]model.Camp, int64, error) {
					got = q
					return []model.Camp{{CampName: "A"}}, 42, nil
				},
			}
			rec := doRequest(t, newTestMux(NewCampHandler(svc, allowAdmins())), http.MethodGet, tt.path, "", "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, got)
			body := decodeJSON(t, rec)
			assert.Equal(t, float64(42), body["total"])
			assert.Len(t, body["data"], 1)
		})
	}
}

func TestListCamps_EmptyIsArray(t *testing.T) {
	svc := &mockCampService{
		listFn: func(context.Context, model.CampListQuery) ([]model.Camp, int64, error) { return nil, 0, nil },
	}
	rec := doRequest(t, newTestMux(NewCampHandler(svc, allowAdmins())), http.MethodGet, "/camps", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{}, decodeJSON(t, rec)["data"])
}

func TestGetCamp_MissingIsNull(t *testing.T) {
	svc := &mockCampService{
		getFn: func(context.Context, string) (*model.Camp, error) { return nil, nil },
	}
	rec := doRequest(t, newTestMux(NewCampHandler(svc, allowAdmins())), http.MethodGet, "/camp/unknown-slug", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])
}

func TestCreateCamp_AdminOnly(t *testing.T) {
	created := 0
	svc := &mockCampService{
		createFn: func(_ context.Context, req service.CreateCampRequest) (*model.Camp, error) {
			created++
			return &model.Camp{CampName: req.CampName}, nil
		},
	}
	h := newTestMux(NewCampHandler(svc, allowAdmins("root@example.com")))
	body := `{"campName":"Eye","date":"2024-01-01","location":"Dhaka"}`

	rec := doRequest(t, h, http.MethodPost, "/camps", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/camps", body, "user@example.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/camps", body, "root@example.com")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, created)
}

func TestUpdateAndDeleteCamp_MapErrors(t *testing.T) {
	svc := &mockCampService{
		updateFn: func(context.Context, string, model.CampUpdate) error {
			return common.Errorf("camp: %w", common.ErrNotFound)
		},
		deleteFn: func(context.Context, string) error {
			return common.Errorf("invalid camp id: %w", common.ErrBadRequest)
		},
	}
	h := newTestMux(NewCampHandler(svc, allowAdmins("root@example.com")))

	rec := doRequest(t, h, http.MethodPatch, "/update-camp/abc", `{"campFees":5}`, "root@example.com")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, "/delete-camp/abc", "", "root@example.com")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecentCamps(t *testing.T) {
	svc := &mockCampService{
		recentFn: func(context.Context) ([]model.Camp, error) {
			return []model.Camp{{CampName: "A"}, {CampName: "B"}}, nil
		},
	}
	rec := doRequest(t, newTestMux(NewCampHandler(svc, allowAdmins())), http.MethodGet, "/recent-camps", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON(t, rec)["data"], 2)
}
