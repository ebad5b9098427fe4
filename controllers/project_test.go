package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjects(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/project/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	first := env.createProject(t, "Slides")
	second := env.createProject(t, "Scans")

	w = env.get("/project/")
	require.Equal(t, http.StatusOK, w.Code)
	projects := decode[[]ProjectResponse](t, w)
	assert.Equal(t, []ProjectResponse{
		{ID: first.ID, Name: "Slides", Description: "Slides description"},
		{ID: second.ID, Name: "Scans", Description: "Scans description"},
	}, projects)
}

func TestCreateProject(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON("/project/", `{"name":"Slides","description":"H&E"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[ProjectResponse](t, w)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Slides", created.Name)

	w = env.postJSON("/project/", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	projects := decode[[]ProjectResponse](t, env.get("/project/"))
	assert.Len(t, projects, 1)
}

func TestInternalErrorsHideDetails(t *testing.T) {
	env := newTestEnv(t)
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := env.get("/project/")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "sql")
}
