package controllers

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindImages(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Slides")
	other := env.createProject(t, "Other")
	img := env.createImage(t, project.ID)
	env.createImage(t, other.ID)

	w := env.get(fmt.Sprintf("/image/%d/", project.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []ImageResponse{{ID: img.ID, ImageFile: img.ImageFile}}, decode[[]ImageResponse](t, w))

	w = env.get("/image/999/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.get("/image/abc/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartImage(t *testing.T, field string, name string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, name)
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestCreateImage(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Slides")

	body, contentType := multipartImage(t, "image_file", "slide.png")
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/image/%d/", project.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[ImageResponse](t, w)
	assert.NotZero(t, created.ID)
	assert.True(t, strings.HasSuffix(created.ImageFile, ".png"))
	assert.Equal(t, filepath.Join(env.mediaRoot, "images"), filepath.Dir(created.ImageFile))
	_, err := os.Stat(created.ImageFile)
	assert.NoError(t, err)

	images := decode[[]ImageResponse](t, env.get(fmt.Sprintf("/image/%d/", project.ID)))
	assert.Equal(t, []ImageResponse{created}, images)
}

func TestCreateImageErrors(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Slides")

	body, contentType := multipartImage(t, "image_file", "slide.png")
	req := httptest.NewRequest(http.MethodPost, "/image/999/", body)
	req.Header.Set("Content-Type", contentType)
	assert.Equal(t, http.StatusNotFound, env.do(req).Code)

	body, contentType = multipartImage(t, "file", "slide.png")
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/image/%d/", project.ID), body)
	req.Header.Set("Content-Type", contentType)
	assert.Equal(t, http.StatusBadRequest, env.do(req).Code)

	_, err := os.Stat(filepath.Join(env.mediaRoot, "images"))
	assert.True(t, os.IsNotExist(err))
}
