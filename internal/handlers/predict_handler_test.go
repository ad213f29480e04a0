package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cropcareai/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassifier struct {
	calls   int
	probs   []float32
	classes []string
}

func (f *fakeClassifier) Predict(tensor []float32) ([]float32, error) {
	f.calls++
	return f.probs, nil
}

func (f *fakeClassifier) Classes() []string { return f.classes }

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	return f.reply, f.err
}

func newPredictApp(classifier *fakeClassifier, chat *fakeCompleter) *fiber.App {
	app := fiber.New()
	app.Post("/predict", NewPredictHandler(classifier, chat).Predict)
	return app
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 20, G: 180, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPredictRejectsUnsupportedExtension(t *testing.T) {
	classifier := &fakeClassifier{classes: []string{"healthy"}}
	app := newPredictApp(classifier, &fakeCompleter{})

	body, contentType := multipartUpload(t, "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, classifier.calls, "classifier must not run on rejected uploads")
}

func TestPredictMissingFile(t *testing.T) {
	app := newPredictApp(&fakeClassifier{}, &fakeCompleter{})

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPredictReturnsDiagnosisAndRemedy(t *testing.T) {
	classifier := &fakeClassifier{
		probs:   []float32{0.1, 0.9},
		classes: []string{"Tomato___healthy", "Tomato___Late_blight"},
	}
	app := newPredictApp(classifier, &fakeCompleter{reply: "Apply copper fungicide."})

	body, contentType := multipartUpload(t, "leaf.png", pngBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.PredictResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Tomato___Late_blight", out.Prediction)
	assert.InDelta(t, 90.0, out.Confidence, 0.01)
	assert.Equal(t, "Apply copper fungicide.", out.Remedy)
	assert.Equal(t, 1, classifier.calls)
}

func TestPredictRemedyFallback(t *testing.T) {
	classifier := &fakeClassifier{
		probs:   []float32{1},
		classes: []string{"Apple___Apple_scab"},
	}
	app := newPredictApp(classifier, &fakeCompleter{err: errors.New("upstream down")})

	body, contentType := multipartUpload(t, "leaf.jpg", pngBytes(t))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.PredictResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Apple___Apple_scab", out.Prediction)
	assert.Equal(t, remedyFallback, out.Remedy)
}
