package vision

import (
	"math"
	"path/filepath"
	"testing"
)

func writeArtifact(t *testing.T, a *Artifact) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.bin")
	if err := Save(path, a); err != nil {
		t.Fatalf("save artifact: %v", err)
	}
	return path
}

func TestLoadAndPredict(t *testing.T) {
	path := writeArtifact(t, &Artifact{
		Classes:  []string{"healthy", "blight"},
		InputDim: 3,
		Weights:  [][]float32{{1, 0, 0}, {0, 1, 0}},
		Bias:     []float32{0, 0},
	})

	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	probs, err := m.Predict([]float32{5, 0, 0})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	var sum float64
	for _, p := range probs {
		sum += float64(p)
	}
	if math.Abs(sum-1) > 1e-5 {
		t.Errorf("probabilities sum to %f, want 1", sum)
	}

	idx, conf := ArgMax(probs)
	if idx != 0 {
		t.Errorf("argmax = %d, want 0", idx)
	}
	if conf <= 0.5 {
		t.Errorf("confidence = %f, want > 0.5", conf)
	}
	if m.Classes()[idx] != "healthy" {
		t.Errorf("class = %q, want healthy", m.Classes()[idx])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.bin")); err == nil {
		t.Error("expected an error for a missing artifact")
	}
}

func TestLoadDefaultsToPlantVillageClasses(t *testing.T) {
	weights := make([][]float32, len(PlantVillageClasses))
	bias := make([]float32, len(PlantVillageClasses))
	for i := range weights {
		weights[i] = []float32{0, 0}
	}

	m, err := Load(writeArtifact(t, &Artifact{InputDim: 2, Weights: weights, Bias: bias}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(m.Classes()); got != len(PlantVillageClasses) {
		t.Errorf("classes = %d, want %d", got, len(PlantVillageClasses))
	}
}

func TestLoadRejectsDimensionMismatch(t *testing.T) {
	tests := []struct {
		name string
		a    Artifact
	}{
		{"no input dim", Artifact{Classes: []string{"a"}, Weights: [][]float32{{1}}, Bias: []float32{0}}},
		{"weight rows", Artifact{Classes: []string{"a", "b"}, InputDim: 1, Weights: [][]float32{{1}}, Bias: []float32{0, 0}}},
		{"bias terms", Artifact{Classes: []string{"a"}, InputDim: 1, Weights: [][]float32{{1}}, Bias: []float32{0, 0}}},
		{"row width", Artifact{Classes: []string{"a"}, InputDim: 2, Weights: [][]float32{{1}}, Bias: []float32{0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeArtifact(t, &tt.a)); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestPredictRejectsWrongTensorLength(t *testing.T) {
	path := writeArtifact(t, &Artifact{
		Classes:  []string{"a"},
		InputDim: 3,
		Weights:  [][]float32{{1, 2, 3}},
		Bias:     []float32{0},
	})
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := m.Predict([]float32{1, 2}); err == nil {
		t.Error("expected an error for short tensor")
	}
}
