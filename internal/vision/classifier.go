// Package vision loads the crop-disease classifier artifact and prepares
// uploaded images for it. The model is loaded once at process start and is
// safe for concurrent read-only use.
package vision

import (
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
)

// Classifier maps a preprocessed image tensor to a probability vector,
// index-aligned with Classes.
type Classifier interface {
	Predict(tensor []float32) ([]float32, error)
	Classes() []string
}

// Artifact is the on-disk model format: a linear softmax head exported from
// the trained network.
type Artifact struct {
	// Classes overrides PlantVillageClasses when non-empty.
	Classes  []string
	InputDim int
	Weights  [][]float32
	Bias     []float32
}

// Model is an immutable, loaded classifier.
type Model struct {
	classes  []string
	inputDim int
	weights  [][]float32
	bias     []float32
}

// Load reads and validates a gob-encoded Artifact.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	var a Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}

	classes := a.Classes
	if len(classes) == 0 {
		classes = PlantVillageClasses
	}

	if a.InputDim <= 0 {
		return nil, errors.New("model artifact has no input dimension")
	}
	if len(a.Weights) != len(classes) {
		return nil, fmt.Errorf("model artifact has %d weight rows for %d classes", len(a.Weights), len(classes))
	}
	if len(a.Bias) != len(classes) {
		return nil, fmt.Errorf("model artifact has %d bias terms for %d classes", len(a.Bias), len(classes))
	}
	for i, row := range a.Weights {
		if len(row) != a.InputDim {
			return nil, fmt.Errorf("weight row %d has %d values, want %d", i, len(row), a.InputDim)
		}
	}

	return &Model{
		classes:  classes,
		inputDim: a.InputDim,
		weights:  a.Weights,
		bias:     a.Bias,
	}, nil
}

// Save writes a gob-encoded Artifact.
func Save(path string, a *Artifact) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(a)
}

func (m *Model) Classes() []string {
	return m.classes
}

// Predict runs the linear head over the tensor and returns softmax
// probabilities.
func (m *Model) Predict(tensor []float32) ([]float32, error) {
	if len(tensor) != m.inputDim {
		return nil, fmt.Errorf("tensor has %d values, model expects %d", len(tensor), m.inputDim)
	}

	logits := make([]float64, len(m.weights))
	for i, row := range m.weights {
		sum := float64(m.bias[i])
		for j, w := range row {
			sum += float64(w) * float64(tensor[j])
		}
		logits[i] = sum
	}

	// Stable softmax.
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}
	var total float64
	probs := make([]float32, len(logits))
	exps := make([]float64, len(logits))
	for i, l := range logits {
		exps[i] = math.Exp(l - maxLogit)
		total += exps[i]
	}
	for i := range exps {
		probs[i] = float32(exps[i] / total)
	}
	return probs, nil
}

// ArgMax returns the index and value of the largest probability.
func ArgMax(probs []float32) (int, float32) {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best, probs[best]
}
