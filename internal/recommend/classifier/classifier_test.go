// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package classifier

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/adinterest/internal/models"
	"github.com/tomtom215/adinterest/internal/recommend/features"
	"github.com/tomtom215/adinterest/internal/recommend/storage"
)

// fastConfig keeps forest training quick in tests that do not depend on the
// default ensemble size.
func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.NumTrees = 15
	cfg.SyntheticSamples = 400
	return cfg
}

func newTestClassifier(t *testing.T, cfg Config, path string) *Classifier {
	t.Helper()
	if path == "" {
		path = filepath.Join(t.TempDir(), "model.gob.gz")
	}
	store, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	c, err := New(cfg, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func sampleEvents() []models.InteractionEvent {
	ts := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var events []models.InteractionEvent
	for i := 0; i < 12; i++ {
		events = append(events, models.InteractionEvent{
			UserID:          "u1",
			SessionID:       "s1",
			EventType:       models.EventClick,
			ContentCategory: "sports",
			Duration:        25,
			Timestamp:       ts.Add(time.Duration(i) * time.Minute),
		})
	}
	events = append(events, models.InteractionEvent{
		UserID:          "u1",
		SessionID:       "s2",
		EventType:       models.EventPageView,
		ContentCategory: "technology",
		Duration:        40,
		Timestamp:       ts.Add(time.Hour),
	})
	return events
}

// failingStore fails every save.
type failingStore struct{}

func (failingStore) Save(interface{}, storage.Metadata) error { return errors.New("disk full") }
func (failingStore) Load(interface{}) (*storage.Metadata, error) {
	return nil, storage.ErrArtifactNotFound
}
func (failingStore) Metadata() (*storage.Metadata, error) {
	return nil, storage.ErrArtifactNotFound
}
func (failingStore) Exists() bool  { return false }
func (failingStore) Delete() error { return nil }
func (failingStore) Path() string  { return "/nonexistent/model.gob.gz" }

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero trees", func(c *Config) { c.NumTrees = 0 }},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"min split below 2", func(c *Config) { c.MinSamplesSplit = 1 }},
		{"zero leaf", func(c *Config) { c.MinSamplesLeaf = 0 }},
		{"too few samples", func(c *Config) { c.SyntheticSamples = 3 }},
		{"test fraction 0", func(c *Config) { c.TestFraction = 0 }},
		{"test fraction 1", func(c *Config) { c.TestFraction = 1 }},
		{"empty version", func(c *Config) { c.Version = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg, failingStore{}, zerolog.Nop()); err == nil {
				t.Error("New() should reject invalid config")
			}
		})
	}
}

func TestClassifier_PredictNotTrained(t *testing.T) {
	c := newTestClassifier(t, fastConfig(), "")

	_, err := c.Predict(sampleEvents())
	if !errors.Is(err, models.ErrNotTrained) {
		t.Fatalf("Predict() error = %v, want ErrNotTrained", err)
	}
	if c.IsTrained() {
		t.Error("IsTrained() = true before training")
	}

	st := c.Status()
	if st.Trained {
		t.Error("Status().Trained = true before training")
	}
	if len(st.Categories) != 8 || len(st.FeatureNames) != 19 {
		t.Errorf("Status() categories/features = %d/%d", len(st.Categories), len(st.FeatureNames))
	}
}

func TestClassifier_TrainIsDeterministic(t *testing.T) {
	c1 := newTestClassifier(t, DefaultConfig(), "")
	c2 := newTestClassifier(t, DefaultConfig(), "")

	r1, err := c1.Train(context.Background(), nil)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	r2, err := c2.Train(context.Background(), nil)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	if r1.Accuracy != r2.Accuracy {
		t.Errorf("accuracy differs between runs: %v vs %v", r1.Accuracy, r2.Accuracy)
	}
	if r1.Accuracy <= 0.2 || r1.Accuracy > 1 {
		t.Errorf("accuracy = %v, expected well above chance", r1.Accuracy)
	}
	if r1.TrainSamples+r1.TestSamples != 1000 {
		t.Errorf("split sizes = %d+%d, want 1000 total", r1.TrainSamples, r1.TestSamples)
	}
	if !r1.Synthetic {
		t.Error("Synthetic = false for nil dataset")
	}
}

func TestClassifier_PredictAfterTrain(t *testing.T) {
	c := newTestClassifier(t, fastConfig(), "")
	if _, err := c.Train(context.Background(), nil); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	inf, err := c.Predict(sampleEvents())
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if len(inf.InterestScores) != features.NumCategories {
		t.Fatalf("len(InterestScores) = %d, want %d", len(inf.InterestScores), features.NumCategories)
	}
	for _, cat := range features.Categories() {
		score, ok := inf.InterestScores[cat]
		if !ok {
			t.Errorf("InterestScores missing %q", cat)
		}
		if score > inf.InterestScores[inf.PrimaryInterest] {
			t.Errorf("%s score %v exceeds primary %s score %v", cat, score, inf.PrimaryInterest, inf.InterestScores[inf.PrimaryInterest])
		}
	}
	if inf.Confidence != inf.InterestScores[inf.PrimaryInterest] {
		t.Errorf("Confidence = %v, want primary score %v", inf.Confidence, inf.InterestScores[inf.PrimaryInterest])
	}
	if inf.Confidence < 0 || inf.Confidence > 1 {
		t.Errorf("Confidence = %v out of range", inf.Confidence)
	}
	if inf.FeaturesUsed["total_interactions"] != 13 {
		t.Errorf("FeaturesUsed[total_interactions] = %v, want 13", inf.FeaturesUsed["total_interactions"])
	}

	st := c.Status()
	if !st.Trained || st.ModelKind != ModelKind || st.NumTrees != 15 || st.TrainedAt == nil {
		t.Errorf("Status() = %+v", st)
	}
}

func TestClassifier_ArtifactRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob.gz")
	trained := newTestClassifier(t, fastConfig(), path)
	if _, err := trained.Train(context.Background(), nil); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	before, err := trained.Predict(sampleEvents())
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	fresh := newTestClassifier(t, fastConfig(), path)
	if err := fresh.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	after, err := fresh.Predict(sampleEvents())
	if err != nil {
		t.Fatalf("Predict() after reload error = %v", err)
	}

	if before.PrimaryInterest != after.PrimaryInterest {
		t.Errorf("PrimaryInterest = %q after reload, want %q", after.PrimaryInterest, before.PrimaryInterest)
	}
	if before.Confidence != after.Confidence {
		t.Errorf("Confidence = %v after reload, want %v", after.Confidence, before.Confidence)
	}
	for cat, score := range before.InterestScores {
		if after.InterestScores[cat] != score {
			t.Errorf("InterestScores[%s] = %v after reload, want %v", cat, after.InterestScores[cat], score)
		}
	}
}

func TestClassifier_LoadOrTrain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob.gz")

	first := newTestClassifier(t, fastConfig(), path)
	trained, err := first.LoadOrTrain(context.Background())
	if err != nil {
		t.Fatalf("LoadOrTrain() error = %v", err)
	}
	if !trained {
		t.Error("LoadOrTrain() should train when no artifact exists")
	}

	second := newTestClassifier(t, fastConfig(), path)
	trained, err = second.LoadOrTrain(context.Background())
	if err != nil {
		t.Fatalf("LoadOrTrain() error = %v", err)
	}
	if trained {
		t.Error("LoadOrTrain() should load the existing artifact")
	}
	if !second.IsTrained() {
		t.Error("IsTrained() = false after load")
	}
}

func TestClassifier_LoadIncompatibleArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob.gz")
	store, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	stale := &Artifact{
		ModelKind:    ModelKind,
		Version:      "0.9.0",
		Categories:   []string{"sports", "technology"},
		FeatureNames: []string{"sports_clicks", "technology_clicks"},
	}
	if err := store.Save(stale, storage.Metadata{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	c := newTestClassifier(t, fastConfig(), path)
	if err := c.Load(context.Background()); !errors.Is(err, ErrIncompatibleArtifact) {
		t.Fatalf("Load() error = %v, want ErrIncompatibleArtifact", err)
	}
	if c.IsTrained() {
		t.Fatal("incompatible artifact must not be published")
	}

	trained, err := c.LoadOrTrain(context.Background())
	if err != nil || !trained {
		t.Fatalf("LoadOrTrain() = %v, %v; want retrain", trained, err)
	}

	meta, err := c.StoredArtifact()
	if err != nil {
		t.Fatalf("StoredArtifact() error = %v", err)
	}
	if meta == nil || meta.Version != fastConfig().Version || meta.Checksum == "" {
		t.Errorf("StoredArtifact() = %+v, want the retrained artifact", meta)
	}
}

func TestClassifier_StoredArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob.gz")
	c := newTestClassifier(t, fastConfig(), path)

	meta, err := c.StoredArtifact()
	if err != nil || meta != nil {
		t.Fatalf("StoredArtifact() before training = %+v, %v; want nil, nil", meta, err)
	}

	res, err := c.Train(context.Background(), nil)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	meta, err = c.StoredArtifact()
	if err != nil {
		t.Fatalf("StoredArtifact() error = %v", err)
	}
	if meta == nil {
		t.Fatal("StoredArtifact() = nil after Train()")
	}
	if meta.ModelKind != ModelKind || meta.Accuracy != res.Accuracy || meta.TrainSamples != res.TrainSamples {
		t.Errorf("StoredArtifact() = %+v, want kind %s accuracy %v", meta, ModelKind, res.Accuracy)
	}
}

func TestClassifier_FailedTrainingLeavesStateUnchanged(t *testing.T) {
	c := newTestClassifier(t, fastConfig(), "")
	if _, err := c.Train(context.Background(), nil); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	before := c.Status()
	beforePred, err := c.Predict(sampleEvents())
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	tests := []struct {
		name string
		data *Dataset
	}{
		{"empty dataset", &Dataset{}},
		{"label count mismatch", &Dataset{X: [][]float64{make([]float64, 19)}, Labels: nil}},
		{"wrong width", &Dataset{X: [][]float64{{1, 2}, {3, 4}}, Labels: []string{"sports", "sports"}}},
		{"unknown label", &Dataset{X: [][]float64{make([]float64, 19), make([]float64, 19)}, Labels: []string{"gardening", "gardening"}}},
		{"singleton class", &Dataset{
			X:      [][]float64{make([]float64, 19), make([]float64, 19), make([]float64, 19)},
			Labels: []string{"sports", "sports", "food"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Train(context.Background(), tt.data)
			if !errors.Is(err, models.ErrTraining) {
				t.Fatalf("Train() error = %v, want training error", err)
			}

			after := c.Status()
			if !after.TrainedAt.Equal(*before.TrainedAt) || after.Accuracy != before.Accuracy {
				t.Errorf("status changed after failed training: %+v -> %+v", before, after)
			}
			pred, err := c.Predict(sampleEvents())
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if pred.Confidence != beforePred.Confidence || pred.PrimaryInterest != beforePred.PrimaryInterest {
				t.Error("prediction changed after failed training")
			}
		})
	}
}

func TestClassifier_PersistenceFailure(t *testing.T) {
	c, err := New(fastConfig(), failingStore{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.Train(context.Background(), nil)
	if !errors.Is(err, models.ErrPersistence) {
		t.Fatalf("Train() error = %v, want persistence error", err)
	}
	if c.IsTrained() {
		t.Error("model must not be published when the artifact cannot be saved")
	}
}

func TestClassifier_TrainingInProgress(t *testing.T) {
	c := newTestClassifier(t, fastConfig(), "")

	c.trainMu.Lock()
	_, err := c.Train(context.Background(), nil)
	c.trainMu.Unlock()

	if !errors.Is(err, ErrTrainingInProgress) {
		t.Fatalf("Train() error = %v, want ErrTrainingInProgress", err)
	}
	if !errors.Is(err, models.ErrTraining) {
		t.Errorf("Train() error kind = %q, want training", models.KindOf(err))
	}
}

func TestClassifier_TrainCanceled(t *testing.T) {
	c := newTestClassifier(t, fastConfig(), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Train(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Train() error = %v, want context.Canceled", err)
	}
	if c.IsTrained() {
		t.Error("canceled training must not publish a model")
	}
}

func TestClassifier_ConcurrentPredictDuringRetrain(t *testing.T) {
	c := newTestClassifier(t, fastConfig(), "")
	if _, err := c.Train(context.Background(), nil); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	events := sampleEvents()
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				inf, err := c.Predict(events)
				if err != nil {
					t.Errorf("Predict() during retrain error = %v", err)
					return
				}
				if len(inf.InterestScores) != features.NumCategories {
					t.Errorf("partial prediction observed: %v", inf.InterestScores)
					return
				}
			}
		}()
	}

	if _, err := c.Train(context.Background(), nil); err != nil {
		t.Errorf("retrain error = %v", err)
	}
	close(done)
	wg.Wait()
}

func TestClassifier_TrainWithSuppliedDataset(t *testing.T) {
	c := newTestClassifier(t, fastConfig(), "")
	data := GenerateSynthetic(200, 7)
	// Supplied labels may use synonyms.
	for i, l := range data.Labels {
		if l == "tech" {
			data.Labels[i] = "technology"
		}
	}

	res, err := c.Train(context.Background(), data)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if res.Synthetic {
		t.Error("Synthetic = true for supplied dataset")
	}
	if res.TrainSamples+res.TestSamples != 200 {
		t.Errorf("split sizes = %d+%d, want 200", res.TrainSamples, res.TestSamples)
	}
}

func TestClassifier_PredictVectorWrongLength(t *testing.T) {
	c := newTestClassifier(t, fastConfig(), "")
	if _, err := c.Train(context.Background(), nil); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if _, err := c.PredictVector(features.Vector{1, 2, 3}); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("PredictVector() error = %v, want invalid input", err)
	}
}
