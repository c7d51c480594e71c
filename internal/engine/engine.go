// Package engine learns product associations from co-occurrence pairs and
// answers top-N recommendation queries against the trained table.
package engine

import (
	"sync"
	"time"
)

// DatasetSource identifies where the current training data came from.
type DatasetSource string

const (
	SourceDefault  DatasetSource = "default"
	SourceUploaded DatasetSource = "uploaded"
)

// TrainingState is the externally visible lifecycle state of an Engine.
type TrainingState struct {
	Trained bool          `json:"is_trained"`
	Source  DatasetSource `json:"dataset_source"`
}

// Stats describes the snapshot currently served by an Engine.
type Stats struct {
	Pairs     int       `json:"pairs"`
	Inputs    int       `json:"inputs"`
	Products  int       `json:"products"`
	TrainedAt *time.Time `json:"trained_at,omitempty"`
}

// snapshot is immutable once published.
type snapshot struct {
	table     AssociationTable
	products  []int
	pairs     int
	trainedAt time.Time
}

// Engine owns one association table and swaps it atomically on retrain.
// Reads run concurrently; a retrain blocks readers only for the swap.
type Engine struct {
	trainMu sync.Mutex

	mu      sync.RWMutex
	dataset string
	source  DatasetSource
	snap    *snapshot
	topN    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithTopN sets the number of results Predict returns.
func WithTopN(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

// WithDefaultDataset replaces the built-in dataset used before any upload.
func WithDefaultDataset(csvText string) Option {
	return func(e *Engine) {
		e.dataset = csvText
	}
}

// New creates an untrained engine backed by the default dataset.
func New(opts ...Option) *Engine {
	e := &Engine{
		dataset: defaultDataset,
		source:  SourceDefault,
		topN:    DefaultTopN,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Train rebuilds the table from the current dataset and publishes it.
// On error the previously published table stays in place.
func (e *Engine) Train() error {
	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	e.mu.RLock()
	dataset := e.dataset
	e.mu.RUnlock()

	pairs, err := Parse(dataset)
	if err != nil {
		return err
	}
	table := Build(pairs)

	next := &snapshot{
		table:     table,
		products:  table.Products(),
		pairs:     len(pairs),
		trainedAt: time.Now(),
	}

	e.mu.Lock()
	e.snap = next
	e.mu.Unlock()
	return nil
}

// SetCSVData stores a new dataset for the next Train. The served table and
// the trained flag are left untouched until then.
func (e *Engine) SetCSVData(csvText string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dataset = csvText
	e.source = SourceUploaded
}

// Predict returns up to the configured top-N recommendations for inputs.
func (e *Engine) Predict(inputs []int) ([]int, error) {
	return e.PredictN(inputs, e.topN)
}

// PredictN is Predict with an explicit result limit.
func (e *Engine) PredictN(inputs []int, topN int) ([]int, error) {
	snap := e.current()
	if snap == nil {
		return nil, ErrNotTrained
	}
	return Predict(snap.table, inputs, topN)
}

// IsTrained reports whether at least one Train has succeeded.
func (e *Engine) IsTrained() bool {
	return e.current() != nil
}

// State returns the trained flag together with the dataset source.
func (e *Engine) State() TrainingState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return TrainingState{
		Trained: e.snap != nil,
		Source:  e.source,
	}
}

// GetAllProducts returns the sorted product universe of the served table.
func (e *Engine) GetAllProducts() ([]int, error) {
	snap := e.current()
	if snap == nil {
		return nil, ErrNotTrained
	}
	products := make([]int, len(snap.products))
	copy(products, snap.products)
	return products, nil
}

// Stats returns counts for the served table, zero when untrained.
func (e *Engine) Stats() Stats {
	snap := e.current()
	if snap == nil {
		return Stats{}
	}
	trainedAt := snap.trainedAt
	return Stats{
		Pairs:     snap.pairs,
		Inputs:    snap.table.Len(),
		Products:  len(snap.products),
		TrainedAt: &trainedAt,
	}
}

func (e *Engine) current() *snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}
