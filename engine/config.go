package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Difficulty selects how hard the engine tries.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyNames = [...]string{"easy", "medium", "hard"}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty accepts "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	for i, n := range difficultyNames {
		if strings.EqualFold(s, n) {
			return Difficulty(i), nil
		}
	}
	return Medium, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

func (d Difficulty) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// targetDepth is the deepest iteration for a difficulty. Easy never searches.
func (d Difficulty) targetDepth() int {
	switch d {
	case Easy:
		return 1
	case Medium:
		return 3
	}
	return 7
}

// Options configures an Engine. Zero numeric fields fall back to the defaults,
// except LearningScale, where zero turns the learned move bias off.
type Options struct {
	Difficulty      Difficulty `json:"difficulty"`
	MaxDepth        int        `json:"max_depth"` // overrides the difficulty depth when > 0
	Workers         int        `json:"workers"`
	TTSizeMB        int        `json:"tt_size_mb"`
	DisableTT       bool       `json:"disable_tt"`
	QuiescenceDepth int        `json:"quiescence_depth"`
	SafetyFilter    bool       `json:"safety_filter"`
	SafetyMargin    int        `json:"safety_margin"` // centipawns
	UseBook         bool       `json:"use_book"`
	BookBestProb    float64    `json:"book_best_prob"`
	BookPlies       int        `json:"book_plies"`
	LearningRate    float64    `json:"learning_rate"`
	LearningScale   int        `json:"learning_scale"`
	BookPath        string     `json:"book_path"`
	WeightsPath     string     `json:"weights_path"`
	Seed            int64      `json:"seed"`
	PrintStats      bool       `json:"print_stats"`

	// Logger receives "info" lines. Nil discards them.
	Logger *log.Logger `json:"-"`
}

// DefaultOptions is a medium-strength engine with four workers.
func DefaultOptions() Options {
	return Options{
		Difficulty:      Medium,
		Workers:         4,
		TTSizeMB:        16,
		QuiescenceDepth: 3,
		SafetyFilter:    true,
		SafetyMargin:    150,
		UseBook:         true,
		BookBestProb:    0.85,
		BookPlies:       20,
		LearningRate:    0.1,
		LearningScale:   200,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Workers <= 0 {
		o.Workers = d.Workers
	}
	if o.TTSizeMB <= 0 {
		o.TTSizeMB = d.TTSizeMB
	}
	if o.QuiescenceDepth <= 0 {
		o.QuiescenceDepth = d.QuiescenceDepth
	}
	if o.SafetyMargin <= 0 {
		o.SafetyMargin = d.SafetyMargin
	}
	if o.BookBestProb <= 0 || o.BookBestProb > 1 {
		o.BookBestProb = d.BookBestProb
	}
	if o.BookPlies <= 0 {
		o.BookPlies = d.BookPlies
	}
	if o.LearningRate <= 0 || o.LearningRate > 1 {
		o.LearningRate = d.LearningRate
	}
	if o.LearningScale < 0 {
		o.LearningScale = 0
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	return o
}

func (o Options) depthLimit() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return o.Difficulty.targetDepth()
}

// LoadOptions reads JSON overrides on top of DefaultOptions.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := json.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse %s: %w", path, err)
	}
	return opts, nil
}
