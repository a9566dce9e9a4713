package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"

	"github.com/cafeassist/backend/internal/domain"
	log "github.com/sirupsen/logrus"
)

// tokenPattern keeps runs of two or more word characters
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// modelFile is the on-disk JSON layout of a linear tf-idf classifier
type modelFile struct {
	Version    int            `json:"version"`
	Labels     []string       `json:"labels"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Coef       [][]float64    `json:"coef"`
	Intercept  []float64      `json:"intercept"`
	Threshold  float64        `json:"threshold"`
}

// Model is a linear text classifier over l2-normalized tf-idf features.
// It is read-only after Load and safe for concurrent use.
type Model struct {
	labels     []domain.ClassifierLabel
	vocabulary map[string]int
	idf        []float64
	coef       [][]float64
	intercept  []float64
	threshold  float64
}

// Load reads and validates a model artifact
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelCorrupt, err)
	}

	if err := validate(&mf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelCorrupt, err)
	}

	labels := make([]domain.ClassifierLabel, len(mf.Labels))
	for i, l := range mf.Labels {
		labels[i] = domain.ParseClassifierLabel(l)
	}

	log.Infof("[CLASSIFIER] Loaded model %s: %d labels, %d terms", path, len(labels), len(mf.Vocabulary))

	return &Model{
		labels:     labels,
		vocabulary: mf.Vocabulary,
		idf:        mf.IDF,
		coef:       mf.Coef,
		intercept:  mf.Intercept,
		threshold:  mf.Threshold,
	}, nil
}

// LoadOrNil loads the model, logging and returning nil on any failure so the
// caller falls back to rule-only extraction
func LoadOrNil(path string) domain.IntentClassifier {
	m, err := Load(path)
	if err != nil {
		log.Warnf("[CLASSIFIER] Model unavailable, using rules only: %v", err)
		return nil
	}
	return m
}

func validate(mf *modelFile) error {
	n := len(mf.IDF)
	switch {
	case len(mf.Labels) == 0:
		return errors.New("no labels")
	case n == 0:
		return errors.New("empty idf vector")
	case len(mf.Coef) != len(mf.Labels):
		return fmt.Errorf("coef has %d rows, want %d", len(mf.Coef), len(mf.Labels))
	case len(mf.Intercept) != len(mf.Labels):
		return fmt.Errorf("intercept has %d values, want %d", len(mf.Intercept), len(mf.Labels))
	}

	for i, row := range mf.Coef {
		if len(row) != n {
			return fmt.Errorf("coef row %d has %d columns, want %d", i, len(row), n)
		}
	}
	for term, col := range mf.Vocabulary {
		if col < 0 || col >= n {
			return fmt.Errorf("term %q maps to column %d, out of range", term, col)
		}
	}
	return nil
}

// Predict returns the highest scoring label. Text without a single known
// term, or whose best score does not exceed the threshold, yields LabelNone.
func (m *Model) Predict(text string) (domain.ClassifierLabel, error) {
	if m == nil {
		return domain.LabelNone, domain.ErrClassifierFailure
	}

	features := m.vectorize(text)
	if len(features) == 0 {
		return domain.LabelNone, nil
	}

	best, bestScore := -1, math.Inf(-1)
	for i, row := range m.coef {
		score := m.intercept[i]
		for col, v := range features {
			score += row[col] * v
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	if best < 0 || bestScore <= m.threshold {
		return domain.LabelNone, nil
	}
	return m.labels[best], nil
}

// vectorize builds the sparse l2-normalized tf-idf vector for text
func (m *Model) vectorize(text string) map[int]float64 {
	features := make(map[int]float64)
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if col, ok := m.vocabulary[tok]; ok {
			features[col]++
		}
	}

	var norm float64
	for col, tf := range features {
		v := tf * m.idf[col]
		features[col] = v
		norm += v * v
	}

	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for col := range features {
		features[col] /= norm
	}
	return features
}

// ResolvePath returns path unchanged when absolute, otherwise joined to baseDir
func ResolvePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ExecutableDir returns the directory of the running binary
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// Locate resolves a relative model path against the executable's directory,
// falling back to the working directory when no file exists there
func Locate(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if dir, err := ExecutableDir(); err == nil {
		candidate := ResolvePath(path, dir)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}
