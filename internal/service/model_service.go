package service

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
)

// Training configuration: at least minTrainProducts complete products are
// required; with holdoutThreshold or more, a fifth is held out to score the
// fitted mapping on unseen rows.
const (
	minTrainProducts = 5
	holdoutThreshold = 10
	holdoutShare     = 5 // one in five
	trainSeed        = 42
)

type trainingRow struct {
	Name   string
	Values ParamSet
}

// recipeModelData is the fitted categorical regressor: one parameter vector
// per known product name, plus the global mean for unseen categories.
type recipeModelData struct {
	Values     map[string]ParamSet `json:"values"`
	GlobalMean ParamSet            `json:"global_mean"`
}

func (m recipeModelData) predict(name string) ParamSet {
	if v, ok := m.Values[name]; ok {
		return v
	}
	return m.GlobalMean
}

// fitRecipeModel averages the parameter vectors per product name.
func fitRecipeModel(rows []trainingRow) recipeModelData {
	sums := make(map[string]ParamSet)
	counts := make(map[string]int)
	var grand ParamSet
	for _, r := range rows {
		s := sums[r.Name]
		s.InjectionTempC += r.Values.InjectionTempC
		s.MoldTempC += r.Values.MoldTempC
		s.CycleTimeSec += r.Values.CycleTimeSec
		sums[r.Name] = s
		counts[r.Name]++

		grand.InjectionTempC += r.Values.InjectionTempC
		grand.MoldTempC += r.Values.MoldTempC
		grand.CycleTimeSec += r.Values.CycleTimeSec
	}

	values := make(map[string]ParamSet, len(sums))
	for name, s := range sums {
		n := float64(counts[name])
		values[name] = ParamSet{
			InjectionTempC: s.InjectionTempC / n,
			MoldTempC:      s.MoldTempC / n,
			CycleTimeSec:   s.CycleTimeSec / n,
		}
	}

	n := float64(len(rows))
	return recipeModelData{
		Values: values,
		GlobalMean: ParamSet{
			InjectionTempC: grand.InjectionTempC / n,
			MoldTempC:      grand.MoldTempC / n,
			CycleTimeSec:   grand.CycleTimeSec / n,
		},
	}
}

// scoreModel computes the coefficient of determination of predictions over
// rows, averaged across the three outputs. A constant output scores 1 when
// predicted exactly, 0 otherwise.
func scoreModel(m recipeModelData, rows []trainingRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	actual := make([][3]float64, len(rows))
	predicted := make([][3]float64, len(rows))
	for i, r := range rows {
		actual[i] = [3]float64{r.Values.InjectionTempC, r.Values.MoldTempC, r.Values.CycleTimeSec}
		p := m.predict(r.Name)
		predicted[i] = [3]float64{p.InjectionTempC, p.MoldTempC, p.CycleTimeSec}
	}

	var total float64
	for out := 0; out < 3; out++ {
		var mean float64
		for i := range actual {
			mean += actual[i][out]
		}
		mean /= float64(len(actual))

		var ssRes, ssTot float64
		for i := range actual {
			d := actual[i][out] - predicted[i][out]
			ssRes += d * d
			t := actual[i][out] - mean
			ssTot += t * t
		}
		if ssTot == 0 {
			if ssRes == 0 {
				total += 1
			}
			continue
		}
		total += 1 - ssRes/ssTot
	}
	return total / 3
}

// ModelService owns the trained recipe model. It holds no in-process model
// state: the fitted mapping lives in the store and is loaded per call.
type ModelService struct {
	productRepo *repository.ProductRepository
	modelRepo   *repository.RecipeModelRepository
}

func NewModelService(productRepo *repository.ProductRepository, modelRepo *repository.RecipeModelRepository) *ModelService {
	return &ModelService{productRepo: productRepo, modelRepo: modelRepo}
}

type TrainResult struct {
	ProductCount int      `json:"product_count"`
	TrainScore   float64  `json:"train_score"`
	TestScore    float64  `json:"test_score"`
	Products     []string `json:"products"`
}

// Train fits the categorical model over all complete active products and
// replaces the persisted model.
func (s *ModelService) Train() (*TrainResult, error) {
	products, err := s.productRepo.ListComplete()
	if err != nil {
		return nil, fmt.Errorf("load training products: %w", err)
	}
	if len(products) < minTrainProducts {
		return nil, apperr.E(apperr.KindInsufficientData,
			"not enough data: at least %d products required, have %d", minTrainProducts, len(products))
	}

	rows := make([]trainingRow, len(products))
	for i, p := range products {
		rows[i] = trainingRow{
			Name: p.Name,
			Values: ParamSet{
				InjectionTempC: float64(*p.InjectionTempC),
				MoldTempC:      float64(*p.MoldTempC),
				CycleTimeSec:   float64(*p.CycleTimeSec),
			},
		}
	}

	trainRows, testRows := splitRows(rows)
	model := fitRecipeModel(trainRows)
	trainScore := scoreModel(model, trainRows)
	testScore := scoreModel(model, testRows)

	categories := make([]string, 0, len(model.Values))
	for name := range model.Values {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}
	valuesJSON, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}

	record := &entity.RecipeModel{
		CategoriesJSON: string(categoriesJSON),
		ValuesJSON:     string(valuesJSON),
		ProductCount:   len(products),
		TrainScore:     round4(trainScore),
		TestScore:      round4(testScore),
		TrainedAt:      time.Now().UTC(),
	}
	if err := s.modelRepo.Replace(record); err != nil {
		return nil, fmt.Errorf("persist model: %w", err)
	}

	preview := categories
	if len(preview) > 10 {
		preview = preview[:10]
	}
	return &TrainResult{
		ProductCount: len(products),
		TrainScore:   record.TrainScore,
		TestScore:    record.TestScore,
		Products:     preview,
	}, nil
}

// splitRows holds out one row in five for evaluation when the dataset is
// large enough; small datasets evaluate on the training set itself.
func splitRows(rows []trainingRow) (train, test []trainingRow) {
	if len(rows) < holdoutThreshold {
		return rows, rows
	}
	shuffled := make([]trainingRow, len(rows))
	copy(shuffled, rows)
	rng := rand.New(rand.NewSource(trainSeed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	testN := len(shuffled) / holdoutShare
	return shuffled[testN:], shuffled[:testN]
}

type ModelStatus struct {
	Ready         bool       `json:"ready"`
	CategoryCount int        `json:"category_count"`
	ProductCount  int64      `json:"product_count"`
	TrainedAt     *time.Time `json:"trained_at,omitempty"`
	Message       string     `json:"message"`
}

// Status reports whether a usable model exists and how much it knows.
func (s *ModelService) Status() (*ModelStatus, error) {
	productCount, err := s.productRepo.CountComplete()
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	record, err := s.modelRepo.Latest()
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if record == nil {
		return &ModelStatus{
			Ready:        false,
			ProductCount: productCount,
			Message:      "No trained model. Call train first.",
		}, nil
	}

	var categories []string
	if err := json.Unmarshal([]byte(record.CategoriesJSON), &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	trainedAt := record.TrainedAt
	return &ModelStatus{
		Ready:         true,
		CategoryCount: len(categories),
		ProductCount:  productCount,
		TrainedAt:     &trainedAt,
		Message:       fmt.Sprintf("Model ready, %d products known.", len(categories)),
	}, nil
}

type PredictResult struct {
	Known       bool      `json:"known"`
	ProductName string    `json:"product_name"`
	Values      *ParamSet `json:"values,omitempty"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Message     string    `json:"message"`
}

// Predict returns the fitted vector for a known product name, or a
// similar-name suggestion for an unknown one.
func (s *ModelService) Predict(productName string) (*PredictResult, error) {
	record, err := s.modelRepo.Latest()
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if record == nil {
		return nil, apperr.E(apperr.KindPreconditionFailed, "model not trained yet")
	}

	var model recipeModelData
	if err := json.Unmarshal([]byte(record.ValuesJSON), &model); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	if values, ok := model.Values[productName]; ok {
		rounded := ParamSet{
			InjectionTempC: round1(values.InjectionTempC),
			MoldTempC:      round1(values.MoldTempC),
			CycleTimeSec:   round1(values.CycleTimeSec),
		}
		return &PredictResult{
			Known:       true,
			ProductName: productName,
			Values:      &rounded,
			Message:     "Prediction from trained model.",
		}, nil
	}

	var categories []string
	if err := json.Unmarshal([]byte(record.CategoriesJSON), &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	result := &PredictResult{
		Known:       false,
		ProductName: productName,
		Message:     fmt.Sprintf("%q is unknown to the model.", productName),
	}
	if similar := SimilarNames(productName, categories, 1); len(similar) > 0 {
		result.Suggestion = similar[0]
		result.Message = fmt.Sprintf("%q not found. Closest known product: %q.", productName, similar[0])
	}
	return result, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
