package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
)

// Recipe sources
const (
	RecipeSourceDatabase = "database"
	RecipeSourceEstimate = "material_estimate"
	RecipeSourceModel    = "model"
)

const similarNameLimit = 5

// ParamSet is the injection-molding recipe triple.
type ParamSet struct {
	InjectionTempC float64 `json:"injection_temp_c"`
	MoldTempC      float64 `json:"mold_temp_c"`
	CycleTimeSec   float64 `json:"cycle_time_sec"`
}

// RecipeResult is the outcome of a by-name lookup. Found=false with
// Source=database means the product exists but its parameters are
// incomplete; Found=false without a source means no match, with similar
// names suggested when available.
type RecipeResult struct {
	Found           bool      `json:"found"`
	Source          string    `json:"source,omitempty"`
	ProductName     string    `json:"product_name,omitempty"`
	ProductCode     string    `json:"product_code,omitempty"`
	Values          *ParamSet `json:"values,omitempty"`
	Material        *string   `json:"material,omitempty"`
	Message         string    `json:"message"`
	SimilarProducts []string  `json:"similar_products,omitempty"`
}

// MaterialEstimate is the outcome of a by-material estimation.
type MaterialEstimate struct {
	Values         ParamSet `json:"values"`
	Material       string   `json:"material"`
	SourceProducts int      `json:"source_products"`
}

type RecipeService struct {
	productRepo *repository.ProductRepository
}

func NewRecipeService(productRepo *repository.ProductRepository) *RecipeService {
	return &RecipeService{productRepo: productRepo}
}

// Resolve looks a recipe up by product name. Exact matches return stored
// values verbatim; a match with incomplete parameters never falls through
// to estimation, it asks the caller to complete the product instead.
func (s *RecipeService) Resolve(productName string) (*RecipeResult, error) {
	name := strings.TrimSpace(productName)
	if name == "" {
		return nil, apperr.E(apperr.KindInvalidArgument, "product name is required")
	}

	product, err := s.productRepo.FindActiveByName(name)
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	if product != nil {
		if product.HasRecipeParams() {
			return &RecipeResult{
				Found:       true,
				Source:      RecipeSourceDatabase,
				ProductName: product.Name,
				ProductCode: product.Code,
				Values: &ParamSet{
					InjectionTempC: float64(*product.InjectionTempC),
					MoldTempC:      float64(*product.MoldTempC),
					CycleTimeSec:   float64(*product.CycleTimeSec),
				},
				Material: product.Material,
				Message:  "Product found, stored values returned.",
			}, nil
		}
		return &RecipeResult{
			Found:       false,
			Source:      RecipeSourceDatabase,
			ProductName: product.Name,
			ProductCode: product.Code,
			Message: fmt.Sprintf(
				"Product %q exists but its production parameters are incomplete. Update the product to add them.",
				product.Name),
		}, nil
	}

	names, err := s.productRepo.ListActiveNames()
	if err != nil {
		return nil, fmt.Errorf("list product names: %w", err)
	}
	return &RecipeResult{
		Found:           false,
		Message:         fmt.Sprintf("Product %q not found.", name),
		SimilarProducts: SimilarNames(name, names, similarNameLimit),
	}, nil
}

// EstimateByMaterial averages the recipes of products sharing a material
// and adjusts cycle time for the requested part weight and cavity count.
func (s *RecipeService) EstimateByMaterial(material string, partWeightG float64, cavityCount int) (*MaterialEstimate, error) {
	material = strings.TrimSpace(material)
	if material == "" {
		return nil, apperr.E(apperr.KindInvalidArgument, "material is required")
	}
	if partWeightG <= 0 {
		return nil, apperr.E(apperr.KindInvalidArgument, "part weight must be positive")
	}
	if cavityCount < 1 {
		return nil, apperr.E(apperr.KindInvalidArgument, "cavity count must be at least 1")
	}

	products, err := s.productRepo.FindByMaterial(material)
	if err != nil {
		return nil, fmt.Errorf("find products by material: %w", err)
	}
	if len(products) == 0 {
		return nil, apperr.E(apperr.KindNoData, "no products recorded for material %q", material)
	}

	values := estimateFromProducts(products, partWeightG, cavityCount)
	return &MaterialEstimate{
		Values:         values,
		Material:       material,
		SourceProducts: len(products),
	}, nil
}

// ProductNames lists the distinct active product names.
func (s *RecipeService) ProductNames() ([]string, error) {
	return s.productRepo.ListActiveNames()
}

// Materials lists the distinct material descriptors of active products.
func (s *RecipeService) Materials() ([]string, error) {
	return s.productRepo.ListMaterials()
}

// estimateFromProducts computes the arithmetic mean of the three recipe
// parameters, then scales cycle time by a weight factor and a cavity
// factor, in that order. Products passed here carry all three parameters.
func estimateFromProducts(products []entity.Product, partWeightG float64, cavityCount int) ParamSet {
	n := float64(len(products))
	var sumInj, sumMold, sumCycle float64
	for _, p := range products {
		sumInj += float64(*p.InjectionTempC)
		sumMold += float64(*p.MoldTempC)
		sumCycle += float64(*p.CycleTimeSec)
	}
	meanInj := sumInj / n
	meanMold := sumMold / n
	meanCycle := sumCycle / n

	// Heavier parts cool longer.
	var weights []float64
	for _, p := range products {
		if p.PartWeightG != nil {
			weights = append(weights, float64(*p.PartWeightG))
		}
	}
	if mean := meanOf(weights); mean > 0 {
		meanCycle *= 0.7 + 0.3*(partWeightG/mean)
	}

	// More cavities lengthen the cycle but raise throughput.
	var cavities []float64
	for _, p := range products {
		if p.CavityCount != nil {
			cavities = append(cavities, float64(*p.CavityCount))
		}
	}
	if mean := meanOf(cavities); mean > 0 {
		meanCycle *= 0.8 + 0.2*(float64(cavityCount)/mean)
	}

	return ParamSet{
		InjectionTempC: round1(meanInj),
		MoldTempC:      round1(meanMold),
		CycleTimeSec:   round1(meanCycle),
	}
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SimilarNames suggests up to limit known names resembling the query:
// substring containment in either direction, or a shared token of at least
// three characters.
func SimilarNames(query string, names []string, limit int) []string {
	if limit <= 0 {
		limit = similarNameLimit
	}
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return nil
	}
	tokens := strings.Fields(queryLower)

	var similar []string
	for _, name := range names {
		nameLower := strings.ToLower(name)
		if matchesName(queryLower, nameLower, tokens) {
			similar = append(similar, name)
			if len(similar) == limit {
				break
			}
		}
	}
	return similar
}

func matchesName(queryLower, nameLower string, tokens []string) bool {
	if strings.Contains(nameLower, queryLower) || strings.Contains(queryLower, nameLower) {
		return true
	}
	for _, token := range tokens {
		if len([]rune(token)) >= 3 && strings.Contains(nameLower, token) {
			return true
		}
	}
	return false
}
