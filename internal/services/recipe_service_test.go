package services

import (
	"context"
	"testing"

	"github.com/tbourn/go-recipe-bot/internal/spoonacular"
)

// recordingSource captures the arguments the service forwards.
type recordingSource struct {
	randomDiet string
	searchTerm string
	calls      int
}

func (s *recordingSource) GetRandomRecipe(ctx context.Context, diet string) *spoonacular.Recipe {
	s.calls++
	s.randomDiet = diet
	return &spoonacular.Recipe{ID: 1, Title: "T"}
}

func (s *recordingSource) SearchByIngredients(ctx context.Context, ingredient string) []spoonacular.Recipe {
	s.calls++
	s.searchTerm = ingredient
	return []spoonacular.Recipe{{ID: 1, Title: "T"}}
}

func TestRecipe_Random_TrimsDiet(t *testing.T) {
	src := &recordingSource{}
	svc := NewRecipeService(src)

	if r := svc.Random(context.Background(), "  vegan  "); r == nil {
		t.Fatalf("expected recipe")
	}
	if src.randomDiet != "vegan" {
		t.Fatalf("expected trimmed diet, got %q", src.randomDiet)
	}
}

func TestRecipe_SearchByIngredient_BlankSkipsSource(t *testing.T) {
	src := &recordingSource{}
	svc := NewRecipeService(src)

	if got := svc.SearchByIngredient(context.Background(), "   "); got != nil {
		t.Fatalf("expected nil for blank ingredient, got %+v", got)
	}
	if src.calls != 0 {
		t.Fatalf("blank ingredient must not reach the source")
	}
}

func TestRecipe_SearchByIngredient_Forwards(t *testing.T) {
	src := &recordingSource{}
	svc := NewRecipeService(src)

	got := svc.SearchByIngredient(context.Background(), "rice")
	if len(got) != 1 {
		t.Fatalf("expected forwarded result, got %+v", got)
	}
	if src.searchTerm != "rice" {
		t.Fatalf("expected verbatim term forwarded, got %q", src.searchTerm)
	}
}
