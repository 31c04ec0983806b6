package matching

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMatch_EmptyInputs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, ComputeMatch(nil, []string{"Python"}))
	assert.Equal(t, 0.0, ComputeMatch([]string{}, []string{"Python"}))
	assert.Equal(t, 0.0, ComputeMatch([]string{"Python"}, nil))
	assert.Equal(t, 0.0, ComputeMatch([]string{"Python"}, []string{}))
	assert.Equal(t, 0.0, ComputeMatch(nil, nil))
	assert.Equal(t, 0.0, ComputeMatch([]string{"!!!", "  "}, []string{"Python"}))
	assert.Equal(t, 0.0, ComputeMatch([]string{"Python"}, []string{"(n/a)", ""}))
}

func TestComputeMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		required  []string
		candidate []string
		want      float64
	}{
		{
			name:      "exact match with a two skill stack",
			required:  []string{"Python", "React"},
			candidate: []string{"Python", "React"},
			want:      90.2,
		},
		{
			name:      "containment counts as a full match",
			required:  []string{"React"},
			candidate: []string{"React Native"},
			want:      90.1,
		},
		{
			name:      "partial stack",
			required:  []string{"Python", "Django", "PostgreSQL"},
			candidate: []string{"python", "django rest framework", "mysql"},
			want:      60.3,
		},
		{
			name:      "third tier only",
			required:  []string{"TypeScript"},
			candidate: []string{"JavaScript"},
			want:      36.1,
		},
		{
			name:      "no overlap keeps only the breadth bonus",
			required:  []string{"Java"},
			candidate: []string{"Kotlin"},
			want:      0.1,
		},
		{
			name:      "aliases on both sides",
			required:  []string{"SQL Server", "C#", ".NET"},
			candidate: []string{"T-SQL", "CSharp", "dotnet"},
			want:      90.3,
		},
		{
			name:      "mixed containment and misses",
			required:  []string{"Docker", "Kubernetes", "AWS", "Terraform"},
			candidate: []string{"docker compose", "k8s", "aws lambda", "terraform cloud"},
			want:      67.9,
		},
		{
			name:      "noise in required is ignored",
			required:  []string{"Python", "", "!!!"},
			candidate: []string{"Python"},
			want:      90.1,
		},
		{
			name:      "duplicate candidate skills count once for breadth",
			required:  []string{"Go"},
			candidate: []string{"Go", "go", "GO"},
			want:      90.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ComputeMatch(tt.required, tt.candidate))
		})
	}
}

func TestEvaluate_Breakdown(t *testing.T) {
	t.Parallel()

	res := Evaluate(
		[]string{"Python", "Django", "PostgreSQL"},
		[]string{"python", "django rest framework", "mysql"},
	)

	assert.Equal(t, 60.3, res.Score)
	assert.Equal(t, 66.7, res.BaseScore)
	assert.Equal(t, 3.0, res.BreadthBonus)
	require.Len(t, res.Skills, 3)

	assert.Equal(t, "Python", res.Skills[0].Required)
	assert.Equal(t, "python", res.Skills[0].BestMatch)
	assert.Equal(t, 1.0, res.Skills[0].Weight)

	assert.Equal(t, "django", res.Skills[1].Normalized)
	assert.Equal(t, "django rest", res.Skills[1].BestMatch)
	assert.InDelta(t, 0.95, res.Skills[1].Similarity, 1e-9)
	assert.Equal(t, 1.0, res.Skills[1].Weight)

	assert.Equal(t, "postgresql", res.Skills[2].Normalized)
	assert.Equal(t, "mysql", res.Skills[2].BestMatch)
	assert.InDelta(t, 0.4, res.Skills[2].Similarity, 1e-9)
	assert.Equal(t, 0.0, res.Skills[2].Weight)
}

func TestEvaluate_ContainmentOverride(t *testing.T) {
	t.Parallel()

	res := Evaluate([]string{"React"}, []string{"React Native"})
	require.Len(t, res.Skills, 1)

	// The raw ratio of "react" vs "react native" is 10/17, well below the first tier.
	assert.Less(t, Similarity("react", "react native"), 0.90)
	assert.InDelta(t, 0.95, res.Skills[0].Similarity, 1e-9)
	assert.Equal(t, 1.0, res.Skills[0].Weight)
}

func TestEvaluate_RequiredOrderOnlyAffectsReporting(t *testing.T) {
	t.Parallel()

	cand := []string{"docker compose", "k8s", "aws lambda", "terraform cloud"}
	a := Evaluate([]string{"Docker", "Kubernetes", "AWS", "Terraform"}, cand)
	b := Evaluate([]string{"Terraform", "AWS", "Kubernetes", "Docker"}, cand)

	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, "Docker", a.Skills[0].Required)
	assert.Equal(t, "Terraform", b.Skills[0].Required)
}

func TestTierWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		best float64
		want float64
	}{
		{1.0, 1.0},
		{0.90, 1.0},
		{0.8999, 0.7},
		{0.75, 0.7},
		{0.7499, 0.4},
		{0.60, 0.4},
		{0.5999, 0.0},
		{0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.4f", tt.best), func(t *testing.T) {
			assert.Equal(t, tt.want, tierWeight(tt.best))
		})
	}
}

func TestComputeMatch_BreadthBonusIsMonotonicAndCapped(t *testing.T) {
	t.Parallel()

	expected := []float64{45.1, 45.2, 45.3, 45.4, 45.5, 45.6, 45.7, 45.8, 45.9, 46.0, 46.0, 46.0, 46.0}

	prev := -1.0
	for extra, want := range expected {
		cand := []string{"Python"}
		for i := 0; i < extra; i++ {
			cand = append(cand, fmt.Sprintf("skill%d", i))
		}

		got := ComputeMatch([]string{"Python", "Rust"}, cand)
		assert.Equal(t, want, got, "extra skills: %d", extra)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestComputeMatch_Bounds(t *testing.T) {
	t.Parallel()

	vocab := []string{
		"Python", "Go", "Golang", "React", "React Native", "ReactJS", "Vue", "Angular", "Node.js",
		".NET", "C#", "MAUI", "SQL Server", "PostgreSQL", "MySQL", "Docker", "Kubernetes", "AWS",
		"Django Framework", "Spring Boot", "Java", "Kotlin", "Rust", "", "!!!", "(misc)",
	}

	rng := rand.New(rand.NewSource(7))
	pick := func() []string {
		out := make([]string, rng.Intn(15))
		for i := range out {
			out[i] = vocab[rng.Intn(len(vocab))]
		}
		return out
	}

	for i := 0; i < 500; i++ {
		score := ComputeMatch(pick(), pick())
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}

	// A perfect match with a broad stack reaches the ceiling.
	full := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10"}
	assert.Equal(t, 91.0, ComputeMatch(full, full))
}

func TestRoundScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 90.2, roundScore(90.2))
	assert.Equal(t, 66.7, roundScore(200.0/3.0))
	// Exact binary ties round to even.
	assert.Equal(t, 0.2, roundScore(0.25))
	assert.Equal(t, 0.4, roundScore(0.375))
}

func TestComputeExactMatch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, ComputeExactMatch(nil, []string{"python"}))
	assert.Equal(t, 0.0, ComputeExactMatch([]string{"python"}, nil))
	assert.Equal(t, 50.0, ComputeExactMatch([]string{"Python", "React"}, []string{"python", "java"}))
	assert.Equal(t, 100.0, ComputeExactMatch([]string{"Go", "go"}, []string{"GO"}))
	assert.Equal(t, 33.3, ComputeExactMatch([]string{"a", "b", "c"}, []string{"A"}))
	// No normalization: aliases do not match.
	assert.Equal(t, 0.0, ComputeExactMatch([]string{"React"}, []string{"ReactJS"}))
	// Full lowercase mapping: a dotted capital I only equals its two-rune lowercase.
	assert.Equal(t, 100.0, ComputeExactMatch([]string{"\u0130OS"}, []string{"i\u0307os"}))
	assert.Equal(t, 0.0, ComputeExactMatch([]string{"\u0130OS"}, []string{"ios"}))
}

func TestScore_Strategy(t *testing.T) {
	t.Parallel()

	req := []string{"React"}
	cand := []string{"ReactJS"}

	assert.Equal(t, StrategyFuzzy, ParseStrategy(""))
	assert.Equal(t, StrategyFuzzy, ParseStrategy("bogus"))
	assert.Equal(t, StrategyExact, ParseStrategy(" EXACT "))

	assert.Equal(t, 90.1, Score(StrategyFuzzy, req, cand))
	assert.Equal(t, 0.0, Score(StrategyExact, req, cand))
}
