package extract

import "testing"

func TestEstimateVariations(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"Disponível em 5 cores", 5},
		{"produto incrível", 1},
		{"100 cores", 20},
		{"3 versões do produto", 3},
		{"escolha entre 4 tamanhos", 4},
		{"2 opções de compra", 2},
		{"", 1},
	}
	for _, c := range cases {
		if got := EstimateVariations(c.in); got != c.want {
			t.Fatalf("EstimateVariations(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestEstimateVariationsPriority(t *testing.T) {
	// The versões cue outranks the cores cue when both appear.
	if got := EstimateVariations("7 versões e 3 cores"); got != 7 {
		t.Fatalf("got %d, want versões cue to win", got)
	}
}

func TestEstimateVariationsCaseInsensitive(t *testing.T) {
	if got := EstimateVariations("DISPONÍVEL EM 6 CORES"); got != 6 {
		t.Fatalf("got %d, want 6", got)
	}
}
