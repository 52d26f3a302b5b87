package colour

import (
	"testing"
)

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		name    string
		alg     Algorithm
		wantErr bool
	}{
		{name: "mediancut", alg: AlgorithmMedianCut, wantErr: false},
		{name: "kmeans", alg: AlgorithmKMeans, wantErr: false},
		{name: "dominant", alg: AlgorithmDominant, wantErr: false},
		{name: "unknown", alg: Algorithm("octree"), wantErr: true},
		{name: "empty", alg: Algorithm(""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := NewExtractor(tt.alg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewExtractor(%s) should return error", tt.alg)
				}
				return
			}
			if err != nil {
				t.Errorf("NewExtractor(%s) returned error: %v", tt.alg, err)
			}
			if extractor == nil {
				t.Errorf("NewExtractor(%s) returned nil extractor", tt.alg)
			}
		})
	}
}

func TestIsValidAlgorithm(t *testing.T) {
	for _, alg := range ValidAlgorithms() {
		if !IsValidAlgorithm(alg) {
			t.Errorf("IsValidAlgorithm(%s) = false, want true", alg)
		}
	}
	if IsValidAlgorithm(Algorithm("nope")) {
		t.Error("IsValidAlgorithm(nope) = true, want false")
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  ExtractorConfig
		wantErr bool
	}{
		{
			name:    "default config is valid",
			config:  DefaultExtractorConfig(),
			wantErr: false,
		},
		{
			name:    "zero colour count",
			config:  ExtractorConfig{Algorithm: AlgorithmMedianCut, ColorCount: 0},
			wantErr: true,
		},
		{
			name:    "too many colours",
			config:  ExtractorConfig{Algorithm: AlgorithmMedianCut, ColorCount: 300},
			wantErr: true,
		},
		{
			name:    "invalid algorithm",
			config:  ExtractorConfig{Algorithm: Algorithm("bogus"), ColorCount: 8},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKMeansSolidImage(t *testing.T) {
	want := RGB{R: 40, G: 180, B: 220}
	img := solidImage(16, 16, want)

	palette, err := NewKMeansExtractor().Extract(img, 5)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if palette.Len() != 1 {
		t.Fatalf("solid image palette length = %d, want 1", palette.Len())
	}
	if palette.Colors[0] != want {
		t.Errorf("palette[0] = %+v, want %+v", palette.Colors[0], want)
	}
}

func TestDominantSolidImage(t *testing.T) {
	want := RGB{R: 10, G: 200, B: 90}
	img := solidImage(16, 16, want)

	palette, err := NewDominantExtractor().Extract(img, 5)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if palette.Len() != 1 {
		t.Fatalf("dominant palette length = %d, want 1", palette.Len())
	}
	if palette.Colors[0] != want {
		t.Errorf("palette[0] = %+v, want %+v", palette.Colors[0], want)
	}
}
