package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/bonsai/feature"
)

const metadata = `
features:
  outlook: [sunny, overcast, rain]
  temperature: continuous
  humidity: continuous
  windy: ["false", "true"]
  play: ["no", "yes"]
`

func TestReadFeatures(t *testing.T) {
	features, err := ReadFeatures([]byte(metadata))
	if err != nil {
		t.Fatal(err)
	}
	names := []string{"outlook", "temperature", "humidity", "windy", "play"}
	if len(features) != len(names) {
		t.Fatalf("expected %d features, got %d", len(names), len(features))
	}
	for i, f := range features {
		if f.Name() != names[i] {
			t.Errorf("feature %d is %s, want %s", i, f.Name(), names[i])
		}
	}
	if _, ok := features[1].(*feature.ContinuousFeature); !ok {
		t.Errorf("expected temperature to be continuous, got %T", features[1])
	}
	outlook, ok := features[0].(*feature.DiscreteFeature)
	if !ok {
		t.Fatalf("expected outlook to be discrete, got %T", features[0])
	}
	if vs := outlook.AvailableValues(); len(vs) != 3 || vs[2] != "rain" {
		t.Errorf("unexpected outlook values %v", vs)
	}
}

func TestReadFeaturesErrors(t *testing.T) {
	cases := map[string]string{
		"no features":   "other: 1\n",
		"bad string":    "features:\n  a: discrete\n",
		"empty list":    "features:\n  a: []\n",
		"bad type":      "features:\n  a: 3\n",
		"duplicate":     "features:\n  a: continuous\n  a: continuous\n",
		"malformed yml": "features: [\n",
	}
	for name, md := range cases {
		if _, err := ReadFeatures([]byte(md)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestReadFeaturesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.yml")
	if err := os.WriteFile(path, []byte(metadata), 0o600); err != nil {
		t.Fatal(err)
	}
	features, err := ReadFeaturesFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(features) != 5 {
		t.Errorf("expected 5 features, got %d", len(features))
	}
	if _, err := ReadFeaturesFromFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected an error reading a missing file")
	}
}
