package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/bonsai"
	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/dataset/csv"
	"github.com/pbanos/bonsai/feature"
)

func testSchema(t *testing.T) *dataset.Schema {
	s, err := dataset.NewSchema([]feature.Feature{
		feature.NewDiscreteFeature("outlook", []string{"sunny", "overcast", "rain"}),
		feature.NewContinuousFeature("humidity"),
		feature.NewDiscreteFeature("play", []string{"no", "yes"}),
	}, "play")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

const weather = `outlook,humidity,play
sunny,85,no
sunny,90,no
overcast,78,yes
rain,96,yes
rain,70,yes
sunny,70,yes
`

func testRows(t *testing.T, s *dataset.Schema) []dataset.Row {
	rows, err := dataset.ReadAll(context.Background(), csv.NewReader(strings.NewReader(weather), s))
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestBackendFor(t *testing.T) {
	cases := map[string]backend{
		"":                              csvBackend,
		"samples.csv":                   csvBackend,
		"samples.db":                    sqlite3Backend,
		"postgresql://localhost/bonsai": postgreSQLBackend,
		"postgres://localhost/bonsai":   postgreSQLBackend,
		"mongodb://localhost/bonsai":    mongoDBBackend,
		"redis://localhost:6379/1":      redisBackend,
	}
	for location, want := range cases {
		if got := backendFor(location); got != want {
			t.Errorf("backendFor(%q) = %v, want %v", location, got, want)
		}
	}
}

func TestTrainCmdConfigValidate(t *testing.T) {
	valid := trainCmdConfig{rootCmdConfig: &rootCmdConfig{}, metadataInput: "md.yml", classFeature: "play", scorer: "split-info"}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	invalid := []trainCmdConfig{
		{metadataInput: "md.yml"},
		{classFeature: "play"},
		{metadataInput: "md.yml", classFeature: "play", scorer: "gini"},
		{metadataInput: "md.yml", classFeature: "play", maxDepth: -1},
		{metadataInput: "md.yml", classFeature: "play", minSamples: -1},
	}
	for _, c := range invalid {
		if err := c.Validate(); err == nil {
			t.Errorf("expected an error for %+v", c)
		}
	}
}

func TestStrategy(t *testing.T) {
	tcc := trainCmdConfig{rootCmdConfig: &rootCmdConfig{logger: true}, maxDepth: 3, minSamples: 2}
	st, err := tcc.strategy()
	if err != nil {
		t.Fatal(err)
	}
	if st.Scorer == nil || st.MaxDepth != 3 || st.MinSamples != 2 || st.Logger == nil {
		t.Errorf("unexpected strategy %+v", st)
	}
}

func TestPredict(t *testing.T) {
	s := testSchema(t)
	tr, err := bonsai.Grow(context.Background(), dataset.FromRows(testRows(t, s)), s.Indices(), nil)
	if err != nil {
		t.Fatal(err)
	}
	// humidity is asked first, outlook only for humid days
	var prompts bytes.Buffer
	label, err := predict(tr, s, strings.NewReader("wet\n88\nfoggy\nsunny\n"), stdoutFeatureValueRequester{&prompts})
	if err != nil {
		t.Fatal(err)
	}
	if label != "no" {
		t.Errorf("expected to predict no, got %s", label)
	}
	for _, rejected := range []string{"foggy is not a valid value", "wet is not a valid value"} {
		if !strings.Contains(prompts.String(), rejected) {
			t.Errorf("expected prompts to contain %q, got:\n%s", rejected, prompts.String())
		}
	}
	if _, err = predict(tr, s, strings.NewReader(""), stdoutFeatureValueRequester{&prompts}); err == nil {
		t.Error("expected an error when running out of input")
	}
}

func TestDescribe(t *testing.T) {
	s := testSchema(t)
	rows := testRows(t, s)
	df := frame(s, rows)
	if df.Err != nil {
		t.Fatal(df.Err)
	}
	if df.Nrow() != 6 || df.Ncol() != 3 {
		t.Fatalf("expected a 6x3 dataframe, got %dx%d", df.Nrow(), df.Ncol())
	}
	if got := df.Col("humidity").Float()[3]; got != 96 {
		t.Errorf("expected humidity 96 on the fourth row, got %v", got)
	}
	if got := df.Col("outlook").Records()[2]; got != "overcast" {
		t.Errorf("expected outlook overcast on the third row, got %v", got)
	}
	var buf bytes.Buffer
	if err := describe(&buf, s, rows, dataset.FromRows(rows).CountLabels()); err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"6 samples with 2 features", "play=no: 2 samples", "play=yes: 4 samples"} {
		if !strings.Contains(buf.String(), line) {
			t.Errorf("expected description to contain %q, got:\n%s", line, buf.String())
		}
	}
}

func TestCopyRows(t *testing.T) {
	s := testSchema(t)
	var buf bytes.Buffer
	w, err := csv.NewWriter(&buf, s)
	if err != nil {
		t.Fatal(err)
	}
	scc := &setCmdConfig{rootCmdConfig: &rootCmdConfig{}}
	n, err := scc.copyRows(csv.NewReader(strings.NewReader(weather), s), func(dataset.Row) dataset.Writer { return w })
	if err != nil || n != 6 {
		t.Fatalf("copyRows returned %d, %v", n, err)
	}
	if err = w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != weather {
		t.Errorf("unexpected copy:\n%s", buf.String())
	}
	_, err = scc.copyRows(csv.NewReader(strings.NewReader("outlook,humidity,play\nsunny,?,no\n"), s), func(dataset.Row) dataset.Writer { return w })
	if err == nil {
		t.Error("expected a reading error")
	}
}

func TestOutputTree(t *testing.T) {
	s := testSchema(t)
	tr, err := bonsai.Grow(context.Background(), dataset.FromRows(testRows(t, s)), s.Indices(), nil)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "tree.txt")
	if err = outputTree(path, tr, 1); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), tr.String()) || !strings.HasSuffix(string(content), "1.000000 success rate on the training set\n") {
		t.Errorf("unexpected output:\n%s", content)
	}
}
