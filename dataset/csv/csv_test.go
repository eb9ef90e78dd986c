package csv

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pbanos/bonsai/dataset"
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

const weather = `play,outlook,humidity
no,sunny,85
yes,overcast,78
yes,rain,96
`

func TestRead(t *testing.T) {
	rows, err := dataset.ReadAll(context.Background(), NewReader(strings.NewReader(weather), testSchema(t)))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[2].Label != "yes" || rows[2].Record.ValueFor("outlook") != 2 || rows[2].Record.ValueFor("humidity") != 96 {
		t.Errorf("unexpected row %v", rows[2])
	}
}

func TestReadBySampleStops(t *testing.T) {
	var seen int
	err := NewReader(strings.NewReader(weather), testSchema(t)).ReadBySample(func(i int, _ dataset.Row) (bool, error) {
		seen++
		return i < 1, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if seen != 2 {
		t.Errorf("expected to stop after 2 rows, saw %d", seen)
	}
}

func TestReadErrors(t *testing.T) {
	cases := map[string]string{
		"undefined value":  "outlook,humidity,play\nsunny,?,no\n",
		"unknown value":    "outlook,humidity,play\nfoggy,1,no\n",
		"unknown column":   "outlook,humidity,play,wind\nsunny,1,no,3\n",
		"missing column":   "outlook,play\nsunny,no\n",
		"missing label":    "outlook,humidity\nsunny,1\n",
		"repeated column":  "outlook,outlook,humidity,play\nsunny,sunny,1,no\n",
		"short row":        "outlook,humidity,play\nsunny,1\n",
		"empty input":      "",
		"non numeric":      "outlook,humidity,play\nsunny,high,no\n",
		"not a real value": "outlook,humidity,play\nsunny,NaN,no\n",
	}
	for name, input := range cases {
		if _, err := dataset.ReadAll(context.Background(), NewReader(strings.NewReader(input), testSchema(t))); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestReadUnlabeled(t *testing.T) {
	r := NewReader(strings.NewReader("humidity,outlook\n70,rain\n"), testSchema(t))
	r.Unlabeled = true
	rows, err := dataset.ReadAll(context.Background(), r)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Label != "" || rows[0].Record.ValueFor("humidity") != 70 {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestWriteThenRead(t *testing.T) {
	s := testSchema(t)
	rows, err := dataset.ReadAll(context.Background(), NewReader(strings.NewReader(weather), s))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	w, err := NewWriter(&buf, s)
	if err != nil {
		t.Fatal(err)
	}
	n, err := w.Write(context.Background(), rows)
	if err != nil || n != 3 {
		t.Fatalf("Write returned %d, %v", n, err)
	}
	if err = w.Flush(); err != nil {
		t.Fatal(err)
	}
	if w.Count() != 3 {
		t.Errorf("Count = %d, want 3", w.Count())
	}
	want := "outlook,humidity,play\nsunny,85,no\novercast,78,yes\nrain,96,yes\n"
	if buf.String() != want {
		t.Errorf("unexpected CSV output:\n%s", buf.String())
	}
}
