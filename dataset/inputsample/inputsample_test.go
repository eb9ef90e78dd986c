package inputsample

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pbanos/bonsai/feature"
)

type recordingRequester struct {
	requested []string
	rejected  []string
}

func (rr *recordingRequester) RequestValueFor(f feature.Feature) error {
	rr.requested = append(rr.requested, f.Name())
	return nil
}

func (rr *recordingRequester) RejectValueFor(f feature.Feature, v string) error {
	rr.rejected = append(rr.rejected, v)
	return nil
}

var features = []feature.Feature{
	feature.NewDiscreteFeature("outlook", []string{"sunny", "rain"}),
	feature.NewContinuousFeature("humidity"),
}

func TestValueFor(t *testing.T) {
	rr := &recordingRequester{}
	s := New(strings.NewReader("high\n?\n80\nfoggy\nrain\n"), features, rr)
	if v := s.ValueFor("humidity"); v != 80 {
		t.Errorf("humidity = %v, want 80", v)
	}
	if v := s.ValueFor("outlook"); v != 1 {
		t.Errorf("outlook = %v, want 1", v)
	}
	if v := s.ValueFor("humidity"); v != 80 {
		t.Errorf("humidity read again as %v", v)
	}
	if s.Err() != nil {
		t.Fatal(s.Err())
	}
	if strings.Join(rr.requested, ",") != "humidity,outlook" {
		t.Errorf("requested %v", rr.requested)
	}
	if strings.Join(rr.rejected, ",") != "high,?,foggy" {
		t.Errorf("rejected %v", rr.rejected)
	}
	if len(s.Record()) != 2 {
		t.Errorf("unexpected record %v", s.Record())
	}
}

func TestValueForErrors(t *testing.T) {
	s := New(strings.NewReader("cloudy\n"), features, &recordingRequester{})
	s.ValueFor("outlook")
	if !errors.Is(s.Err(), io.ErrUnexpectedEOF) {
		t.Errorf("expected unexpected EOF, got %v", s.Err())
	}
	if v := s.ValueFor("humidity"); v != 0 {
		t.Errorf("expected 0 after an error, got %v", v)
	}

	s = New(strings.NewReader("1\n"), features, &recordingRequester{})
	s.ValueFor("wind")
	if s.Err() == nil {
		t.Error("expected error reading an unknown feature")
	}
}
