package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/dataset/csv"
	"github.com/pbanos/bonsai/dataset/mongodataset"
	"github.com/pbanos/bonsai/dataset/redisdataset"
	"github.com/pbanos/bonsai/dataset/sqldataset"
	"github.com/pbanos/bonsai/dataset/sqldataset/pgadapter"
	"github.com/pbanos/bonsai/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/bonsai/feature/yaml"
)

type backend int

const (
	csvBackend backend = iota
	sqlite3Backend
	postgreSQLBackend
	mongoDBBackend
	redisBackend
)

var backendNames = map[backend]string{
	csvBackend:        "CSV",
	sqlite3Backend:    "SQLite3",
	postgreSQLBackend: "PostgreSQL",
	mongoDBBackend:    "MongoDB",
	redisBackend:      "Redis",
}

func (b backend) String() string {
	return backendNames[b]
}

// backendFor returns the backend holding the set at the given
// location. Anything that is not a DB URL or a .db file is CSV.
func backendFor(location string) backend {
	switch {
	case strings.HasPrefix(location, "postgresql://"), strings.HasPrefix(location, "postgres://"):
		return postgreSQLBackend
	case strings.HasPrefix(location, "mongodb://"):
		return mongoDBBackend
	case strings.HasPrefix(location, "redis://"):
		return redisBackend
	case strings.HasSuffix(location, ".db"):
		return sqlite3Backend
	}
	return csvBackend
}

const locationHelp = "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL (postgresql://), MongoDB (mongodb://) or Redis (redis://) connection URL"

type readerCloser struct {
	dataset.Reader
	close func() error
}

func (rc *readerCloser) Close() error {
	if rc.close == nil {
		return nil
	}
	return rc.close()
}

type writerCloser struct {
	dataset.Writer
	close func() error
}

func (wc *writerCloser) Close() error {
	if wc.close == nil {
		return nil
	}
	return wc.close()
}

func loadSchema(rcc *rootCmdConfig, metadataInput, classFeature string) (*dataset.Schema, error) {
	rcc.Logf("Reading features from metadata at %s...", metadataInput)
	features, err := yaml.ReadFeaturesFromFile(metadataInput)
	if err != nil {
		return nil, err
	}
	return dataset.NewSchema(features, classFeature)
}

/*
openInput takes the location of a set and a schema and returns a reader
for its rows. For CSV an empty location means STDIN. If unlabeled is
true the label is not required, which only CSV sets support.
*/
func (rcc *rootCmdConfig) openInput(location string, s *dataset.Schema, unlabeled bool) (*readerCloser, error) {
	ctx := rcc.Context()
	b := backendFor(location)
	if unlabeled && b != csvBackend {
		return nil, fmt.Errorf("unlabeled samples can only be read from CSV, not %v", b)
	}
	switch b {
	case sqlite3Backend, postgreSQLBackend:
		rcc.Logf("Creating %v adapter for %s to read set...", b, location)
		adapter, err := rcc.sqlAdapter(b, location)
		if err != nil {
			return nil, err
		}
		set, err := sqldataset.Open(ctx, adapter, s)
		if err != nil {
			adapter.Close()
			return nil, err
		}
		return &readerCloser{set, adapter.Close}, nil
	case mongoDBBackend:
		rcc.Logf("Connecting to MongoDB at %s to read set...", location)
		set, err := mongodataset.Dial(ctx, location, s)
		if err != nil {
			return nil, err
		}
		return &readerCloser{set, set.Close}, nil
	case redisBackend:
		rcc.Logf("Connecting to Redis at %s to read set...", location)
		set, err := redisdataset.Dial(location, s)
		if err != nil {
			return nil, err
		}
		return &readerCloser{set, set.Close}, nil
	}
	if location == "" {
		rcc.Logf("Reading set from STDIN...")
		r := csv.NewReader(os.Stdin, s)
		r.Unlabeled = unlabeled
		return &readerCloser{Reader: r}, nil
	}
	rcc.Logf("Opening %s to read set...", location)
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("reading set from %s: %w", location, err)
	}
	r := csv.NewReader(f, s)
	r.Unlabeled = unlabeled
	return &readerCloser{r, f.Close}, nil
}

/*
openOutput takes the location of a set and a schema and returns a writer
for its rows, creating the set when the backend requires it. For CSV an
empty location means STDOUT.
*/
func (rcc *rootCmdConfig) openOutput(location string, s *dataset.Schema) (*writerCloser, error) {
	ctx := rcc.Context()
	b := backendFor(location)
	switch b {
	case sqlite3Backend, postgreSQLBackend:
		rcc.Logf("Creating %v adapter for %s to dump set...", b, location)
		adapter, err := rcc.sqlAdapter(b, location)
		if err != nil {
			return nil, err
		}
		set, err := sqldataset.Create(ctx, adapter, s)
		if err != nil {
			adapter.Close()
			return nil, err
		}
		return &writerCloser{set, adapter.Close}, nil
	case mongoDBBackend:
		rcc.Logf("Connecting to MongoDB at %s to dump set...", location)
		set, err := mongodataset.Dial(ctx, location, s)
		if err != nil {
			return nil, err
		}
		return &writerCloser{set, set.Close}, nil
	case redisBackend:
		rcc.Logf("Connecting to Redis at %s to dump set...", location)
		set, err := redisdataset.Dial(location, s)
		if err != nil {
			return nil, err
		}
		return &writerCloser{set, set.Close}, nil
	}
	f := os.Stdout
	closeFile := func() error { return nil }
	if location != "" {
		rcc.Logf("Creating %s to dump set...", location)
		var err error
		f, err = os.Create(location)
		if err != nil {
			return nil, err
		}
		closeFile = f.Close
	} else {
		rcc.Logf("Using STDOUT to dump set...")
	}
	w, err := csv.NewWriter(f, s)
	if err != nil {
		closeFile()
		return nil, err
	}
	return &writerCloser{w, closeFile}, nil
}

func (rcc *rootCmdConfig) sqlAdapter(b backend, location string) (sqldataset.Adapter, error) {
	if b == postgreSQLBackend {
		return pgadapter.New(location)
	}
	return sqlite3adapter.New(location)
}

// readRows reads all the rows of the set at the given location.
func (rcc *rootCmdConfig) readRows(ctx context.Context, location string, s *dataset.Schema, unlabeled bool) ([]dataset.Row, error) {
	r, err := rcc.openInput(location, s, unlabeled)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	rows, err := dataset.ReadAll(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("reading set: %w", err)
	}
	return rows, nil
}
