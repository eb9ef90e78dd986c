/*
Package mongodataset provides a dataset reader and writer that uses a
MongoDB database as backend.

Samples are stored as documents on the samples collection of the
session's default database, with a field for each feature and one for
the label.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	samplesCollectionName = "samples"
)

/*
Set is a set of samples stored on a MongoDB collection. It implements
both dataset.Reader and dataset.Writer.
*/
type Set struct {
	session *mgo.Session
	schema  *dataset.Schema
}

/*
Open takes a MongoDB database session and a schema and returns a Set
that works on the default database for that session, or an error if a
feature name cannot be used as field or the indexes cannot be ensured.
*/
func Open(ctx context.Context, session *mgo.Session, s *dataset.Schema) (*Set, error) {
	mds := &Set{session: session, schema: s}
	err := mds.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return mds, nil
}

/*
Dial takes a MongoDB connection URL and a schema and returns a Set on
the URL's database, or an error if it cannot connect to it.
*/
func Dial(ctx context.Context, url string, s *dataset.Schema) (*Set, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	mds, err := Open(ctx, session, s)
	if err != nil {
		session.Close()
		return nil, err
	}
	return mds, nil
}

// Count returns the number of samples in the set.
func (mds *Set) Count(context.Context) (int, error) {
	return mds.samplesCollection().Count()
}

/*
CountLabels returns the number of samples in the set for each label,
aggregated on the database.
*/
func (mds *Set) CountLabels(context.Context) (map[string]int, error) {
	label := mds.schema.Label.Name()
	iter := mds.samplesCollection().Pipe([]bson.M{{"$group": bson.M{"_id": "$" + label, "count": bson.M{"$sum": 1}}}}).Iter()
	defer iter.Close()
	var doc bson.M
	result := make(map[string]int)
	for iter.Next(&doc) {
		count, ok := doc["count"].(int)
		if !ok {
			return nil, fmt.Errorf("counting labels: mongo aggregation query returned a %T instead of an int as count", doc["count"])
		}
		result[fmt.Sprintf("%v", doc["_id"])] = count
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Write inserts the given rows on the collection, returning
// the number of them written.
func (mds *Set) Write(ctx context.Context, rows []dataset.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(rows))
	for _, r := range rows {
		doc := make(bson.M)
		for _, f := range mds.schema.Features {
			if _, ok := f.(*feature.DiscreteFeature); ok {
				doc[f.Name()] = f.Decode(r.Record.ValueFor(f.Name()))
			} else {
				doc[f.Name()] = r.Record.ValueFor(f.Name())
			}
		}
		doc[mds.schema.Label.Name()] = r.Label
		docs = append(docs, doc)
	}
	err := mds.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Flush returns nil, as writes are not buffered.
func (mds *Set) Flush() error {
	return nil
}

// Read reads the samples in the collection, sending them on
// the returned channel.
func (mds *Set) Read(ctx context.Context) (<-chan dataset.Row, <-chan error) {
	return dataset.Stream(ctx, func(emit func(dataset.Row) bool) error {
		iter := mds.samplesCollection().Find(nil).Select(mds.projection()).Iter()
		var doc bson.M
		for iter.Next(&doc) {
			row, err := mds.schema.ParseTyped(doc)
			if err != nil {
				iter.Close()
				return err
			}
			if !emit(row) {
				break
			}
			doc = nil
		}
		return iter.Close()
	})
}

// Close closes the session of the set.
func (mds *Set) Close() error {
	mds.session.Close()
	return nil
}

func (mds *Set) projection() bson.M {
	result := bson.M{"_id": 0}
	for _, f := range mds.schema.Columns() {
		result[f.Name()] = 1
	}
	return result
}

func (mds *Set) ensureIndexes() error {
	for _, f := range mds.schema.Columns() {
		fName := f.Name()
		if err := validFieldName(fName); err != nil {
			return err
		}
		index := mgo.Index{
			Key:        []string{fName},
			Background: true,
			Sparse:     true,
		}
		err := mds.samplesCollection().EnsureIndex(index)
		if err != nil {
			return err
		}
	}
	return nil
}

func validFieldName(name string) error {
	if name == "_id" {
		return fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
	}
	if strings.ContainsAny(name, ".$") {
		return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", name, ".", "$")
	}
	return nil
}

func (mds *Set) samplesCollection() *mgo.Collection {
	return mds.session.DB("").C(samplesCollectionName)
}
