/*
Package redisdataset provides a dataset reader and writer that uses a
redis DB as backend.

Each sample is stored as a hash of raw values keyed by feature name under
the key <prefix>:sample:<n>, and the keys of all samples are kept in
insertion order on the list <prefix>:samples.
*/
package redisdataset

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pbanos/bonsai/dataset"
	"gopkg.in/redis.v5"
)

// DefaultPrefix is the prefix of the keys used when none is given.
const DefaultPrefix = "bonsai"

/*
Set is a set of samples stored on a redis DB. It implements both
dataset.Reader and dataset.Writer.
*/
type Set struct {
	rc     *redis.Client
	prefix string
	schema *dataset.Schema
}

// New builds a Set backed by a redis DB whose keys start with
// the given prefix.
func New(rc *redis.Client, prefix string, s *dataset.Schema) *Set {
	return &Set{rc, prefix, s}
}

/*
Dial takes a redis URL of the form

	redis://[:password@]host[:port][/db][?prefix=name]

and a schema and returns a Set on the given DB, or an error if the URL
is invalid or the DB cannot be reached.
*/
func Dial(rawurl string, s *dataset.Schema) (*Set, error) {
	opts, prefix, err := parseURL(rawurl)
	if err != nil {
		return nil, err
	}
	rc := redis.NewClient(opts)
	if err = rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}
	return New(rc, prefix, s), nil
}

func parseURL(rawurl string) (*redis.Options, string, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, "", fmt.Errorf("parsing redis URL: %w", err)
	}
	if u.Scheme != "redis" {
		return nil, "", fmt.Errorf("invalid redis URL scheme %q", u.Scheme)
	}
	opts := &redis.Options{Addr: u.Host}
	if u.Port() == "" {
		opts.Addr = u.Hostname() + ":6379"
	}
	if p, ok := u.User.Password(); ok {
		opts.Password = p
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		opts.DB, err = strconv.Atoi(db)
		if err != nil {
			return nil, "", fmt.Errorf("invalid redis DB %q: %w", db, err)
		}
	}
	prefix := u.Query().Get("prefix")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return opts, prefix, nil
}

// Count returns the number of samples in the set.
func (rs *Set) Count(context.Context) (int, error) {
	n, err := rs.rc.LLen(rs.listKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("counting samples in redis: %w", err)
	}
	return int(n), nil
}

// Write stores the given rows, returning the number of them
// written.
func (rs *Set) Write(ctx context.Context, rows []dataset.Row) (int, error) {
	for n, r := range rows {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		id, err := rs.rc.Incr(rs.sequenceKey()).Result()
		if err != nil {
			return n, fmt.Errorf("generating sample id in redis: %w", err)
		}
		key := rs.sampleKey(id)
		pipe := rs.rc.Pipeline()
		pipe.HMSet(key, rs.schema.Format(r))
		pipe.RPush(rs.listKey(), key)
		_, err = pipe.Exec()
		pipe.Close()
		if err != nil {
			return n, fmt.Errorf("storing sample %q in redis: %w", key, err)
		}
	}
	return len(rows), nil
}

// Flush returns nil, as writes are not buffered.
func (rs *Set) Flush() error {
	return nil
}

// Read reads the samples in the set, in the order they were
// written, sending them on the returned channel.
func (rs *Set) Read(ctx context.Context) (<-chan dataset.Row, <-chan error) {
	return dataset.Stream(ctx, func(emit func(dataset.Row) bool) error {
		keys, err := rs.rc.LRange(rs.listKey(), 0, -1).Result()
		if err != nil {
			return fmt.Errorf("listing samples in redis: %w", err)
		}
		for _, key := range keys {
			raw, err := rs.rc.HGetAll(key).Result()
			if err != nil {
				return fmt.Errorf("retrieving sample %q: %w", key, err)
			}
			row, err := rs.schema.Parse(raw)
			if err != nil {
				return fmt.Errorf("parsing sample %q: %w", key, err)
			}
			if !emit(row) {
				return nil
			}
		}
		return nil
	})
}

// Close closes the client of the set.
func (rs *Set) Close() error {
	return rs.rc.Close()
}

func (rs *Set) listKey() string {
	return fmt.Sprintf("%s:samples", rs.prefix)
}

func (rs *Set) sequenceKey() string {
	return fmt.Sprintf("%s:sequence", rs.prefix)
}

func (rs *Set) sampleKey(id int64) string {
	return fmt.Sprintf("%s:sample:%d", rs.prefix, id)
}
