package redisdataset

import "testing"

func TestParseURL(t *testing.T) {
	cases := []struct {
		url                    string
		addr, password, prefix string
		db                     int
	}{
		{"redis://localhost", "localhost:6379", "", DefaultPrefix, 0},
		{"redis://:secret@cache:6380/2", "cache:6380", "secret", DefaultPrefix, 2},
		{"redis://cache/?prefix=iris", "cache:6379", "", "iris", 0},
	}
	for _, c := range cases {
		opts, prefix, err := parseURL(c.url)
		if err != nil {
			t.Errorf("parseURL(%q): %v", c.url, err)
			continue
		}
		if opts.Addr != c.addr || opts.Password != c.password || opts.DB != c.db || prefix != c.prefix {
			t.Errorf("parseURL(%q) = %+v, %q", c.url, opts, prefix)
		}
	}
	for _, bad := range []string{"http://localhost", "redis://localhost/db", "::"} {
		if _, _, err := parseURL(bad); err == nil {
			t.Errorf("expected error parsing %q", bad)
		}
	}
}

func TestKeys(t *testing.T) {
	rs := New(nil, "iris", nil)
	if rs.listKey() != "iris:samples" || rs.sequenceKey() != "iris:sequence" || rs.sampleKey(7) != "iris:sample:7" {
		t.Errorf("unexpected keys %s %s %s", rs.listKey(), rs.sequenceKey(), rs.sampleKey(7))
	}
}
