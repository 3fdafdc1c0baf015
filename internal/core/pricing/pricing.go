package pricing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoBucket means the table is empty, so no per-person price can be derived.
	ErrNoBucket = errors.New("pricing: no bucket matches party size")
	// ErrNoCatchAll means the table has no open-ended "N+" bucket.
	ErrNoCatchAll = errors.New("pricing: table has no open-ended bucket")
	// ErrInvalidBucket means a bucket key is neither "N", "N+" nor "A-B".
	ErrInvalidBucket = errors.New("pricing: invalid bucket")
)

// Tier is one party-size bucket and its per-person price.
type Tier struct {
	Bucket string `json:"bucket"`
	Price  int64  `json:"price"`
}

// Table maps party-size buckets to per-person prices. Buckets are exact
// counts ("1", "4"), open ranges ("5+", "6+") or closed ranges ("2-3").
// Tier order is insertion order and survives JSON encoding.
type Table []Tier

// Lookup returns the price stored under an exact bucket key.
func (t Table) Lookup(bucket string) (int64, bool) {
	for _, tier := range t {
		if tier.Bucket == bucket {
			return tier.Price, true
		}
	}
	return 0, false
}

// Resolve returns the per-person price for partySize.
//
// Resolution order:
//  1. exact bucket
//  2. "5+" when partySize >= 5, then "6+" when partySize >= 6
//  3. "2-3" for 2..3, "4-5" for 4..5, "6+" for >= 6
//  4. the "1" bucket, else the first bucket of the table
func Resolve(t Table, partySize int) (int64, error) {
	if len(t) == 0 {
		return 0, ErrNoBucket
	}
	if partySize < 1 {
		return 0, fmt.Errorf("%w: party size %d", ErrNoBucket, partySize)
	}

	if p, ok := t.Lookup(strconv.Itoa(partySize)); ok {
		return p, nil
	}

	if partySize >= 5 {
		if p, ok := t.Lookup("5+"); ok {
			return p, nil
		}
	}
	if partySize >= 6 {
		if p, ok := t.Lookup("6+"); ok {
			return p, nil
		}
	}

	// multi-day tables
	if partySize >= 2 && partySize <= 3 {
		if p, ok := t.Lookup("2-3"); ok {
			return p, nil
		}
	}
	if partySize >= 4 && partySize <= 5 {
		if p, ok := t.Lookup("4-5"); ok {
			return p, nil
		}
	}

	if p, ok := t.Lookup("1"); ok {
		return p, nil
	}
	return t[0].Price, nil
}

// Min returns the lowest per-person price in the table.
func (t Table) Min() int64 {
	var min int64
	for i, tier := range t {
		if i == 0 || tier.Price < min {
			min = tier.Price
		}
	}
	return min
}

// Max returns the highest per-person price in the table.
func (t Table) Max() int64 {
	var max int64
	for _, tier := range t {
		if tier.Price > max {
			max = tier.Price
		}
	}
	return max
}

// Validate checks bucket syntax, positive prices, unique keys and the
// presence of a catch-all bucket covering the largest party sizes.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrNoBucket
	}

	seen := make(map[string]bool, len(t))
	catchAll := false
	for _, tier := range t {
		if seen[tier.Bucket] {
			return fmt.Errorf("%w: duplicate bucket %q", ErrInvalidBucket, tier.Bucket)
		}
		seen[tier.Bucket] = true

		if tier.Price <= 0 {
			return fmt.Errorf("%w: bucket %q has non-positive price", ErrInvalidBucket, tier.Bucket)
		}

		open, err := parseBucket(tier.Bucket)
		if err != nil {
			return err
		}
		if open {
			catchAll = true
		}
	}

	if !catchAll {
		return ErrNoCatchAll
	}
	return nil
}

// parseBucket reports whether the bucket is open-ended.
func parseBucket(bucket string) (bool, error) {
	switch {
	case strings.HasSuffix(bucket, "+"):
		if n, err := strconv.Atoi(strings.TrimSuffix(bucket, "+")); err != nil || n < 1 {
			return false, fmt.Errorf("%w: %q", ErrInvalidBucket, bucket)
		}
		return true, nil

	case strings.Contains(bucket, "-"):
		lo, hi, _ := strings.Cut(bucket, "-")
		a, errA := strconv.Atoi(lo)
		b, errB := strconv.Atoi(hi)
		if errA != nil || errB != nil || a < 1 || b < a {
			return false, fmt.Errorf("%w: %q", ErrInvalidBucket, bucket)
		}
		return false, nil

	default:
		if n, err := strconv.Atoi(bucket); err != nil || n < 1 {
			return false, fmt.Errorf("%w: %q", ErrInvalidBucket, bucket)
		}
		return false, nil
	}
}

// MarshalJSON encodes the table as a JSON object, keeping tier order.
func (t Table) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tier := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tier.Bucket)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(tier.Price, 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object such as {"1":100,"5+":55}, keeping
// the key order of the document.
func (t *Table) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("pricing: decode table: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("pricing: table must be a JSON object")
	}

	out := Table{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("pricing: decode bucket: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("pricing: bucket key must be a string")
		}

		var num json.Number
		if err := dec.Decode(&num); err != nil {
			return fmt.Errorf("pricing: decode price of %q: %w", key, err)
		}
		price, err := num.Int64()
		if err != nil {
			return fmt.Errorf("pricing: price of %q must be a whole amount: %w", key, err)
		}
		out = append(out, Tier{Bucket: key, Price: price})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("pricing: decode table end: %w", err)
	}

	*t = out
	return nil
}
