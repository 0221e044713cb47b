package vietlott

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date, it marshals as "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parse draw date: %w", err)
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Result is the ordered outcome of one draw. Numeric products carry
// Numbers and marshal as a JSON array of integers, triplet products
// carry Triplets and marshal as an array of 3-character digit strings.
type Result struct {
	Numbers  []int
	Triplets []string
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Triplets != nil {
		return json.Marshal(r.Triplets)
	}
	return json.Marshal(r.Numbers)
}

func (r *Result) UnmarshalJSON(b []byte) error {
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = Result{}
	for _, v := range raw {
		switch v := v.(type) {
		case string:
			r.Triplets = append(r.Triplets, v)
		case float64:
			r.Numbers = append(r.Numbers, int(v))
		default:
			return fmt.Errorf("unsupported result element of type %T", v)
		}
	}
	return nil
}

func (r Result) String() string {
	if r.Triplets != nil {
		return strings.Join(r.Triplets, " ")
	}
	parts := make([]string, len(r.Numbers))
	for i, n := range r.Numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

// DrawRecord is one published draw result. Persisted records are
// never mutated, updates only append through a merge.
type DrawRecord struct {
	Date        Date      `json:"date"`
	ID          string    `json:"id"`
	Result      Result    `json:"result"`
	ProcessTime time.Time `json:"process_time"`

	// id of the chronologically preceding draw, discovered per fetch
	// and consumed by the crawl loop, never persisted
	PrevID string `json:"-"`
}
