package pricing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// LoadCandles reads a candle CSV with columns
// time,open,high,low,close[,volume]. Files ending in .xz are decompressed
// transparently. A header row is skipped if present; bad rows are an error
// rather than silently dropped.
func LoadCandles(path string) ([]Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candles: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open xz stream %s: %w", path, err)
		}
		src = xr
	}

	return ReadCandles(src)
}

// ReadCandles parses candle rows from an open CSV stream.
func ReadCandles(src io.Reader) ([]Candle, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var candles []Candle
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read candles row %d: %w", line+1, err)
		}
		line++

		if line == 1 && looksLikeHeader(rec) {
			continue
		}
		c, err := parseCandle(rec)
		if err != nil {
			return nil, fmt.Errorf("candles row %d: %w", line, err)
		}
		candles = append(candles, c)
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("no candle rows found")
	}
	return candles, nil
}

func looksLikeHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	head := strings.ToLower(strings.TrimSpace(rec[0]))
	return head == "time" || head == "timestamp" || head == "date"
}

func parseCandle(rec []string) (Candle, error) {
	if len(rec) < 5 {
		return Candle{}, fmt.Errorf("need at least 5 columns, got %d", len(rec))
	}

	ts, err := parseTime(rec[0])
	if err != nil {
		return Candle{}, err
	}

	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
		if err != nil {
			return Candle{}, fmt.Errorf("bad %s: %w", [...]string{"open", "high", "low", "close"}[i], err)
		}
		vals[i] = v
	}

	c := Candle{
		Time:  ts,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}
	if len(rec) > 5 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(rec[5]), 64); err == nil {
			c.Volume = v
		}
	}
	return c, nil
}

// parseTime accepts RFC3339, a plain "2006-01-02 15:04:05", or unix
// seconds.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return ts.UTC(), nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
