package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/ads-sync-engine/pkg/utils"
)

var ErrInvalidDateRange = errors.New("intervalo de datas inválido")

// DateRange é inclusivo nas duas pontas
type DateRange struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

// TrailingWindow retorna os últimos `days` dias terminando em `now` (inclusive)
func TrailingWindow(now time.Time, days int) DateRange {
	if days < 1 {
		days = 1
	}

	until := utils.TruncateToDay(now)
	return DateRange{
		Since: until.AddDate(0, 0, -(days - 1)),
		Until: until,
	}
}

// ParseDateRange interpreta since/until em YYYY-MM-DD. Retorna nil quando ambos estão vazios.
func ParseDateRange(since, until string) (*DateRange, error) {
	if since == "" && until == "" {
		return nil, nil
	}

	sinceDate, err := utils.ParseDate(since)
	if err != nil {
		return nil, fmt.Errorf("%w: since: %v", ErrInvalidDateRange, err)
	}

	untilDate, err := utils.ParseDate(until)
	if err != nil {
		return nil, fmt.Errorf("%w: until: %v", ErrInvalidDateRange, err)
	}

	if sinceDate == nil || untilDate == nil {
		return nil, fmt.Errorf("%w: since e until são obrigatórios juntos", ErrInvalidDateRange)
	}

	dr := DateRange{Since: *sinceDate, Until: *untilDate}
	if err := dr.Validate(); err != nil {
		return nil, err
	}

	return &dr, nil
}

func (d DateRange) Validate() error {
	if d.Since.IsZero() || d.Until.IsZero() {
		return fmt.Errorf("%w: datas vazias", ErrInvalidDateRange)
	}

	if d.Until.Before(d.Since) {
		return fmt.Errorf("%w: until (%s) antes de since (%s)", ErrInvalidDateRange, d.UntilString(), d.SinceString())
	}

	return nil
}

// Days retorna a quantidade de dias cobertos, contando as duas pontas
func (d DateRange) Days() int {
	since := calendarDay(d.Since)
	until := calendarDay(d.Until)
	return int(until.Sub(since)/(24*time.Hour)) + 1
}

// calendarDay leva a data local para meia-noite UTC, onde todo dia tem 24h
func calendarDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func (d DateRange) SinceString() string {
	return d.Since.Format(time.DateOnly)
}

func (d DateRange) UntilString() string {
	return d.Until.Format(time.DateOnly)
}

func (d DateRange) String() string {
	return fmt.Sprintf("%s..%s", d.SinceString(), d.UntilString())
}
