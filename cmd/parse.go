package cmd

import (
	"fmt"
	"strings"

	"github.com/etnz/leilao"
	"github.com/shopspring/decimal"
)

// parseAmount parses an amount in reais, "1234.56" and "1.234,56" are both accepted.
func parseAmount(s string) (leilao.Money, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return leilao.Money{}, fmt.Errorf("invalid amount %q", s)
	}
	return leilao.BRL(d), nil
}

// parsePercent parses a percentage, with or without the % sign.
func parsePercent(s string) (leilao.Percent, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	return leilao.Percent(d.InexactFloat64()), nil
}

// parseList splits a comma separated list, ignoring empty items.
func parseList(s string) []string {
	var res []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}

// parseEach parses every item of a comma separated list.
func parseEach[T any](s string, parse func(string) (T, error)) ([]T, error) {
	var res []T
	for _, item := range parseList(s) {
		v, err := parse(item)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// parseSold parses a sold flag, in Portuguese or English.
func parseSold(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "sim", "yes", "true":
		return true, nil
	case "não", "nao", "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid sold flag %q, want sim or não", s)
	}
}
