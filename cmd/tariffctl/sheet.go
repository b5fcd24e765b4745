package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/okian/tariff/internal/domain/bonus"
	"github.com/okian/tariff/internal/domain/legality"
	"github.com/okian/tariff/internal/domain/tariff"
)

var errIllegalSheet = errors.New("sheet is illegal")

// sheetDocument is the YAML layout of a sheet file. Passes may list fewer
// than eight slots; the rest are empty.
type sheetDocument struct {
	Athlete string               `yaml:"athlete" validate:"max=128"`
	Lang    string               `yaml:"lang" validate:"max=64"`
	Context bonus.AthleteContext `yaml:"context"`
	Pass1   []string             `yaml:"pass1" validate:"max=8"`
	Pass2   []string             `yaml:"pass2" validate:"max=8"`
}

func readSheetFile(path string) (tariff.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tariff.Sheet{}, fmt.Errorf("read sheet: %w", err)
	}
	return parseSheet(data)
}

func parseSheet(data []byte) (tariff.Sheet, error) {
	var doc sheetDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return tariff.Sheet{}, fmt.Errorf("parse sheet: %w", err)
	}
	if err := validator.New().Struct(doc); err != nil {
		return tariff.Sheet{}, fmt.Errorf("invalid sheet: %w", err)
	}

	sheet := tariff.Sheet{
		Athlete: doc.Athlete,
		Context: doc.Context,
		Lang:    doc.Lang,
	}
	copy(sheet.Pass1[:], doc.Pass1)
	copy(sheet.Pass2[:], doc.Pass2)
	return sheet, nil
}

// passIDs trims trailing empty slots for display.
func passIDs(p legality.Pass) []string {
	n := len(p)
	for n > 0 && p[n-1] == "" {
		n--
	}
	return p[:n]
}
