package api

import (
	"github.com/okian/tariff/internal/domain/bonus"
	"github.com/okian/tariff/internal/domain/legality"
	"github.com/okian/tariff/internal/domain/tariff"
)

// Passes travel as JSON arrays of up to eight ids; missing trailing slots are empty.

type validateRequest struct {
	Pass1 []string `json:"pass1" validate:"max=8,dive,max=64"`
	Pass2 []string `json:"pass2" validate:"max=8,dive,max=64"`
	Lang  string   `json:"lang" validate:"max=64"`
}

type bonusRequest struct {
	Values  []float64            `json:"values" validate:"max=8,dive,gte=0"`
	Context bonus.AthleteContext `json:"context"`
}

type sheetRequest struct {
	Athlete string               `json:"athlete" validate:"max=128"`
	Context bonus.AthleteContext `json:"context"`
	Pass1   []string             `json:"pass1" validate:"max=8,dive,max=64"`
	Pass2   []string             `json:"pass2" validate:"max=8,dive,max=64"`
	Lang    string               `json:"lang" validate:"max=64"`
}

type batchRequest struct {
	Sheets []sheetRequest `json:"sheets" validate:"required,min=1,dive"`
}

func (r sheetRequest) sheet() tariff.Sheet {
	return tariff.Sheet{
		Athlete: r.Athlete,
		Context: r.Context,
		Pass1:   toPass(r.Pass1),
		Pass2:   toPass(r.Pass2),
		Lang:    r.Lang,
	}
}

func toPass(ids []string) legality.Pass {
	var p legality.Pass
	copy(p[:], ids)
	return p
}

func toValues(vs []float64) [bonus.PassLength]float64 {
	var out [bonus.PassLength]float64
	copy(out[:], vs)
	return out
}
