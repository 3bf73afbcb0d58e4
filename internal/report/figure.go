package report

import (
	"github.com/alexiusacademia/gotruss/internal/assembly"
	"github.com/alexiusacademia/gotruss/internal/diagram"
)

// FigureData converts a result into diagram input
func FigureData(res *assembly.Result) diagram.FigureData {
	data := diagram.FigureData{
		AllowableLoad: res.AllowableLoad,
		TargetFactor:  res.SafetyFactor,
		Members:       make([]diagram.MemberData, 0, len(assembly.Members)),
	}
	for _, m := range assembly.Members {
		mr := res.Members[m]
		pts := make([]diagram.Point, len(mr.Points))
		for i, p := range mr.Points {
			pts[i] = diagram.Point{X: p.X, Y: p.Y}
		}
		data.Members = append(data.Members, diagram.MemberData{
			Name:         m.String(),
			Points:       pts,
			SafetyFactor: mr.SafetyFactor,
			MaxLoad:      mr.MaxLoad,
			Governs:      mr.Governs,
		})
	}
	return data
}
