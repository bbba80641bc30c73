package session

import "github.com/jonathan/landing-generator/internal/types"

// Progress is the aggregate approval state of a document.
type Progress struct {
	Approved    int     `json:"aprobadas"`
	Total       int     `json:"total"`
	Percent     float64 `json:"porcentaje"`
	AllApproved bool    `json:"todas_aprobadas"`
}

// ComputeProgress counts approved sections over every section in the document.
func ComputeProgress(doc *types.Document) Progress {
	var p Progress
	for _, sec := range doc.Secciones {
		if sec == nil {
			continue
		}
		p.Total++
		if sec.Estado == types.StatusApproved {
			p.Approved++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(p.Approved) / float64(p.Total) * 100
	}
	p.AllApproved = p.Total > 0 && p.Approved == p.Total
	return p
}
