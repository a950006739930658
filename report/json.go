package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/use-agent/pageaudit/models"
)

// WriteJSON serialises the full report, pretty-printed, to w. This is the
// lossless artifact: every probe result appears field by field.
func WriteJSON(w io.Writer, r *models.Report) (int, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return 0, models.NewAuditError(models.ErrCodeRender, "marshaling report", err)
	}
	data = append(data, '\n')
	return w.Write(data)
}

// WriteJSONFile writes the JSON artifact to path. The JSON report is the
// minimum guaranteed output of a run that reached probe execution, so it is
// always written before the PDF is attempted.
func WriteJSONFile(path string, r *models.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return models.NewAuditError(models.ErrCodeRender, "creating JSON report file", err)
	}
	defer f.Close()

	if _, err := WriteJSON(f, r); err != nil {
		return err
	}
	return f.Sync()
}
