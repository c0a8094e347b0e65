package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/clinifin/grdload/internal/model"
)

// ToStagingEpisode converts a raw sheet row into a normalized StagingEpisode.
// This is the single normalization point for episode data: every loose
// encoding (Latin numbers, day-first dates, boolean-ish flags) is resolved
// here and nowhere else.
func ToStagingEpisode(row map[string]string, batchID uuid.UUID, importFileID int64, rowNum int64) (*model.StagingEpisode, error) {
	code := strings.TrimSpace(row[model.ColEpisode])
	if code == "" {
		return nil, fmt.Errorf("row %d: empty %s", rowNum, model.ColEpisode)
	}

	s := &model.StagingEpisode{
		IngestBatchID:   batchID,
		ImportFileID:    importFileID,
		SourceRowNumber: rowNum,

		EpisodeCode:    code,
		ConventionCode: strings.ToUpper(strings.TrimSpace(row[model.ColConvention])),
		GRDCode:        strings.TrimSpace(row[model.ColGRD]),

		GRDWeight:          finiteOrNil(ParseLooseNumber(row[model.ColGRDWeight])),
		BasePriceTierCents: ToCents(finiteOrNil(ParseLooseNumber(row[model.ColBasePriceTier]))),

		LengthOfStayDays: ParseDayCount(row[model.ColLengthOfStay]),
		DelayDays:        ParseDayCount(row[model.ColDelayDays]),

		AdmissionDate: ParseDate(row[model.ColAdmissionDate]),
		DischargeDate: ParseDate(row[model.ColDischargeDate]),

		InlierOutlier:    optStr(row[model.ColInlierOutlier]),
		DischargeService: optStr(row[model.ColDischargeService]),
		ATFlag:           model.ParseTriState(row[model.ColAT]).DBValue(),

		ManualDelayCents: ToCents(finiteOrNil(ParseLooseNumber(row[model.ColManualDelay]))),
	}

	s.SourceRowHash = RowHashFromValues(rowNum,
		code,
		s.ConventionCode,
		s.GRDCode,
		row[model.ColGRDWeight],
		row[model.ColBasePriceTier],
		row[model.ColLengthOfStay],
		row[model.ColDelayDays],
		row[model.ColAdmissionDate],
	)

	return s, nil
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func optStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
